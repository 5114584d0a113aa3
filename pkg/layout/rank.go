package layout

// assignLayers computes longest-path layer indices over an acyclic edge
// set: roots sit at layer 0 and every node's layer is one more than the
// deepest layer among its incoming edges. The result satisfies
// layer[from] < layer[to] for every edge.
func assignLayers(n int, edges []edge) []int {
	indegree := make([]int, n)
	out := make([][]int, n)
	for _, e := range edges {
		indegree[e.to]++
		out[e.from] = append(out[e.from], e.to)
	}

	layers := make([]int, n)

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, target := range out[node] {
			if layers[node]+1 > layers[target] {
				layers[target] = layers[node] + 1
			}
			indegree[target]--
			if indegree[target] == 0 {
				queue = append(queue, target)
			}
		}
	}

	return layers
}
