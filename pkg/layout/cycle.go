package layout

// DFS colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the current DFS path
	black        // fully explored
)

// breakCycles returns an acyclic copy of the edge list. An iterative
// depth-first traversal visits nodes in input order with edges in input
// order; every edge whose target is on the current DFS path would close
// a cycle and is returned reversed. All other edges pass through
// unchanged, so the result is deterministic for a given input.
func breakCycles(n int, edges []edge) []edge {
	adjacency := make([][]int, n)
	for i, e := range edges {
		adjacency[e.from] = append(adjacency[e.from], i)
	}

	result := make([]edge, len(edges))
	copy(result, edges)

	color := make([]int, n)

	type frame struct {
		node int
		next int // index into adjacency[node]
	}

	for start := 0; start < n; start++ {
		if color[start] != white {
			continue
		}

		stack := []frame{{node: start}}
		color[start] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next >= len(adjacency[top.node]) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			edgeIdx := adjacency[top.node][top.next]
			top.next++
			target := edges[edgeIdx].to

			switch color[target] {
			case gray:
				result[edgeIdx] = edge{from: edges[edgeIdx].to, to: edges[edgeIdx].from}
			case white:
				color[target] = gray
				stack = append(stack, frame{node: target})
			}
		}
	}

	return result
}
