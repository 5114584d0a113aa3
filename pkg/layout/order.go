package layout

import (
	"sort"
)

// orderLayers arranges the nodes of each layer to reduce edge crossings.
// Starting from input order, it runs alternating downward and upward
// median sweeps: each layer is stably re-sorted by the median position of
// its neighbors in the fixed adjacent layer, nodes without neighbors
// there keeping their current position. Sweeping stops at a fixpoint or
// after maxIterations full passes, whichever comes first; the last
// computed ordering is returned either way.
func orderLayers(layers []int, edges []edge, maxIterations int) [][]int {
	layerCount := 0
	for _, l := range layers {
		if l+1 > layerCount {
			layerCount = l + 1
		}
	}

	ordered := make([][]int, layerCount)
	for node, l := range layers {
		ordered[l] = append(ordered[l], node)
	}

	neighbors := make([][]int, len(layers))
	for _, e := range edges {
		neighbors[e.from] = append(neighbors[e.from], e.to)
		neighbors[e.to] = append(neighbors[e.to], e.from)
	}

	pos := make([]int, len(layers))
	syncPositions := func() {
		for _, layer := range ordered {
			for i, node := range layer {
				pos[node] = i
			}
		}
	}
	syncPositions()

	sweep := func(layer []int, adjacent int) bool {
		keys := make([]float64, len(layer))
		for i, node := range layer {
			keys[i] = medianPosition(node, adjacent, layers, neighbors, pos, i)
		}

		order := make([]int, len(layer))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return keys[order[a]] < keys[order[b]]
		})

		changed := false
		reordered := make([]int, len(layer))
		for i, idx := range order {
			reordered[i] = layer[idx]
			if idx != i {
				changed = true
			}
		}
		copy(layer, reordered)
		return changed
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for l := 1; l < layerCount; l++ {
			if sweep(ordered[l], l-1) {
				changed = true
			}
			syncPositions()
		}
		for l := layerCount - 2; l >= 0; l-- {
			if sweep(ordered[l], l+1) {
				changed = true
			}
			syncPositions()
		}

		if !changed {
			break
		}
	}

	return ordered
}

// medianPosition returns the sort key for one node during a sweep: the
// median of its neighbors' positions in the adjacent layer, the mean of
// the two middles on even count, or the node's own current position when
// it has no neighbor there.
func medianPosition(node, adjacent int, layers []int, neighbors [][]int, pos []int, current int) float64 {
	var positions []int
	for _, n := range neighbors[node] {
		if layers[n] == adjacent {
			positions = append(positions, pos[n])
		}
	}
	if len(positions) == 0 {
		return float64(current)
	}

	sort.Ints(positions)
	mid := len(positions) / 2
	if len(positions)%2 == 1 {
		return float64(positions[mid])
	}
	return float64(positions[mid-1]+positions[mid]) / 2
}
