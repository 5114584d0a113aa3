// Package layout computes a layered, Sugiyama-style layout for a
// reconciled link-analysis graph: cycle breaking, longest-path layer
// assignment, median-based crossing reduction and coordinate assignment.
//
// The computation is deterministic for a given graph and configuration
// and never fails on graph shape; cycles are handled by reversing the
// closing edges for layout purposes only.
package layout

import (
	"github.com/linkscope/backend/pkg/common"
)

// Direction selects the axis along which layers are stacked.
type Direction string

const (
	// TopToBottom stacks layers vertically, edges flowing downward.
	TopToBottom Direction = "top-to-bottom"
	// LeftToRight stacks layers horizontally, edges flowing rightward.
	LeftToRight Direction = "left-to-right"
)

// Config holds the layout tuning knobs. Zero values fall back to
// defaults, so Config{} is a valid configuration.
type Config struct {
	Direction     Direction
	NodeSep       float64 // gap between node borders within a layer
	LayerSep      float64 // gap between adjacent layers
	MaxIterations int     // cap on ordering sweeps
}

const (
	defaultNodeSep       = 40.0
	defaultLayerSep      = 80.0
	defaultMaxIterations = 8
)

func (c Config) withDefaults() Config {
	if c.Direction != LeftToRight {
		c.Direction = TopToBottom
	}
	if c.NodeSep <= 0 {
		c.NodeSep = defaultNodeSep
	}
	if c.LayerSep <= 0 {
		c.LayerSep = defaultLayerSep
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = defaultMaxIterations
	}
	return c
}

// edge is a layout edge between node indices. Stored relationships are
// never modified; reversal for cycle breaking happens on these copies.
type edge struct {
	from int
	to   int
}

// Compute lays out the graph and returns one positioned node per entity,
// in entity input order. An empty graph yields an empty layout and no
// error.
func Compute(g *common.Graph, cfg Config) ([]common.LayoutNode, error) {
	if g == nil || len(g.Entities) == 0 {
		return []common.LayoutNode{}, nil
	}
	cfg = cfg.withDefaults()

	index := make(map[string]int, len(g.Entities))
	for i, e := range g.Entities {
		index[e.ID] = i
	}

	edges := layoutEdges(g, index)
	acyclic := breakCycles(len(g.Entities), edges)
	layers := assignLayers(len(g.Entities), acyclic)
	ordered := orderLayers(layers, acyclic, cfg.MaxIterations)

	return assignCoordinates(g, layers, ordered, cfg), nil
}

// layoutEdges derives the directed edge list used for layering.
// Self-loops are skipped; they cannot satisfy the strict layer ordering
// and carry no layering information.
func layoutEdges(g *common.Graph, index map[string]int) []edge {
	edges := make([]edge, 0, len(g.Relationships))
	for _, rel := range g.Relationships {
		from, okFrom := index[rel.Source]
		to, okTo := index[rel.Target]
		if !okFrom || !okTo || from == to {
			continue
		}
		edges = append(edges, edge{from: from, to: to})
	}
	return edges
}
