package layout

import (
	"github.com/linkscope/backend/pkg/common"
)

// Node dimensions are estimated from content so the renderer gets usable
// boxes without measuring text: width grows with the label, height with
// the property count, both capped.
const (
	nodeWidthBase  = 40.0
	nodeWidthChar  = 8.0
	nodeWidthMax   = 240.0
	nodeHeightBase = 40.0
	nodeHeightProp = 14.0
	nodeHeightMax  = 140.0
)

func nodeSize(e common.Entity) (width, height float64) {
	width = nodeWidthBase + nodeWidthChar*float64(len([]rune(e.Label)))
	if width > nodeWidthMax {
		width = nodeWidthMax
	}
	height = nodeHeightBase
	if e.Properties != nil {
		height += nodeHeightProp * float64(e.Properties.Len())
	}
	if height > nodeHeightMax {
		height = nodeHeightMax
	}
	return width, height
}

// assignCoordinates turns the layered ordering into center coordinates.
// Within a layer, nodes are placed left to right (or top to bottom for
// LeftToRight) with NodeSep between their borders; the cross-axis
// position of a layer is its index times the largest node extent plus
// LayerSep. The returned slice follows entity input order.
func assignCoordinates(g *common.Graph, layers []int, ordered [][]int, cfg Config) []common.LayoutNode {
	widths := make([]float64, len(g.Entities))
	heights := make([]float64, len(g.Entities))
	maxExtent := 0.0
	for i, e := range g.Entities {
		widths[i], heights[i] = nodeSize(e)
		extent := heights[i]
		if cfg.Direction == LeftToRight {
			extent = widths[i]
		}
		if extent > maxExtent {
			maxExtent = extent
		}
	}

	nodes := make([]common.LayoutNode, len(g.Entities))

	for layerIdx, layer := range ordered {
		layerCoord := float64(layerIdx) * (maxExtent + cfg.LayerSep)
		offset := 0.0

		for orderIdx, node := range layer {
			size := widths[node]
			if cfg.Direction == LeftToRight {
				size = heights[node]
			}

			center := offset + size/2
			offset += size + cfg.NodeSep

			x, y := center, layerCoord
			if cfg.Direction == LeftToRight {
				x, y = layerCoord, center
			}

			nodes[node] = common.LayoutNode{
				EntityID: g.Entities[node].ID,
				Layer:    layers[node],
				Order:    orderIdx,
				X:        x,
				Y:        y,
				Width:    widths[node],
				Height:   heights[node],
			}
		}
	}

	return nodes
}
