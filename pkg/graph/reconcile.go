package graph

import (
	"fmt"

	"github.com/linkscope/backend/pkg/common"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ReconcileRelationships rewrites proposal endpoints into the canonical
// id space and drops every relationship with an unresolved endpoint.
// The returned count says how many proposals were discarded as dangling.
//
// Self-loops are kept, and duplicate relationships (same source, target
// and label) are kept as well: multiplicity may represent independent
// evidence.
func ReconcileRelationships(proposed []ProposedRelationship, lookup *EntityLookup) ([]common.Relationship, int, error) {
	relationships := make([]common.Relationship, 0, len(proposed))
	dropped := 0

	for _, p := range proposed {
		source, okSource := lookup.Resolve(p.Source)
		target, okTarget := lookup.Resolve(p.Target)
		if !okSource || !okTarget {
			dropped++
			continue
		}

		id := p.ID
		if id == "" {
			generated, err := gonanoid.New()
			if err != nil {
				return nil, dropped, fmt.Errorf("failed to generate relationship id: %w", err)
			}
			id = generated
		}

		rel := common.Relationship{
			ID:         id,
			Source:     source,
			Target:     target,
			Label:      p.Label,
			Type:       p.Type,
			Direction:  parseDirection(p.Direction),
			Strength:   clampStrength(p.Strength),
			Properties: propertiesFromPairs(p.Properties),
		}
		relationships = append(relationships, rel)
	}

	return relationships, dropped, nil
}

func parseDirection(value string) common.Direction {
	switch common.Direction(value) {
	case common.DirectionBidirectional:
		return common.DirectionBidirectional
	case common.DirectionNone:
		return common.DirectionNone
	default:
		return common.DirectionDirectional
	}
}

func clampStrength(strength *float64) *float64 {
	if strength == nil {
		return nil
	}
	s := *strength
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return &s
}
