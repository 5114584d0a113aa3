package graph

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type batchProposals struct {
	entities      []ProposedEntity
	relationships []ProposedRelationship
}

// mergeBatchProposals flattens per-batch oracle output into a single
// proposal set, preserving batch order. Working ids are only unique
// within one oracle answer, so every entity gets a fresh globally unique
// working id and the batch's relationships are re-pointed accordingly.
// Relationship endpoints that don't match any working id of their own
// batch pass through untouched; the reconciler may still resolve them by
// label.
func mergeBatchProposals(batches []batchProposals) ([]ProposedEntity, []ProposedRelationship, error) {
	var entities []ProposedEntity
	var relationships []ProposedRelationship

	for _, batch := range batches {
		remap := make(map[string]string, len(batch.entities))

		for _, entity := range batch.entities {
			id, err := gonanoid.New()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to generate working id: %w", err)
			}
			if entity.WorkingID != "" {
				remap[entity.WorkingID] = id
			}
			entity.WorkingID = id
			entities = append(entities, entity)
		}

		for _, rel := range batch.relationships {
			if mapped, ok := remap[rel.Source]; ok {
				rel.Source = mapped
			}
			if mapped, ok := remap[rel.Target]; ok {
				rel.Target = mapped
			}
			relationships = append(relationships, rel)
		}
	}

	return entities, relationships, nil
}
