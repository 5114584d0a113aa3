package graph

import (
	"testing"
)

func TestMergeBatchProposals(t *testing.T) {
	batches := []batchProposals{
		{
			entities: []ProposedEntity{
				{WorkingID: "e1", Label: "Acme"},
				{WorkingID: "e2", Label: "Bolt"},
			},
			relationships: []ProposedRelationship{
				{Source: "e1", Target: "e2", Label: "supplies"},
			},
		},
		{
			// Same working ids as the first batch; they must not collide
			// after merging.
			entities: []ProposedEntity{
				{WorkingID: "e1", Label: "Crane"},
			},
			relationships: []ProposedRelationship{
				{Source: "e1", Target: "Acme", Label: "rents from"},
			},
		},
	}

	entities, relationships, err := mergeBatchProposals(batches)
	if err != nil {
		t.Fatalf("mergeBatchProposals() error = %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("len(entities) = %d, want 3", len(entities))
	}
	if len(relationships) != 2 {
		t.Fatalf("len(relationships) = %d, want 2", len(relationships))
	}

	labels := make([]string, 0, len(entities))
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		labels = append(labels, e.Label)
		if e.WorkingID == "" || seen[e.WorkingID] {
			t.Errorf("working id %q not globally unique after merge", e.WorkingID)
		}
		seen[e.WorkingID] = true
	}
	if labels[0] != "Acme" || labels[1] != "Bolt" || labels[2] != "Crane" {
		t.Errorf("labels = %#v, want batch order preserved", labels)
	}

	if relationships[0].Source != entities[0].WorkingID || relationships[0].Target != entities[1].WorkingID {
		t.Errorf("first relationship endpoints not remapped to new working ids")
	}
	if relationships[1].Source != entities[2].WorkingID {
		t.Errorf("second batch source not remapped to its own batch's entity")
	}
	if relationships[1].Target != "Acme" {
		t.Errorf("unmatched endpoint = %q, want label %q passed through", relationships[1].Target, "Acme")
	}
}
