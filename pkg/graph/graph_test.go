package graph

import (
	"reflect"
	"testing"

	"github.com/linkscope/backend/pkg/common"
)

func TestBuildAdjacency(t *testing.T) {
	g := &common.Graph{
		Entities: []common.Entity{
			{ID: "A"}, {ID: "B"}, {ID: "C"},
		},
		Relationships: []common.Relationship{
			{ID: "r0", Source: "A", Target: "B"},
			{ID: "r1", Source: "A", Target: "C"},
			{ID: "r2", Source: "B", Target: "A"},
			{ID: "r3", Source: "C", Target: "C"},
		},
	}

	adj := BuildAdjacency(g)

	if got := adj.Out["A"]; !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Out[A] = %v, want [0 1]", got)
	}
	if got := adj.In["A"]; !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("In[A] = %v, want [2]", got)
	}
	if got := adj.Degree("A"); got != 3 {
		t.Errorf("Degree(A) = %d, want 3", got)
	}
	if got := adj.Degree("C"); got != 3 {
		t.Errorf("Degree(C) = %d, want 3 (self-loop counts twice)", got)
	}
	if got := adj.Degree("unknown"); got != 0 {
		t.Errorf("Degree(unknown) = %d, want 0", got)
	}
}

func TestReconcile(t *testing.T) {
	entities := []ProposedEntity{
		{WorkingID: "e1", Label: "Acme"},
		{WorkingID: "e2", Label: "Acme"},
		{WorkingID: "e3", Label: ""},
		{WorkingID: "e4", Label: "Bolt"},
	}
	relationships := []ProposedRelationship{
		{Source: "e1", Target: "e4", Label: "supplies"},
		{Source: "e2", Target: "e4", Label: "supplies"},
		{Source: "e3", Target: "e4", Label: "from dropped entity"},
	}

	g, droppedEntities, droppedRelationships, err := Reconcile(entities, relationships)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if droppedEntities != 1 {
		t.Errorf("droppedEntities = %d, want 1", droppedEntities)
	}
	if droppedRelationships != 1 {
		t.Errorf("droppedRelationships = %d, want 1", droppedRelationships)
	}
	if got := entityIDs(g.Entities); !reflect.DeepEqual(got, []string{"Acme", "Acme_2", "Bolt"}) {
		t.Errorf("entity ids = %#v, want [Acme Acme_2 Bolt]", got)
	}
	if len(g.Relationships) != 2 {
		t.Fatalf("len(relationships) = %d, want 2", len(g.Relationships))
	}
	if g.Relationships[1].Source != "Acme_2" {
		t.Errorf("second relationship source = %q, want Acme_2", g.Relationships[1].Source)
	}
}

// Re-running reconciliation on proposals built from its own output must
// not change any id or drop anything.
func TestReconcileIdempotent(t *testing.T) {
	first, _, _, err := Reconcile(
		[]ProposedEntity{
			{WorkingID: "e1", Label: "Acme"},
			{WorkingID: "e2", Label: "Acme"},
			{WorkingID: "e3", Label: "Bolt GmbH"},
		},
		[]ProposedRelationship{
			{Source: "e1", Target: "e3", Label: "supplies"},
			{Source: "e2", Target: "e2", Label: "self"},
		},
	)
	if err != nil {
		t.Fatalf("first Reconcile() error = %v", err)
	}

	var entities []ProposedEntity
	for _, e := range first.Entities {
		entities = append(entities, ProposedEntity{Label: e.Label, Type: e.Type})
	}
	var relationships []ProposedRelationship
	for _, r := range first.Relationships {
		relationships = append(relationships, ProposedRelationship{
			ID:     r.ID,
			Source: r.Source,
			Target: r.Target,
			Label:  r.Label,
		})
	}

	second, droppedEntities, droppedRelationships, err := Reconcile(entities, relationships)
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if droppedEntities != 0 || droppedRelationships != 0 {
		t.Errorf("second pass dropped (%d, %d), want nothing dropped", droppedEntities, droppedRelationships)
	}
	if !reflect.DeepEqual(entityIDs(second.Entities), entityIDs(first.Entities)) {
		t.Errorf("second pass ids = %#v, want %#v", entityIDs(second.Entities), entityIDs(first.Entities))
	}
	for i, r := range second.Relationships {
		if r.Source != first.Relationships[i].Source || r.Target != first.Relationships[i].Target {
			t.Errorf("relationship %d endpoints changed: (%q, %q) vs (%q, %q)",
				i, r.Source, r.Target, first.Relationships[i].Source, first.Relationships[i].Target)
		}
	}
}
