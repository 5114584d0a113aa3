package graph

import (
	"github.com/linkscope/backend/pkg/common"
)

// Adjacency is the derived edge index of a graph snapshot: for every
// entity id, the indices of the relationships leaving and entering it.
// It is rebuilt from the relationship set and never mutated on its own.
type Adjacency struct {
	Out map[string][]int
	In  map[string][]int
}

// BuildAdjacency derives the adjacency index for a graph. Relationship
// indices appear in input order, so traversals over the index are
// deterministic for a given snapshot.
func BuildAdjacency(g *common.Graph) *Adjacency {
	adj := &Adjacency{
		Out: make(map[string][]int, len(g.Entities)),
		In:  make(map[string][]int, len(g.Entities)),
	}
	for i, rel := range g.Relationships {
		adj.Out[rel.Source] = append(adj.Out[rel.Source], i)
		adj.In[rel.Target] = append(adj.In[rel.Target], i)
	}
	return adj
}

// Degree returns the total number of relationship endpoints attached to
// the entity (self-loops count twice).
func (a *Adjacency) Degree(entityID string) int {
	return len(a.Out[entityID]) + len(a.In[entityID])
}

// Reconcile runs the deterministic core of the engine on a set of
// proposals: normalization followed by relationship reconciliation. It
// returns the validated graph plus the dropped-entity and
// dropped-relationship counts.
//
// Running Reconcile on proposals built from its own output is a no-op on
// the id set.
func Reconcile(entities []ProposedEntity, relationships []ProposedRelationship) (*common.Graph, int, int, error) {
	normalized, lookup, droppedEntities := NormalizeEntities(entities)
	reconciled, droppedRelationships, err := ReconcileRelationships(relationships, lookup)
	if err != nil {
		return nil, droppedEntities, droppedRelationships, err
	}

	g := &common.Graph{
		Entities:      normalized,
		Relationships: reconciled,
	}
	return g, droppedEntities, droppedRelationships, nil
}
