package graph

// ProposedProperty is a single key/value attribute the oracle attached to
// a proposal. Properties stay ordered the way the oracle listed them.
type ProposedProperty struct {
	Key   string
	Value any
}

// ProposedEntity is an entity candidate as the oracle reported it, before
// normalization. WorkingID is only unique within one oracle response and
// is replaced by a canonical id downstream.
type ProposedEntity struct {
	WorkingID  string
	Label      string
	Type       string
	Properties []ProposedProperty
}

// ProposedRelationship is a relationship candidate whose Source and
// Target still reference oracle working ids (or, for proposals fed in
// directly, entity labels). Endpoints that cannot be resolved against the
// normalized entity set cause the relationship to be dropped.
type ProposedRelationship struct {
	ID         string
	Source     string
	Target     string
	Label      string
	Type       string
	Direction  string
	Strength   *float64
	Properties []ProposedProperty
}
