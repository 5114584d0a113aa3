package common

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Direction describes how an edge between two entities should be read.
type Direction string

const (
	// DirectionDirectional marks an edge that flows from source to target.
	DirectionDirectional Direction = "directional"
	// DirectionBidirectional marks an edge that flows both ways.
	DirectionBidirectional Direction = "bidirectional"
	// DirectionNone marks an edge with no meaningful direction.
	DirectionNone Direction = "non-directional"
)

// Properties is an insertion-ordered mapping of attribute names to scalar
// values. Order is preserved so property listings render the same way the
// oracle reported them.
type Properties = orderedmap.OrderedMap[string, any]

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties {
	return orderedmap.New[string, any]()
}

// Entity represents a node in the link-analysis graph: a person,
// organization, location, phone number, or any other concept the
// extraction step identified.
//
// ID is the canonical, collision-free identifier assigned during
// normalization; it is unique within a graph. Label keeps the original
// display value and may repeat across distinct entities.
type Entity struct {
	ID         string      `json:"id"`
	Label      string      `json:"label"`
	Type       string      `json:"type"`
	Properties *Properties `json:"properties,omitempty"`
}

// Relationship represents an edge between two entities. Source and Target
// hold canonical entity ids and are guaranteed to resolve against the
// entity set of the same graph snapshot.
type Relationship struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"`
	Target     string      `json:"target"`
	Label      string      `json:"label"`
	Type       string      `json:"type,omitempty"`
	Direction  Direction   `json:"direction"`
	Strength   *float64    `json:"strength,omitempty"`
	Properties *Properties `json:"properties,omitempty"`
}

// Graph is a validated entity/relationship snapshot for a single analysis
// request. It has no persisted identity; each request builds, transforms
// and discards its own instance.
type Graph struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}

// LayoutNode is the positioned form of an entity after the layered layout
// pass. Layer and Order are discrete placement indices; X and Y are the
// final center coordinates.
type LayoutNode struct {
	EntityID string  `json:"entityId"`
	Layer    int     `json:"layer"`
	Order    int     `json:"order"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// AnalysisResult is the full output handed to the caller: the reconciled
// graph, a human-readable summary, pass-through request metadata, and the
// computed layout.
type AnalysisResult struct {
	IdentifiedEntities []Entity       `json:"identifiedEntities"`
	Relationships      []Relationship `json:"relationships"`
	AnalysisSummary    string         `json:"analysisSummary"`
	AnalysisContext    string         `json:"analysisContext,omitempty"`
	FileOrigin         string         `json:"fileOrigin,omitempty"`
	LayoutNodes        []LayoutNode   `json:"layoutNodes,omitempty"`
}
