package graph

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/invopop/jsonschema"

	"github.com/linkscope/backend/pkg/ai"
)

// defaultEntityTypes are the categories offered to the oracle when the
// request does not override them.
var defaultEntityTypes = []string{
	"PERSON", "ORGANIZATION", "LOCATION", "PHONE_NUMBER", "EMAIL_ADDRESS",
	"BANK_ACCOUNT", "VEHICLE", "DATE", "EVENT", "TRANSACTION", "DOCUMENT", "OTHER",
}

type proposeAttribute struct {
	Key   string `json:"key" jsonschema_description:"Attribute name"`
	Value string `json:"value" jsonschema_description:"Attribute value as a string"`
}

type proposeEntity struct {
	WorkingID  string             `json:"working_id" jsonschema_description:"Short identifier unique within this answer, referenced by relationships"`
	Label      string             `json:"label" jsonschema_description:"The candidate string exactly as provided, without any normalization"`
	EntityType string             `json:"entity_type" jsonschema_description:"One of the provided entity types"`
	Attributes []proposeAttribute `json:"attributes" jsonschema_description:"Attributes the candidate itself carries, in order of appearance"`
}

type proposeRelationship struct {
	SourceID  string  `json:"source_id" jsonschema_description:"Working id of the source entity, as assigned in the entities list"`
	TargetID  string  `json:"target_id" jsonschema_description:"Working id of the target entity, as assigned in the entities list"`
	Label     string  `json:"label" jsonschema_description:"Short phrase describing how the two entities are connected"`
	Type      string  `json:"relationship_type" jsonschema_description:"Optional category of the connection, empty if none applies"`
	Direction string  `json:"direction" jsonschema:"enum=directional,enum=bidirectional,enum=non-directional" jsonschema_description:"How the connection should be read"`
	Strength  float64 `json:"strength" jsonschema_description:"Confidence in the connection between 0 and 1, 0 if unknown"`
}

type proposeResponse struct {
	Entities      []proposeEntity       `json:"entities" jsonschema_description:"Entities identified among the candidate strings"`
	Relationships []proposeRelationship `json:"relationships" jsonschema_description:"Relationships between the proposed entities"`
}

// proposeFromBatch asks the oracle to turn one batch of candidate
// strings into entity and relationship proposals.
func proposeFromBatch(
	ctx context.Context,
	batch []string,
	analysisContext string,
	entityTypes []string,
	client ai.LinkAIClient,
) ([]ProposedEntity, []ProposedRelationship, error) {
	types := entityTypes
	if len(types) == 0 {
		types = defaultEntityTypes
	}
	typeList := strings.Join(types, ",")

	contextTag := strings.TrimSpace(analysisContext)
	if contextTag == "" {
		contextTag = "general link analysis"
	}

	systemPrompt := fmt.Sprintf(ai.ProposePrompt, typeList, contextTag, typeList, typeList)

	var prompt strings.Builder
	prompt.WriteString("Candidates:\n")
	for _, candidate := range batch {
		prompt.WriteString("- ")
		prompt.WriteString(candidate)
		prompt.WriteString("\n")
	}

	var res proposeResponse
	err := client.GenerateCompletionWithFormat(
		ctx,
		"propose_entities_and_relationships",
		"Propose link-analysis entities and relationships for a list of candidate strings.",
		prompt.String(),
		&res,
		ai.WithSystemPrompts(systemPrompt),
	)
	if err != nil {
		return nil, nil, err
	}

	entities := make([]ProposedEntity, 0, len(res.Entities))
	for _, e := range res.Entities {
		var props []ProposedProperty
		for _, attr := range e.Attributes {
			props = append(props, ProposedProperty{Key: attr.Key, Value: attr.Value})
		}
		entities = append(entities, ProposedEntity{
			WorkingID:  e.WorkingID,
			Label:      e.Label,
			Type:       e.EntityType,
			Properties: props,
		})
	}

	relationships := make([]ProposedRelationship, 0, len(res.Relationships))
	for _, r := range res.Relationships {
		var strength *float64
		if r.Strength > 0 {
			s := r.Strength
			strength = &s
		}
		relationships = append(relationships, ProposedRelationship{
			Source:    r.SourceID,
			Target:    r.TargetID,
			Label:     r.Label,
			Type:      r.Type,
			Direction: r.Direction,
			Strength:  strength,
		})
	}

	return entities, relationships, nil
}
