package ai

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"
)

// Some models prefix their structured answer with a stray second
// opening brace; strip it before handing the payload to the repairer.
func stripDuplicateLeadingBrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		rest := strings.TrimSpace(s[1:])
		if strings.HasPrefix(rest, "{") {
			return rest
		}
	}
	return s
}

// GenerateSchema reflects a JSON Schema from the given Go type for use
// as a structured-output constraint on proposal requests. Additional
// properties are disallowed and definitions are inlined, since the
// model backends expect one self-contained schema object.
func GenerateSchema(value any) any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// UnmarshalFlexible parses a model answer into out with fallbacks for
// the malformed shapes proposal responses come back in: plain JSON
// first, then double-encoded JSON strings, then a repair pass for
// truncated or sloppily quoted payloads.
//
// Example:
//
//	var res proposalPayload
//	// All of these inputs parse:
//	UnmarshalFlexible(`{"entities": []}`, &res)            // standard JSON
//	UnmarshalFlexible(`"{\"entities\": []}"`, &res)        // double-encoded
//	UnmarshalFlexible(`{"entities": [{"label": "Acme"`, &res) // truncated (repaired)
func UnmarshalFlexible(input string, out any) error {
	input = strings.TrimSpace(input)

	if err := json.Unmarshal([]byte(input), out); err == nil {
		return nil
	}

	var asString string
	if err := json.Unmarshal([]byte(input), &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if err := json.Unmarshal([]byte(asString), out); err == nil {
			return nil
		}
		input = asString
	}

	input = stripDuplicateLeadingBrace(input)
	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return fmt.Errorf("could not repair model answer: %w (input: %s)", err, input)
	}

	if err := json.Unmarshal([]byte(repaired), out); err == nil {
		return nil
	}

	return fmt.Errorf(
		"model answer unusable after repair: input=%s repaired=%s",
		input, repaired,
	)
}
