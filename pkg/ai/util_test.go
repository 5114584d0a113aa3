package ai

import (
	"testing"
)

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  person
	}{
		{
			name:  "valid json object",
			input: `{"name":"John"}`,
			want:  person{Name: "John"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{name: 'John'}`,
			want:  person{Name: "John"},
		},
		{
			name:  "trailing comma",
			input: `{"name":"John",}`,
			want:  person{Name: "John"},
		},
		{
			name:  "missing endbracket",
			input: `{"name":"John`,
			want:  person{Name: "John"},
		},
		{
			name:  "stringified invalid json object",
			input: `"{name: 'John'}"`,
			want:  person{Name: "John"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"name\": \"John\"\n}\n",
			want:  person{Name: "John"},
		},
		{
			name:  "duplicate leading brace no newlines",
			input: `{ { "name": "John" }`,
			want:  person{Name: "John"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got person
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("UnmarshalFlexible() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Proposals(t *testing.T) {
	type proposal struct {
		Entities []struct {
			WorkingID string `json:"working_id"`
			Label     string `json:"label"`
		} `json:"entities"`
	}

	// Truncated model output; the repair path has to recover it.
	input := `{"entities":[{"working_id":"e1","label":"Acme"}]`

	var got proposal
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got.Entities) != 1 || got.Entities[0].WorkingID != "e1" || got.Entities[0].Label != "Acme" {
		t.Errorf("UnmarshalFlexible() = %+v, want one entity e1/Acme", got)
	}
}

func TestGenerateSchema(t *testing.T) {
	type nested struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	type payload struct {
		Label      string   `json:"label"`
		Attributes []nested `json:"attributes"`
	}

	schema := GenerateSchema(&payload{})
	if schema == nil {
		t.Fatal("GenerateSchema() returned nil")
	}
}
