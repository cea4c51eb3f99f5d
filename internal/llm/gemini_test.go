package llm

import (
	"testing"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 20,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt":        map[string]any{"type": "string"},
						"correct_index": map[string]any{"type": "integer"},
						"difficulty":    map[string]any{"type": "string", "enum": []any{"Beginner", "Advanced"}},
					},
					"required": []any{"prompt", "correct_index"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("Type = %s, want OBJECT", schema.Type)
	}
	qs := schema.Properties["questions"]
	if qs == nil || qs.Type != "ARRAY" {
		t.Fatalf("questions = %+v, want ARRAY", qs)
	}
	if qs.MinItems == nil || *qs.MinItems != 1 {
		t.Errorf("MinItems = %v, want 1", qs.MinItems)
	}
	if qs.MaxItems == nil || *qs.MaxItems != 20 {
		t.Errorf("MaxItems = %v, want 20", qs.MaxItems)
	}
	item := qs.Items
	if item.Properties["correct_index"].Type != "INTEGER" {
		t.Errorf("correct_index type = %s, want INTEGER", item.Properties["correct_index"].Type)
	}
	if len(item.Properties["difficulty"].Enum) != 2 {
		t.Errorf("difficulty enum = %v, want 2 values", item.Properties["difficulty"].Enum)
	}
	if len(item.Required) != 2 {
		t.Errorf("Required = %v, want 2 fields", item.Required)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error without API key")
	}
}
