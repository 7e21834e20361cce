package ai_test

import (
	"context"
	"testing"

	"odoo-agent/internal/ai"
)

type demoParams struct {
	CustomerName string `json:"customer_name" jsonschema_description:"Name of the customer."`
	Limit        int    `json:"limit,omitempty"`
}

func TestSchemaOf_ReflectsStructTags(t *testing.T) {
	schema, err := ai.SchemaOf(demoParams{})
	if err != nil {
		t.Fatalf("SchemaOf: %v", err)
	}

	if schema["type"] != "object" {
		t.Errorf("type = %v", schema["type"])
	}
	props := schema["properties"].(map[string]any)
	if _, ok := props["customer_name"]; !ok {
		t.Errorf("properties = %v", props)
	}
	name := props["customer_name"].(map[string]any)
	if name["description"] != "Name of the customer." {
		t.Errorf("description = %v", name["description"])
	}

	required, _ := schema["required"].([]any)
	for _, field := range required {
		if field == "limit" {
			t.Error("omitempty field marked required")
		}
	}
	if _, ok := schema["$schema"]; ok {
		t.Error("$schema marker should be stripped")
	}
}

func TestToolRegistry_GetAndOrder(t *testing.T) {
	registry := ai.NewToolRegistry()
	registry.Register(ai.ToolDefinition{Name: "alpha"})
	registry.Register(ai.ToolDefinition{Name: "beta"})

	if _, ok := registry.Get("alpha"); !ok {
		t.Error("alpha not found")
	}
	if _, ok := registry.Get("gamma"); ok {
		t.Error("gamma should not be found")
	}

	all := registry.All()
	if len(all) != 2 || all[0].Name != "alpha" || all[1].Name != "beta" {
		t.Errorf("All() = %v", all)
	}
}

func TestToOpenAITools(t *testing.T) {
	registry := ai.NewToolRegistry()
	registry.Register(ai.ToolDefinition{
		Name:        "create_order",
		Description: "Create an order.",
		InputSchema: map[string]any{"type": "object"},
		Handler: func(context.Context, map[string]any) (string, error) {
			return "", nil
		},
	})

	tools := registry.ToOpenAITools()
	if len(tools) != 1 {
		t.Fatalf("len = %d", len(tools))
	}
	fn := tools[0].OfFunction
	if fn == nil || fn.Name != "create_order" {
		t.Errorf("tool = %+v", tools[0])
	}
}
