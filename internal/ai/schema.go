package ai

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaOf reflects a JSON Schema for a tool's parameter struct. The
// struct's json and jsonschema tags drive the output.
func SchemaOf(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(v)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	// The $schema draft marker is noise in a tool listing.
	delete(out, "$schema")
	return out, nil
}

// MustSchemaOf is SchemaOf for schemas built from static struct types,
// where reflection cannot fail at runtime.
func MustSchemaOf(v any) map[string]any {
	schema, err := SchemaOf(v)
	if err != nil {
		panic(err)
	}
	return schema
}
