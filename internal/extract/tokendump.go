package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// tokenDumpSchema constrains pre-extracted token dumps before they enter the
// pipeline: a malformed dump fails here with a schema error instead of
// surfacing as a confusing mid-parse failure.
var tokenDumpSchema = map[string]any{
	"type":     "object",
	"required": []any{"pages"},
	"properties": map[string]any{
		"pages": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"number", "tokens"},
				"properties": map[string]any{
					"number": map[string]any{"type": "integer", "minimum": 1},
					"tokens": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"text", "x", "y"},
							"properties": map[string]any{
								"text":  map[string]any{"type": "string"},
								"x":     map[string]any{"type": "number"},
								"y":     map[string]any{"type": "number"},
								"width": map[string]any{"type": "number"},
							},
						},
					},
				},
			},
		},
	},
}

type tokenDump struct {
	Pages []entity.Page `json:"pages"`
}

// LoadTokenDump reads a JSON token dump produced by an external extractor,
// validates it against the dump schema, and returns the document.
func LoadTokenDump(path string) (entity.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read token dump: %w", err)
	}
	if err := validateAgainstSchema(tokenDumpSchema, data); err != nil {
		return entity.Document{}, fmt.Errorf("token dump %s: %w", path, err)
	}
	var dump tokenDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return entity.Document{}, fmt.Errorf("decode token dump: %w", err)
	}
	return entity.Document{Path: path, Pages: dump.Pages}, nil
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
