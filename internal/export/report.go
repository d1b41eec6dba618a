package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// reportSchema is the contract downstream consumers of the JSON report rely
// on; the report is validated against it before leaving the process.
var reportSchema = map[string]any{
	"type":     "object",
	"required": []any{"records", "validation"},
	"properties": map[string]any{
		"records": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "name", "earnings", "deductions", "gross", "totalDeductions", "netPay"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string"},
					"name": map[string]any{"type": "string"},
					"earnings": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "number"},
					},
					"deductions": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "number"},
					},
					"gross":           map[string]any{"type": "number"},
					"totalDeductions": map[string]any{"type": "number"},
					"netPay":          map[string]any{"type": "number"},
				},
			},
		},
		"validation": map[string]any{
			"type":     "object",
			"required": []any{"valid", "validRecords"},
		},
	},
}

// ReportJSON marshals the batch result and validates it against the report
// schema before it leaves the process.
func (s *Service) ReportJSON(res entity.BatchResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := validateReport(data); err != nil {
		s.logger.Warn("report schema validation failed", "error", err)
		return data, err
	}
	return data, nil
}

func validateReport(data []byte) error {
	b, err := json.Marshal(reportSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("report.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal report: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report does not match schema: %w", err)
	}
	return nil
}
