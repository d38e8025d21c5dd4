package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ClassificationRules mirrors the optional JSON rules file that overrides
// the classifier patterns and policy keywords from the environment.
type ClassificationRules struct {
	InvoiceRegex string   `json:"invoice_regex"`
	ReceiptRegex string   `json:"receipt_regex"`
	Keywords     []string `json:"keywords"`
}

// rulesSchema returns the JSON-Schema (draft 2020-12 subset) the rules file
// must satisfy.
func rulesSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"invoice_regex": map[string]any{"type": "string", "minLength": 1},
			"receipt_regex": map[string]any{"type": "string", "minLength": 1},
			"keywords": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"minItems": 1,
			},
		},
		"required": []string{"invoice_regex", "receipt_regex", "keywords"},
	}
}

// LoadRules reads a classification rules file and validates it against the
// schema before decoding.
func LoadRules(path string) (*ClassificationRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	if err := ValidateJSONAgainstSchema(rulesSchema(), data); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	var rules ClassificationRules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode rules file: %w", err)
	}
	return &rules, nil
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
