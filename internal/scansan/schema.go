// internal/scansan/schema.go
package scansan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Payload schemas for the Scansan responses the pipeline depends on.
// Anything that fails validation is treated as a malformed payload, which
// counts as a fetch failure.

var searchResponseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"data"},
	"properties": map[string]interface{}{
		"search_query": map[string]interface{}{"type": "string"},
		"search_found": map[string]interface{}{"type": "string"},
		"data":         map[string]interface{}{"type": "array"},
	},
}

var valuationsResponseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"data"},
	"properties": map[string]interface{}{
		"data": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"property_address"},
				"properties": map[string]interface{}{
					"property_address": map[string]interface{}{"type": "string"},
					"last_sold_price":  map[string]interface{}{"type": []interface{}{"integer", "null"}},
					"last_sold_date":   map[string]interface{}{"type": []interface{}{"string", "null"}},
					"bounded_valuation": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
				},
			},
		},
	},
}

// validatePayload checks raw JSON against a schema before it is decoded
// into typed structs.
func validatePayload(body []byte, schema map[string]interface{}) error {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("payload failed schema validation: %s", strings.Join(msgs, "; "))
	}

	return nil
}
