package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// profileSchema is the structural contract for the persisted profile
// document. Documents that fail it are treated as corrupt and
// discarded on load.
const profileSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["profileId", "createdAt", "lastSeenAt", "globalStats"],
	"properties": {
		"profileId": {"type": "string", "minLength": 1},
		"createdAt": {"type": "string"},
		"lastSeenAt": {"type": "string"},
		"globalStats": {
			"type": "object",
			"properties": {
				"sessions": {"type": "integer", "minimum": 0},
				"totalTimeSecs": {"type": "integer", "minimum": 0},
				"bestStreak": {"type": "integer", "minimum": 0},
				"questionsAnswered": {"type": "integer", "minimum": 0}
			}
		},
		"history": {
			"type": "array",
			"maxItems": 100,
			"items": {
				"type": "object",
				"required": ["id", "summary"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"summary": {"type": "object"},
					"details": {"type": "array"}
				}
			}
		},
		"performance": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"properties": {
						"correct": {"type": "integer", "minimum": 0},
						"incorrect": {"type": "integer", "minimum": 0},
						"skipped": {"type": "integer", "minimum": 0},
						"totalAttempts": {"type": "integer", "minimum": 0},
						"mastery": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			}
		},
		"reviewSchedule": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"additionalProperties": {"type": "string"}
			}
		}
	}
}`

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// validateProfileDoc checks a raw profile document against the schema.
func validateProfileDoc(raw []byte) error {
	compileSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(profileSchema), &def); err != nil {
			compileSchemaError = fmt.Errorf("parse profile schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://profile.json"
		if err := c.AddResource(url, def); err != nil {
			compileSchemaError = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileSchemaError = c.Compile(url)
	})
	if compileSchemaError != nil {
		return compileSchemaError
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
