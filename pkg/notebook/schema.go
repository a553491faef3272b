package notebook

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the minimal shape a notebook document must satisfy
// before execution is attempted. It intentionally covers only the fields
// this system reads; full nbformat validation is the authoring tool's job.
const documentSchema = `{
	"type": "object",
	"required": ["nbformat", "cells"],
	"properties": {
		"nbformat": {"type": "integer", "minimum": 1},
		"cells": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["cell_type", "source"],
				"properties": {
					"cell_type": {"type": "string", "enum": ["code", "markdown", "raw"]},
					"source": {
						"oneOf": [
							{"type": "string"},
							{"type": "array", "items": {"type": "string"}}
						]
					}
				}
			}
		}
	}
}`

// validateDocument checks a notebook document against the schema and
// reports every violation in a single error.
func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validating notebook document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid notebook document: %s", strings.Join(problems, "; "))
}
