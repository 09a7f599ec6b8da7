package loader

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// registrySchema is the JSON Schema every registry document must satisfy
// before it is decoded into a definition. Validating the document first
// keeps the decode path free of shape checks and gives file authors
// positioned errors instead of zero-value surprises.
const registrySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["decoratorName", "version"],
  "properties": {
    "decoratorName": { "type": "string", "minLength": 1 },
    "version": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "category": { "type": "string" },
    "meta": { "enum": ["chain", "override", "conditional", "priority"] },
    "parameters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "type": { "enum": ["string", "number", "boolean", "enum", "array"] },
          "description": { "type": "string" },
          "required": { "type": "boolean" },
          "default": {},
          "allowedValues": { "type": "array", "items": { "type": "string" } },
          "minimum": { "type": "number" },
          "maximum": { "type": "number" },
          "elementType": { "enum": ["string", "number", "boolean"] },
          "examples": { "type": "array", "items": { "type": "string" } }
        },
        "additionalProperties": false
      }
    },
    "transformationTemplate": {
      "type": "object",
      "required": ["instruction"],
      "properties": {
        "instruction": { "type": "string", "minLength": 1 },
        "placement": { "enum": ["prepend", "append", "replace"] },
        "compositionBehavior": { "enum": ["accumulate", "override"] },
        "parameterMapping": {
          "type": "object",
          "additionalProperties": {
            "type": "object",
            "properties": {
              "valueMap": {
                "type": "object",
                "additionalProperties": { "type": "string" }
              },
              "format": { "type": "string" }
            },
            "additionalProperties": false
          }
        }
      },
      "additionalProperties": false
    },
    "compatibility": {
      "type": "object",
      "properties": {
        "requires": { "type": "array", "items": { "type": "string" } },
        "conflicts": { "type": "array", "items": { "type": "string" } },
        "minStandardVersion": { "type": "string" },
        "maxStandardVersion": { "type": "string" }
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
)

// documentSchema returns the compiled registry document schema.
// Compilation happens once; the schema is embedded, so failure to compile
// is a programming error.
func documentSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("schema://registry.json", strings.NewReader(registrySchema)); err != nil {
			panic(err)
		}
		compiledSchema = compiler.MustCompile("schema://registry.json")
	})
	return compiledSchema
}
