// Package schema wraps JSON Schema compilation and validation for the
// declarative pass of the structural validator. Schemas are authored in
// YAML, converted to canonical JSON, and compiled once per process.
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aerolex/termgate/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // dotted locator (e.g., "terms.2.sections")
	Message string `json:"message"`
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validator wraps a compiled schema for repeated validation.
type Validator struct {
	schema *gojsonschema.Schema
}

var (
	registry = make(map[string]*gojsonschema.Schema)
	regMu    sync.RWMutex
)

func compileSchemaBytes(schemaBytes []byte) (*gojsonschema.Schema, error) {
	// Schemas are authored in YAML; convert to canonical JSON for the loader.
	var tmp any
	if err := yaml.Unmarshal(schemaBytes, &tmp); err != nil {
		if err := json.Unmarshal(schemaBytes, &tmp); err != nil {
			return nil, fmt.Errorf("invalid schema format (must be valid YAML or JSON): %w", err)
		}
	}
	jb, err := json.Marshal(tmp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema to JSON: %w", err)
	}
	sch, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jb))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return sch, nil
}

// NewValidatorFromBytes compiles schema bytes (YAML or JSON) into a reusable validator.
func NewValidatorFromBytes(schemaBytes []byte) (*Validator, error) {
	sch, err := compileSchemaBytes(schemaBytes)
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sch}, nil
}

// GetEmbeddedValidator returns a validator for a named embedded schema
// (e.g., "term-batch-v1.0.0"), compiling and caching it on first use.
func GetEmbeddedValidator(schemaName string) (*Validator, error) {
	regMu.RLock()
	if sch, ok := registry[schemaName]; ok {
		regMu.RUnlock()
		return &Validator{schema: sch}, nil
	}
	regMu.RUnlock()

	data, ok := assets.GetSchema(schemaName)
	if !ok || len(data) == 0 {
		return nil, fmt.Errorf("schema %s not found", schemaName)
	}
	sch, err := compileSchemaBytes(data)
	if err != nil {
		return nil, err
	}

	regMu.Lock()
	registry[schemaName] = sch
	regMu.Unlock()

	return &Validator{schema: sch}, nil
}

// Validate applies the compiled schema to the provided data structure.
func (v *Validator) Validate(data interface{}) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode data to JSON: %w", err)
	}
	return v.validateLoader(gojsonschema.NewBytesLoader(dataJSON))
}

// ValidateBytes parses JSON bytes and validates them against the compiled schema.
func (v *Validator) ValidateBytes(dataBytes []byte) (*Result, error) {
	if v == nil || v.schema == nil {
		return nil, fmt.Errorf("validator not initialised")
	}
	var data interface{}
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("failed to parse data bytes: %w", err)
	}
	return v.validateLoader(gojsonschema.NewGoLoader(data))
}

func (v *Validator) validateLoader(loader gojsonschema.JSONLoader) (*Result, error) {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
	}
	return res, nil
}
