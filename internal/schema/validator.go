// Package schema validates brand metadata documents against the embedded
// JSON Schema before their overrides are applied.
package schema

import (
	"fmt"
	"sync"

	"github.com/brandkit/brandkit/internal/assets"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

var (
	compileOnce    sync.Once
	metadataSchema *gojsonschema.Schema
	compileErr     error
)

// ValidateMetadata validates a decoded metadata document against the
// embedded brand-metadata schema. The document is passed as plain Go data
// (map[string]interface{} etc.), which lets yaml, json, and toml inputs share
// one validation path.
func ValidateMetadata(doc interface{}) (*Result, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(assets.BrandMetadataSchema)
		metadataSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	if compileErr != nil {
		return nil, fmt.Errorf("compile metadata schema: %w", compileErr)
	}

	result, err := metadataSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate metadata: %w", err)
	}

	out := &Result{Valid: result.Valid()}
	for _, e := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Path:    e.Field(),
			Message: e.Description(),
		})
	}
	return out, nil
}
