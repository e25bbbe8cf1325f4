// Package schemas validates section documents against the embedded JSON Schema.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-editor/internal/types"
)

//go:embed sections.schema.json
var sectionsSchema string

// SectionsSchemaName identifies the embedded sections schema in errors.
const SectionsSchemaName = "sections.schema.json"

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// SectionsDocument is the on-disk and over-the-wire shape of a section collection.
type SectionsDocument struct {
	Sections []types.Section `json:"sections"`
}

// ValidateJSONString validates JSON content against schema content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "invalid schema", Cause: err}
	}
	return validate(schema, jsonContent)
}

// ValidateSections validates a sections document against the embedded schema.
func ValidateSections(doc []byte) error {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(sectionsSchema))
	})
	if compileErr != nil {
		return &SchemaLoadError{Path: SectionsSchemaName, Message: "invalid schema", Cause: compileErr}
	}
	return validate(compiled, string(doc))
}

// DecodeSections validates doc and decodes its sections.
func DecodeSections(doc []byte) ([]types.Section, error) {
	if err := ValidateSections(doc); err != nil {
		return nil, err
	}

	var decoded SectionsDocument
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	if decoded.Sections == nil {
		decoded.Sections = []types.Section{}
	}
	return decoded.Sections, nil
}

func validate(schema *gojsonschema.Schema, jsonContent string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		// The document itself is not JSON
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
