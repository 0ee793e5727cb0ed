// Package schemas validates analysis output against the bundled JSON Schemas.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names accepted by ValidateDocument.
const (
	KindRecord = "record"
	KindBatch  = "batch"
)

//go:embed json/*.schema.json
var schemaFiles embed.FS

var schemaPaths = map[string]string{
	KindRecord: "json/analysis_record.schema.json",
	KindBatch:  "json/batch_result.schema.json",
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func compile() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema, len(schemaPaths))
		for kind, path := range schemaPaths {
			raw, err := schemaFiles.ReadFile(path)
			if err != nil {
				compileErr = &SchemaLoadError{Path: path, Message: "schema not bundled", Cause: err}
				return
			}
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				compileErr = &SchemaLoadError{Path: path, Message: "invalid schema", Cause: err}
				return
			}
			compiled[kind] = schema
		}
	})
	return compiled, compileErr
}

// ValidateRecord checks an analysis record, or anything that marshals like one.
func ValidateRecord(v any) error {
	return validateValue(KindRecord, v)
}

// ValidateBatch checks a batch result.
func ValidateBatch(v any) error {
	return validateValue(KindBatch, v)
}

func validateValue(kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return ValidateDocument(kind, data)
}

// ValidateDocument validates raw JSON against the named schema.
func ValidateDocument(kind string, data []byte) error {
	schemas, err := compile()
	if err != nil {
		return err
	}
	schema, ok := schemas[kind]
	if !ok {
		return fmt.Errorf("unknown schema %q (want %s or %s)", kind, KindRecord, KindBatch)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
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
