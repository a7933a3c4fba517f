// Package schemas validates quality reports, dashboards and keyword files against
// the JSON Schemas in the repository's schemas directory.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema files, relative to the repository root
const (
	QualityReportSchema = "schemas/quality_report.schema.json"
	DashboardSchema     = "schemas/dashboard.schema.json"
	KeywordsSchema      = "schemas/keywords.schema.json"
)

// ResolveSchemaPath finds a schema file relative to the working directory or up to
// two parent directories, so commands and tests run from a package directory still
// find the repository schemas. It returns "" when nothing matches.
func ResolveSchemaPath(relativePath string) string {
	dir := relativePath
	for range 3 {
		if abs, err := filepath.Abs(dir); err == nil {
			if info, err := os.Stat(abs); err == nil && !info.IsDir() {
				return abs
			}
		}
		dir = filepath.Join("..", dir)
	}
	return ""
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, fe := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

// Fields returns the offending field paths in order.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		fields[i] = fe.Field
	}
	return fields
}

// SchemaLoadError means the schema itself, or the document, could not be loaded.
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

// compiled holds schemas already parsed from disk, keyed by absolute path.
var compiled sync.Map

func schemaFromFile(schemaPath string) (*gojsonschema.Schema, string, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if cached, ok := compiled.Load(abs); ok {
		return cached.(*gojsonschema.Schema), abs, nil
	}
	if _, err := os.Stat(abs); errors.Is(err, os.ErrNotExist) {
		return nil, abs, fmt.Errorf("schema file not found: %s", abs)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs)))
	if err != nil {
		return nil, abs, &SchemaLoadError{Path: abs, Message: "invalid schema", Cause: err}
	}
	compiled.Store(abs, schema)
	return schema, abs, nil
}

// ValidateJSON validates a JSON file against a JSON Schema file.
func ValidateJSON(schemaPath, jsonPath string) error {
	schema, abs, err := schemaFromFile(schemaPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(jsonPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("JSON file not found: %s", jsonPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", jsonPath, err)
	}

	return validate(schema, abs, gojsonschema.NewBytesLoader(data))
}

// ValidateJSONString validates JSON content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaContent))
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "invalid schema", Cause: err}
	}
	return validate(schema, "(string schema)", gojsonschema.NewStringLoader(jsonContent))
}

// ValidateValue validates a Go value, as it marshals to JSON, against a schema file.
func ValidateValue(schemaPath string, value any) error {
	schema, abs, err := schemaFromFile(schemaPath)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return validate(schema, abs, gojsonschema.NewBytesLoader(data))
}

func validate(schema *gojsonschema.Schema, path string, document gojsonschema.JSONLoader) error {
	result, err := schema.Validate(document)
	if err != nil {
		return &SchemaLoadError{Path: path, Message: "document could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
