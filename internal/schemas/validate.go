// Package schemas validates exported and imported profile documents against
// an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kalambet/humanmode/internal/profile"
)

//go:embed profile.schema.json
var profileSchema string

// ProfileSchema returns the raw profile document schema.
func ProfileSchema() string { return profileSchema }

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

var (
	compileOnce sync.Once
	compiled    *gojsonschema.Schema
	compileErr  error
)

func profileValidator() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled, compileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(profileSchema))
		if compileErr != nil {
			compileErr = &SchemaLoadError{
				Path:    "profile.schema.json",
				Message: "compiling embedded schema",
				Cause:   compileErr,
			}
		}
	})
	return compiled, compileErr
}

// ValidateProfileDocument checks doc against the profile schema. It returns
// a *ValidationError listing every violation, a *SchemaLoadError if the
// embedded schema is broken, or a plain error if doc is not JSON.
func ValidateProfileDocument(doc []byte) error {
	schema, err := profileValidator()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("reading profile document: %w", err)
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

// DecodeProfileDocument validates doc and decodes it into a UserProfile.
func DecodeProfileDocument(doc []byte) (profile.UserProfile, error) {
	if err := ValidateProfileDocument(doc); err != nil {
		return profile.UserProfile{}, err
	}
	var p profile.UserProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return profile.UserProfile{}, fmt.Errorf("decoding profile document: %w", err)
	}
	return p, nil
}
