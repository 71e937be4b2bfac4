// Package schemas provides JSON Schema validation for inbound prediction payloads.
package schemas

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/salary-predictor/internal/types"
)

//go:embed employee_record.schema.json
var employeeSchemaJSON []byte

// RootField is reported when a violation is not attributable to a single field.
const RootField = "(root)"

// fieldOrder is the order in which violations are reported.
var fieldOrder = []string{
	types.FieldAge,
	types.FieldJobTitle,
	types.FieldEducationLevel,
	types.FieldPerformanceScore,
	types.FieldWorkHoursPerWeek,
	types.FieldProjectsHandled,
	types.FieldOvertimeHours,
	types.FieldSickDays,
	types.FieldTeamSize,
	types.FieldPromotions,
}

// enumValues holds the closed enumerations used to build "must be one of" messages.
var enumValues = map[string][]string{
	types.FieldJobTitle:       types.JobTitles,
	types.FieldEducationLevel: types.EducationLevels,
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
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

// Summary returns all violations on a single line, e.g. "Age: Must be ...; Job_Title: must be one of ...".
func (ve *ValidationError) Summary() string {
	parts := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		parts = append(parts, err.Field+": "+err.Message)
	}
	return strings.Join(parts, "; ")
}

// Fields returns the names of the fields that failed validation.
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

var employeeSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(employeeSchemaJSON))
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    "employee_record.schema.json",
			Message: "embedded schema is invalid",
			Cause:   err,
		}
	}
	return schema, nil
})

// DecodeEmployee parses a raw JSON document and validates it with ValidateEmployee.
// Malformed JSON is reported as a ValidationError on the root.
func DecodeEmployee(data []byte) (*types.EmployeeRecord, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   RootField,
			Message: "invalid JSON: " + err.Error(),
		}}}
	}
	return ValidateEmployee(payload)
}

// ValidateEmployee validates an untyped payload (as produced by encoding/json) against
// the employee record schema and returns the typed record. Every violated constraint is
// reported, not just the first.
func ValidateEmployee(payload any) (*types.EmployeeRecord, error) {
	schema, err := employeeSchema()
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   RootField,
			Message: "unable to read payload: " + err.Error(),
		}}}
	}
	if !result.Valid() {
		return nil, fromResultErrors(result.Errors())
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, &ValidationError{Errors: []FieldError{{Field: RootField, Message: err.Error()}}}
	}
	var rec types.EmployeeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fromDecodeError(err)
	}

	if err := rec.Validate(); err != nil {
		return nil, fromValidatorError(err)
	}
	return &rec, nil
}

func fromResultErrors(results []gojsonschema.ResultError) *ValidationError {
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(results)),
	}

	for _, desc := range results {
		field := desc.Field()
		message := desc.Description()

		switch desc.Type() {
		case "required":
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
				message = prop + " is required"
			}
		case "enum":
			if allowed, ok := enumValues[field]; ok {
				message = oneOfMessage(allowed)
			}
		}
		if field == "" {
			field = RootField
		}

		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: message,
		})
	}

	sortErrors(validationErr.Errors)
	return validationErr
}

func fromDecodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{Errors: []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("Invalid type. Expected: %s, given: %s", typeErr.Type, typeErr.Value),
		}}}
	}
	return &ValidationError{Errors: []FieldError{{Field: RootField, Message: err.Error()}}}
}

func fromValidatorError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(fieldErrs)),
	}
	for _, fe := range fieldErrs {
		field := jsonName(fe.StructField())
		message := fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
		switch fe.Tag() {
		case "required":
			message = field + " is required"
		case "oneof":
			if allowed, ok := enumValues[field]; ok {
				message = oneOfMessage(allowed)
			}
		case "gte":
			message = "Must be greater than or equal to " + fe.Param()
		case "lte":
			message = "Must be less than or equal to " + fe.Param()
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: message})
	}

	sortErrors(validationErr.Errors)
	return validationErr
}

func oneOfMessage(allowed []string) string {
	return "must be one of: " + strings.Join(allowed, ", ")
}

// jsonName maps an EmployeeRecord struct field to its wire name.
func jsonName(structField string) string {
	f, ok := reflect.TypeOf(types.EmployeeRecord{}).FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}

// sortErrors orders violations by field declaration order; unknown fields go last.
func sortErrors(errs []FieldError) {
	rank := func(field string) int {
		if i := slices.Index(fieldOrder, field); i >= 0 {
			return i
		}
		return len(fieldOrder)
	}
	slices.SortStableFunc(errs, func(a, b FieldError) int {
		return rank(a.Field) - rank(b.Field)
	})
}
