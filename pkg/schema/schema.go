// Package schema defines and validates the input of every mutating
// operation.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/charmbracelet/punch/pkg/worktime"
	"github.com/go-playground/validator/v10"
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails validation.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

// Error implements error.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Invalid returns a validation error for a single field.
func Invalid(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

// normalizer is implemented by schemas that clean up their input before
// validation.
type normalizer interface {
	Normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("date", func(fl validator.FieldLevel) bool { // nolint: errcheck
		_, ok := worktime.NormalizeDate(fl.Field().String())
		return ok
	})
	v.RegisterValidation("clock", func(fl validator.FieldLevel) bool { // nolint: errcheck
		_, ok := worktime.ParseClock(fl.Field().String())
		return ok
	})
	v.RegisterStructValidation(createAdjustmentLevel, CreateAdjustment{})
	v.RegisterStructValidation(amendAdjustmentLevel, AmendAdjustment{})
	v.RegisterStructValidation(reviewAdjustmentLevel, ReviewAdjustment{})
	v.RegisterStructValidation(addMemberLevel, AddMember{})
	return v
}

// Validate normalizes and validates v.
func Validate(v any) error {
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fieldPath(fe),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return ve
}

// Decode reads a JSON object from r into v and validates it.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	return Validate(v)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Invalid(field, "type", fmt.Sprintf("%s must be of type %s", field, typeErr.Type))
	case errors.Is(err, io.EOF):
		return Invalid("body", "required", "request body is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return Invalid(name, "unknown", fmt.Sprintf("unknown field %q", name))
	default:
		return Invalid("body", "json", "request body must be a valid JSON object")
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, map[string]string{"gt": "greater than", "gte": "at least"}[fe.Tag()], fe.Param())
	case "date":
		return field + " must be a YYYY-MM-DD date"
	case "clock":
		return field + " must be an HH:MM time"
	case "hexcolor":
		return field + " must be a hex color"
	case "email":
		return field + " must be an email address"
	case "override_gte":
		return field + " must not be negative for OVERRIDE adjustments"
	case "min_fields":
		return "at least one field must be provided"
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}
