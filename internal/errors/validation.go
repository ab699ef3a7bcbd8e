package errors

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ValidationBuilder collects per-field problems and turns them into a single
// error whose metadata lists every field.
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a problem with a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf is Field with a formatted message
func (vb *ValidationBuilder) Fieldf(field, format string, args ...interface{}) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// InvalidField records a field with a bad value
func (vb *ValidationBuilder) InvalidField(field, reason string) *ValidationBuilder {
	return vb.Fieldf(field, "is invalid: %s", reason)
}

// HasErrors reports whether any problem was recorded
func (vb *ValidationBuilder) HasErrors() bool {
	return len(vb.fields) > 0
}

// Build returns an InvalidArgument error, or nil when nothing was recorded
func (vb *ValidationBuilder) Build() error {
	return vb.BuildWithCode(CodeInvalidArgument)
}

// BuildWithCode is Build with a caller-chosen code. The catalog loader uses
// it to report InvalidConfiguration.
func (vb *ValidationBuilder) BuildWithCode(code Code) error {
	if !vb.HasErrors() {
		return nil
	}
	return New(code, vb.summary()).WithMeta(metaValidation, maps.Clone(vb.fields))
}

// summary lists fields alphabetically so messages are stable
func (vb *ValidationBuilder) summary() string {
	names := slices.Sorted(maps.Keys(vb.fields))
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + strings.Join(vb.fields[name], ", ")
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateRequired records field as missing when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange records field when value falls outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}
