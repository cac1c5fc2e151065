package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// Limits follow the column sizes of the schema
var (
	NameMaxLength  = 255
	ColorMaxLength = 64
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Letter *regexp.Regexp
}{
	Letter: regexp.MustCompile(`^\p{L}$`),
}

// StringValidation checks a single string field. Lengths count runes.
type StringValidation struct {
	Field    string
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new required string validation
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate returns an error wrapping apperrors.ErrValidationFailed on the first failed rule.
func (v *StringValidation) Validate() error {
	if v.Value == "" {
		if v.Required {
			return fmt.Errorf("%w: %s cannot be empty", apperrors.ErrValidationFailed, v.Field)
		}
		return nil
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return fmt.Errorf("%w: %s must be at least %d characters", apperrors.ErrValidationFailed, v.Field, v.MinLen)
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return fmt.Errorf("%w: %s must be at most %d characters", apperrors.ErrValidationFailed, v.Field, v.MaxLen)
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return fmt.Errorf("%w: %s has an invalid format", apperrors.ErrValidationFailed, v.Field)
	}
	return nil
}

// NumericValidation checks an integer field against inclusive bounds. A zero bound is unset.
type NumericValidation struct {
	Field string
	Value int
	Min   int
	Max   int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(field string, value int) *NumericValidation {
	return &NumericValidation{
		Field: field,
		Value: value,
	}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	return v
}

// Validate returns an error wrapping apperrors.ErrValidationFailed when the value is out of bounds.
func (v *NumericValidation) Validate() error {
	if v.Min != 0 && v.Value < v.Min {
		return fmt.Errorf("%w: %s must be at least %d", apperrors.ErrValidationFailed, v.Field, v.Min)
	}
	if v.Max != 0 && v.Value > v.Max {
		return fmt.Errorf("%w: %s must be at most %d", apperrors.ErrValidationFailed, v.Field, v.Max)
	}
	return nil
}
