package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is a single field failure with translation metadata.
// Code mirrors the identifier error code when the failure came from one.
type ValidationError struct {
	Field             string
	Code              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is a collection of field failures in rule order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, err := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", err.Field, err.Message)
	}
	return b.String()
}

// Unwrap lets callers match any aggregate with errors.Is(err, ErrValidationFailed).
func (ve ValidationErrors) Unwrap() error { return ErrValidationFailed }

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	return ve.pluck(field, func(e ValidationError) string { return e.Message })
}

// Codes returns the error codes recorded for field.
func (ve ValidationErrors) Codes(field string) []string {
	return ve.pluck(field, func(e ValidationError) string { return e.Code })
}

// Fields lists failing fields once each, in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]struct{}, len(ve))
	for _, err := range ve {
		if _, ok := seen[err.Field]; ok {
			continue
		}
		seen[err.Field] = struct{}{}
		fields = append(fields, err.Field)
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// pluck collects non-empty values of fn for failures on field.
func (ve ValidationErrors) pluck(field string, fn func(ValidationError) string) []string {
	var out []string
	for _, err := range ve {
		if err.Field != field {
			continue
		}
		if v := fn(err); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Rule is a single deferred check and the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and aggregates the failures into ValidationErrors.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if rule.Check == nil || rule.Check() {
			continue
		}
		errs.Add(rule.Error)
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
