package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func fieldError(field, code, message string, values map[string]any) ValidationError {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field
	return ValidationError{
		Field:             field,
		Code:              code,
		Message:           message,
		TranslationKey:    "validation." + code,
		TranslationValues: values,
	}
}

// Required fails for empty or whitespace-only values. Identifier rules accept
// empty input, so pair them with Required when the field is mandatory.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: fieldError(field, "required", "field is required", nil),
	}
}

// MaxLen limits value to max characters, counted in runes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: fieldError(field, "max_length",
			fmt.Sprintf("must be at most %d characters long", max),
			map[string]any{"max": max}),
	}
}
