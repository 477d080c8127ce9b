package validator

import (
	"errors"

	"github.com/dmitrymomot/esflavor/pkg/esid"
)

// identifierRule validates eagerly so the reported error can carry the
// specific code (invalid_nif, checksum, ...) rather than a fixed one.
func identifierRule(field, value string, kind esid.Kind, opts ...esid.IdentityOption) Rule {
	_, err := esid.Validate(kind, value, opts...)

	rule := Rule{Check: func() bool { return err == nil }}
	if err == nil {
		return rule
	}

	e := &esid.Error{Kind: kind, Code: esid.CodeInvalid}
	errors.As(err, &e)

	rule.Error = ValidationError{
		Field:          field,
		Code:           string(e.Code),
		Message:        e.Message(),
		TranslationKey: e.TranslationKey(),
		TranslationValues: map[string]any{
			"field": field,
			"kind":  string(kind),
		},
	}
	return rule
}

// ValidSpanishPostalCode validates a five digit postal code with a province prefix 01-52.
func ValidSpanishPostalCode(field, value string) Rule {
	return identifierRule(field, value, esid.KindPostalCode)
}

// ValidSpanishPhone validates a nine digit phone number starting with 6-9.
func ValidSpanishPhone(field, value string) Rule {
	return identifierRule(field, value, esid.KindPhoneNumber)
}

// ValidSpanishIDCard validates a NIF, NIE or CIF. With onlyNIFNIE company
// codes are rejected. Empty values pass.
func ValidSpanishIDCard(field, value string, onlyNIFNIE bool) Rule {
	return identifierRule(field, value, esid.KindIdentityCard, esid.WithOnlyNIFNIE(onlyNIFNIE))
}

// ValidSpanishCCC validates a bank account code (CCC). Empty values pass.
func ValidSpanishCCC(field, value string) Rule {
	return identifierRule(field, value, esid.KindBankAccount)
}
