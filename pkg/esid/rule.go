package esid

import (
	"errors"

	"github.com/jellydator/validation"
)

// Rule adapts a validator to the validation.Rule interface. Empty and nil
// values pass; combine with validation.Required when the field is mandatory.
type Rule struct {
	kind    Kind
	opts    []IdentityOption
	message string
}

var (
	PostalCodeRule   = Rule{kind: KindPostalCode}
	PhoneNumberRule  = Rule{kind: KindPhoneNumber}
	IdentityCardRule = Rule{kind: KindIdentityCard}
	NIFNIERule       = Rule{kind: KindIdentityCard, opts: []IdentityOption{OnlyNIFNIE()}}
	BankAccountRule  = Rule{kind: KindBankAccount}
)

// NewRule builds a rule for kind.
func NewRule(kind Kind, opts ...IdentityOption) Rule {
	return Rule{kind: kind, opts: opts}
}

// Error returns a copy of the rule that reports message instead of the default one.
func (r Rule) Error(message string) Rule {
	r.message = message
	return r
}

// Validate implements validation.Rule.
func (r Rule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}

	s, err := validation.EnsureString(value)
	if err != nil {
		return err
	}

	if _, err := Validate(r.kind, s, r.opts...); err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return err
		}
		msg := e.Message()
		if r.message != "" {
			msg = r.message
		}
		return validation.NewError(e.TranslationKey(), msg)
	}
	return nil
}
