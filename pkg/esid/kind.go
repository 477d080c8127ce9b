package esid

import (
	"errors"
	"strings"
)

// Kind names an identifier family.
type Kind string

const (
	KindPostalCode   Kind = "postal_code"
	KindPhoneNumber  Kind = "phone_number"
	KindIdentityCard Kind = "identity_card"
	KindBankAccount  Kind = "bank_account"
)

// ErrUnknownKind is returned by ParseKind and Validate for unsupported kinds.
var ErrUnknownKind = errors.New("esid: unknown identifier kind")

var kindAliases = map[string]Kind{
	"postal_code":   KindPostalCode,
	"postal":        KindPostalCode,
	"zip":           KindPostalCode,
	"phone_number":  KindPhoneNumber,
	"phone":         KindPhoneNumber,
	"identity_card": KindIdentityCard,
	"nif":           KindIdentityCard,
	"nie":           KindIdentityCard,
	"cif":           KindIdentityCard,
	"bank_account":  KindBankAccount,
	"ccc":           KindBankAccount,
}

// Kinds returns all supported kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindPostalCode, KindPhoneNumber, KindIdentityCard, KindBankAccount}
}

// ParseKind resolves a kind name or one of its short aliases (nif, ccc, zip, ...).
func ParseKind(s string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	return "", errors.Join(ErrUnknownKind, errors.New(s))
}

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPostalCode, KindPhoneNumber, KindIdentityCard, KindBankAccount:
		return true
	}
	return false
}

// Validate dispatches raw to the validator for kind. Identity options are
// ignored for other kinds.
func Validate(kind Kind, raw string, opts ...IdentityOption) (string, error) {
	switch kind {
	case KindPostalCode:
		return ValidatePostalCode(raw)
	case KindPhoneNumber:
		return ValidatePhoneNumber(raw)
	case KindIdentityCard:
		return ValidateIdentityCard(raw, opts...)
	case KindBankAccount:
		return ValidateBankAccount(raw)
	default:
		return "", errors.Join(ErrUnknownKind, errors.New(string(kind)))
	}
}
