package esid

import (
	"errors"
	"fmt"
)

// Code identifies why a value was rejected.
type Code string

const (
	// CodeInvalid means the value does not have the shape of the identifier.
	CodeInvalid Code = "invalid"
	// CodeInvalidOnlyNIF is CodeInvalid when the caller restricted input to NIF/NIE.
	CodeInvalidOnlyNIF Code = "invalid_only_nif"
	CodeInvalidNIF     Code = "invalid_nif"
	CodeInvalidNIE     Code = "invalid_nie"
	CodeInvalidCIF     Code = "invalid_cif"
	// CodeChecksum means a well formed bank account has the wrong control digits.
	CodeChecksum Code = "checksum"
)

// Sentinels for errors.Is. They match any *Error with the same Code.
var (
	ErrInvalid        = &Error{Code: CodeInvalid}
	ErrInvalidOnlyNIF = &Error{Code: CodeInvalidOnlyNIF}
	ErrInvalidNIF     = &Error{Code: CodeInvalidNIF}
	ErrInvalidNIE     = &Error{Code: CodeInvalidNIE}
	ErrInvalidCIF     = &Error{Code: CodeInvalidCIF}
	ErrChecksum       = &Error{Code: CodeChecksum}
)

var messages = map[Kind]map[Code]string{
	KindPostalCode: {
		CodeInvalid: "Enter a valid postal code in the range and format 01XXX - 52XXX.",
	},
	KindPhoneNumber: {
		CodeInvalid: "Enter a valid phone number in one of the formats 6XXXXXXXX, 7XXXXXXXX, 8XXXXXXXX or 9XXXXXXXX.",
	},
	KindIdentityCard: {
		CodeInvalid:        "Please enter a valid NIF, NIE, or CIF.",
		CodeInvalidOnlyNIF: "Please enter a valid NIF or NIE.",
		CodeInvalidNIF:     "Invalid checksum for NIF.",
		CodeInvalidNIE:     "Invalid checksum for NIE.",
		CodeInvalidCIF:     "Invalid checksum for CIF.",
	},
	KindBankAccount: {
		CodeInvalid:  "Please enter a valid bank account number in format XXXX-XXXX-XX-XXXXXXXXXX.",
		CodeChecksum: "Invalid checksum for bank account number.",
	},
}

// Error is returned by every validator in this package.
type Error struct {
	Kind  Kind
	Code  Code
	Value string
}

func newError(kind Kind, code Code, value string) *Error {
	return &Error{Kind: kind, Code: code, Value: value}
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("esid: %s", e.Code)
	}
	return fmt.Sprintf("esid: %s: %s", e.Kind, e.Code)
}

// Is matches on Code; a target without Kind matches any kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Kind == "" || t.Kind == e.Kind)
}

// Message returns the default English message for the error.
func (e *Error) Message() string {
	if m, ok := messages[e.Kind][e.Code]; ok {
		return m
	}
	return "Enter a valid value."
}

// TranslationKey returns the key a presentation layer can localize.
func (e *Error) TranslationKey() string {
	if e.Kind == "" {
		return "validation.es." + string(e.Code)
	}
	return "validation.es." + string(e.Kind) + "." + string(e.Code)
}

// CodeOf extracts the Code of an *Error anywhere in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// IsChecksumError reports whether err is a well-formed value with a bad control character.
func IsChecksumError(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return false
	}
	switch code {
	case CodeInvalidNIF, CodeInvalidNIE, CodeInvalidCIF, CodeChecksum:
		return true
	}
	return false
}
