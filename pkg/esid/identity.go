package esid

import (
	"github.com/dmitrymomot/esflavor/pkg/checksum"
)

// Class is the structural family of an identity number.
type Class string

const (
	ClassNIF Class = "NIF"
	ClassNIE Class = "NIE"
	ClassCIF Class = "CIF"
)

func (c Class) String() string {
	return string(c)
}

// ParsedIdentifier holds the fields of a normalized identity number.
// A zero Prefix or Suffix means the letter is absent. Digits keeps leading zeros.
type ParsedIdentifier struct {
	Prefix byte
	Digits string
	Suffix byte
}

func (p ParsedIdentifier) String() string {
	s := p.Digits
	if p.Prefix != 0 {
		s = string(p.Prefix) + s
	}
	if p.Suffix != 0 {
		s += string(p.Suffix)
	}
	return s
}

// IdentityOption configures ValidateIdentityCard.
type IdentityOption func(*identityConfig)

type identityConfig struct {
	onlyNIFNIE bool
}

// OnlyNIFNIE restricts acceptance to personal numbers (NIF and NIE).
func OnlyNIFNIE() IdentityOption {
	return func(c *identityConfig) { c.onlyNIFNIE = true }
}

// WithOnlyNIFNIE is OnlyNIFNIE driven by a flag.
func WithOnlyNIFNIE(only bool) IdentityOption {
	return func(c *identityConfig) { c.onlyNIFNIE = only }
}

func (c identityConfig) invalidCode() Code {
	if c.onlyNIFNIE {
		return CodeInvalidOnlyNIF
	}
	return CodeInvalid
}

// ParseIdentityCard normalizes raw and splits it into prefix letter, digit run
// and suffix letter. It checks shape only; control characters are not verified.
func ParseIdentityCard(raw string) (ParsedIdentifier, error) {
	p, ok := parseIdentity(normalizeIdentity(raw))
	if !ok {
		return ParsedIdentifier{}, newError(KindIdentityCard, CodeInvalid, raw)
	}
	return p, nil
}

// parseIdentity matches [prefix]? digit+ [suffix]? on a normalized value.
func parseIdentity(s string) (ParsedIdentifier, bool) {
	var p ParsedIdentifier
	start, end := 0, len(s)

	if start < end && inSet(prefixLetters, s[start]) {
		p.Prefix = s[start]
		start++
	}
	if end > start && inSet(suffixLetters, s[end-1]) {
		p.Suffix = s[end-1]
		end--
	}

	digits := s[start:end]
	if digits == "" || !isDigits(digits) {
		return ParsedIdentifier{}, false
	}
	p.Digits = digits
	return p, true
}

// ValidateIdentityCard validates a NIF, NIE or CIF and returns it uppercased
// with spaces and hyphens removed. Empty input is accepted as is.
func ValidateIdentityCard(raw string, opts ...IdentityOption) (string, error) {
	value, _, err := validateIdentity(raw, opts)
	return value, err
}

// ClassifyIdentityCard validates raw and reports which family it belongs to.
// Empty input yields an empty Class and no error.
func ClassifyIdentityCard(raw string, opts ...IdentityOption) (Class, error) {
	_, class, err := validateIdentity(raw, opts)
	return class, err
}

func validateIdentity(raw string, opts []IdentityOption) (string, Class, error) {
	var cfg identityConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if raw == "" {
		return "", "", nil
	}

	value := normalizeIdentity(raw)
	p, ok := parseIdentity(value)
	if !ok {
		return "", "", newError(KindIdentityCard, cfg.invalidCode(), raw)
	}

	class, code := classify(p, cfg)
	if code != "" {
		return "", class, newError(KindIdentityCard, code, raw)
	}
	return value, class, nil
}

// classify applies the class rules in priority order. The order matters:
// CIF and NIE prefix letters overlap with valid suffix positions.
func classify(p ParsedIdentifier, cfg identityConfig) (Class, Code) {
	switch {
	case p.Prefix == 0 && p.Suffix != 0:
		if !nifLetterMatches(p.Digits, p.Suffix) {
			return ClassNIF, CodeInvalidNIF
		}
		return ClassNIF, ""

	case inSet(checksum.NIETypes, p.Prefix) && p.Suffix != 0:
		if !nifLetterMatches(p.Digits, p.Suffix) {
			return ClassNIE, CodeInvalidNIE
		}
		return ClassNIE, ""

	case !cfg.onlyNIFNIE && inSet(checksum.CIFTypes, p.Prefix) && (len(p.Digits) == 7 || len(p.Digits) == 8):
		if !cifControlMatches(p) {
			return ClassCIF, CodeInvalidCIF
		}
		return ClassCIF, ""

	default:
		return "", cfg.invalidCode()
	}
}

func nifLetterMatches(digits string, letter byte) bool {
	want, err := checksum.NIFLetter(digits)
	return err == nil && want == letter
}

// cifControlMatches accepts the control in digit form or in letter form. Which
// one applies per organisation type is not published, so both are valid.
func cifControlMatches(p ParsedIdentifier) bool {
	body, control := p.Digits, p.Suffix
	if control == 0 {
		body, control = body[:len(body)-1], body[len(body)-1]
	}

	d, err := checksum.CIFDigit(body)
	if err != nil {
		return false
	}
	return control == byte('0'+d) || control == checksum.CIFControl[d]
}
