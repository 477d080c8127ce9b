package esid

import (
	"github.com/dmitrymomot/esflavor/pkg/checksum"
)

// CCCFields are the four blocks of a Spanish bank account code.
type CCCFields struct {
	Entity   string // 4 digits
	Office   string // 4 digits
	Checksum string // 2 digits
	Account  string // 10 digits
}

func (f CCCFields) String() string {
	return f.Entity + f.Office + f.Checksum + f.Account
}

// ExpectedChecksum computes the two control digits for the entity, office
// and account blocks.
func (f CCCFields) ExpectedChecksum() (string, error) {
	first, err := checksum.CCCDigit("00" + f.Entity + f.Office)
	if err != nil {
		return "", err
	}
	second, err := checksum.CCCDigit(f.Account)
	if err != nil {
		return "", err
	}
	return string([]byte{first, second}), nil
}

var cccWidths = [4]int{4, 4, 2, 10}

// ParseBankAccount splits raw into its CCC blocks. Blocks may be separated by
// a single space or hyphen, independently at each boundary.
func ParseBankAccount(raw string) (CCCFields, error) {
	var parts [4]string
	pos := 0
	for i, w := range cccWidths {
		if i > 0 && pos < len(raw) && isSeparator(raw[pos]) {
			pos++
		}
		if pos+w > len(raw) || !isDigits(raw[pos:pos+w]) {
			return CCCFields{}, newError(KindBankAccount, CodeInvalid, raw)
		}
		parts[i] = raw[pos : pos+w]
		pos += w
	}
	if pos != len(raw) {
		return CCCFields{}, newError(KindBankAccount, CodeInvalid, raw)
	}

	return CCCFields{
		Entity:   parts[0],
		Office:   parts[1],
		Checksum: parts[2],
		Account:  parts[3],
	}, nil
}

// ValidateBankAccount validates a CCC and returns its 20 digits without
// separators. Empty input is accepted as is.
func ValidateBankAccount(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	fields, err := ParseBankAccount(raw)
	if err != nil {
		return "", err
	}

	want, err := fields.ExpectedChecksum()
	if err != nil || want != fields.Checksum {
		return "", newError(KindBankAccount, CodeChecksum, raw)
	}
	return fields.String(), nil
}
