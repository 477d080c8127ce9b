package checksum

const (
	// NIFControl maps a number mod 23 to its NIF/NIE control letter.
	NIFControl = "TRWAGMYFPDXBNJZSQVHLCKE"

	// CIFControl maps a CIF control digit to its letter form.
	CIFControl = "JABCDEFGHI"

	// CIFTypes lists the organisation-type letters a CIF may start with.
	CIFTypes = "ABCDEFGHKLMNPQS"

	// NIETypes lists the prefix letters of a foreigner identity number.
	NIETypes = "XT"

	// CCCLength is the width of each block fed to CCCDigit.
	CCCLength = 10
)

var cccWeights = [CCCLength]int{1, 2, 4, 8, 5, 10, 9, 7, 3, 6}

// CCCWeights returns a copy of the positional weights of the bank account checksum.
func CCCWeights() [CCCLength]int { return cccWeights }

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func checkDigits(s string) error {
	if s == "" {
		return ErrEmptyInput
	}
	if !isDigits(s) {
		return ErrNotNumeric
	}
	return nil
}
