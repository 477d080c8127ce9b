package checksum

// NIFLetter returns the control letter for a NIF or NIE number.
// The number may have any length; it is reduced mod 23 digit by digit, so
// leading zeros and values wider than 64 bits are handled.
func NIFLetter(digits string) (byte, error) {
	if err := checkDigits(digits); err != nil {
		return 0, err
	}

	rem := 0
	for i := 0; i < len(digits); i++ {
		rem = (rem*10 + int(digits[i]-'0')) % len(NIFControl)
	}
	return NIFControl[rem], nil
}
