package checksum

// CIFDigit returns the control digit (0..9) of a CIF body.
//
// Digits at odd positions are summed as-is. Digits at even positions are
// doubled and the decimal digits of the product are summed (7 -> 14 -> 5).
// The result is (10 - total%10) % 10.
func CIFDigit(body string) (int, error) {
	if err := checkDigits(body); err != nil {
		return 0, err
	}

	var odd, even int
	for pos := 0; pos < len(body); pos++ {
		d := int(body[pos] - '0')
		if pos%2 == 1 {
			odd += d
			continue
		}
		doubled := d * 2
		even += doubled/10 + doubled%10
	}
	return (10 - (odd+even)%10) % 10, nil
}

// CIFLetter returns the letter form of the CIF control character.
func CIFLetter(body string) (byte, error) {
	d, err := CIFDigit(body)
	if err != nil {
		return 0, err
	}
	return CIFControl[d], nil
}
