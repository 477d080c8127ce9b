package checksum

// CCCDigit returns the control digit of a 10-digit bank account block.
//
// Each digit is multiplied by its positional weight, and the result is
// 11 - sum%11, with 10 mapped to 1 and 11 mapped to 0. Entity and office
// blocks are 8 digits wide and must be left-padded with "00" by the caller.
func CCCDigit(block string) (byte, error) {
	if err := checkDigits(block); err != nil {
		return 0, err
	}
	if len(block) != CCCLength {
		return 0, ErrInvalidLength
	}

	sum := 0
	for i := 0; i < CCCLength; i++ {
		sum += int(block[i]-'0') * cccWeights[i]
	}

	switch d := 11 - sum%11; d {
	case 10:
		return '1', nil
	case 11:
		return '0', nil
	default:
		return byte('0' + d), nil
	}
}
