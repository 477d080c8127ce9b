package esid

// ValidatePostalCode accepts five digits whose first two, the province code,
// are between 01 and 52. The value is returned unchanged.
func ValidatePostalCode(raw string) (string, error) {
	if len(raw) != 5 || !isDigits(raw) {
		return "", newError(KindPostalCode, CodeInvalid, raw)
	}
	province := int(raw[0]-'0')*10 + int(raw[1]-'0')
	if province < 1 || province > 52 {
		return "", newError(KindPostalCode, CodeInvalid, raw)
	}
	return raw, nil
}

// ValidatePhoneNumber accepts nine digits starting with 6, 7, 8 or 9.
// Information numbers are not covered. The value is returned unchanged.
func ValidatePhoneNumber(raw string) (string, error) {
	if len(raw) != 9 || !isDigits(raw) {
		return "", newError(KindPhoneNumber, CodeInvalid, raw)
	}
	if raw[0] < '6' {
		return "", newError(KindPhoneNumber, CodeInvalid, raw)
	}
	return raw, nil
}
