// Package checksum implements the control-character algorithms used by Spanish
// national identifiers.
//
// Three algorithms are provided:
//
//   - NIFLetter – the mod-23 control letter shared by NIF and NIE numbers.
//   - CIFDigit  – the Luhn-like control digit of company tax codes (CIF).
//   - CCCDigit  – the mod-11 weighted control digit of bank account codes (CCC).
//
// All lookup tables are package-level constants. Every function is pure and
// safe for concurrent use.
//
// # Usage
//
//	letter, err := checksum.NIFLetter("12345678") // 'Z'
//	digit, err := checksum.CIFDigit("5881850")    // 1
//	cd, err := checksum.CCCDigit("0021000418")     // '4'
//
// Inputs must consist of ASCII digits only; anything else yields ErrNotNumeric.
package checksum
