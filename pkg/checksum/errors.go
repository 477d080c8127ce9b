package checksum

import "errors"

var (
	// ErrNotNumeric is returned when the input contains anything other than ASCII digits.
	ErrNotNumeric = errors.New("checksum: input must contain only digits")

	// ErrEmptyInput is returned when the input has no digits at all.
	ErrEmptyInput = errors.New("checksum: input is empty")

	// ErrInvalidLength is returned when a fixed-width algorithm receives the wrong number of digits.
	ErrInvalidLength = errors.New("checksum: invalid input length")
)
