package validator

import "errors"

// ErrValidationFailed is matched by every error returned from Apply.
var ErrValidationFailed = errors.New("validation failed")
