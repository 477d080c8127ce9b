package clientip

import "errors"

var ErrInvalidTrustedProxy = errors.New("clientip: invalid trusted proxy")
