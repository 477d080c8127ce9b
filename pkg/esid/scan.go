package esid

import (
	"strings"

	"github.com/dmitrymomot/esflavor/pkg/checksum"
	"github.com/dmitrymomot/esflavor/pkg/sanitizer"
)

const (
	prefixLetters = checksum.CIFTypes + checksum.NIETypes
	suffixLetters = checksum.NIFControl + checksum.CIFControl
)

var normalizeIdentity = sanitizer.Compose(
	sanitizer.ToUpper,
	sanitizer.StripSeparators,
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isSeparator(c byte) bool {
	return strings.IndexByte(sanitizer.Separators, c) >= 0
}

func inSet(set string, c byte) bool {
	return c != 0 && strings.IndexByte(set, c) >= 0
}
