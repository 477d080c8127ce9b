package i18n

import "errors"

var (
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML catalog")
	ErrInvalidCatalog    = errors.New("i18n: invalid catalog")
	ErrNoTranslations    = errors.New("i18n: no translations loaded")
)
