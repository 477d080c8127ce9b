// Package locales embeds the translated validation messages.
package locales

import (
	"embed"

	"github.com/dmitrymomot/esflavor/pkg/i18n"
)

//go:embed *.yaml
var catalogs embed.FS

// New loads the embedded catalogs with English as the fallback language.
func New() (*i18n.Translator, error) {
	return i18n.NewTranslatorFS(catalogs, "*.yaml")
}

// MustNew is New for process start-up; the catalogs are compiled in.
func MustNew() *i18n.Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}
