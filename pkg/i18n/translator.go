package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Translator resolves keys against per-language catalogs. It is read-only
// after construction and safe for concurrent use.
type Translator struct {
	catalogs    map[string]map[string]string
	defaultLang string
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when a key is missing in the
// requested one. Defaults to DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) { t.defaultLang = strings.ToLower(lang) }
}

// NewTranslator parses each YAML document in docs and merges them.
func NewTranslator(docs [][]byte, opts ...Option) (*Translator, error) {
	t := &Translator{
		catalogs:    make(map[string]map[string]string),
		defaultLang: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, doc := range docs {
		if err := t.merge(doc); err != nil {
			return nil, err
		}
	}
	if len(t.catalogs) == 0 {
		return nil, ErrNoTranslations
	}
	return t, nil
}

// NewTranslatorFS loads every file matching pattern in fsys.
func NewTranslatorFS(fsys fs.FS, pattern string, opts ...Option) (*Translator, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(names))
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		docs = append(docs, b)
	}
	return NewTranslator(docs, opts...)
}

func (t *Translator) merge(doc []byte) error {
	var root map[string]any
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return errors.Join(ErrFailedToParseYAML, err)
	}

	for lang, tree := range root {
		nested, ok := tree.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: language %q must map to keys, got %T", ErrInvalidCatalog, lang, tree)
		}
		lang = strings.ToLower(lang)
		catalog := t.catalogs[lang]
		if catalog == nil {
			catalog = make(map[string]string)
			t.catalogs[lang] = catalog
		}
		if err := flatten(catalog, "", nested); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrInvalidCatalog, lang, err)
		}
	}
	return nil
}

func flatten(out map[string]string, prefix string, tree map[string]any) error {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(out, key, val); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: unsupported value %T", key, v)
		}
	}
	return nil
}

// T returns the message for key in lang, then in the default language.
// It returns "" when neither catalog has the key.
func (t *Translator) T(lang, key string) string {
	if msg, ok := t.Lookup(lang, key); ok {
		return msg
	}
	msg, _ := t.Lookup(t.defaultLang, key)
	return msg
}

// Lookup returns the message for key in lang only.
func (t *Translator) Lookup(lang, key string) (string, bool) {
	msg, ok := t.catalogs[strings.ToLower(lang)][key]
	return msg, ok
}

// Languages returns the loaded language codes in sorted order.
func (t *Translator) Languages() []string {
	return slices.Sorted(maps.Keys(t.catalogs))
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}
