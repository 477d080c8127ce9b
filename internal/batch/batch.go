// Package batch validates lists of identifiers concurrently.
package batch

import (
	"errors"

	"github.com/dmitrymomot/esflavor/pkg/esid"
	"github.com/dmitrymomot/esflavor/pkg/i18n"
)

var (
	ErrTooManyItems    = errors.New("batch: too many items")
	ErrInvalidManifest = errors.New("batch: invalid manifest")
	ErrEmptyManifest   = errors.New("batch: empty manifest")
)

// CodeUnknownKind is reported for items whose kind is not recognised.
const CodeUnknownKind = "unknown_kind"

// Item is one value to validate.
type Item struct {
	Kind       string `yaml:"kind" json:"kind"`
	Value      string `yaml:"value" json:"value"`
	OnlyNIFNIE bool   `yaml:"only_nif_nie,omitempty" json:"only_nif_nie,omitempty"`
}

// Result is the outcome for the item at Index.
type Result struct {
	Index   int    `json:"index"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Valid   bool   `json:"valid"`
	Class   string `json:"class,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	// TranslationKey is the i18n key for Message, e.g. validation.es.bank_account.checksum.
	TranslationKey string `json:"translation_key,omitempty"`
}

// Check validates a single item. Value holds the normalized form when the
// item is valid and the input as given otherwise.
func Check(index int, item Item) Result {
	res := Result{Index: index, Kind: item.Kind, Value: item.Value}

	kind, err := esid.ParseKind(item.Kind)
	if err != nil {
		res.Code = CodeUnknownKind
		res.Message = "Unsupported identifier kind."
		res.TranslationKey = "validation.es." + CodeUnknownKind
		return res
	}
	res.Kind = kind.String()

	opts := []esid.IdentityOption{esid.WithOnlyNIFNIE(item.OnlyNIFNIE)}
	value, err := esid.Validate(kind, item.Value, opts...)
	if kind == esid.KindIdentityCard {
		class, _ := esid.ClassifyIdentityCard(item.Value, opts...)
		res.Class = class.String()
	}
	if err != nil {
		var verr *esid.Error
		if errors.As(err, &verr) {
			res.Code = string(verr.Code)
			res.Message = verr.Message()
			res.TranslationKey = verr.TranslationKey()
		}
		return res
	}

	res.Valid = true
	res.Value = value
	return res
}

// Localize replaces failure messages with their translation in lang.
// Results without a translation keep their message.
func Localize(results []Result, tr *i18n.Translator, lang string) {
	if tr == nil {
		return
	}
	for i := range results {
		key := results[i].TranslationKey
		if key == "" {
			continue
		}
		if msg := tr.T(lang, key); msg != "" {
			results[i].Message = msg
		}
	}
}

// Invalid counts the results that did not pass.
func Invalid(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Valid {
			n++
		}
	}
	return n
}
