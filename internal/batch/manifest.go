package batch

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/esflavor/pkg/sanitizer"
)

// CleanInput drops control characters (a stray \r from CRLF files, for one)
// and surrounding whitespace from values read off files or the command line.
var CleanInput = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim)

// Manifest is the document form of a batch.
type Manifest struct {
	Items []Item `yaml:"items" json:"items"`
}

// Decode reads a YAML or JSON manifest. The document is either a mapping
// with an items key or a bare list of items. Kinds and values are passed
// through CleanInput.
func Decode(r io.Reader) ([]Item, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, errors.Join(ErrInvalidManifest, err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}

	var items []Item
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&items); err != nil {
			return nil, errors.Join(ErrInvalidManifest, err)
		}
	case yaml.MappingNode:
		var m Manifest
		if err := doc.Decode(&m); err != nil {
			return nil, errors.Join(ErrInvalidManifest, err)
		}
		items = m.Items
	default:
		return nil, ErrInvalidManifest
	}

	if len(items) == 0 {
		return nil, ErrEmptyManifest
	}
	for i := range items {
		items[i].Kind = CleanInput(items[i].Kind)
		items[i].Value = CleanInput(items[i].Value)
	}
	return items, nil
}
