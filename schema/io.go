package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a views file.
type document struct {
	Views []View `yaml:"views"`
}

// LoadViews decodes and validates a YAML views document.
// Unknown keys are rejected so typos surface immediately.
func LoadViews(r io.Reader) ([]View, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: views document is empty", ErrInvalidView)
		}
		return nil, fmt.Errorf("decode views: %w", err)
	}
	if len(doc.Views) == 0 {
		return nil, fmt.Errorf("%w: no views defined", ErrInvalidView)
	}

	seen := make(map[string]bool, len(doc.Views))
	for _, v := range doc.Views {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if seen[v.Name] {
			return nil, invalid(v.Name, "defined twice")
		}
		seen[v.Name] = true
	}
	return doc.Views, nil
}

// LoadViewsFile reads views from a YAML file.
func LoadViewsFile(path string) ([]View, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open views file: %w", err)
	}
	defer f.Close()
	return LoadViews(f)
}

// WriteViews encodes views as a YAML document LoadViews accepts.
func WriteViews(w io.Writer, views []View) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Views: views}); err != nil {
		return fmt.Errorf("encode views: %w", err)
	}
	return enc.Close()
}
