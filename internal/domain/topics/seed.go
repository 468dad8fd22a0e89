package topics

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedDocument struct {
	Entries []Entry `validate:"required,min=1,dive"`
}

// ParseSeed decodes a YAML sequence of {name, description} mappings, keeping
// document order, and builds a Directory from it.
func ParseSeed(data []byte) (*Directory, error) {
	var entries []Entry
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode topic seed: %w", err)
	}

	if err := validator.New().Struct(seedDocument{Entries: entries}); err != nil {
		if len(entries) == 0 {
			return nil, ErrEmptySeed
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyTopic, err)
	}

	return NewDirectory(entries)
}

// Default returns the directory built from the embedded seed list.
func Default() (*Directory, error) {
	return ParseSeed(seedYAML)
}
