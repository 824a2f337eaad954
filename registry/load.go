package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTable []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry (schema.org, hCard, hCalendar).
// The returned registry is shared; callers that need to extend it should
// build a new one and Merge the default into it.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Load(bytes.NewReader(defaultTable))
		if err != nil {
			panic(fmt.Sprintf("registry: embedded default table: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

type fileVocabulary struct {
	MultipleValues string                  `yaml:"multipleValues"`
	Properties     map[string]fileProperty `yaml:"properties"`
}

type fileProperty struct {
	SubPropertyOf      iriList `yaml:"subPropertyOf"`
	EquivalentProperty iriList `yaml:"equivalentProperty"`
	MultipleValues     string  `yaml:"multipleValues"`
}

// iriList accepts either a single scalar IRI or a sequence of IRIs.
type iriList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *iriList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			*l = nil
			return nil
		}
		*l = iriList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected IRI or list of IRIs", value.Line)
	}
}

// Load parses a YAML registry table.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var table map[string]fileVocabulary
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}

	reg := New()
	for vocab, fv := range table {
		if vocab == "" {
			return nil, fmt.Errorf("registry: empty vocabulary key")
		}
		reg.AddVocabulary(vocab, fv.MultipleValues)
		for name, fp := range fv.Properties {
			reg.Register(vocab, name,
				WithSubPropertyOf(fp.SubPropertyOf...),
				WithEquivalentProperty(fp.EquivalentProperty...),
				WithMultipleValues(fp.MultipleValues))
		}
	}
	return reg, nil
}

// LoadFile parses the YAML registry table at path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
