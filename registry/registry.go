// Package registry holds the Microdata vocabulary registry: a static table from
// vocabulary prefix IRI to per-property metadata.
//
// The extractor consults it twice: to pick the vocabulary for an item type
// (the registry key that prefixes the type) and to find the super-properties
// and equivalent properties declared for a property name, which are asserted
// alongside the property itself.
//
// Tables are usually loaded from YAML:
//
//	http://schema.org/:
//	  multipleValues: unordered
//	  properties:
//	    additionalType:
//	      subPropertyOf: http://www.w3.org/1999/02/22-rdf-syntax-ns#type
//
// subPropertyOf and equivalentProperty accept a single IRI or a list.
package registry

import (
	"sort"
	"strings"
	"sync"
)

// Multiple-value conventions declared by a vocabulary.
const (
	MultipleValuesUnordered = "unordered"
	MultipleValuesList      = "list"
)

// Property describes one property of a vocabulary.
type Property struct {
	SubPropertyOf      []string
	EquivalentProperty []string
	// MultipleValues is the effective convention: the property's own value,
	// else the vocabulary default.
	MultipleValues string
}

// Superproperties returns the super-property and equivalent-property IRIs
// in declaration order.
func (p Property) Superproperties() []string {
	if len(p.SubPropertyOf) == 0 && len(p.EquivalentProperty) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.SubPropertyOf)+len(p.EquivalentProperty))
	out = append(out, p.SubPropertyOf...)
	return append(out, p.EquivalentProperty...)
}

// Vocabulary is one registry entry.
type Vocabulary struct {
	MultipleValues string
	Properties     map[string]Property
}

// Registry maps vocabulary prefix IRIs to their metadata.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	vocabs map[string]Vocabulary
	// keys sorted longest first, so overlapping prefixes resolve to the most
	// specific vocabulary.
	keys []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{vocabs: make(map[string]Vocabulary)}
}

// Option configures a property registration.
type Option func(*Property)

// WithSubPropertyOf declares super-properties of the registered property.
func WithSubPropertyOf(iris ...string) Option {
	return func(p *Property) {
		p.SubPropertyOf = append(p.SubPropertyOf, iris...)
	}
}

// WithEquivalentProperty declares equivalent properties of the registered property.
func WithEquivalentProperty(iris ...string) Option {
	return func(p *Property) {
		p.EquivalentProperty = append(p.EquivalentProperty, iris...)
	}
}

// WithMultipleValues sets the property's multiple-value convention.
func WithMultipleValues(convention string) Option {
	return func(p *Property) {
		p.MultipleValues = convention
	}
}

// AddVocabulary registers a vocabulary, or updates its default multiple-value
// convention if it already exists.
func (r *Registry) AddVocabulary(vocab, multipleValues string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vocabs[vocab]
	if !ok {
		v.Properties = make(map[string]Property)
	}
	if multipleValues != "" {
		v.MultipleValues = multipleValues
	}
	r.vocabs[vocab] = v
	if !ok {
		r.reindex()
	}
}

// Register registers a property under vocab, creating the vocabulary when
// needed. An existing registration of the same property is overwritten.
func (r *Registry) Register(vocab, name string, opts ...Option) {
	prop := Property{}
	for _, opt := range opts {
		opt(&prop)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vocabs[vocab]
	if !ok {
		v.Properties = make(map[string]Property)
	}
	v.Properties[name] = prop
	r.vocabs[vocab] = v
	if !ok {
		r.reindex()
	}
}

// Lookup returns the metadata for name within vocab.
func (r *Registry) Lookup(vocab, name string) (Property, bool) {
	if r == nil {
		return Property{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.vocabs[vocab]
	if !ok {
		return Property{}, false
	}
	prop, ok := v.Properties[name]
	if !ok {
		return Property{}, false
	}
	if prop.MultipleValues == "" {
		prop.MultipleValues = v.MultipleValues
	}
	return prop, true
}

// MatchVocabulary returns the registered vocabulary that is a string prefix
// of itemType.
func (r *Registry) MatchVocabulary(itemType string) (string, bool) {
	if r == nil || itemType == "" {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.keys {
		if strings.HasPrefix(itemType, key) {
			return key, true
		}
	}
	return "", false
}

// Vocabularies lists the registered vocabulary IRIs, longest first.
func (r *Registry) Vocabularies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.keys...)
}

// Merge overlays other onto r. Properties in other replace same-named
// properties in r.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, ov := range other.vocabs {
		v, ok := r.vocabs[key]
		if !ok {
			v.Properties = make(map[string]Property, len(ov.Properties))
		}
		if ov.MultipleValues != "" {
			v.MultipleValues = ov.MultipleValues
		}
		for name, prop := range ov.Properties {
			v.Properties[name] = prop
		}
		r.vocabs[key] = v
	}
	r.reindex()
}

// reindex must be called with the write lock held.
func (r *Registry) reindex() {
	keys := make([]string, 0, len(r.vocabs))
	for key := range r.vocabs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	r.keys = keys
}
