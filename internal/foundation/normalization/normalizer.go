// Package normalization maps free-form configuration strings onto typed
// enumerations.
package normalization

import (
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string // Cached for error messages
}

// NewNormalizer creates a normalizer named name (used in errors) from a map
// of accepted spellings. Keys are compared case-insensitively after trimming.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))

	for k, v := range values {
		key := clean(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum, returning the default when raw is
// blank or unrecognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.defaultValue
}

// Lookup reports the enum for raw. A blank raw value yields the default.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, true
	}
	v, ok := n.validValues[key]
	return v, ok
}

// Validate returns a validation error naming the accepted values when raw
// is not recognized.
func (n *Normalizer[T]) Validate(raw string) error {
	if _, ok := n.Lookup(raw); ok {
		return nil
	}
	return ferrors.ValidationError("invalid "+n.name).
		WithContext("field", n.name).
		WithContext("value", raw).
		WithContext("valid", strings.Join(n.validKeys, ", ")).
		Build()
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	result := make([]string, len(n.validKeys))
	copy(result, n.validKeys)
	return result
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
