// Package normalization maps loosely written config strings onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Normalizer provides type-safe string-to-enum normalization.
type Normalizer[T comparable] struct {
	values       map[string]T
	defaultValue T
	keys         []string // sorted, for messages
}

// New creates a normalizer. Keys are case-folded and trimmed; several keys
// may map to the same value (aliases). Only canonical spellings, i.e. keys
// equal to the string form of their value, are listed by Keys.
func New[T ~string](values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{values: make(map[string]T, len(values)), defaultValue: defaultValue}
	for k, v := range values {
		key := clean(k)
		n.values[key] = v
		if key == string(v) {
			n.keys = append(n.keys, key)
		}
	}
	sort.Strings(n.keys)
	return n
}

// Lookup returns the enum for raw. Empty input yields the default.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	key := clean(raw)
	if key == "" {
		return n.defaultValue, true
	}
	v, ok := n.values[key]
	return v, ok
}

// Normalize returns the enum for raw, or the default when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.Lookup(raw); ok {
		return v
	}
	return n.defaultValue
}

// Parse is Lookup with a descriptive error for unknown input.
func (n *Normalizer[T]) Parse(field, raw string) (T, error) {
	if v, ok := n.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", field, raw, strings.Join(n.keys, ", "))
}

// Keys returns the canonical spellings.
func (n *Normalizer[T]) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Default returns the fallback value.
func (n *Normalizer[T]) Default() T { return n.defaultValue }

func clean(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
