// SPDX-License-Identifier: MIT

package parameters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Type is the declared mapping from parameter name to Shape that a
// functional accepts.
//
// A Type is immutable: it is produced by TypeBuilder.Build (or NewType /
// TypeOf) and exposes no setters. Names iterate in lexicographic order, so
// two Types declaring the same entries are indistinguishable regardless of
// declaration order. The zero Type declares no parameters.
type Type struct {
	names  []string         // sorted, unique
	shapes map[string]Shape // owned copies
}

// TypeBuilder collects declarations before freezing them into a Type.
// A builder is single-use bookkeeping and is not safe for concurrent use;
// the first error sticks and is reported by Build.
type TypeBuilder struct {
	names  []string
	shapes map[string]Shape
	err    error
}

// NewTypeBuilder returns an empty builder.
func NewTypeBuilder() *TypeBuilder {
	return &TypeBuilder{shapes: make(map[string]Shape)}
}

// Add declares name with the given shape. The shape is copied.
func (b *TypeBuilder) Add(name string, shape Shape) *TypeBuilder {
	if b.err != nil {
		return b
	}
	if err := validateName(name); err != nil {
		b.err = err
		return b
	}
	if _, dup := b.shapes[name]; dup {
		b.err = fmt.Errorf("TypeBuilder.Add(%q): %w", name, ErrDuplicateName)
		return b
	}
	if err := shape.validate(); err != nil {
		b.err = fmt.Errorf("TypeBuilder.Add(%q): %w", name, err)
		return b
	}
	b.names = append(b.names, name)
	b.shapes[name] = shape.Clone()

	return b
}

// AddSize declares name with a bare-integer extent normalized by ShapeOf.
func (b *TypeBuilder) AddSize(name string, n int) *TypeBuilder {
	return b.Add(name, ShapeOf(n))
}

// Build freezes the declarations. The builder may be discarded afterwards;
// later Add calls do not affect the returned Type.
func (b *TypeBuilder) Build() (Type, error) {
	if b.err != nil {
		return Type{}, b.err
	}
	names := append([]string(nil), b.names...)
	sort.Strings(names)
	shapes := make(map[string]Shape, len(names))
	for _, n := range names {
		shapes[n] = b.shapes[n].Clone()
	}

	return Type{names: names, shapes: shapes}, nil
}

// NewType builds a Type from a name → shape map.
func NewType(decl map[string]Shape) (Type, error) {
	b := NewTypeBuilder()
	for _, name := range sortedKeys(decl) {
		b.Add(name, decl[name])
	}

	return b.Build()
}

// TypeOf builds a Type from bare-integer extents (0 ⇒ scalar, n ⇒ (n,)).
func TypeOf(decl map[string]int) (Type, error) {
	b := NewTypeBuilder()
	for _, name := range sortedKeys(decl) {
		b.AddSize(name, decl[name])
	}

	return b.Build()
}

// MustType is NewType that panics on error; meant for package-level fixtures.
func MustType(decl map[string]Shape) Type {
	t, err := NewType(decl)
	if err != nil {
		panic(err)
	}

	return t
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// validateName accepts identifiers: a letter or underscore followed by
// letters, digits or underscores. Expressions reference parameters by name,
// so anything else could never be bound.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrBadName)
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("name %q: %w", name, ErrBadName)
	}

	return nil
}

// Len returns the number of declared parameters.
func (t Type) Len() int { return len(t.names) }

// Names returns the declared names in lexicographic order.
func (t Type) Names() []string { return append([]string(nil), t.names...) }

// Shape returns the declared shape of name.
func (t Type) Shape(name string) (Shape, bool) {
	s, ok := t.shapes[name]
	if !ok {
		return nil, false
	}

	return s.Clone(), true
}

// Has reports whether name is declared.
func (t Type) Has(name string) bool {
	_, ok := t.shapes[name]
	return ok
}

// Map returns a fresh name → shape copy of the declaration.
func (t Type) Map() map[string]Shape {
	out := make(map[string]Shape, len(t.names))
	for _, n := range t.names {
		out[n] = t.shapes[n].Clone()
	}

	return out
}

// Equal reports whether both types declare the same names with equal shapes.
func (t Type) Equal(o Type) bool {
	if len(t.names) != len(o.names) {
		return false
	}
	for i, n := range t.names {
		if o.names[i] != n || !t.shapes[n].Equal(o.shapes[n]) {
			return false
		}
	}

	return true
}

// String renders the type as {a: (), b: (3,)}.
func (t Type) String() string {
	parts := make([]string, len(t.names))
	for i, n := range t.names {
		parts[i] = n + ": " + t.shapes[n].String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the type as an object of shapes (keys sorted).
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// UnmarshalJSON decodes an object whose values are shapes or bare integers,
// re-running full validation.
func (t *Type) UnmarshalJSON(b []byte) error {
	var decl map[string]Shape
	if err := json.Unmarshal(b, &decl); err != nil {
		return err
	}
	nt, err := NewType(decl)
	if err != nil {
		return err
	}
	*t = nt

	return nil
}

// MarshalYAML encodes the type as a mapping of shapes.
func (t Type) MarshalYAML() (any, error) {
	return t.Map(), nil
}

// UnmarshalYAML decodes a mapping whose values are shapes or bare integers.
func (t *Type) UnmarshalYAML(node *yaml.Node) error {
	var decl map[string]Shape
	if err := node.Decode(&decl); err != nil {
		return err
	}
	nt, err := NewType(decl)
	if err != nil {
		return err
	}
	*t = nt

	return nil
}
