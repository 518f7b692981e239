// SPDX-License-Identifier: MIT

package parameters

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Shape lists the extents of an array; the empty Shape is a scalar.
// Shapes handed out by this package are always fresh copies, so callers may
// modify them without affecting any Type or Array.
type Shape []int

// Scalar returns the empty shape ().
func Scalar() Shape { return Shape{} }

// ShapeOf normalizes a bare integer extent: 0 ⇒ (), n ⇒ (n,).
// A negative n yields the invalid shape (n,), which NewShape and every
// constructor that validates shapes reject with ErrBadShape.
func ShapeOf(n int) Shape {
	if n == 0 {
		return Scalar()
	}

	return Shape{n}
}

// NewShape validates the extents and returns them as a Shape.
// Errors: ErrBadShape when any extent is negative or the element count
// overflows int.
func NewShape(extents ...int) (Shape, error) {
	s := append(Shape{}, extents...)
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("NewShape: %w", err)
	}

	return s, nil
}

// validate reports ErrBadShape for negative extents and for shapes whose
// element count does not fit in an int.
func (s Shape) validate() error {
	empty := false
	for i, e := range s {
		if e < 0 {
			return fmt.Errorf("shape %s: extent %d is negative: %w", s, i, ErrBadShape)
		}
		if e == 0 {
			empty = true
		}
	}
	if empty {
		return nil
	}
	n := 1
	for _, e := range s {
		if n > math.MaxInt/e {
			return fmt.Errorf("shape %s: element count overflows int: %w", s, ErrBadShape)
		}
		n *= e
	}

	return nil
}

// NDim returns the number of axes.
func (s Shape) NDim() int { return len(s) }

// Size returns the total element count (1 for a scalar).
func (s Shape) Size() int {
	n := 1
	for _, e := range s {
		n *= e
	}

	return n
}

// IsScalar reports whether s is the empty shape.
func (s Shape) IsScalar() bool { return len(s) == 0 }

// Equal reports whether both shapes have identical extents.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// Clone returns an independent, non-nil copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)

	return out
}

// String renders the shape as a tuple: (), (3,), (2, 3).
func (s Shape) String() string {
	switch len(s) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", s[0])
	}
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = fmt.Sprint(e)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalJSON encodes the shape as a list; the scalar shape is [] (never null).
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int(s.Clone()))
}

// UnmarshalJSON accepts either a list of extents or a bare integer, which is
// normalized with ShapeOf.
func (s *Shape) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*s = ShapeOf(n)
		return s.validate()
	}
	var ext []int
	if err := json.Unmarshal(b, &ext); err != nil {
		return fmt.Errorf("shape: want integer or list of integers: %w", ErrBadShape)
	}
	*s = Shape(ext).Clone()

	return s.validate()
}

// MarshalYAML encodes the shape as a sequence of extents.
func (s Shape) MarshalYAML() (any, error) {
	return []int(s.Clone()), nil
}

// UnmarshalYAML accepts a sequence of extents or a bare integer.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var n int
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("shape: line %d: %w", node.Line, ErrBadShape)
		}
		*s = ShapeOf(n)
		return s.validate()
	}
	var ext []int
	if err := node.Decode(&ext); err != nil {
		return fmt.Errorf("shape: line %d: %w", node.Line, ErrBadShape)
	}
	*s = Shape(ext).Clone()

	return s.validate()
}
