// SPDX-License-Identifier: MIT

package functionals

import (
	"fmt"

	"github.com/katalvlaran/lvparam/parameters"
)

// Projection returns one declared parameter, or a single element of it.
//
// Construction rules:
//   - The type is {param: shape}.
//   - If shape.Size() > 1, WithCoordinates is required with exactly one
//     index per axis, each in [0, extent).
//   - If shape.Size() <= 1, coordinates are ignored and not stored.
type Projection struct {
	name   string
	typ    parameters.Type
	param  string
	coords []int // nil ⇒ return the whole parameter
}

// NewProjection builds a Projection onto param.
// Errors: *ConstructionError wrapping parameters.ErrBadName / ErrBadShape
// or ErrCoordinates.
// Complexity: O(ndim).
func NewProjection(param string, shape parameters.Shape, opts ...Option) (*Projection, error) {
	const kind = "projection"
	o := gatherOptions(opts...)

	typ, err := parameters.NewTypeBuilder().Add(param, shape).Build()
	if err != nil {
		return nil, constructionErrorf(kind, err, "")
	}
	p := &Projection{name: o.name, typ: typ, param: param}
	if shape.Size() <= 1 {
		return p, nil
	}

	if !o.hasCoords {
		return nil, constructionErrorf(kind, ErrCoordinates, "parameter %q of shape %s needs coordinates", param, shape)
	}
	if len(o.coords) != shape.NDim() {
		return nil, constructionErrorf(kind, ErrCoordinates, "%d coordinates for shape %s", len(o.coords), shape)
	}
	for axis, c := range o.coords {
		if c < 0 || c >= shape[axis] {
			return nil, constructionErrorf(kind, ErrCoordinates, "coordinate %d on axis %d of shape %s", c, axis, shape)
		}
	}
	p.coords = append([]int(nil), o.coords...)

	return p, nil
}

// Name returns the label given by WithName.
func (p *Projection) Name() string { return p.name }

// ParameterType returns {param: shape}.
func (p *Projection) ParameterType() parameters.Type { return p.typ }

// ParameterName returns the projected parameter.
func (p *Projection) ParameterName() string { return p.param }

// Coordinates returns a copy of the selected index, or nil when the whole
// parameter is returned.
func (p *Projection) Coordinates() []int {
	if p.coords == nil {
		return nil
	}

	return append([]int(nil), p.coords...)
}

// Evaluate returns mu[param], or the scalar mu[param][coords...].
func (p *Projection) Evaluate(mu parameters.Parameter) (parameters.Array, error) {
	if p == nil || p.param == "" {
		return parameters.Array{}, ErrNotInitialized
	}
	parsed, err := p.typ.Parse(mu)
	if err != nil {
		return parameters.Array{}, err
	}
	v, ok := parsed.Get(p.param)
	if !ok {
		shape, _ := p.typ.Shape(p.param)
		return parameters.Array{}, &parameters.TypeMismatchError{Parameter: p.param, Expected: shape, Reason: "missing value"}
	}
	if p.coords == nil {
		return v, nil
	}
	x, err := v.At(p.coords...)
	if err != nil {
		return parameters.Array{}, err
	}

	return parameters.ScalarOf(x), nil
}

// String renders e.g. Projection(mu, (3,), [1]).
func (p *Projection) String() string {
	shape, _ := p.typ.Shape(p.param)
	if p.coords == nil {
		return fmt.Sprintf("Projection(%s, %s)", p.param, shape)
	}

	return fmt.Sprintf("Projection(%s, %s, %v)", p.param, shape, p.coords)
}
