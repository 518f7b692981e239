// SPDX-License-Identifier: MIT

package functionals

import (
	"fmt"

	"github.com/katalvlaran/lvparam/parameters"
)

// Mapping is the computation wrapped by Generic. It receives a value already
// validated against the functional's type.
type Mapping func(mu parameters.Parameter) (parameters.Array, error)

// Generic wraps an arbitrary Mapping behind a declared parameter type.
type Generic struct {
	name    string
	typ     parameters.Type
	mapping Mapping
}

// NewGeneric builds a Generic functional.
// Errors: *ConstructionError wrapping ErrNilMapping or ErrCoordinates.
func NewGeneric(mapping Mapping, typ parameters.Type, opts ...Option) (*Generic, error) {
	const kind = "generic"
	o := gatherOptions(opts...)
	if err := o.rejectCoordinates(kind); err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, constructionErrorf(kind, ErrNilMapping, "")
	}

	return &Generic{name: o.name, typ: typ, mapping: mapping}, nil
}

// Name returns the label given by WithName.
func (g *Generic) Name() string { return g.name }

// ParameterType returns the declared type.
func (g *Generic) ParameterType() parameters.Type { return g.typ }

// Evaluate validates mu, then calls the mapping. A mapping error is returned
// as the very same error value.
func (g *Generic) Evaluate(mu parameters.Parameter) (parameters.Array, error) {
	if g == nil || g.mapping == nil {
		return parameters.Array{}, ErrNotInitialized
	}
	parsed, err := g.typ.Parse(mu)
	if err != nil {
		return parameters.Array{}, err
	}

	return g.mapping(parsed)
}

// String renders e.g. Generic({x: ()}).
func (g *Generic) String() string {
	return fmt.Sprintf("Generic(%s)", g.typ)
}
