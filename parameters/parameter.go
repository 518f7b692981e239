// SPDX-License-Identifier: MIT

package parameters

import (
	"encoding/json"
	"strings"
)

// Parameter is a concrete value: a mapping from name to Array.
// It is immutable; the zero Parameter holds no entries.
type Parameter struct {
	values map[string]Array
}

// NewParameter copies values into a Parameter. Names are not validated here;
// Type.Parse is the validation gate.
func NewParameter(values map[string]Array) Parameter {
	cp := make(map[string]Array, len(values))
	for k, v := range values {
		cp[k] = v // Arrays are immutable; sharing them is safe
	}

	return Parameter{values: cp}
}

// Get returns the value bound to name.
func (p Parameter) Get(name string) (Array, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Lookup is Get under the name the expression evaluator expects.
func (p Parameter) Lookup(name string) (Array, bool) { return p.Get(name) }

// Len returns the number of bound names.
func (p Parameter) Len() int { return len(p.values) }

// Names returns the bound names in lexicographic order.
func (p Parameter) Names() []string { return sortedKeys(p.values) }

// Equal reports whether both parameters bind the same names to
// bit-identical arrays.
func (p Parameter) Equal(o Parameter) bool {
	if len(p.values) != len(o.values) {
		return false
	}
	for k, v := range p.values {
		w, ok := o.values[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}

	return true
}

// String renders the parameter as {a: 1, b: [1 2]}.
func (p Parameter) String() string {
	names := p.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + ": " + p.values[n].String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON encodes the parameter as an object of nested lists.
func (p Parameter) MarshalJSON() ([]byte, error) {
	if p.values == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(p.values)
}

// UnmarshalJSON decodes an object of numbers / nested lists. Shapes are
// inferred from the data; validation against a Type happens in Parse.
func (p *Parameter) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	values := make(map[string]Array, len(raw))
	for k, msg := range raw {
		var a Array
		if err := json.Unmarshal(msg, &a); err != nil {
			return &TypeMismatchError{Parameter: k, Reason: "unreadable value", Err: err}
		}
		values[k] = a
	}
	p.values = values

	return nil
}
