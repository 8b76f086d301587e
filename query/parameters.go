/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"reflect"
	"strings"

	"github.com/suparena/widgetfilter/errors"
)

// Parameter is a named value bound to a ":name" placeholder.
type Parameter struct {
	Name  string
	Value any
}

// Parameters is an insertion-ordered set of named parameters. Names are unique.
type Parameters struct {
	items []Parameter
	index map[string]int
}

// NewParameters creates an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{index: make(map[string]int)}
}

// ParametersFrom builds a set from the given parameters, later names overwriting earlier ones.
func ParametersFrom(params ...Parameter) *Parameters {
	p := NewParameters()
	for _, param := range params {
		p.Set(param.Name, param.Value)
	}
	return p
}

func normalizeName(name string) string {
	return strings.TrimPrefix(name, ":")
}

// Set binds name to value. Rebinding a name keeps its original position.
func (p *Parameters) Set(name string, value any) {
	name = normalizeName(name)
	if i, ok := p.index[name]; ok {
		p.items[i].Value = value
		return
	}
	p.index[name] = len(p.items)
	p.items = append(p.items, Parameter{Name: name, Value: value})
}

// Get returns the value bound to name.
func (p *Parameters) Get(name string) (any, bool) {
	i, ok := p.index[normalizeName(name)]
	if !ok {
		return nil, false
	}
	return p.items[i].Value, true
}

// Has reports whether name is bound.
func (p *Parameters) Has(name string) bool {
	_, ok := p.index[normalizeName(name)]
	return ok
}

// Len returns the number of bound parameters.
func (p *Parameters) Len() int {
	return len(p.items)
}

// Names returns parameter names in insertion order.
func (p *Parameters) Names() []string {
	names := make([]string, len(p.items))
	for i, item := range p.items {
		names[i] = item.Name
	}
	return names
}

// All returns a copy of the parameters in insertion order.
func (p *Parameters) All() []Parameter {
	out := make([]Parameter, len(p.items))
	copy(out, p.items)
	return out
}

// Map returns the parameters as a name -> value map, the shape sqlx binds from.
func (p *Parameters) Map() map[string]any {
	m := make(map[string]any, len(p.items))
	for _, item := range p.items {
		m[item.Name] = item.Value
	}
	return m
}

// Clone returns an independent copy.
func (p *Parameters) Clone() *Parameters {
	return ParametersFrom(p.items...)
}

// Merge returns inner's parameters followed by outer's. A name bound in both
// sets must carry the same value, otherwise a ParameterConflictError is returned.
// Neither input is modified.
func Merge(inner, outer *Parameters) (*Parameters, error) {
	merged := NewParameters()
	if inner != nil {
		for _, item := range inner.items {
			merged.Set(item.Name, item.Value)
		}
	}
	if outer == nil {
		return merged, nil
	}
	for _, item := range outer.items {
		if existing, ok := merged.Get(item.Name); ok {
			if !reflect.DeepEqual(existing, item.Value) {
				return nil, errors.NewParameterConflictError(item.Name, existing, item.Value)
			}
			continue
		}
		merged.Set(item.Name, item.Value)
	}
	return merged, nil
}
