/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"reflect"
	"testing"

	"github.com/suparena/widgetfilter/errors"
)

func TestParameters(t *testing.T) {
	t.Run("OrderAndOverwrite", func(t *testing.T) {
		p := NewParameters()
		p.Set("b", 1)
		p.Set(":a", 2)
		p.Set("b", 3)

		if got := p.Names(); !reflect.DeepEqual(got, []string{"b", "a"}) {
			t.Fatalf("Names() = %v", got)
		}
		if v, _ := p.Get("b"); v != 3 {
			t.Errorf("Expected b=3, got %v", v)
		}
		if !p.Has(":a") || p.Len() != 2 {
			t.Errorf("Unexpected set state: %v", p.Map())
		}
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		p := ParametersFrom(Parameter{Name: "x", Value: 1})
		c := p.Clone()
		c.Set("y", 2)
		if p.Has("y") {
			t.Error("Clone should not share state")
		}
	})
}

func TestMerge(t *testing.T) {
	inner := ParametersFrom(
		Parameter{Name: "minPrice", Value: 10},
		Parameter{Name: "category", Value: "lamps"},
	)
	outer := ParametersFrom(
		Parameter{Name: "locale", Value: "fr"},
	)

	t.Run("InnerThenOuter", func(t *testing.T) {
		merged, err := Merge(inner, outer)
		if err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if got := merged.Names(); !reflect.DeepEqual(got, []string{"minPrice", "category", "locale"}) {
			t.Fatalf("Names() = %v", got)
		}
		want := map[string]any{"minPrice": 10, "category": "lamps", "locale": "fr"}
		if !reflect.DeepEqual(merged.Map(), want) {
			t.Errorf("Map() = %v, want %v", merged.Map(), want)
		}
		if inner.Len() != 2 || outer.Len() != 1 {
			t.Error("Merge must not modify its inputs")
		}
	})

	t.Run("NilSets", func(t *testing.T) {
		merged, err := Merge(nil, nil)
		if err != nil || merged.Len() != 0 {
			t.Fatalf("Expected empty set, got %v, %v", merged, err)
		}
		merged, err = Merge(inner, nil)
		if err != nil || merged.Len() != 2 {
			t.Fatalf("Expected inner copy, got %v, %v", merged, err)
		}
	})

	t.Run("SameValueDeduplicated", func(t *testing.T) {
		dup := ParametersFrom(Parameter{Name: "category", Value: "lamps"})
		merged, err := Merge(inner, dup)
		if err != nil {
			t.Fatalf("Merge failed: %v", err)
		}
		if merged.Len() != 2 {
			t.Errorf("Expected 2 parameters, got %d", merged.Len())
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		clash := ParametersFrom(Parameter{Name: "category", Value: "desks"})
		_, err := Merge(inner, clash)
		if !errors.IsParameterConflict(err) {
			t.Fatalf("Expected parameter conflict, got %v", err)
		}
	})
}
