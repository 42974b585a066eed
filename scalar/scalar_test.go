// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package scalar

import (
	"testing"

	"github.com/ldming/volcano/opt"
	"github.com/stretchr/testify/require"
)

func TestConjuncts(t *testing.T) {
	eq := Eq(NewInputRef(0), NewLiteral(10))
	lt := Lt(NewInputRef(1), NewLiteral(20))
	notNull := IsNotNull(NewInputRef(2))

	require.Nil(t, Conjuncts(nil))
	require.Equal(t, []Expr{eq}, Conjuncts(eq))
	require.Equal(t, []Expr{eq, lt, notNull}, Conjuncts(And(And(eq, lt), notNull)))

	// Disjunctions do not split.
	or := Or(eq, lt)
	require.Equal(t, []Expr{or}, Conjuncts(or))
}

func TestInputRefs(t *testing.T) {
	pred := And(Eq(NewInputRef(0), NewLiteral(1)), Lt(NewInputRef(5), NewInputRef(2)))
	require.Equal(t, opt.MakeColSet(0, 2, 5), InputRefs(pred))
	require.True(t, InputRefs(NewLiteral(1)).Empty())
}

func TestIdentityMap(t *testing.T) {
	projections := []Expr{
		NewInputRef(1),
		NewCall(PlusKind, NewInputRef(0), NewLiteral(1)),
		NewInputRef(0),
	}
	require.Equal(t, []int{1, -1, 0}, IdentityMap(projections))

	require.Equal(t, 2, RemapOrdinal([]int{1, -1, 0}, 0))
	require.Equal(t, 0, RemapOrdinal([]int{1, -1, 0}, 1))
	require.Equal(t, -1, RemapOrdinal([]int{1, -1, 0}, 5))
}

func TestShiftAndRemap(t *testing.T) {
	pred := Eq(NewInputRef(0), NewInputRef(3))

	shifted := Shift(pred, 8)
	require.Equal(t, opt.MakeColSet(8, 11), InputRefs(shifted))

	// Remap fails when a referenced ordinal has no image.
	_, ok := Remap(pred, func(ord int) (int, bool) {
		if ord == 0 {
			return 7, true
		}
		return 0, false
	})
	require.False(t, ok)

	// Untouched refs come back unchanged.
	same, ok := Remap(pred, func(ord int) (int, bool) { return ord, true })
	require.True(t, ok)
	require.Equal(t, pred, same)
}
