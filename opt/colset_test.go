// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColSet(t *testing.T) {
	s := MakeColSet(3, 1, 7)
	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains(1))
	require.False(t, s.Contains(2))
	require.Equal(t, []int{1, 3, 7}, s.Ordinals())
	require.Equal(t, "(1,3,7)", s.String())

	s.Remove(3)
	require.Equal(t, []int{1, 7}, s.Ordinals())

	require.True(t, MakeColSet().Empty())
	require.True(t, MakeColSet(1).SubsetOf(MakeColSet(1, 2)))
	require.False(t, MakeColSet(1, 3).SubsetOf(MakeColSet(1, 2)))
	require.True(t, MakeColSet().SubsetOf(MakeColSet()))

	require.True(t, MakeColSet(1, 2).Equals(MakeColSet(2, 1)))
	require.Equal(t, MakeColSet(1, 2, 3), MakeColSet(1).Union(MakeColSet(2, 3)))
	require.Equal(t, MakeColSet(2), MakeColSet(1, 2).Intersection(MakeColSet(2, 3)))

	require.Panics(t, func() {
		var bad ColSet
		bad.Add(64)
	})
}
