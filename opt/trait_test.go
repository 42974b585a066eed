// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const physical Convention = "PHYSICAL"

func testCluster(t *testing.T) *Cluster {
	t.Helper()
	c := NewCluster()
	require.NoError(t, c.AddTraitAxis(ConventionAxis))
	return c
}

func TestConventionSatisfies(t *testing.T) {
	require.True(t, ConventionAxis.Satisfies(ConventionNone, ConventionNone))
	require.True(t, ConventionAxis.Satisfies(physical, physical))
	require.False(t, ConventionAxis.Satisfies(ConventionNone, physical))
	require.False(t, ConventionAxis.Satisfies(physical, ConventionNone))
	require.False(t, ConventionAxis.CanConvert(ConventionNone, physical))
}

func TestCollationPrefixes(t *testing.T) {
	ab := MakeCollation(Asc(0), Asc(1))
	a := MakeCollation(Asc(0))
	b := MakeCollation(Asc(1))

	require.True(t, ab.HasPrefix(a))
	require.True(t, ab.HasPrefix(ab))
	require.True(t, ab.HasPrefix(EmptyCollation))
	require.False(t, a.HasPrefix(ab))
	require.False(t, ab.HasPrefix(b))
	require.True(t, EmptyCollation.HasPrefix(EmptyCollation))

	desc := MakeCollation(FieldCollation{Col: 0, Direction: Descending, Nulls: NullsLast})
	require.False(t, desc.HasPrefix(a))
	require.True(t, desc.Equal(desc))
	require.False(t, desc.Equal(a))
}

func TestTraitSetReplaceSatisfies(t *testing.T) {
	c := testCluster(t)

	empty := c.EmptyTraitSet()
	require.True(t, empty.IsDefault(ConventionAxis))
	require.Equal(t, "{NONE}", empty.String())

	phys := empty.Replace(ConventionAxis, physical)
	require.False(t, phys.IsDefault(ConventionAxis))
	require.True(t, empty.IsDefault(ConventionAxis), "Replace must not mutate the receiver")

	require.True(t, phys.Satisfies(phys))
	require.False(t, empty.Satisfies(phys))
	require.False(t, phys.Satisfies(empty))
	require.True(t, phys.Equals(phys))
	require.False(t, phys.Equals(empty))
}

func TestTraitSetUnregisteredAxis(t *testing.T) {
	c := NewCluster()
	require.NoError(t, c.AddTraitAxis(ConventionAxis))
	require.Error(t, c.AddTraitAxis(ConventionAxis))

	ts := c.EmptyTraitSet()
	require.Equal(t, 1, ts.Len())
	require.Panics(t, func() { ts.Trait(fakeAxis{}) })
}

type fakeAxis struct{}

func (fakeAxis) Name() string                               { return "fake" }
func (fakeAxis) Default() Trait                             { return ConventionNone }
func (fakeAxis) Satisfies(a, b Trait) bool                  { return a.Equal(b) }
func (fakeAxis) CanConvert(from, to Trait) bool             { return false }
func (fakeAxis) Convert(*Cluster, RelNode, Trait) RelNode   { return nil }
