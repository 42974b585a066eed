// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package memo

import (
	"strings"
	"testing"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/scalar"
	"github.com/ldming/volcano/testutils/testcat"
	"github.com/stretchr/testify/require"
)

const physical opt.Convention = "PHYSICAL"

type testEnv struct {
	cluster *opt.Cluster
	memo    *Memo
	emp     *rel.Scan
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cluster := opt.NewCluster()
	require.NoError(t, cluster.AddTraitAxis(rel.CollationAxis))
	require.NoError(t, cluster.AddTraitAxis(opt.ConventionAxis))

	catalog := testcat.New()
	emp, ok := catalog.Table("EMP")
	require.True(t, ok)

	return &testEnv{
		cluster: cluster,
		memo:    New(cluster),
		emp:     rel.NewScan(cluster, cluster.EmptyTraitSet(), emp),
	}
}

func TestRegisterDeduplicates(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo

	sub := m.Register(env.emp, nil)
	require.NotNil(t, sub)
	require.Len(t, sub.SetOf().Members(), 1)

	// A structurally equal node lands in the same subset without a new
	// member.
	dup := rel.NewScan(env.cluster, env.cluster.EmptyTraitSet(), env.emp.Table())
	sub2 := m.Register(dup, nil)
	require.Equal(t, sub, sub2)
	require.Len(t, sub.SetOf().Members(), 1)
}

func TestRegisterIdempotentTimestamp(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo

	sub := m.Register(env.emp, nil)
	ts := m.Timestamp()

	require.Equal(t, sub, m.Register(env.emp, nil))
	require.Equal(t, ts, m.Timestamp(), "re-registration must not advance the timestamp")
}

func TestRegisterRehomesChildren(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo

	filter := rel.NewFilter(env.cluster, env.cluster.EmptyTraitSet(), env.emp,
		scalar.Eq(scalar.NewInputRef(7), scalar.NewLiteral(10)))
	sub := m.Register(filter, nil)

	scanSub := m.GetSubset(env.emp)
	require.NotNil(t, scanSub)
	require.NotEqual(t, sub.SetOf(), scanSub.SetOf())

	for _, member := range sub.SetOf().Members() {
		for _, in := range member.Inputs() {
			_, ok := in.(*Subset)
			require.True(t, ok, "registered children must be subsets")
		}
	}
	require.Equal(t, []opt.RelNode{sub.SetOf().Members()[0]}, scanSub.Parents())
	require.NoError(t, m.Check())
}

func TestEnsureRegisteredMergesSets(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo

	filter := rel.NewFilter(env.cluster, env.cluster.EmptyTraitSet(), env.emp,
		scalar.IsNotNull(scalar.NewInputRef(0)))
	filterSub := m.Register(filter, nil)
	scanSub := m.Register(env.emp, nil)
	require.NotEqual(t, filterSub.SetOf(), scanSub.SetOf())

	merged := m.EnsureRegistered(filter, env.emp)
	require.Equal(t, merged.SetOf(), m.GetSubset(env.emp).SetOf())
	require.Equal(t, m.GetSubset(filter).SetOf(), m.GetSubset(env.emp).SetOf())
	require.NoError(t, m.Check())
}

func TestMergeCascadesThroughParents(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo
	empty := env.cluster.EmptyTraitSet()

	// Two identical projections over two different children. Declaring the
	// children equivalent must collapse the projections too.
	filter := rel.NewFilter(env.cluster, empty, env.emp, scalar.IsNotNull(scalar.NewInputRef(0)))
	projOverScan := rel.NewProjectOrdinals(env.cluster, empty, env.emp, []int{1})
	projOverFilter := rel.NewProjectOrdinals(env.cluster, empty, filter, []int{1})

	subA := m.Register(projOverScan, nil)
	subB := m.Register(projOverFilter, nil)
	require.NotEqual(t, subA.SetOf(), subB.SetOf())

	m.EnsureRegistered(filter, env.emp)

	require.Equal(t, m.GetSubset(projOverScan).SetOf(), m.GetSubset(projOverFilter).SetOf(),
		"merging child sets must reveal the parent equality")
	require.NoError(t, m.Check())
}

func TestChangeTraitsCreatesConverter(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo
	empty := env.cluster.EmptyTraitSet()

	scanSub := m.Register(env.emp, nil)

	// A physical member with no collation.
	physScan := env.emp.Copy(empty.Replace(opt.ConventionAxis, physical), nil)
	m.EnsureRegistered(physScan, env.emp)

	// Requesting a sorted physical subset plants an abstract converter fed
	// from the unsorted physical subset.
	want := empty.
		Replace(opt.ConventionAxis, physical).
		Replace(rel.CollationAxis, opt.MakeCollation(opt.Asc(0)))
	sub := m.ChangeTraits(env.emp, want)
	require.True(t, sub.Traits().Equals(want))
	require.Equal(t, scanSub.SetOf(), sub.SetOf())

	var converters int
	for _, member := range sub.SetOf().Members() {
		if member.Op() == opt.AbstractConverterOp {
			converters++
			require.True(t, member.Traits().Equals(want))
			child := member.Inputs()[0].(*Subset)
			require.True(t, child.Traits().Equals(empty.Replace(opt.ConventionAxis, physical)))
		}
	}
	require.Equal(t, 1, converters,
		"exactly one converter: the logical subset is not convertible, the physical one is")
	require.NoError(t, m.Check())
}

func TestSubsetMembersBySatisfaction(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo
	empty := env.cluster.EmptyTraitSet()

	m.Register(env.emp, nil)
	sorted := empty.
		Replace(opt.ConventionAxis, physical).
		Replace(rel.CollationAxis, opt.MakeCollation(opt.Asc(0)))
	physScan := env.emp.Copy(sorted, nil)
	m.EnsureRegistered(physScan, env.emp)

	// The sorted member serves the unsorted physical subset, but not the
	// logical one.
	physSub := m.ChangeTraits(env.emp, empty.Replace(opt.ConventionAxis, physical))
	require.Contains(t, physSub.Members(), opt.RelNode(physScan))
	require.NotContains(t, physSub.Members(), opt.RelNode(env.emp))
	for _, member := range physSub.Members() {
		require.True(t, member.Traits().Satisfies(physSub.Traits()))
	}

	logicalSub := m.GetSubset(env.emp)
	require.Equal(t, []opt.RelNode{opt.RelNode(env.emp)}, logicalSub.Members())
}

func TestCheckDetectsCorruption(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo

	sub := m.Register(env.emp, nil)
	require.NoError(t, m.Check())

	// Smuggle in a member whose child is a raw node instead of a subset.
	bad := rel.NewFilter(env.cluster, env.cluster.EmptyTraitSet(), env.emp,
		scalar.IsNotNull(scalar.NewInputRef(0)))
	sub.SetOf().members = append(sub.SetOf().members, bad)

	err := m.Check()
	require.Error(t, err)
	require.Contains(t, err.Error(), "memo")
}

func TestMemoFormat(t *testing.T) {
	env := newTestEnv(t)
	m := env.memo
	require.True(t, m.IsEmpty())

	m.Register(env.emp, nil)
	require.False(t, m.IsEmpty())

	out := m.String()
	require.Contains(t, out, "set 0:")
	require.Contains(t, out, "scan EMP")

	diag := m.Diagnostic()
	require.Contains(t, diag, "scan EMP")
	require.True(t, strings.Contains(diag, "SET") || strings.Contains(diag, "set"))
}
