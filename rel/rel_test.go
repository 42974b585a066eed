// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"testing"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
	"github.com/ldming/volcano/testutils/testcat"
	"github.com/stretchr/testify/require"
)

func newTestCluster(t *testing.T) *opt.Cluster {
	t.Helper()
	c := opt.NewCluster()
	require.NoError(t, c.AddTraitAxis(CollationAxis))
	require.NoError(t, c.AddTraitAxis(opt.ConventionAxis))
	return c
}

func TestNodeBasics(t *testing.T) {
	c := newTestCluster(t)
	catalog := testcat.New()
	emp, ok := catalog.Table("EMP")
	require.True(t, ok)

	scan := NewScan(c, c.EmptyTraitSet(), emp)
	require.Equal(t, opt.ScanOp, scan.Op())
	require.Equal(t, "scan EMP", scan.Digest())
	require.Len(t, scan.RowType(), 8)
	require.Empty(t, scan.Inputs())
	require.Equal(t, opt.UnitCost, scan.SelfCost())

	filter := NewFilter(c, c.EmptyTraitSet(), scan, scalar.Eq(scalar.NewInputRef(7), scalar.NewLiteral(10)))
	require.Equal(t, scan.RowType(), filter.RowType())
	require.Equal(t, []opt.RelNode{scan}, filter.Inputs())
	require.Greater(t, filter.ID(), scan.ID())

	project := NewProjectOrdinals(c, c.EmptyTraitSet(), scan, []int{1, 0})
	require.Equal(t, opt.RowType{
		{Name: "ename", Kind: opt.StringType},
		{Name: "empno", Kind: opt.IntType},
	}, project.RowType())
	require.Equal(t, []int{1, 0}, project.IdentityMap())
}

func TestJoinRowTypes(t *testing.T) {
	c := newTestCluster(t)
	catalog := testcat.New()
	emp, _ := catalog.Table("EMP")
	dept, _ := catalog.Table("DEPT")

	empScan := NewScan(c, c.EmptyTraitSet(), emp)
	deptScan := NewScan(c, c.EmptyTraitSet(), dept)
	cond := scalar.Eq(scalar.NewInputRef(7), scalar.NewInputRef(8))

	inner := NewJoin(c, c.EmptyTraitSet(), InnerJoin, empScan, deptScan, cond)
	require.Len(t, inner.RowType(), 10)

	semi := NewJoin(c, c.EmptyTraitSet(), SemiJoin, empScan, deptScan, cond)
	require.Len(t, semi.RowType(), 8)
	require.False(t, SemiJoin.ProjectsRightColumns())
	require.True(t, LeftJoin.ProjectsRightColumns())
}

func TestAggregateRowType(t *testing.T) {
	c := newTestCluster(t)
	catalog := testcat.New()
	emp, _ := catalog.Table("EMP")
	scan := NewScan(c, c.EmptyTraitSet(), emp)

	agg := NewAggregate(c, c.EmptyTraitSet(), scan, opt.MakeColSet(7), []AggCall{
		{Func: CountFunc, Arg: 5, Name: "cnt"},
		{Func: MaxFunc, Arg: 5, Name: "maxsal"},
	})
	require.Equal(t, opt.RowType{
		{Name: "deptno", Kind: opt.IntType},
		{Name: "cnt", Kind: opt.BigIntType},
		{Name: "maxsal", Kind: opt.IntType},
	}, agg.RowType())
	require.Equal(t, opt.MakeColSet(7), agg.GroupKeys())
}

func TestCopyKeepsPayload(t *testing.T) {
	c := newTestCluster(t)
	catalog := testcat.New()
	emp, _ := catalog.Table("EMP")
	scan := NewScan(c, c.EmptyTraitSet(), emp)

	collation := opt.MakeCollation(opt.Asc(0))
	sort := NewSort(c, c.EmptyTraitSet().Replace(CollationAxis, collation), scan, collation, 5, 10)

	traits := sort.Traits().Replace(opt.ConventionAxis, opt.Convention("PHYSICAL"))
	cp := sort.Copy(traits, sort.Inputs()).(*Sort)
	require.Equal(t, sort.Collation(), cp.Collation())
	require.Equal(t, int64(5), cp.Offset())
	require.Equal(t, int64(10), cp.Fetch())
	require.Equal(t, sort.Digest(), cp.Digest())
	require.NotEqual(t, sort.ID(), cp.ID())
	require.True(t, cp.Traits().Equals(traits))
}

func TestCollationAxisConvert(t *testing.T) {
	c := newTestCluster(t)
	catalog := testcat.New()
	emp, _ := catalog.Table("EMP")
	scan := NewScan(c, c.EmptyTraitSet(), emp)

	collation := opt.MakeCollation(opt.Asc(2))
	enforcer := CollationAxis.Convert(c, scan, collation)
	require.NotNil(t, enforcer)
	require.Equal(t, opt.SortOp, enforcer.Op())
	require.True(t, enforcer.Traits().Equals(scan.Traits().Replace(CollationAxis, collation)))
	require.Equal(t, []opt.RelNode{opt.RelNode(scan)}, enforcer.Inputs())

	require.True(t, CollationAxis.CanConvert(opt.EmptyCollation, collation))
	require.True(t, CollationAxis.Satisfies(collation, opt.EmptyCollation))
	require.False(t, CollationAxis.Satisfies(opt.EmptyCollation, collation))
}
