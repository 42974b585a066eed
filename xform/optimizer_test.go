// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package xform_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/phys"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/testutils/testcat"
	"github.com/ldming/volcano/xform"
	"github.com/stretchr/testify/require"
)

// testSession bundles one optimization session over the T(s, i) table,
// which is stored sorted on its first column.
type testSession struct {
	cluster *opt.Cluster
	opt     *xform.Optimizer
	catalog *testcat.Catalog
}

func newSession(t *testing.T) *testSession {
	t.Helper()
	cluster := opt.NewCluster()
	require.NoError(t, cluster.AddTraitAxis(rel.CollationAxis))
	require.NoError(t, cluster.AddTraitAxis(opt.ConventionAxis))

	catalog := testcat.New()
	catalog.AddTable(&testcat.Table{
		TabName: "T",
		Columns: opt.RowType{
			{Name: "s", Kind: opt.StringType},
			{Name: "i", Kind: opt.IntType},
		},
		Rows:   100,
		Sorted: []opt.Collation{opt.MakeCollation(opt.Asc(0))},
	})

	o := xform.New(cluster, xform.Config{})
	for _, r := range phys.Rules() {
		require.NoError(t, o.AddRule(r))
	}
	require.NoError(t, o.AddRule(xform.ExpandConversionRule))
	return &testSession{cluster: cluster, opt: o, catalog: catalog}
}

func (s *testSession) empty() opt.TraitSet { return s.cluster.EmptyTraitSet() }

func (s *testSession) physTraits() opt.TraitSet {
	return s.empty().Replace(opt.ConventionAxis, phys.Convention)
}

// buildAggOverProject builds Aggregate(group={0}, count(1)) over
// Project(ordinals) over Scan(T).
func (s *testSession) buildAggOverProject(t *testing.T, ordinals []int) opt.RelNode {
	t.Helper()
	tab, ok := s.catalog.Table("T")
	require.True(t, ok)
	scan := rel.NewScan(s.cluster, s.empty(), tab)
	project := rel.NewProjectOrdinals(s.cluster, s.empty(), scan, ordinals)
	return rel.NewAggregate(s.cluster, s.empty(), project, opt.MakeColSet(0), []rel.AggCall{
		{Func: rel.CountFunc, Arg: 1, Name: "cnt"},
	})
}

// collectOps gathers the operator tags of a plan tree in preorder.
func collectOps(n opt.RelNode) []opt.Operator {
	ops := []opt.Operator{n.Op()}
	for _, in := range n.Inputs() {
		ops = append(ops, collectOps(in)...)
	}
	return ops
}

func countOp(ops []opt.Operator, op opt.Operator) int {
	n := 0
	for _, o := range ops {
		if o == op {
			n++
		}
	}
	return n
}

// TestSortednessPropagatesThroughProject plans an aggregation over an
// identity projection of a table stored sorted on the group key. The
// table's ordering must reach the aggregate through the projection, so no
// sort is needed: three unit-cost nodes.
func TestSortednessPropagatesThroughProject(t *testing.T) {
	s := newSession(t)
	root := s.buildAggOverProject(t, []int{0, 1})

	plan, cost, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.NoError(t, err)
	require.Equal(t, opt.Cost{Rows: 3, CPU: 3, IO: 3}, cost)

	ops := collectOps(plan)
	require.Equal(t, []opt.Operator{opt.PhysAggregateOp, opt.PhysProjectOp, opt.PhysScanOp}, ops)

	// The winner provides the requested traits, and the aggregate inherits
	// the scan's ordering on the group key.
	require.True(t, plan.Traits().Satisfies(s.physTraits()))
	collations := s.opt.Metadata().Collations(plan)
	require.Contains(t, collations, opt.MakeCollation(opt.Asc(0)))
}

// TestAliasingProjectInsertsSort swaps the projection's columns, so the
// stored ordering lands on output column 1 while the aggregate groups on
// column 0. A sort enforcer must appear, for four unit-cost nodes.
func TestAliasingProjectInsertsSort(t *testing.T) {
	s := newSession(t)
	root := s.buildAggOverProject(t, []int{1, 0})

	plan, cost, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.NoError(t, err)
	require.Equal(t, opt.Cost{Rows: 4, CPU: 4, IO: 4}, cost)

	ops := collectOps(plan)
	require.Len(t, ops, 4)
	sorts := countOp(ops, opt.SortOp) + countOp(ops, opt.PhysSortOp)
	require.Equal(t, 1, sorts, "exactly one sort must be inserted: %v", ops)
	require.Equal(t, opt.PhysAggregateOp, ops[0])
	require.True(t, plan.Traits().Satisfies(s.physTraits()))
}

func TestOptimizeDeterministic(t *testing.T) {
	var plans []string
	var costs []opt.Cost
	for i := 0; i < 2; i++ {
		s := newSession(t)
		root := s.buildAggOverProject(t, []int{1, 0})
		plan, cost, err := s.opt.Optimize(context.Background(), root, s.physTraits())
		require.NoError(t, err)
		plans = append(plans, opt.FormatRel(plan))
		costs = append(costs, cost)
	}
	require.Equal(t, plans[0], plans[1], "identical sessions must produce identical plans")
	require.Equal(t, costs[0], costs[1])
}

func TestNoPlanFound(t *testing.T) {
	cluster := opt.NewCluster()
	require.NoError(t, cluster.AddTraitAxis(rel.CollationAxis))
	require.NoError(t, cluster.AddTraitAxis(opt.ConventionAxis))
	o := xform.New(cluster, xform.Config{})
	// No rules: nothing can reach the physical convention.

	catalog := testcat.New()
	tab, _ := catalog.Table("EMP")
	scan := rel.NewScan(cluster, cluster.EmptyTraitSet(), tab)

	_, _, err := o.Optimize(context.Background(), scan,
		cluster.EmptyTraitSet().Replace(opt.ConventionAxis, phys.Convention))
	require.True(t, errors.Is(err, opt.ErrNoPlanFound), "got %v", err)
}

func TestCancellation(t *testing.T) {
	s := newSession(t)
	root := s.buildAggOverProject(t, []int{0, 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := s.opt.Optimize(ctx, root, s.physTraits())
	require.True(t, errors.Is(err, opt.ErrCancelled), "got %v", err)
}

type failingRule struct{}

func (failingRule) Name() string                 { return "FailingRule" }
func (failingRule) Operand() *xform.Operand      { return xform.NewOperand(opt.ScanOp) }
func (failingRule) Matches(*xform.RuleCall) bool { return true }
func (failingRule) OnMatch(*xform.RuleCall) error {
	return errors.New("boom")
}

func TestRuleErrorAbortsSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.opt.AddRule(failingRule{}))
	root := s.buildAggOverProject(t, []int{0, 1})

	_, _, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.Error(t, err)
	require.True(t, errors.Is(err, opt.ErrRuleFailed), "got %v", err)
	require.Contains(t, err.Error(), "FailingRule")
}

func TestRuleErrorContinue(t *testing.T) {
	cluster := opt.NewCluster()
	require.NoError(t, cluster.AddTraitAxis(rel.CollationAxis))
	require.NoError(t, cluster.AddTraitAxis(opt.ConventionAxis))
	o := xform.New(cluster, xform.Config{ContinueOnRuleError: true})
	for _, r := range phys.Rules() {
		require.NoError(t, o.AddRule(r))
	}
	require.NoError(t, o.AddRule(xform.ExpandConversionRule))
	require.NoError(t, o.AddRule(failingRule{}))

	catalog := testcat.New()
	tab, _ := catalog.Table("EMP")
	scan := rel.NewScan(cluster, cluster.EmptyTraitSet(), tab)

	plan, _, err := o.Optimize(context.Background(), scan,
		cluster.EmptyTraitSet().Replace(opt.ConventionAxis, phys.Convention))
	require.NoError(t, err, "the failing rule must not abort a tolerant session")
	require.Equal(t, opt.PhysScanOp, plan.Op())
}

func TestRuleExclusion(t *testing.T) {
	s := newSession(t)
	s.opt.SetRuleExcluded(func(r xform.Rule) bool { return r.Name() == "PhysScanRule" })
	root := s.buildAggOverProject(t, []int{0, 1})

	_, _, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.True(t, errors.Is(err, opt.ErrNoPlanFound),
		"without the scan rule nothing becomes physical: %v", err)
}

func TestImportanceZeroPrunes(t *testing.T) {
	s := newSession(t)
	tab, _ := s.catalog.Table("T")
	scan := rel.NewScan(s.cluster, s.empty(), tab)
	s.opt.SetImportance(scan, 0)

	_, _, err := s.opt.Optimize(context.Background(), scan, s.physTraits())
	require.True(t, errors.Is(err, opt.ErrNoPlanFound),
		"pruned expressions must not fire rules: %v", err)
}

// eventListener records the listener callbacks.
type eventListener struct {
	attempted   []string
	productions []string
	equivs      int
	discards    int
}

func (l *eventListener) RuleAttempted(rule string, rel opt.RelNode) {
	l.attempted = append(l.attempted, rule)
}

func (l *eventListener) RuleProduction(rule string, rel opt.RelNode) {
	l.productions = append(l.productions, rule)
}

func (l *eventListener) RelEquivalenceFound(rel, equivTo opt.RelNode) { l.equivs++ }
func (l *eventListener) RelDiscarded(rel opt.RelNode)                 { l.discards++ }

func TestListenerEvents(t *testing.T) {
	s := newSession(t)
	listener := &eventListener{}
	s.opt.AddListener(listener)
	root := s.buildAggOverProject(t, []int{0, 1})

	_, _, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.NoError(t, err)

	require.Contains(t, listener.attempted, "PhysScanRule")
	require.Contains(t, listener.attempted, "PhysProjectRule")
	require.Contains(t, listener.attempted, "PhysAggregateRule")
	require.Contains(t, listener.productions, "PhysScanRule")
}

// nestedRule matches Aggregate over Project, binding both operands, to
// exercise multi-level operand descent and ascent.
type nestedRule struct {
	bindings *[][2]opt.Operator
}

func (r nestedRule) Name() string { return "NestedProbeRule" }

func (r nestedRule) Operand() *xform.Operand {
	return xform.NewOperand(opt.AggregateOp,
		xform.NewOperand(opt.ProjectOp, xform.AnyOperand()))
}

func (r nestedRule) Matches(*xform.RuleCall) bool { return true }

func (r nestedRule) OnMatch(call *xform.RuleCall) error {
	*r.bindings = append(*r.bindings, [2]opt.Operator{call.Rel(0).Op(), call.Rel(1).Op()})
	return nil
}

func TestOperandTreeMatching(t *testing.T) {
	s := newSession(t)
	var bindings [][2]opt.Operator
	require.NoError(t, s.opt.AddRule(nestedRule{bindings: &bindings}))
	root := s.buildAggOverProject(t, []int{0, 1})

	_, _, err := s.opt.Optimize(context.Background(), root, s.physTraits())
	require.NoError(t, err)

	require.Contains(t, bindings, [2]opt.Operator{opt.AggregateOp, opt.ProjectOp})
}
