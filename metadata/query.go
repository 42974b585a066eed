// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"math"

	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// ColumnOrigin names a table column an output column descends from.
// Derived is set when the column passed through a non-identity expression
// on the way.
type ColumnOrigin struct {
	Table   string
	Column  string
	Derived bool
}

// PredicateSet is the result of the predicates query: conjuncts known to
// hold on the expression's output, plus conjuncts inferred to hold on the
// left and right inputs of a join.
type PredicateSet struct {
	Pulled        []scalar.Expr
	LeftInferred  []scalar.Expr
	RightInferred []scalar.Expr
}

// Query is the session's entry point for metadata. Accessors are typed
// fronts over the provider chain; unknown results come back as the
// documented defaults or as ok=false, never as errors.
type Query struct {
	memo     *memo.Memo
	provider Provider
}

// NewQuery builds a query over the given provider. Pass the result of
// NewCachingProvider to get timestamp-validated caching.
func NewQuery(m *memo.Memo, p Provider) *Query {
	return &Query{memo: m, provider: p}
}

// NewDefaultQuery builds a query over the built-in providers with caching.
func NewDefaultQuery(m *memo.Memo) *Query {
	return NewQuery(m, NewCachingProvider(NewDefaultProvider(), m))
}

// Memo returns the memo this query reads from.
func (q *Query) Memo() *memo.Memo { return q.memo }

func (q *Query) invoke(kind Kind, e opt.RelNode, a Args) interface{} {
	h := q.provider.Handler(kind, e.Op())
	if h == nil {
		return nil
	}
	return h(q, e, a)
}

// RowCount estimates the number of rows e produces. The estimate is
// lower-bounded at 1; unknown comes back as 1.
func (q *Query) RowCount(e opt.RelNode) float64 {
	if v, ok := q.invoke(RowCountKind, e, NoArgs()).(float64); ok {
		return math.Max(1, v)
	}
	return 1
}

// MaxRowCount returns an upper bound on the rows e can produce, or +Inf
// when unbounded or unknown.
func (q *Query) MaxRowCount(e opt.RelNode) float64 {
	if v, ok := q.invoke(MaxRowCountKind, e, NoArgs()).(float64); ok {
		return v
	}
	return math.Inf(1)
}

// CumulativeCost returns the cost of e plus the best cost of every child
// subset.
func (q *Query) CumulativeCost(e opt.RelNode) opt.Cost {
	if v, ok := q.invoke(CumulativeCostKind, e, NoArgs()).(opt.Cost); ok {
		return v
	}
	return opt.InfCost
}

// Selectivity estimates the fraction of e's rows satisfying pred, in
// [0, 1]. A nil predicate keeps everything.
func (q *Query) Selectivity(e opt.RelNode, pred scalar.Expr) float64 {
	if v, ok := q.invoke(SelectivityKind, e, PredArg(pred)).(float64); ok {
		return clampSelectivity(v)
	}
	return 1
}

// DistinctRowCount estimates the number of distinct values of the key
// columns among the rows satisfying pred. The empty key has exactly one
// distinct value.
func (q *Query) DistinctRowCount(e opt.RelNode, keys opt.ColSet, pred scalar.Expr) (float64, bool) {
	v, ok := q.invoke(DistinctRowCountKind, e, ColsPredArg(keys, pred)).(float64)
	return v, ok
}

// UniqueKeys returns the known unique column sets of e. ok is false when
// nothing is known (which is different from knowing there are none).
func (q *Query) UniqueKeys(e opt.RelNode) ([]opt.ColSet, bool) {
	v, ok := q.invoke(UniqueKeysKind, e, NoArgs()).([]opt.ColSet)
	return v, ok
}

// AreColumnsUnique reports whether the key columns are unique in e's
// output. It is derived from UniqueKeys, so the two can never disagree:
// true exactly when some known unique key is a subset of keys.
func (q *Query) AreColumnsUnique(e opt.RelNode, keys opt.ColSet) (unique bool, ok bool) {
	uks, ok := q.UniqueKeys(e)
	if !ok {
		return false, false
	}
	for _, uk := range uks {
		if uk.SubsetOf(keys) {
			return true, true
		}
	}
	return false, true
}

// ColumnOrigins returns the table columns e's output column col descends
// from. ok is false when the lineage is unknown.
func (q *Query) ColumnOrigins(e opt.RelNode, col int) ([]ColumnOrigin, bool) {
	v, ok := q.invoke(ColumnOriginsKind, e, ColArg(col)).([]ColumnOrigin)
	return v, ok
}

// Collations returns the sort orders e's output is known to satisfy.
func (q *Query) Collations(e opt.RelNode) []opt.Collation {
	if v, ok := q.invoke(CollationsKind, e, NoArgs()).([]opt.Collation); ok {
		return v
	}
	return nil
}

// Predicates returns the predicates known to hold on e's output and the
// predicates inferred for join inputs.
func (q *Query) Predicates(e opt.RelNode) PredicateSet {
	if v, ok := q.invoke(PredicatesKind, e, NoArgs()).(*PredicateSet); ok {
		return *v
	}
	return PredicateSet{}
}

// AverageColumnSizes estimates the width in bytes of each output column.
func (q *Query) AverageColumnSizes(e opt.RelNode) ([]float64, bool) {
	v, ok := q.invoke(AverageColumnSizesKind, e, NoArgs()).([]float64)
	return v, ok
}

// AverageRowSize estimates the width in bytes of one output row.
func (q *Query) AverageRowSize(e opt.RelNode) float64 {
	sizes, ok := q.AverageColumnSizes(e)
	if !ok {
		return 0
	}
	var sum float64
	for _, s := range sizes {
		sum += s
	}
	return sum
}

// Memory estimates the bytes e holds at peak, or ok=false when unknown.
func (q *Query) Memory(e opt.RelNode) (float64, bool) {
	v, ok := q.invoke(MemoryKind, e, NoArgs()).(float64)
	return v, ok
}

// CumulativeMemory estimates the peak bytes held by e and its inputs
// together, or ok=false when any contribution is unknown.
func (q *Query) CumulativeMemory(e opt.RelNode) (float64, bool) {
	total, ok := q.Memory(e)
	if !ok {
		return 0, false
	}
	for _, in := range e.Inputs() {
		v, vok := q.CumulativeMemory(q.resolve(in))
		if !vok {
			return 0, false
		}
		total += v
	}
	return total, true
}

// SplitCount estimates the degree of parallelism of e, or ok=false.
func (q *Query) SplitCount(e opt.RelNode) (int, bool) {
	v, ok := q.invoke(SplitCountKind, e, NoArgs()).(int)
	return v, ok
}

// IsPhaseTransition reports whether e starts a new execution phase, or
// ok=false.
func (q *Query) IsPhaseTransition(e opt.RelNode) (bool, bool) {
	v, ok := q.invoke(IsPhaseTransitionKind, e, NoArgs()).(bool)
	return v, ok
}

// resolve maps a memo subset to the expression metadata should be derived
// from: the best member when known, otherwise the set's first member.
// Non-subset nodes resolve to themselves.
func (q *Query) resolve(e opt.RelNode) opt.RelNode {
	sub, ok := e.(*memo.Subset)
	if !ok {
		return e
	}
	if best := sub.Best(); best != nil {
		return best
	}
	if members := sub.Members(); len(members) > 0 {
		return members[0]
	}
	if members := sub.SetOf().Members(); len(members) > 0 {
		return members[0]
	}
	return e
}

func clampSelectivity(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
