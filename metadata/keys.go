// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"math"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/scalar"
)

func registerKeys(p *TableProvider) {
	p.RegisterMany(UniqueKeysKind, scanOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		return append([]opt.ColSet(nil), e.(scanNode).Table().UniqueKeys()...)
	})

	passThrough := func(q *Query, e opt.RelNode, a Args) interface{} {
		uks, ok := q.UniqueKeys(e.Inputs()[0])
		if !ok {
			return nil
		}
		return uks
	}
	p.Register(UniqueKeysKind, opt.FilterOp, passThrough)
	p.RegisterMany(UniqueKeysKind, sortOps, passThrough)

	p.RegisterMany(UniqueKeysKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		identity := e.(projectNode).IdentityMap()
		inputKeys, ok := q.UniqueKeys(e.Inputs()[0])
		if !ok {
			return nil
		}
		out := []opt.ColSet{}
		for _, uk := range inputKeys {
			mapped, full := remapColSet(uk, identity)
			if full {
				out = append(out, mapped)
			}
		}
		return out
	})

	p.RegisterMany(UniqueKeysKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// The group keys occupy the first output positions and identify each
		// output row.
		agg := e.(aggNode)
		var key opt.ColSet
		for i := 0; i < agg.GroupKeys().Len(); i++ {
			key.Add(i)
		}
		return []opt.ColSet{key}
	})

	p.Register(UniqueKeysKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		j := e.(joinNode)
		left, right := e.Inputs()[0], e.Inputs()[1]
		leftArity := len(left.RowType())

		if !j.JoinType().ProjectsRightColumns() {
			// Semi and anti joins keep at most one copy of each left row.
			uks, ok := q.UniqueKeys(left)
			if !ok {
				return nil
			}
			return uks
		}
		if j.JoinType() != rel.InnerJoin {
			return nil
		}

		leftEqui, rightEqui := equiJoinColumns(j.Condition(), leftArity)
		out := []opt.ColSet{}

		// If the right side is unique on its equi-join columns, each left row
		// matches at most one right row, so left keys remain keys (and
		// symmetrically).
		if unique, ok := q.AreColumnsUnique(right, rightEqui); ok && unique {
			if uks, ok := q.UniqueKeys(left); ok {
				out = append(out, uks...)
			}
		}
		if unique, ok := q.AreColumnsUnique(left, leftEqui); ok && unique {
			if uks, ok := q.UniqueKeys(right); ok {
				for _, uk := range uks {
					shifted := opt.MakeColSet()
					for _, c := range uk.Ordinals() {
						shifted.Add(c + leftArity)
					}
					out = append(out, shifted)
				}
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	})

	p.Register(DistinctRowCountKind, opt.UnknownOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		keys, pred := a.Cols(), a.Pred()
		if keys.Empty() {
			// Every row has the same (empty) key value.
			return float64(1)
		}
		rows := q.RowCount(e) * q.Selectivity(e, pred)
		if unique, ok := q.AreColumnsUnique(e, keys); ok && unique {
			return math.Max(1, rows)
		}
		// Without statistics, guess that half the filtered rows carry
		// distinct key values.
		return math.Max(1, rows/2)
	})
}

// remapColSet maps a set of input ordinals through a projection identity
// map. full is false if some column is not passed through.
func remapColSet(cols opt.ColSet, identity []int) (opt.ColSet, bool) {
	var out opt.ColSet
	for _, c := range cols.Ordinals() {
		mapped := scalar.RemapOrdinal(identity, c)
		if mapped < 0 {
			return opt.ColSet{}, false
		}
		out.Add(mapped)
	}
	return out, true
}

// equiJoinColumns extracts the left and right column sets equated by the
// top-level conjuncts of a join condition.
func equiJoinColumns(cond scalar.Expr, leftArity int) (left, right opt.ColSet) {
	for _, conjunct := range scalar.Conjuncts(cond) {
		if conjunct.Kind() != scalar.EqKind {
			continue
		}
		operands := conjunct.Operands()
		a, aok := operands[0].(*scalar.InputRef)
		b, bok := operands[1].(*scalar.InputRef)
		if !aok || !bok {
			continue
		}
		if a.Index >= leftArity {
			a, b = b, a
		}
		if a.Index < leftArity && b.Index >= leftArity {
			left.Add(a.Index)
			right.Add(b.Index - leftArity)
		}
	}
	return left, right
}
