// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/scalar"
)

func registerPredicates(p *TableProvider) {
	empty := func(q *Query, e opt.RelNode, a Args) interface{} {
		return &PredicateSet{}
	}
	p.RegisterMany(PredicatesKind, scanOps, empty)
	p.Register(PredicatesKind, opt.ValuesOp, empty)
	p.RegisterMany(PredicatesKind, setOps, empty)

	p.Register(PredicatesKind, opt.FilterOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		input := q.Predicates(e.Inputs()[0])
		pulled := append([]scalar.Expr(nil), input.Pulled...)
		pulled = append(pulled, scalar.Conjuncts(e.(filterNode).Condition())...)
		return &PredicateSet{Pulled: pulled}
	})

	passThrough := func(q *Query, e opt.RelNode, a Args) interface{} {
		ps := q.Predicates(e.Inputs()[0])
		return &ps
	}
	p.RegisterMany(PredicatesKind, sortOps, passThrough)

	p.RegisterMany(PredicatesKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Keep input predicates expressible over the pass-through columns.
		identity := e.(projectNode).IdentityMap()
		input := q.Predicates(e.Inputs()[0])
		var pulled []scalar.Expr
		for _, pred := range input.Pulled {
			mapped, ok := scalar.Remap(pred, func(ord int) (int, bool) {
				out := scalar.RemapOrdinal(identity, ord)
				return out, out >= 0
			})
			if ok {
				pulled = append(pulled, mapped)
			}
		}
		return &PredicateSet{Pulled: pulled}
	})

	p.RegisterMany(PredicatesKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Predicates over the group keys survive grouping; equalities on a
		// group key in particular still hold on the output.
		agg := e.(aggNode)
		groupOrds := agg.GroupKeys().Ordinals()
		position := make(map[int]int, len(groupOrds))
		for outOrd, inOrd := range groupOrds {
			position[inOrd] = outOrd
		}
		input := q.Predicates(e.Inputs()[0])
		var pulled []scalar.Expr
		for _, pred := range input.Pulled {
			mapped, ok := scalar.Remap(pred, func(ord int) (int, bool) {
				out, ok := position[ord]
				return out, ok
			})
			if ok {
				pulled = append(pulled, mapped)
			}
		}
		return &PredicateSet{Pulled: pulled}
	})

	p.Register(PredicatesKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		j := e.(joinNode)
		left, right := e.Inputs()[0], e.Inputs()[1]
		leftArity := len(left.RowType())
		leftPreds := q.Predicates(left)
		rightPreds := q.Predicates(right)

		switch j.JoinType() {
		case rel.InnerJoin:
			pulled := append([]scalar.Expr(nil), leftPreds.Pulled...)
			for _, pred := range rightPreds.Pulled {
				pulled = append(pulled, scalar.Shift(pred, leftArity))
			}
			pulled = append(pulled, scalar.Conjuncts(j.Condition())...)
			return &PredicateSet{Pulled: pulled}

		case rel.SemiJoin, rel.AntiJoin:
			// The output is the left input filtered; left predicates hold. A
			// semi join additionally infers, on the outer side, the right
			// side's predicates over the equated columns.
			ps := &PredicateSet{Pulled: append([]scalar.Expr(nil), leftPreds.Pulled...)}
			if j.JoinType() == rel.SemiJoin {
				_, rightEqui := equiJoinColumns(j.Condition(), leftArity)
				rightToLeft := equiColumnMap(j.Condition(), leftArity)
				for _, pred := range rightPreds.Pulled {
					if !scalar.InputRefs(pred).SubsetOf(rightEqui) {
						continue
					}
					mapped, ok := scalar.Remap(pred, func(ord int) (int, bool) {
						out, ok := rightToLeft[ord]
						return out, ok
					})
					if ok {
						ps.LeftInferred = append(ps.LeftInferred, mapped)
					}
				}
			}
			return ps

		default:
			// Outer joins null-extend, which invalidates simple pull-up.
			return &PredicateSet{}
		}
	})
}

// equiColumnMap maps each right-side column ordinal to the left-side
// ordinal it is equated with by the join condition.
func equiColumnMap(cond scalar.Expr, leftArity int) map[int]int {
	out := make(map[int]int)
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
			out[b.Index-leftArity] = a.Index
		}
	}
	return out
}
