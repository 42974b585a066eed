// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"math"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
)

func registerRowCount(p *TableProvider) {
	p.RegisterMany(RowCountKind, scanOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		return e.(scanNode).Table().RowCount()
	})

	p.Register(RowCountKind, opt.FilterOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		input := e.Inputs()[0]
		return q.RowCount(input) * q.Selectivity(input, e.(filterNode).Condition())
	})

	p.RegisterMany(RowCountKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.RowCount(e.Inputs()[0])
	})

	p.Register(RowCountKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		j := e.(joinNode)
		left, right := e.Inputs()[0], e.Inputs()[1]
		sel := q.Selectivity(e, j.Condition())
		switch j.JoinType() {
		case rel.SemiJoin:
			return q.RowCount(left) * sel
		case rel.AntiJoin:
			return q.RowCount(left) * (1 - sel)
		default:
			return q.RowCount(left) * q.RowCount(right) * sel
		}
	})

	p.RegisterMany(RowCountKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		agg := e.(aggNode)
		if agg.GroupKeys().Empty() {
			return float64(1)
		}
		input := e.Inputs()[0]
		if v, ok := q.DistinctRowCount(input, agg.GroupKeys(), nil); ok {
			return v
		}
		return q.RowCount(input)
	})

	p.Register(RowCountKind, opt.UnionOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.RowCount(e.Inputs()[0]) + q.RowCount(e.Inputs()[1])
	})
	p.Register(RowCountKind, opt.IntersectOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return math.Min(q.RowCount(e.Inputs()[0]), q.RowCount(e.Inputs()[1]))
	})
	p.Register(RowCountKind, opt.ExceptOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.RowCount(e.Inputs()[0])
	})

	p.RegisterMany(RowCountKind, sortOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		s := e.(sortNode)
		rows := q.RowCount(e.Inputs()[0])
		rows = math.Max(0, rows-float64(s.Offset()))
		if s.Fetch() >= 0 {
			rows = math.Min(rows, float64(s.Fetch()))
		}
		return rows
	})

	p.Register(RowCountKind, opt.ValuesOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return float64(e.(valuesNode).NumTuples())
	})
}

func registerMaxRowCount(p *TableProvider) {
	inf := math.Inf(1)

	p.RegisterMany(MaxRowCountKind, scanOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Statistics bound nothing; a table can grow.
		return inf
	})

	passThrough := func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.MaxRowCount(e.Inputs()[0])
	}
	p.Register(MaxRowCountKind, opt.FilterOp, passThrough)
	p.RegisterMany(MaxRowCountKind, projectOps, passThrough)

	p.Register(MaxRowCountKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		j := e.(joinNode)
		left := q.MaxRowCount(e.Inputs()[0])
		if !j.JoinType().ProjectsRightColumns() {
			return left
		}
		right := q.MaxRowCount(e.Inputs()[1])
		if math.IsInf(left, 1) || math.IsInf(right, 1) {
			return inf
		}
		return left * right
	})

	p.RegisterMany(MaxRowCountKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		if e.(aggNode).GroupKeys().Empty() {
			return float64(1)
		}
		return q.MaxRowCount(e.Inputs()[0])
	})

	p.Register(MaxRowCountKind, opt.UnionOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		left, right := q.MaxRowCount(e.Inputs()[0]), q.MaxRowCount(e.Inputs()[1])
		return left + right
	})
	p.Register(MaxRowCountKind, opt.IntersectOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return math.Min(q.MaxRowCount(e.Inputs()[0]), q.MaxRowCount(e.Inputs()[1]))
	})
	p.Register(MaxRowCountKind, opt.ExceptOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.MaxRowCount(e.Inputs()[0])
	})

	p.RegisterMany(MaxRowCountKind, sortOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		s := e.(sortNode)
		bound := q.MaxRowCount(e.Inputs()[0])
		if s.Offset() > 0 && !math.IsInf(bound, 1) {
			bound = math.Max(0, bound-float64(s.Offset()))
		}
		if s.Fetch() >= 0 {
			bound = math.Min(bound, float64(s.Fetch()))
		}
		return bound
	})

	p.Register(MaxRowCountKind, opt.ValuesOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return float64(e.(valuesNode).NumTuples())
	})
}
