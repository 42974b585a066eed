// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

func registerOrigins(p *TableProvider) {
	p.RegisterMany(ColumnOriginsKind, scanOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		tab := e.(scanNode).Table()
		return []ColumnOrigin{{Table: tab.Name(), Column: tab.RowType()[a.Col()].Name}}
	})

	passThrough := func(q *Query, e opt.RelNode, a Args) interface{} {
		origins, ok := q.ColumnOrigins(e.Inputs()[0], a.Col())
		if !ok {
			return nil
		}
		return origins
	}
	p.Register(ColumnOriginsKind, opt.FilterOp, passThrough)
	p.RegisterMany(ColumnOriginsKind, sortOps, passThrough)

	p.RegisterMany(ColumnOriginsKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		proj := e.(projectNode).Projections()[a.Col()]
		input := e.Inputs()[0]
		if ref, ok := proj.(*scalar.InputRef); ok {
			origins, ok := q.ColumnOrigins(input, ref.Index)
			if !ok {
				return nil
			}
			return origins
		}
		// A derived expression originates from every column it references.
		return derivedOrigins(q, input, scalar.InputRefs(proj))
	})

	p.Register(ColumnOriginsKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		left := e.Inputs()[0]
		leftArity := len(left.RowType())
		if a.Col() < leftArity {
			origins, ok := q.ColumnOrigins(left, a.Col())
			if !ok {
				return nil
			}
			return origins
		}
		origins, ok := q.ColumnOrigins(e.Inputs()[1], a.Col()-leftArity)
		if !ok {
			return nil
		}
		return origins
	})

	p.RegisterMany(ColumnOriginsKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		agg := e.(aggNode)
		groupOrds := agg.GroupKeys().Ordinals()
		input := e.Inputs()[0]
		if a.Col() < len(groupOrds) {
			origins, ok := q.ColumnOrigins(input, groupOrds[a.Col()])
			if !ok {
				return nil
			}
			return origins
		}
		call := agg.AggCalls()[a.Col()-len(groupOrds)]
		if call.Arg < 0 {
			// count(*) descends from no column.
			return []ColumnOrigin{}
		}
		return derivedOrigins(q, input, opt.MakeColSet(call.Arg))
	})

	p.RegisterMany(ColumnOriginsKind, setOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		out := []ColumnOrigin{}
		for _, in := range e.Inputs() {
			origins, ok := q.ColumnOrigins(in, a.Col())
			if !ok {
				return nil
			}
			out = append(out, origins...)
		}
		return out
	})

	p.Register(ColumnOriginsKind, opt.ValuesOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return []ColumnOrigin{}
	})
}

// derivedOrigins collects the origins of every referenced input column,
// marked derived.
func derivedOrigins(q *Query, input opt.RelNode, cols opt.ColSet) interface{} {
	out := []ColumnOrigin{}
	for _, c := range cols.Ordinals() {
		origins, ok := q.ColumnOrigins(input, c)
		if !ok {
			return nil
		}
		for _, o := range origins {
			o.Derived = true
			out = append(out, o)
		}
	}
	return out
}
