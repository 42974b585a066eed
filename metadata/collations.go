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

func registerCollations(p *TableProvider) {
	p.RegisterMany(CollationsKind, scanOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		return append([]opt.Collation(nil), e.(scanNode).Table().Collations()...)
	})

	p.RegisterMany(CollationsKind, sortOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		return []opt.Collation{e.(sortNode).Collation()}
	})

	p.Register(CollationsKind, opt.FilterOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.Collations(e.Inputs()[0])
	})

	p.RegisterMany(CollationsKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// A projection preserves the prefix of each input collation whose
		// columns it passes through unchanged.
		identity := e.(projectNode).IdentityMap()
		out := []opt.Collation{}
		for _, collation := range q.Collations(e.Inputs()[0]) {
			var fields []opt.FieldCollation
			for _, f := range collation.Fields {
				mapped := scalar.RemapOrdinal(identity, f.Col)
				if mapped < 0 {
					break
				}
				f.Col = mapped
				fields = append(fields, f)
			}
			if len(fields) > 0 {
				out = append(out, opt.MakeCollation(fields...))
			}
		}
		return out
	})

	p.RegisterMany(CollationsKind, aggOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Grouped aggregation preserves an input ordering on its group keys.
		// A group key at input ordinal g appears at the output position of g
		// within the ascending group-key list.
		agg := e.(aggNode)
		groupOrds := agg.GroupKeys().Ordinals()
		position := make(map[int]int, len(groupOrds))
		for outOrd, inOrd := range groupOrds {
			position[inOrd] = outOrd
		}
		out := []opt.Collation{}
		for _, collation := range q.Collations(e.Inputs()[0]) {
			var fields []opt.FieldCollation
			for _, f := range collation.Fields {
				outOrd, ok := position[f.Col]
				if !ok {
					break
				}
				f.Col = outOrd
				fields = append(fields, f)
			}
			if len(fields) > 0 {
				out = append(out, opt.MakeCollation(fields...))
			}
		}
		return out
	})

	p.Register(CollationsKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Joins that iterate the left side in order preserve left collations;
		// the left columns keep their ordinals in the output.
		j := e.(joinNode)
		switch j.JoinType() {
		case rel.InnerJoin, rel.LeftJoin, rel.SemiJoin, rel.AntiJoin:
			return q.Collations(e.Inputs()[0])
		}
		return []opt.Collation{}
	})

	unordered := func(q *Query, e opt.RelNode, a Args) interface{} {
		return []opt.Collation{}
	}
	p.RegisterMany(CollationsKind, setOps, unordered)
	p.Register(CollationsKind, opt.ValuesOp, unordered)
}
