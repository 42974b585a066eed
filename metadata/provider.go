// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/cat"
	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/scalar"
)

// Operator groups sharing one handler. Physical variants derive metadata
// exactly like their logical counterparts; the handlers reach the payload
// through the accessor interfaces below, which the physical nodes satisfy
// by embedding.
var (
	scanOps    = []opt.Operator{opt.ScanOp, opt.PhysScanOp}
	projectOps = []opt.Operator{opt.ProjectOp, opt.PhysProjectOp}
	aggOps     = []opt.Operator{opt.AggregateOp, opt.PhysAggregateOp}
	sortOps    = []opt.Operator{opt.SortOp, opt.PhysSortOp}
	setOps     = []opt.Operator{opt.UnionOp, opt.IntersectOp, opt.ExceptOp}
)

type scanNode interface{ Table() cat.Table }

type filterNode interface{ Condition() scalar.Expr }

type projectNode interface {
	Projections() []scalar.Expr
	IdentityMap() []int
}

type joinNode interface {
	JoinType() rel.JoinType
	Condition() scalar.Expr
}

type aggNode interface {
	GroupKeys() opt.ColSet
	AggCalls() []rel.AggCall
}

type sortNode interface {
	Collation() opt.Collation
	Offset() int64
	Fetch() int64
}

type valuesNode interface{ NumTuples() int }

// NewDefaultProvider assembles the built-in providers into one dispatch
// table. Embedders layer their own providers in front with Chain.
func NewDefaultProvider() *TableProvider {
	p := NewTableProvider()
	registerRowCount(p)
	registerMaxRowCount(p)
	registerCost(p)
	registerSelectivity(p)
	registerKeys(p)
	registerOrigins(p)
	registerCollations(p)
	registerPredicates(p)
	registerSizes(p)
	registerParallelism(p)
	registerSubsetDelegation(p)
	return p
}

// registerSubsetDelegation makes every kind work on memo subsets. Most
// kinds delegate to the best (or first) member; cumulative cost reads the
// subset's best-cost bookkeeping directly.
func registerSubsetDelegation(p *TableProvider) {
	for kind := Kind(0); kind < NumKinds; kind++ {
		kind := kind
		if kind == CumulativeCostKind {
			p.Register(kind, opt.SubsetOp, func(q *Query, e opt.RelNode, a Args) interface{} {
				return e.(*memo.Subset).BestCost()
			})
			continue
		}
		p.Register(kind, opt.SubsetOp, func(q *Query, e opt.RelNode, a Args) interface{} {
			target := q.resolve(e)
			if target == e {
				return nil
			}
			return q.invoke(kind, target, a)
		})
	}

	// An abstract converter produces exactly its child's rows.
	delegateToChild := func(q *Query, e opt.RelNode, a Args) interface{} {
		return q.invoke(RowCountKind, q.resolve(e.Inputs()[0]), a)
	}
	p.Register(RowCountKind, opt.AbstractConverterOp, delegateToChild)
}
