// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/opt"
)

func registerCost(p *TableProvider) {
	// cumulativeCost(e) = selfCost(e) + sum of best child costs. Children
	// that are memo subsets contribute their best-cost bookkeeping; concrete
	// children (in an extracted plan tree) recurse.
	p.RegisterAny(CumulativeCostKind, func(q *Query, e opt.RelNode, a Args) interface{} {
		cost := e.SelfCost()
		for _, in := range e.Inputs() {
			if sub, ok := in.(*memo.Subset); ok {
				cost = cost.Plus(sub.BestCost())
				continue
			}
			cost = cost.Plus(q.CumulativeCost(in))
		}
		return cost
	})
}
