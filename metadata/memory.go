// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/opt"
)

// Memory and parallelism estimates are stubs: the core has no execution
// model to ground them in. Memory queries answer "unknown" except for
// sorts and aggregations, which buffer their input; parallelism queries
// always answer with the fixed values below.
func registerParallelism(p *TableProvider) {
	buffering := func(q *Query, e opt.RelNode, a Args) interface{} {
		input := e.Inputs()[0]
		return q.RowCount(input) * q.AverageRowSize(input)
	}
	p.RegisterMany(MemoryKind, sortOps, buffering)
	p.RegisterMany(MemoryKind, aggOps, buffering)

	// Single-threaded reference model: one split everywhere, no phase
	// transitions.
	p.RegisterAny(SplitCountKind, func(q *Query, e opt.RelNode, a Args) interface{} {
		return 1
	})
	p.RegisterAny(IsPhaseTransitionKind, func(q *Query, e opt.RelNode, a Args) interface{} {
		return false
	})
}
