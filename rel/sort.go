// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"bytes"
	"fmt"

	"github.com/ldming/volcano/opt"
)

// NoLimit is the Fetch value of a sort without a row limit.
const NoLimit int64 = -1

// Sort orders its input by a collation, optionally skipping Offset rows
// and returning at most Fetch rows.
type Sort struct {
	base
	collation opt.Collation
	offset    int64
	fetch     int64
}

// NewSort constructs a sort of input. fetch is NoLimit when no limit
// applies; offset 0 skips nothing.
func NewSort(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, collation opt.Collation, offset, fetch int64,
) *Sort {
	return &Sort{
		base:      makeBase(c, traits, input.RowType(), input),
		collation: collation,
		offset:    offset,
		fetch:     fetch,
	}
}

func (s *Sort) Op() opt.Operator { return opt.SortOp }

// Collation returns the sort order produced.
func (s *Sort) Collation() opt.Collation { return s.collation }

// Offset returns the number of leading rows skipped.
func (s *Sort) Offset() int64 { return s.offset }

// Fetch returns the row limit, or NoLimit.
func (s *Sort) Fetch() int64 { return s.fetch }

func (s *Sort) Digest() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "sort %s", s.collation)
	if s.offset > 0 {
		fmt.Fprintf(&buf, " offset %d", s.offset)
	}
	if s.fetch != NoLimit {
		fmt.Fprintf(&buf, " fetch %d", s.fetch)
	}
	return buf.String()
}

func (s *Sort) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Sort{
		base:      s.rebase(traits, inputs),
		collation: s.collation,
		offset:    s.offset,
		fetch:     s.fetch,
	}
}
