// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/ldming/volcano/opt"
)

// SetOp is a union, intersect, or except over two inputs with matching row
// shapes. The op tag distinguishes the variant.
type SetOp struct {
	base
	op  opt.Operator
	all bool
}

// NewSetOp constructs a set operation. op must be one of UnionOp,
// IntersectOp, ExceptOp.
func NewSetOp(
	c *opt.Cluster, traits opt.TraitSet, op opt.Operator, left, right opt.RelNode, all bool,
) *SetOp {
	switch op {
	case opt.UnionOp, opt.IntersectOp, opt.ExceptOp:
	default:
		panic(errors.AssertionFailedf("%s is not a set operation", op))
	}
	b := makeBase(c, traits, left.RowType(), left, right)
	return &SetOp{base: b, op: op, all: all}
}

func (s *SetOp) Op() opt.Operator { return s.op }

// All returns true for the ALL variant, which keeps duplicates.
func (s *SetOp) All() bool { return s.all }

func (s *SetOp) Digest() string {
	if s.all {
		return fmt.Sprintf("%s-all", s.op)
	}
	return s.op.String()
}

func (s *SetOp) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &SetOp{base: s.rebase(traits, inputs), op: s.op, all: s.all}
}
