// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"fmt"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// Filter keeps the input rows satisfying a predicate.
type Filter struct {
	base
	cond scalar.Expr
}

// NewFilter constructs a filter of input by cond.
func NewFilter(c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, cond scalar.Expr) *Filter {
	return &Filter{base: makeBase(c, traits, input.RowType(), input), cond: cond}
}

func (f *Filter) Op() opt.Operator { return opt.FilterOp }

// Condition returns the filter predicate.
func (f *Filter) Condition() scalar.Expr { return f.cond }

func (f *Filter) Digest() string {
	return fmt.Sprintf("filter [%s]", f.cond)
}

func (f *Filter) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Filter{base: f.rebase(traits, inputs), cond: f.cond}
}
