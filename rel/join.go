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

// JoinType distinguishes the join variants.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	SemiJoin
	AntiJoin
)

var joinTypeNames = [...]string{
	InnerJoin: "inner",
	LeftJoin:  "left",
	RightJoin: "right",
	FullJoin:  "full",
	SemiJoin:  "semi",
	AntiJoin:  "anti",
}

func (t JoinType) String() string { return joinTypeNames[t] }

// ProjectsRightColumns returns true if the join's output includes the right
// input's columns. Semi and anti joins produce only the left side.
func (t JoinType) ProjectsRightColumns() bool {
	return t != SemiJoin && t != AntiJoin
}

// Join combines two inputs on a condition.
type Join struct {
	base
	joinType JoinType
	cond     scalar.Expr
}

// NewJoin constructs a join. The output row type is the concatenation of
// the input row types, or the left row type alone for semi and anti joins.
func NewJoin(
	c *opt.Cluster, traits opt.TraitSet, joinType JoinType, left, right opt.RelNode, cond scalar.Expr,
) *Join {
	rowType := left.RowType()
	if joinType.ProjectsRightColumns() {
		rowType = rowType.Concat(right.RowType())
	}
	b := makeBase(c, traits, rowType, left, right)
	return &Join{base: b, joinType: joinType, cond: cond}
}

func (j *Join) Op() opt.Operator { return opt.JoinOp }

// JoinType returns the join variant.
func (j *Join) JoinType() JoinType { return j.joinType }

// Condition returns the join predicate, or nil for a cross product.
func (j *Join) Condition() scalar.Expr { return j.cond }

func (j *Join) Digest() string {
	cond := "true"
	if j.cond != nil {
		cond = j.cond.String()
	}
	return fmt.Sprintf("%s-join [%s]", j.joinType, cond)
}

func (j *Join) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Join{base: j.rebase(traits, inputs), joinType: j.joinType, cond: j.cond}
}
