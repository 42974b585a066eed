// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package xform

import (
	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/opt"
)

// enumerateMatches finds every binding of every registered rule that
// includes the newly registered expression at some operand position, and
// enqueues each as a rule call. Bindings anchor at the operand whose
// operator matches the expression, ascend through the subset parent lists
// to the pattern root, and descend into the remaining operands through the
// members of the bound child subsets.
func (o *Optimizer) enumerateMatches(e opt.RelNode) {
	for _, operand := range o.index[e.Op()] {
		if !operand.matches(e) {
			continue
		}
		binding := make([]opt.RelNode, len(operand.rule.operands))
		o.matchAscend(operand, e, binding)
	}
}

// matchAscend binds e at operand, then walks up toward the pattern root.
// Once the root is reached, the descent fills the operands not yet bound.
func (o *Optimizer) matchAscend(operand *Operand, e opt.RelNode, binding []opt.RelNode) {
	binding[operand.ordinal] = e

	if operand.parent == nil {
		o.matchDescend(operand.rule, 1, binding)
		binding[operand.ordinal] = nil
		return
	}

	sub := o.mem.GetSubset(e)
	if sub == nil {
		binding[operand.ordinal] = nil
		return
	}
	parentOperand := operand.parent
	for _, parent := range sub.Parents() {
		if !parentOperand.matches(parent) {
			continue
		}
		// The parent must consume e's set at the operand's child position.
		inputs := parent.Inputs()
		if operand.childIdx >= len(inputs) {
			continue
		}
		in, ok := inputs[operand.childIdx].(*memo.Subset)
		if !ok || in.SetOf() != sub.SetOf() {
			continue
		}
		o.matchAscend(parentOperand, parent, binding)
	}
	binding[operand.ordinal] = nil
}

// matchDescend fills the binding from operand ordinal next onward,
// enqueueing a rule call for every complete assignment. Operands already
// bound by the ascent are kept.
func (o *Optimizer) matchDescend(rr *registeredRule, next int, binding []opt.RelNode) {
	if next == len(rr.operands) {
		o.enqueue(rr, binding)
		return
	}
	operand := rr.operands[next]
	if binding[operand.ordinal] != nil {
		o.matchDescend(rr, next+1, binding)
		return
	}

	parentExpr := binding[operand.parent.ordinal]
	inputs := parentExpr.Inputs()
	if operand.childIdx >= len(inputs) {
		return
	}
	sub, ok := inputs[operand.childIdx].(*memo.Subset)
	if !ok {
		return
	}
	for _, member := range sub.Members() {
		if !operand.matches(member) {
			continue
		}
		binding[operand.ordinal] = member
		o.matchDescend(rr, next+1, binding)
		binding[operand.ordinal] = nil
	}
}
