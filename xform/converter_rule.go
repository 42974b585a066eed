// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package xform

import (
	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/opt"
)

// expandConversionRule fires on abstract converters and chains one
// concrete enforcer per axis whose target trait the child subset does not
// already satisfy. If some axis has no converter the abstract converter is
// left alone; its infinite cost keeps the subset out of contention.
type expandConversionRule struct{}

// ExpandConversionRule expands abstract converters into per-axis
// enforcers. Sessions that constrain traits must register it.
var ExpandConversionRule Rule = expandConversionRule{}

func (expandConversionRule) Name() string { return "ExpandConversionRule" }

func (expandConversionRule) Operand() *Operand {
	return NewOperand(opt.AbstractConverterOp, AnyOperand())
}

func (expandConversionRule) Matches(call *RuleCall) bool { return true }

func (expandConversionRule) OnMatch(call *RuleCall) error {
	conv := call.Rel(0)
	child := conv.Inputs()[0].(*memo.Subset)
	target := conv.Traits()

	node := opt.RelNode(child)
	for ord := 0; ord < target.Len(); ord++ {
		axis, want := target.AxisTrait(ord)
		have := node.Traits().Trait(axis)
		if axis.Satisfies(have, want) {
			continue
		}
		enforcer := axis.Convert(call.Cluster(), node, want)
		if enforcer == nil {
			// No enforcer for this axis; record the dead end and leave the
			// abstract converter in place.
			call.o.tracef("%v", opt.InfeasibleConversionError(axis, have, want))
			return nil
		}
		node = enforcer
	}
	if node != opt.RelNode(child) {
		call.TransformTo(node)
	}
	return nil
}
