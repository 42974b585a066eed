// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package memo

import (
	"github.com/ldming/volcano/opt"
)

// AbstractConverter is a synthetic expression standing for "the child
// subset, converted to this trait set" before any concrete enforcer has
// been built. Its self-cost is infinite, so it never wins; it exists to
// give the conversion-expansion rule something to fire on. If some axis has
// no converter the expansion leaves it in place, keeping the subset
// infeasible.
type AbstractConverter struct {
	cluster *opt.Cluster
	id      opt.RelID
	traits  opt.TraitSet
	child   opt.RelNode
}

// NewAbstractConverter builds a conversion request from child to traits.
func NewAbstractConverter(c *opt.Cluster, child opt.RelNode, traits opt.TraitSet) *AbstractConverter {
	return &AbstractConverter{cluster: c, id: c.NextID(), traits: traits, child: child}
}

func (a *AbstractConverter) ID() opt.RelID         { return a.id }
func (a *AbstractConverter) Op() opt.Operator      { return opt.AbstractConverterOp }
func (a *AbstractConverter) Traits() opt.TraitSet  { return a.traits }
func (a *AbstractConverter) RowType() opt.RowType  { return a.child.RowType() }
func (a *AbstractConverter) Inputs() []opt.RelNode { return []opt.RelNode{a.child} }
func (a *AbstractConverter) Digest() string        { return "abstract-converter" }
func (a *AbstractConverter) SelfCost() opt.Cost    { return opt.InfCost }

func (a *AbstractConverter) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return NewAbstractConverter(a.cluster, inputs[0], traits)
}

var _ opt.RelNode = (*AbstractConverter)(nil)
