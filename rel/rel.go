// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package rel defines the logical relational operators: scan, filter,
// project, join, aggregate, the set operations, sort, and values. Each
// operator is an immutable node carrying a trait set, a row type, and an
// ordered input list. Physical backends embed these nodes and re-tag them.
package rel

import (
	"github.com/ldming/volcano/opt"
)

// base carries the attributes every operator shares. Operator structs embed
// it and add their payload.
type base struct {
	cluster *opt.Cluster
	id      opt.RelID
	traits  opt.TraitSet
	rowType opt.RowType
	inputs  []opt.RelNode
}

func makeBase(c *opt.Cluster, traits opt.TraitSet, rowType opt.RowType, inputs ...opt.RelNode) base {
	return base{cluster: c, id: c.NextID(), traits: traits, rowType: rowType, inputs: inputs}
}

func (b *base) ID() opt.RelID         { return b.id }
func (b *base) Traits() opt.TraitSet  { return b.traits }
func (b *base) RowType() opt.RowType  { return b.rowType }
func (b *base) Inputs() []opt.RelNode { return b.inputs }
func (b *base) SelfCost() opt.Cost    { return opt.UnitCost }

// Cluster returns the session the node belongs to.
func (b *base) Cluster() *opt.Cluster { return b.cluster }

// rebase returns a copy of b with a fresh identity and the given traits and
// inputs, for use by the Copy methods.
func (b *base) rebase(traits opt.TraitSet, inputs []opt.RelNode) base {
	return base{cluster: b.cluster, id: b.cluster.NextID(), traits: traits, rowType: b.rowType, inputs: inputs}
}
