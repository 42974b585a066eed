// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"github.com/ldming/volcano/opt"
)

// collationAxis is the sort-order axis. A collation satisfies every prefix
// of itself; the empty collation is the default and demands nothing. Any
// collation can be enforced by inserting a Sort, so the axis always has a
// converter.
type collationAxis struct{}

// CollationAxis is the sort-order axis. Register it with a cluster before
// building trait sets that constrain ordering.
var CollationAxis opt.Axis = collationAxis{}

func (collationAxis) Name() string   { return "collation" }
func (collationAxis) Default() opt.Trait { return opt.EmptyCollation }

func (collationAxis) Satisfies(a, b opt.Trait) bool {
	return a.(opt.Collation).HasPrefix(b.(opt.Collation))
}

func (collationAxis) CanConvert(from, to opt.Trait) bool { return true }

// Convert inserts a Sort enforcer over child providing the target
// collation. The enforcer keeps the child's other traits.
func (collationAxis) Convert(c *opt.Cluster, child opt.RelNode, to opt.Trait) opt.RelNode {
	collation := to.(opt.Collation)
	traits := child.Traits().Replace(CollationAxis, collation)
	return NewSort(c, traits, child, collation, 0, NoLimit)
}
