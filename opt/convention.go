// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

// Convention names the calling convention an expression executes under.
// ConventionNone tags logical expressions that cannot execute at all.
type Convention string

// ConventionNone is the default convention of logical expressions.
const ConventionNone Convention = "NONE"

// Equal implements Trait.
func (c Convention) Equal(other Trait) bool {
	o, ok := other.(Convention)
	return ok && c == o
}

func (c Convention) String() string { return string(c) }

// conventionAxis is the axis of calling conventions. A convention satisfies
// only itself; in particular ConventionNone satisfies nothing physical.
// There is no generic converter between conventions: implementation rules
// supply the physical members, so an abstract converter that differs on
// this axis stays infeasible.
type conventionAxis struct{}

// ConventionAxis is the calling-convention axis. Register it with a cluster
// before registering rules that produce physical expressions.
var ConventionAxis Axis = conventionAxis{}

func (conventionAxis) Name() string   { return "convention" }
func (conventionAxis) Default() Trait { return ConventionNone }

func (conventionAxis) Satisfies(a, b Trait) bool { return a.Equal(b) }

func (conventionAxis) CanConvert(from, to Trait) bool { return false }

func (conventionAxis) Convert(c *Cluster, child RelNode, to Trait) RelNode { return nil }
