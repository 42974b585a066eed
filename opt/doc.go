// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

/*
Package opt holds the definitions shared by every layer of the optimizer:
operator tags, column sets, row types, the RelNode interface, the trait
system, the three-component cost, and the per-session cluster.

The optimizer is cost-based and top-down in the Volcano/Cascades family.
Planning starts from a tree of logical relational expressions. The memo
(package memo) folds equivalent expressions into sets, rules (package
xform) derive new equivalent expressions, and physical traits describe
the execution properties - calling convention, sort order - that a parent
may demand of a child. When no expression provides a demanded trait, an
enforcer is inserted by the trait's axis. After the rule queue drains, the
cheapest member that satisfies the requested traits is extracted as the
final plan.

Everything here is owned by a single session. A Cluster, and every
structure hanging off it, must not be shared between concurrently running
optimizations.
*/
package opt
