// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package xform

import (
	"github.com/ldming/volcano/metadata"
	"github.com/ldming/volcano/opt"
)

// Rule is a local, equivalence-preserving rewrite. The operand tree
// describes what shapes the rule fires on; OnMatch produces equivalent
// expressions through the rule call.
type Rule interface {
	// Name identifies the rule in traces, errors, and listener callbacks.
	Name() string

	// Operand returns the root of the rule's operand pattern.
	Operand() *Operand

	// Matches is the side condition, called after the operands have bound.
	Matches(call *RuleCall) bool

	// OnMatch performs the rewrite. Expressions handed to
	// call.TransformTo take effect only if OnMatch returns nil.
	OnMatch(call *RuleCall) error
}

// Operand is one node of a rule's pattern: an operator to match, an
// optional extra predicate, and the pattern for the children. A nil
// Children list leaves the children unconstrained; an Any child matches
// any subset without descending into it.
type Operand struct {
	op        opt.Operator
	predicate func(opt.RelNode) bool
	children  []*Operand
	any       bool

	// Assigned when the rule is registered.
	rule     *registeredRule
	ordinal  int
	parent   *Operand
	childIdx int
}

// NewOperand builds a pattern node matching the given operator with the
// given child patterns. With no children the operand matches regardless of
// the expression's inputs.
func NewOperand(op opt.Operator, children ...*Operand) *Operand {
	return &Operand{op: op, children: children}
}

// NewOperandWithPredicate is NewOperand with an extra per-node side
// condition.
func NewOperandWithPredicate(
	op opt.Operator, predicate func(opt.RelNode) bool, children ...*Operand,
) *Operand {
	return &Operand{op: op, predicate: predicate, children: children}
}

// AnyOperand matches any child subset and stops the descent there.
func AnyOperand() *Operand {
	return &Operand{any: true}
}

// matches reports whether the operand accepts the expression.
func (o *Operand) matches(e opt.RelNode) bool {
	if o.any {
		return true
	}
	if o.op != e.Op() {
		return false
	}
	return o.predicate == nil || o.predicate(e)
}

// registeredRule is a rule plus the state derived at registration time.
type registeredRule struct {
	rule Rule
	// operands lists the binding (non-Any) operands in preorder; the root is
	// operands[0].
	operands []*Operand
}

// flattenRule assigns ordinals to the binding operands of a rule's pattern.
func flattenRule(r Rule) *registeredRule {
	rr := &registeredRule{rule: r}
	var walk func(o, parent *Operand, childIdx int)
	walk = func(o, parent *Operand, childIdx int) {
		if o.any {
			return
		}
		o.rule = rr
		o.parent = parent
		o.childIdx = childIdx
		o.ordinal = len(rr.operands)
		rr.operands = append(rr.operands, o)
		for i, child := range o.children {
			walk(child, o, i)
		}
	}
	walk(r.Operand(), nil, 0)
	return rr
}

// Equiv is an explicit equivalence handed to TransformTo: Expr is known to
// be equivalent to EquivTo, which may belong to a different set.
type Equiv struct {
	Expr    opt.RelNode
	EquivTo opt.RelNode
}

// RuleCall carries one firing of a rule: the bound expressions plus the
// staging area for produced equivalences. Expressions handed to
// TransformTo are staged and committed only after OnMatch returns success,
// so a failing rule registers none of them. Convert is not staged: the
// subsets and abstract converters it creates stay in the memo even when
// OnMatch then fails.
type RuleCall struct {
	o      *Optimizer
	rule   *registeredRule
	rels   []opt.RelNode
	staged []stagedTransform
}

type stagedTransform struct {
	expr   opt.RelNode
	equivs []Equiv
}

// Rule returns the firing rule.
func (c *RuleCall) Rule() Rule { return c.rule.rule }

// Rel returns the expression bound to the i-th operand. Operand 0 is the
// root of the pattern.
func (c *RuleCall) Rel(i int) opt.RelNode { return c.rels[i] }

// Cluster returns the session.
func (c *RuleCall) Cluster() *opt.Cluster { return c.o.cluster }

// Metadata returns the session's metadata query.
func (c *RuleCall) Metadata() *metadata.Query { return c.o.mq }

// EmptyTraits returns the default trait set.
func (c *RuleCall) EmptyTraits() opt.TraitSet { return c.o.cluster.EmptyTraitSet() }

// TransformTo declares expr equivalent to the matched root. Before
// registration the driver propagates the root's traits onto axes expr
// leaves at their default, registers the explicit equivalences first, and
// then registers expr into the root's set.
func (c *RuleCall) TransformTo(expr opt.RelNode, equivs ...Equiv) {
	c.staged = append(c.staged, stagedTransform{expr: expr, equivs: equivs})
}

// Convert returns the subset of input's set carrying the given traits,
// creating it (and its abstract converters) if needed. Rules use it to
// demand traits of a child before building on top of it.
func (c *RuleCall) Convert(input opt.RelNode, traits opt.TraitSet) opt.RelNode {
	return c.o.mem.ChangeTraits(input, traits)
}
