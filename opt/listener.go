// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

// Listener receives synchronous callbacks during optimization. Callbacks
// run on the session goroutine; a slow listener slows the session.
type Listener interface {
	// RuleAttempted fires before a rule's action runs on a match.
	RuleAttempted(rule string, rel RelNode)

	// RuleProduction fires for each expression a rule produces, after it has
	// been registered.
	RuleProduction(rule string, rel RelNode)

	// RelEquivalenceFound fires when a produced expression turns out to be
	// structurally equal to an already registered one.
	RelEquivalenceFound(rel, equivTo RelNode)

	// RelDiscarded fires when an expression's equivalence set is merged away
	// and the expression is re-homed.
	RelDiscarded(rel RelNode)
}

// NoopListener implements Listener with empty methods, for embedding.
type NoopListener struct{}

func (NoopListener) RuleAttempted(string, RelNode)       {}
func (NoopListener) RuleProduction(string, RelNode)      {}
func (NoopListener) RelEquivalenceFound(RelNode, RelNode) {}
func (NoopListener) RelDiscarded(RelNode)                {}
