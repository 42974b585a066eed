// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import "github.com/cockroachdb/errors"

// Sentinel errors for the failure modes surfaced by an optimization
// session. Detect them with errors.Is; wrapped variants carry the context.
var (
	// ErrNoPlanFound reports that the target subset has no feasible complete
	// plan.
	ErrNoPlanFound = errors.New("no plan found")

	// ErrCancelled reports that the session stopped on request before any
	// plan was found.
	ErrCancelled = errors.New("optimization cancelled")

	// ErrInfeasibleConversion reports that an enforcer refused to
	// materialize a trait.
	ErrInfeasibleConversion = errors.New("infeasible trait conversion")

	// ErrRuleFailed marks errors raised from within a rule's action.
	ErrRuleFailed = errors.New("rule failed")
)

// RuleError wraps an error raised by the named rule's action. The result
// matches ErrRuleFailed and preserves cause for errors.Is/As.
func RuleError(rule string, cause error) error {
	return errors.Mark(errors.Wrapf(cause, "applying rule %s", rule), ErrRuleFailed)
}

// NoPlanError builds the error reported when the subset described by
// traits has no feasible member.
func NoPlanError(traits TraitSet) error {
	return errors.Wrapf(ErrNoPlanFound, "required traits %s", traits)
}

// InfeasibleConversionError reports that axis cannot convert from one trait
// to another.
func InfeasibleConversionError(axis Axis, from, to Trait) error {
	return errors.Wrapf(ErrInfeasibleConversion, "axis %s: %s -> %s", axis.Name(), from, to)
}
