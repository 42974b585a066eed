// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// Default guesses for predicate selectivity, applied when no statistics
// narrow them down.
const (
	defaultEqSelectivity      = 0.15
	defaultCompSelectivity    = 0.5
	defaultNotNullSelectivity = 0.9
	defaultSelectivity        = 0.25
)

func registerSelectivity(p *TableProvider) {
	// Selectivity depends only on the predicate shape, so one handler covers
	// every operator.
	p.RegisterAny(SelectivityKind, func(q *Query, e opt.RelNode, a Args) interface{} {
		return guessSelectivity(a.Pred())
	})
}

// guessSelectivity estimates the fraction of rows a predicate keeps.
// Conjunctions multiply; disjunctions combine by inclusion-exclusion;
// negation complements.
func guessSelectivity(pred scalar.Expr) float64 {
	if pred == nil {
		return 1
	}
	switch pred.Kind() {
	case scalar.AndKind:
		sel := 1.0
		for _, op := range pred.Operands() {
			sel *= guessSelectivity(op)
		}
		return sel
	case scalar.OrKind:
		sel := 0.0
		for _, op := range pred.Operands() {
			s := guessSelectivity(op)
			sel = sel + s - sel*s
		}
		return sel
	case scalar.NotKind:
		return 1 - guessSelectivity(pred.Operands()[0])
	case scalar.EqKind:
		return defaultEqSelectivity
	case scalar.IsNotNullKind:
		return defaultNotNullSelectivity
	}
	if pred.Kind().IsComparison() {
		return defaultCompSelectivity
	}
	return defaultSelectivity
}
