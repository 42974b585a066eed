// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package metadata derives facts about relational expressions: row counts,
// costs, orderings, keys, predicates. Derivation is pluggable: a provider
// maps (metadata kind, operator variant) to a handler function, providers
// chain, and a caching wrapper memoizes results against the memo's
// structural timestamp.
//
// Handlers may issue further metadata queries re-entrantly. Everything runs
// on the session goroutine; nothing here is safe for concurrent use.
package metadata

import (
	"fmt"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// Kind identifies one metadata capability.
type Kind uint8

const (
	RowCountKind Kind = iota
	MaxRowCountKind
	CumulativeCostKind
	SelectivityKind
	DistinctRowCountKind
	UniqueKeysKind
	ColumnOriginsKind
	CollationsKind
	PredicatesKind
	AverageColumnSizesKind
	MemoryKind
	SplitCountKind
	IsPhaseTransitionKind

	NumKinds
)

var kindNames = [NumKinds]string{
	RowCountKind:           "rowCount",
	MaxRowCountKind:        "maxRowCount",
	CumulativeCostKind:     "cumulativeCost",
	SelectivityKind:        "selectivity",
	DistinctRowCountKind:   "distinctRowCount",
	UniqueKeysKind:         "uniqueKeys",
	ColumnOriginsKind:      "columnOrigins",
	CollationsKind:         "collations",
	PredicatesKind:         "predicates",
	AverageColumnSizesKind: "averageColumnSizes",
	MemoryKind:             "memory",
	SplitCountKind:         "splitCount",
	IsPhaseTransitionKind:  "isPhaseTransition",
}

func (k Kind) String() string { return kindNames[k] }

// Args packs the optional arguments of a metadata query. The zero value
// means "no arguments"; the tag bits record which fields are meaningful so
// that cache keys distinguish a missing argument from a zero one.
type Args struct {
	tags uint8
	col  int
	cols opt.ColSet
	pred scalar.Expr
}

const (
	argCol uint8 = 1 << iota
	argCols
	argPred
)

// NoArgs is the empty argument pack.
func NoArgs() Args { return Args{} }

// ColArg packs a single column ordinal.
func ColArg(col int) Args { return Args{tags: argCol, col: col} }

// ColsArg packs a column set.
func ColsArg(cols opt.ColSet) Args { return Args{tags: argCols, cols: cols} }

// ColsPredArg packs a column set and an optional predicate.
func ColsPredArg(cols opt.ColSet, pred scalar.Expr) Args {
	return Args{tags: argCols | argPred, cols: cols, pred: pred}
}

// PredArg packs an optional predicate.
func PredArg(pred scalar.Expr) Args { return Args{tags: argPred, pred: pred} }

// Col returns the packed column ordinal.
func (a Args) Col() int { return a.col }

// Cols returns the packed column set.
func (a Args) Cols() opt.ColSet { return a.cols }

// Pred returns the packed predicate; may be nil.
func (a Args) Pred() scalar.Expr { return a.pred }

// key renders the arguments canonically for cache keys. A nil predicate is
// distinguished from an absent one.
func (a Args) key() string {
	s := ""
	if a.tags&argCol != 0 {
		s += fmt.Sprintf("c%d;", a.col)
	}
	if a.tags&argCols != 0 {
		s += "s" + a.cols.String() + ";"
	}
	if a.tags&argPred != 0 {
		if a.pred == nil {
			s += "p<nil>;"
		} else {
			s += "p" + a.pred.String() + ";"
		}
	}
	return s
}

// Handler computes one metadata kind for one expression. A nil result
// means the metadata is unknown; unknown is never an error.
type Handler func(q *Query, e opt.RelNode, a Args) interface{}

// Provider resolves a handler for a (kind, operator) pair, or nil if it
// has none.
type Provider interface {
	Handler(kind Kind, op opt.Operator) Handler
}

type providerKey struct {
	kind Kind
	op   opt.Operator
}

// TableProvider dispatches through an explicit (kind, operator) table,
// populated at registration time. A handler registered for UnknownOp acts
// as the wildcard fallback for its kind; exact registrations win, most
// specific variant first.
type TableProvider struct {
	handlers map[providerKey]Handler
}

// NewTableProvider returns an empty provider.
func NewTableProvider() *TableProvider {
	return &TableProvider{handlers: make(map[providerKey]Handler)}
}

// Register installs a handler for the exact operator variant.
func (p *TableProvider) Register(kind Kind, op opt.Operator, h Handler) {
	p.handlers[providerKey{kind: kind, op: op}] = h
}

// RegisterMany installs one handler for several variants.
func (p *TableProvider) RegisterMany(kind Kind, ops []opt.Operator, h Handler) {
	for _, op := range ops {
		p.Register(kind, op, h)
	}
}

// RegisterAny installs the wildcard fallback for a kind.
func (p *TableProvider) RegisterAny(kind Kind, h Handler) {
	p.Register(kind, opt.UnknownOp, h)
}

// Handler implements Provider.
func (p *TableProvider) Handler(kind Kind, op opt.Operator) Handler {
	if h, ok := p.handlers[providerKey{kind: kind, op: op}]; ok {
		return h
	}
	if h, ok := p.handlers[providerKey{kind: kind, op: opt.UnknownOp}]; ok {
		return h
	}
	return nil
}

// chainProvider tries each provider in order; the first that supplies a
// handler for the pair wins.
type chainProvider struct {
	providers []Provider
}

// Chain composes providers; earlier providers shadow later ones.
func Chain(providers ...Provider) Provider {
	return &chainProvider{providers: providers}
}

func (c *chainProvider) Handler(kind Kind, op opt.Operator) Handler {
	for _, p := range c.providers {
		if h := p.Handler(kind, op); h != nil {
			return h
		}
	}
	return nil
}
