// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package scalar is the expression language carried inside filters,
// projections, and join conditions. The optimizer never evaluates these
// expressions; it only introspects them: operator kind, operand list,
// input references, literal values.
package scalar

import (
	"bytes"
	"fmt"

	"github.com/ldming/volcano/opt"
)

// Kind tags a scalar expression variant.
type Kind uint8

const (
	UnknownKind Kind = iota

	// InputRefKind is a reference to a column of the relational input.
	InputRefKind

	// LiteralKind is a constant value.
	LiteralKind

	// Comparisons.
	EqKind
	NeKind
	LtKind
	LeKind
	GtKind
	GeKind

	// Boolean connectives.
	AndKind
	OrKind
	NotKind

	// Null tests.
	IsNullKind
	IsNotNullKind

	// Arithmetic, present so projections can be non-trivial.
	PlusKind
	MinusKind
	MultKind
	DivKind
)

var kindNames = [...]string{
	UnknownKind:   "unknown",
	InputRefKind:  "ref",
	LiteralKind:   "lit",
	EqKind:        "=",
	NeKind:        "!=",
	LtKind:        "<",
	LeKind:        "<=",
	GtKind:        ">",
	GeKind:        ">=",
	AndKind:       "and",
	OrKind:        "or",
	NotKind:       "not",
	IsNullKind:    "is-null",
	IsNotNullKind: "is-not-null",
	PlusKind:      "+",
	MinusKind:     "-",
	MultKind:      "*",
	DivKind:       "/",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindNames[k]
}

// IsComparison returns true for the binary comparison kinds other than
// equality.
func (k Kind) IsComparison() bool {
	switch k {
	case NeKind, LtKind, LeKind, GtKind, GeKind:
		return true
	}
	return false
}

// Expr is a scalar expression node.
type Expr interface {
	Kind() Kind
	Operands() []Expr
	String() string
}

// InputRef references the column at the given ordinal of the relational
// input row.
type InputRef struct {
	Index int
}

// NewInputRef returns a reference to input column ord.
func NewInputRef(ord int) *InputRef { return &InputRef{Index: ord} }

func (r *InputRef) Kind() Kind       { return InputRefKind }
func (r *InputRef) Operands() []Expr { return nil }
func (r *InputRef) String() string   { return fmt.Sprintf("$%d", r.Index) }

// Literal is a constant value. The optimizer treats the value as opaque
// except for equality and formatting.
type Literal struct {
	Value interface{}
}

// NewLiteral returns a literal holding v.
func NewLiteral(v interface{}) *Literal { return &Literal{Value: v} }

func (l *Literal) Kind() Kind       { return LiteralKind }
func (l *Literal) Operands() []Expr { return nil }
func (l *Literal) String() string   { return fmt.Sprintf("%v", l.Value) }

// Call is a non-leaf expression: a kind applied to operands.
type Call struct {
	kind     Kind
	operands []Expr
}

// NewCall builds a call of the given kind.
func NewCall(kind Kind, operands ...Expr) *Call {
	return &Call{kind: kind, operands: operands}
}

func (c *Call) Kind() Kind       { return c.kind }
func (c *Call) Operands() []Expr { return c.operands }

func (c *Call) String() string {
	var buf bytes.Buffer
	buf.WriteString(c.kind.String())
	buf.WriteByte('(')
	for i, op := range c.operands {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(op.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// Shorthand constructors for the common shapes used in rules and tests.

// Eq returns left = right.
func Eq(left, right Expr) Expr { return NewCall(EqKind, left, right) }

// Lt returns left < right.
func Lt(left, right Expr) Expr { return NewCall(LtKind, left, right) }

// And returns the conjunction of the operands.
func And(operands ...Expr) Expr { return NewCall(AndKind, operands...) }

// Or returns the disjunction of the operands.
func Or(operands ...Expr) Expr { return NewCall(OrKind, operands...) }

// Not returns the negation of e.
func Not(e Expr) Expr { return NewCall(NotKind, e) }

// IsNotNull returns the null test on e.
func IsNotNull(e Expr) Expr { return NewCall(IsNotNullKind, e) }

// InputRefs returns the set of input column ordinals referenced anywhere
// in e.
func InputRefs(e Expr) opt.ColSet {
	var set opt.ColSet
	addInputRefs(e, &set)
	return set
}

func addInputRefs(e Expr, set *opt.ColSet) {
	if r, ok := e.(*InputRef); ok {
		set.Add(r.Index)
		return
	}
	for _, op := range e.Operands() {
		addInputRefs(op, set)
	}
}

// Conjuncts splits a predicate into its top-level AND components.
func Conjuncts(e Expr) []Expr {
	if e == nil {
		return nil
	}
	if e.Kind() != AndKind {
		return []Expr{e}
	}
	var out []Expr
	for _, op := range e.Operands() {
		out = append(out, Conjuncts(op)...)
	}
	return out
}

// IdentityMap inspects a projection list. The i-th entry of the result is
// the input ordinal the i-th projection passes through unchanged, or -1 if
// the projection is a derived expression.
func IdentityMap(projections []Expr) []int {
	out := make([]int, len(projections))
	for i, p := range projections {
		if r, ok := p.(*InputRef); ok {
			out[i] = r.Index
		} else {
			out[i] = -1
		}
	}
	return out
}

// RemapOrdinal runs an input ordinal forward through an identity map,
// returning the output position that passes the column through, or -1 if
// no projection does.
func RemapOrdinal(identity []int, inputOrd int) int {
	for outOrd, inOrd := range identity {
		if inOrd == inputOrd {
			return outOrd
		}
	}
	return -1
}
