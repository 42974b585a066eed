// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"bytes"
	"fmt"

	"golang.org/x/exp/slices"
)

// TypeKind is a coarse SQL type family. The optimizer never evaluates
// values; types matter only for row-type equality and size estimation.
type TypeKind uint8

const (
	UnknownType TypeKind = iota
	BoolType
	IntType
	BigIntType
	FloatType
	StringType
	DateType
	TimestampType
)

var typeNames = [...]string{
	UnknownType:   "unknown",
	BoolType:      "bool",
	IntType:       "int",
	BigIntType:    "bigint",
	FloatType:     "float",
	StringType:    "string",
	DateType:      "date",
	TimestampType: "timestamp",
}

func (t TypeKind) String() string {
	if int(t) >= len(typeNames) {
		return fmt.Sprintf("type(%d)", t)
	}
	return typeNames[t]
}

// Column is one field of a row type.
type Column struct {
	Name     string
	Kind     TypeKind
	Nullable bool
}

// RowType is the ordered list of output columns of a relational expression.
type RowType []Column

// Equal returns true if the two row types have the same columns in the same
// order. Names participate in equality, matching structural digests.
func (rt RowType) Equal(other RowType) bool {
	return slices.Equal(rt, other)
}

// Concat returns the row type formed by appending other's columns, as
// produced by a join.
func (rt RowType) Concat(other RowType) RowType {
	out := make(RowType, 0, len(rt)+len(other))
	out = append(out, rt...)
	out = append(out, other...)
	return out
}

// Project returns the row type holding the columns at the given ordinals.
func (rt RowType) Project(ordinals []int) RowType {
	out := make(RowType, len(ordinals))
	for i, ord := range ordinals {
		out[i] = rt[ord]
	}
	return out
}

func (rt RowType) String() string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, c := range rt {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s %s", c.Name, c.Kind)
		if c.Nullable {
			buf.WriteString(" null")
		}
	}
	buf.WriteByte(')')
	return buf.String()
}
