// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"bytes"
	"fmt"
)

// Direction is the direction of one sort key.
type Direction uint8

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// NullOrdering places nulls relative to non-null values in one sort key.
type NullOrdering uint8

const (
	NullsFirst NullOrdering = iota
	NullsLast
)

func (n NullOrdering) String() string {
	if n == NullsLast {
		return "nulls-last"
	}
	return "nulls-first"
}

// FieldCollation is one sort key: a column ordinal, a direction, and a null
// placement.
type FieldCollation struct {
	Col       int
	Direction Direction
	Nulls     NullOrdering
}

func (f FieldCollation) String() string {
	return fmt.Sprintf("%d %s %s", f.Col, f.Direction, f.Nulls)
}

// Collation is an ordered list of sort keys. The empty collation promises
// nothing and is the axis default.
type Collation struct {
	Fields []FieldCollation
}

// EmptyCollation promises no ordering.
var EmptyCollation = Collation{}

// MakeCollation returns a collation over the given fields.
func MakeCollation(fields ...FieldCollation) Collation {
	return Collation{Fields: fields}
}

// Asc is shorthand for an ascending nulls-first sort key on col.
func Asc(col int) FieldCollation {
	return FieldCollation{Col: col, Direction: Ascending, Nulls: NullsFirst}
}

// Empty returns true if the collation has no sort keys.
func (c Collation) Empty() bool { return len(c.Fields) == 0 }

// Equal implements Trait.
func (c Collation) Equal(other Trait) bool {
	o, ok := other.(Collation)
	if !ok || len(c.Fields) != len(o.Fields) {
		return false
	}
	for i := range c.Fields {
		if c.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if other's fields are a prefix of c's fields. Rows
// sorted by (a, b) are also sorted by (a), so a longer collation satisfies
// every prefix of itself.
func (c Collation) HasPrefix(other Collation) bool {
	if len(other.Fields) > len(c.Fields) {
		return false
	}
	for i := range other.Fields {
		if c.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

func (c Collation) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, f := range c.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(f.String())
	}
	buf.WriteByte(']')
	return buf.String()
}
