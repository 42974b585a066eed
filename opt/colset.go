// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"bytes"
	"fmt"
	"math/bits"
)

// ColSet is a set of column ordinals. Ordinals are positions in an
// expression's output row type, starting at zero. The set is a value type;
// mutating methods take a pointer receiver.
//
// The representation is a single machine word, which caps a query at 64
// columns. That is plenty for an optimizer core; widening to a spilled
// representation only changes this file.
type ColSet struct {
	set uint64
}

// MakeColSet returns a set initialized with the given ordinals.
func MakeColSet(cols ...int) ColSet {
	var s ColSet
	for _, c := range cols {
		s.Add(c)
	}
	return s
}

// Add adds the column to the set.
func (s *ColSet) Add(col int) {
	if col < 0 || col >= 64 {
		panic(fmt.Sprintf("column ordinal %d out of range", col))
	}
	s.set |= 1 << uint(col)
}

// Remove removes the column from the set. No-op if not present.
func (s *ColSet) Remove(col int) {
	if col >= 0 && col < 64 {
		s.set &^= 1 << uint(col)
	}
}

// Contains returns true if the set contains the column.
func (s ColSet) Contains(col int) bool {
	return col >= 0 && col < 64 && s.set&(1<<uint(col)) != 0
}

// Empty returns true if the set has no columns.
func (s ColSet) Empty() bool { return s.set == 0 }

// Len returns the number of columns in the set.
func (s ColSet) Len() int { return bits.OnesCount64(s.set) }

// SubsetOf returns true if every column in s is also in other.
func (s ColSet) SubsetOf(other ColSet) bool { return s.set&^other.set == 0 }

// Equals returns true if the two sets contain the same columns.
func (s ColSet) Equals(other ColSet) bool { return s.set == other.set }

// Union returns the union of s and other.
func (s ColSet) Union(other ColSet) ColSet { return ColSet{set: s.set | other.set} }

// Intersection returns the intersection of s and other.
func (s ColSet) Intersection(other ColSet) ColSet { return ColSet{set: s.set & other.set} }

// Ordinals returns the columns in ascending order.
func (s ColSet) Ordinals() []int {
	t := s.set
	r := make([]int, 0, bits.OnesCount64(t))
	for t != 0 {
		i := bits.TrailingZeros64(t)
		r = append(r, i)
		t &^= 1 << uint(i)
	}
	return r
}

// ForEach calls fn for each column in ascending order.
func (s ColSet) ForEach(fn func(col int)) {
	for _, c := range s.Ordinals() {
		fn(c)
	}
}

func (s ColSet) String() string {
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, c := range s.Ordinals() {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%d", c)
	}
	buf.WriteByte(')')
	return buf.String()
}
