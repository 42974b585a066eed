// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"bytes"
	"fmt"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// Values produces a fixed list of tuples.
type Values struct {
	base
	tuples [][]scalar.Expr
}

// NewValues constructs a values node with the given tuples, each matching
// rowType.
func NewValues(
	c *opt.Cluster, traits opt.TraitSet, rowType opt.RowType, tuples [][]scalar.Expr,
) *Values {
	return &Values{base: makeBase(c, traits, rowType), tuples: tuples}
}

func (v *Values) Op() opt.Operator { return opt.ValuesOp }

// Tuples returns the produced rows.
func (v *Values) Tuples() [][]scalar.Expr { return v.tuples }

// NumTuples returns the number of rows produced.
func (v *Values) NumTuples() int { return len(v.tuples) }

func (v *Values) Digest() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "values [")
	for i, tuple := range v.tuples {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte('(')
		for j, e := range tuple {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(e.String())
		}
		buf.WriteByte(')')
	}
	buf.WriteByte(']')
	return buf.String()
}

func (v *Values) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Values{base: v.rebase(traits, inputs), tuples: v.tuples}
}
