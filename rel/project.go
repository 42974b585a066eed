// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"bytes"

	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// Project computes one output column per projection expression.
type Project struct {
	base
	projections []scalar.Expr
}

// NewProject constructs a projection of input. rowType names and types the
// output columns; it must have one column per projection.
func NewProject(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, projections []scalar.Expr, rowType opt.RowType,
) *Project {
	b := makeBase(c, traits, rowType, input)
	return &Project{base: b, projections: projections}
}

// NewProjectOrdinals constructs a pure column-permuting projection of the
// given input ordinals.
func NewProjectOrdinals(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, ordinals []int,
) *Project {
	projections := make([]scalar.Expr, len(ordinals))
	for i, ord := range ordinals {
		projections[i] = scalar.NewInputRef(ord)
	}
	return NewProject(c, traits, input, projections, input.RowType().Project(ordinals))
}

func (p *Project) Op() opt.Operator { return opt.ProjectOp }

// Projections returns the output expressions.
func (p *Project) Projections() []scalar.Expr { return p.projections }

// IdentityMap maps each output ordinal to the input ordinal it passes
// through, or -1 for derived expressions.
func (p *Project) IdentityMap() []int { return scalar.IdentityMap(p.projections) }

func (p *Project) Digest() string {
	var buf bytes.Buffer
	buf.WriteString("project [")
	for i, e := range p.projections {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(e.String())
	}
	buf.WriteByte(']')
	return buf.String()
}

func (p *Project) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Project{base: p.rebase(traits, inputs), projections: p.projections}
}
