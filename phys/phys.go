// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package phys is a reference physical backend: one calling convention and
// the physical counterparts of scan, project, aggregate, and sort, each a
// unit-cost re-tagging of its logical node. It exists so a session can be
// driven end to end; real engines supply their own conventions the same
// way.
package phys

import (
	"fmt"

	"github.com/ldming/volcano/cat"
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/scalar"
)

// Convention tags expressions executable by this backend.
const Convention opt.Convention = "PHYSICAL"

// Scan is the physical table scan. It provides the table's declared
// collation.
type Scan struct {
	rel.Scan
}

// NewScan constructs a physical scan.
func NewScan(c *opt.Cluster, traits opt.TraitSet, tab cat.Table) *Scan {
	return &Scan{Scan: *rel.NewScan(c, traits, tab)}
}

func (s *Scan) Op() opt.Operator { return opt.PhysScanOp }

func (s *Scan) Digest() string { return fmt.Sprintf("phys-scan %s", s.Table().Name()) }

func (s *Scan) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Scan{Scan: *s.Scan.Copy(traits, inputs).(*rel.Scan)}
}

// Project is the physical projection. It passes through whatever ordering
// survives its identity columns.
type Project struct {
	rel.Project
}

// NewProject constructs a physical projection.
func NewProject(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, projections []scalar.Expr, rowType opt.RowType,
) *Project {
	return &Project{Project: *rel.NewProject(c, traits, input, projections, rowType)}
}

func (p *Project) Op() opt.Operator { return opt.PhysProjectOp }

func (p *Project) Digest() string { return "phys-" + p.Project.Digest() }

func (p *Project) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Project{Project: *p.Project.Copy(traits, inputs).(*rel.Project)}
}

// Aggregate is the physical stream aggregate. It requires its input sorted
// on the group keys.
type Aggregate struct {
	rel.Aggregate
}

// NewAggregate constructs a physical aggregate.
func NewAggregate(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, groupKeys opt.ColSet, aggs []rel.AggCall,
) *Aggregate {
	return &Aggregate{Aggregate: *rel.NewAggregate(c, traits, input, groupKeys, aggs)}
}

func (a *Aggregate) Op() opt.Operator { return opt.PhysAggregateOp }

func (a *Aggregate) Digest() string { return "phys-" + a.Aggregate.Digest() }

func (a *Aggregate) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Aggregate{Aggregate: *a.Aggregate.Copy(traits, inputs).(*rel.Aggregate)}
}

// Sort is the physical sort.
type Sort struct {
	rel.Sort
}

// NewSort constructs a physical sort.
func NewSort(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, collation opt.Collation, offset, fetch int64,
) *Sort {
	return &Sort{Sort: *rel.NewSort(c, traits, input, collation, offset, fetch)}
}

func (s *Sort) Op() opt.Operator { return opt.PhysSortOp }

func (s *Sort) Digest() string { return "phys-" + s.Sort.Digest() }

func (s *Sort) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Sort{Sort: *s.Sort.Copy(traits, inputs).(*rel.Sort)}
}
