// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"fmt"

	"github.com/ldming/volcano/cat"
	"github.com/ldming/volcano/opt"
)

// Scan reads all rows of a table.
type Scan struct {
	base
	tab cat.Table
}

// NewScan constructs a scan of tab.
func NewScan(c *opt.Cluster, traits opt.TraitSet, tab cat.Table) *Scan {
	return &Scan{base: makeBase(c, traits, tab.RowType()), tab: tab}
}

func (s *Scan) Op() opt.Operator { return opt.ScanOp }

// Table returns the scanned table.
func (s *Scan) Table() cat.Table { return s.tab }

func (s *Scan) Digest() string {
	return fmt.Sprintf("scan %s", s.tab.Name())
}

func (s *Scan) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Scan{base: s.rebase(traits, inputs), tab: s.tab}
}
