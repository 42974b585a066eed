// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package testcat is an in-memory catalog for tests, preloaded with the
// classic EMP (14 rows) and DEPT (4 rows) tables.
package testcat

import (
	"github.com/google/btree"
	"github.com/ldming/volcano/cat"
	"github.com/ldming/volcano/opt"
)

// Table is a test table: a shape plus declared statistics.
type Table struct {
	TabName string
	Columns opt.RowType
	Rows    float64
	Keys    []opt.ColSet
	Sorted  []opt.Collation
}

var _ cat.Table = (*Table)(nil)

func (t *Table) Name() string                { return t.TabName }
func (t *Table) RowType() opt.RowType        { return t.Columns }
func (t *Table) RowCount() float64           { return t.Rows }
func (t *Table) UniqueKeys() []opt.ColSet    { return t.Keys }
func (t *Table) Collations() []opt.Collation { return t.Sorted }

// tableItem orders tables by name inside the catalog's btree.
type tableItem struct {
	tab *Table
}

func (i tableItem) Less(than btree.Item) bool {
	return i.tab.TabName < than.(tableItem).tab.TabName
}

// Catalog is an ordered in-memory table registry.
type Catalog struct {
	tables *btree.BTree
}

var _ cat.Catalog = (*Catalog)(nil)

// New returns a catalog holding EMP and DEPT.
func New() *Catalog {
	c := &Catalog{tables: btree.New(8)}
	c.AddTable(&Table{
		TabName: "EMP",
		Columns: opt.RowType{
			{Name: "empno", Kind: opt.IntType},
			{Name: "ename", Kind: opt.StringType},
			{Name: "job", Kind: opt.StringType},
			{Name: "mgr", Kind: opt.IntType, Nullable: true},
			{Name: "hiredate", Kind: opt.DateType},
			{Name: "sal", Kind: opt.IntType},
			{Name: "comm", Kind: opt.IntType, Nullable: true},
			{Name: "deptno", Kind: opt.IntType},
		},
		Rows: 14,
		Keys: []opt.ColSet{opt.MakeColSet(0)},
	})
	c.AddTable(&Table{
		TabName: "DEPT",
		Columns: opt.RowType{
			{Name: "deptno", Kind: opt.IntType},
			{Name: "dname", Kind: opt.StringType},
		},
		Rows: 4,
		Keys: []opt.ColSet{opt.MakeColSet(0)},
	})
	return c
}

// AddTable registers or replaces a table.
func (c *Catalog) AddTable(t *Table) {
	c.tables.ReplaceOrInsert(tableItem{tab: t})
}

// Table implements cat.Catalog.
func (c *Catalog) Table(name string) (cat.Table, bool) {
	item := c.tables.Get(tableItem{tab: &Table{TabName: name}})
	if item == nil {
		return nil, false
	}
	return item.(tableItem).tab, true
}

// TableNames returns every table name in lexical order.
func (c *Catalog) TableNames() []string {
	var names []string
	c.tables.Ascend(func(item btree.Item) bool {
		names = append(names, item.(tableItem).tab.TabName)
		return true
	})
	return names
}
