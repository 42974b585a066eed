// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package cat is the narrow catalog contract the optimizer consumes. The
// optimizer never reads data; it needs only shapes and statistics for the
// tables a scan references.
package cat

import "github.com/ldming/volcano/opt"

// Catalog resolves table names for scans. Implementations are supplied by
// the embedding system; testutils/testcat provides an in-memory one.
type Catalog interface {
	// Table returns the named table, or false if it does not exist.
	Table(name string) (Table, bool)
}

// Table is a data source that provides rows.
type Table interface {
	// Name returns the table's name, used in digests and column origins.
	Name() string

	// RowType describes the table's columns.
	RowType() opt.RowType

	// RowCount estimates the number of rows in the table.
	RowCount() float64

	// UniqueKeys returns the sets of column ordinals known to be unique,
	// primary key included.
	UniqueKeys() []opt.ColSet

	// Collations returns the sort orders the table's rows are stored in. A
	// scan of the table provides these orderings for free.
	Collations() []opt.Collation
}
