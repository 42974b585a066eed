// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package testcat

import (
	"testing"

	"github.com/ldming/volcano/opt"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup(t *testing.T) {
	c := New()

	emp, ok := c.Table("EMP")
	require.True(t, ok)
	require.Equal(t, 14.0, emp.RowCount())
	require.Equal(t, []opt.ColSet{opt.MakeColSet(0)}, emp.UniqueKeys())
	require.Len(t, emp.RowType(), 8)

	dept, ok := c.Table("DEPT")
	require.True(t, ok)
	require.Equal(t, 4.0, dept.RowCount())

	_, ok = c.Table("BONUS")
	require.False(t, ok)
}

func TestCatalogOrdering(t *testing.T) {
	c := New()
	c.AddTable(&Table{TabName: "AAA", Rows: 1})
	require.Equal(t, []string{"AAA", "DEPT", "EMP"}, c.TableNames())

	// Replacing keeps a single entry.
	c.AddTable(&Table{TabName: "AAA", Rows: 2})
	tab, ok := c.Table("AAA")
	require.True(t, ok)
	require.Equal(t, 2.0, tab.RowCount())
	require.Equal(t, []string{"AAA", "DEPT", "EMP"}, c.TableNames())
}
