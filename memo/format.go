// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package memo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// String renders the memo one set per line, live sets only:
//
//	set 0: [scan T {NONE,[]}] [phys-scan T {PHYSICAL,[0 asc nulls-first]}]
func (m *Memo) String() string {
	var buf bytes.Buffer
	for _, set := range m.sets {
		if set.Obsolete() {
			continue
		}
		fmt.Fprintf(&buf, "set %d:", set.id)
		for _, member := range set.members {
			fmt.Fprintf(&buf, " [%s %s]", member.Digest(), member.Traits())
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// FormatTable writes the full diagnostic dump: every live set, subset, and
// member with its best cost. It is attached to invariant-violation errors.
func (m *Memo) FormatTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"set", "subset traits", "best", "best cost", "members"})
	for _, set := range m.sets {
		if set.Obsolete() {
			continue
		}
		for _, sub := range set.subsets {
			best := ""
			if sub.best != nil {
				best = sub.best.Digest()
			}
			var members bytes.Buffer
			for i, member := range sub.Members() {
				if i > 0 {
					members.WriteString("; ")
				}
				members.WriteString(member.Digest())
			}
			table.Append([]string{
				fmt.Sprintf("%d", set.id),
				sub.traits.String(),
				best,
				sub.bestCost.String(),
				members.String(),
			})
		}
	}
	table.Render()
}

// Diagnostic returns the table dump as a string.
func (m *Memo) Diagnostic() string {
	var buf bytes.Buffer
	m.FormatTable(&buf)
	return buf.String()
}
