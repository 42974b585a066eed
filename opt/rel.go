// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"bytes"
	"fmt"
)

// RelID identifies a relational expression within its session. IDs are
// assigned by the cluster, monotonically, and stay unique and valid for the
// session's lifetime.
type RelID int32

// RelNode is a relational expression: a node in a logical or physical plan
// tree. Nodes are immutable once registered with a memo; the memo replaces
// each input with the subset the input maps to.
type RelNode interface {
	// ID returns the session-unique identity of this node.
	ID() RelID

	// Op returns the variant tag.
	Op() Operator

	// Traits returns the node's physical trait set.
	Traits() TraitSet

	// RowType describes the rows the node produces.
	RowType() RowType

	// Inputs returns the ordered child references. After registration the
	// children are always memo subsets.
	Inputs() []RelNode

	// Digest returns the structural digest of the node excluding children:
	// the variant tag plus any operator-specific payload. The memo combines
	// it with the canonical child subset keys to deduplicate expressions.
	Digest() string

	// Copy returns a new node (with a fresh ID) identical to this one except
	// for the given traits and inputs.
	Copy(traits TraitSet, inputs []RelNode) RelNode

	// SelfCost estimates the cost of executing this node once, excluding its
	// inputs. Variants without a better idea return unit cost.
	SelfCost() Cost
}

// UnitCost is the self-cost assumed for operators that provide no estimate.
var UnitCost = Cost{Rows: 1, CPU: 1, IO: 1}

// FormatRel renders a plan tree as indented text, one node per line. Memo
// subsets encountered as children are rendered through their digest.
func FormatRel(n RelNode) string {
	var buf bytes.Buffer
	formatRel(&buf, n, 0)
	return buf.String()
}

func formatRel(buf *bytes.Buffer, n RelNode, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
	fmt.Fprintf(buf, "%s %s\n", n.Digest(), n.Traits())
	for _, in := range n.Inputs() {
		formatRel(buf, in, depth+1)
	}
}
