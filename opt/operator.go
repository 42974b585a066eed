// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import "fmt"

// Operator is the variant tag of a relational expression. Every node in a
// plan tree, logical or physical, carries exactly one Operator value.
type Operator uint8

const (
	UnknownOp Operator = iota

	// -- Logical relational operators --

	ScanOp
	FilterOp
	ProjectOp
	JoinOp
	AggregateOp
	UnionOp
	IntersectOp
	ExceptOp
	SortOp
	ValuesOp

	// -- Synthetic operators owned by the memo --

	// SubsetOp tags the subset placeholders that stand in for the inputs of
	// every registered expression.
	SubsetOp

	// AbstractConverterOp tags the placeholder expression that requests a
	// trait conversion which has not yet been expanded into enforcers.
	AbstractConverterOp

	// -- Reference physical convention --

	PhysScanOp
	PhysProjectOp
	PhysAggregateOp
	PhysSortOp

	// NumOperators must be last.
	NumOperators
)

// operatorInfo stores static information about an operator.
type operatorInfo struct {
	// name of the operator, used when printing expressions and digests.
	name string
}

// operatorTab stores static information about all operators.
var operatorTab = [NumOperators]operatorInfo{
	UnknownOp:           {name: "unknown"},
	ScanOp:              {name: "scan"},
	FilterOp:            {name: "filter"},
	ProjectOp:           {name: "project"},
	JoinOp:              {name: "join"},
	AggregateOp:         {name: "aggregate"},
	UnionOp:             {name: "union"},
	IntersectOp:         {name: "intersect"},
	ExceptOp:            {name: "except"},
	SortOp:              {name: "sort"},
	ValuesOp:            {name: "values"},
	SubsetOp:            {name: "subset"},
	AbstractConverterOp: {name: "abstract-converter"},
	PhysScanOp:          {name: "phys-scan"},
	PhysProjectOp:       {name: "phys-project"},
	PhysAggregateOp:     {name: "phys-aggregate"},
	PhysSortOp:          {name: "phys-sort"},
}

func (op Operator) String() string {
	if op >= NumOperators {
		return fmt.Sprintf("operator(%d)", op)
	}
	return operatorTab[op].name
}

// IsLogical returns true if the operator belongs to the logical algebra, as
// opposed to a physical implementation or a memo-internal placeholder.
func (op Operator) IsLogical() bool {
	return op >= ScanOp && op <= ValuesOp
}

// IsSynthetic returns true for operators created by the memo itself rather
// than by the caller or by rules.
func (op Operator) IsSynthetic() bool {
	return op == SubsetOp || op == AbstractConverterOp
}
