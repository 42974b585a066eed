// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package rel

import (
	"bytes"
	"fmt"

	"github.com/ldming/volcano/opt"
)

// AggFunc names an aggregation function.
type AggFunc uint8

const (
	CountFunc AggFunc = iota
	SumFunc
	MinFunc
	MaxFunc
	AvgFunc
)

var aggFuncNames = [...]string{
	CountFunc: "count",
	SumFunc:   "sum",
	MinFunc:   "min",
	MaxFunc:   "max",
	AvgFunc:   "avg",
}

func (f AggFunc) String() string { return aggFuncNames[f] }

// AggCall is one aggregation in an Aggregate's output.
type AggCall struct {
	Func AggFunc
	// Arg is the input column ordinal aggregated over, or -1 for count(*).
	Arg      int
	Distinct bool
	// Name labels the output column.
	Name string
}

func (a AggCall) String() string {
	arg := "*"
	if a.Arg >= 0 {
		arg = fmt.Sprintf("$%d", a.Arg)
	}
	if a.Distinct {
		arg = "distinct " + arg
	}
	return fmt.Sprintf("%s(%s)", a.Func, arg)
}

// resultKind returns the output type of the aggregation.
func (a AggCall) resultKind(input opt.RowType) opt.TypeKind {
	switch a.Func {
	case CountFunc:
		return opt.BigIntType
	case AvgFunc:
		return opt.FloatType
	default:
		return input[a.Arg].Kind
	}
}

// Aggregate groups the input by a set of key columns and computes one
// aggregation per call. The output starts with the group key columns in
// ascending ordinal order, followed by the aggregations.
type Aggregate struct {
	base
	groupKeys opt.ColSet
	aggs      []AggCall
}

// NewAggregate constructs an aggregation of input.
func NewAggregate(
	c *opt.Cluster, traits opt.TraitSet, input opt.RelNode, groupKeys opt.ColSet, aggs []AggCall,
) *Aggregate {
	in := input.RowType()
	rowType := make(opt.RowType, 0, groupKeys.Len()+len(aggs))
	for _, ord := range groupKeys.Ordinals() {
		rowType = append(rowType, in[ord])
	}
	for _, agg := range aggs {
		rowType = append(rowType, opt.Column{Name: agg.Name, Kind: agg.resultKind(in), Nullable: false})
	}
	b := makeBase(c, traits, rowType, input)
	return &Aggregate{base: b, groupKeys: groupKeys, aggs: aggs}
}

func (a *Aggregate) Op() opt.Operator { return opt.AggregateOp }

// GroupKeys returns the set of input ordinals grouped on.
func (a *Aggregate) GroupKeys() opt.ColSet { return a.groupKeys }

// AggCalls returns the aggregations.
func (a *Aggregate) AggCalls() []AggCall { return a.aggs }

func (a *Aggregate) Digest() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "aggregate %s [", a.groupKeys)
	for i, agg := range a.aggs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(agg.String())
	}
	buf.WriteByte(']')
	return buf.String()
}

func (a *Aggregate) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	return &Aggregate{base: a.rebase(traits, inputs), groupKeys: a.groupKeys, aggs: a.aggs}
}
