// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package phys

import (
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/rel"
	"github.com/ldming/volcano/xform"
)

// Rules returns the implementation rules of the reference backend, plus
// nothing else: the conversion-expansion rule is registered separately by
// the session.
func Rules() []xform.Rule {
	return []xform.Rule{ScanRule, ProjectRule, AggregateRule, SortRule}
}

// physTraits is the backend's base trait set.
func physTraits(call *xform.RuleCall) opt.TraitSet {
	return call.EmptyTraits().Replace(opt.ConventionAxis, Convention)
}

// scanRule implements a logical scan as a physical scan carrying the
// table's declared collation.
type scanRule struct{}

// ScanRule implements logical scans.
var ScanRule xform.Rule = scanRule{}

func (scanRule) Name() string              { return "PhysScanRule" }
func (scanRule) Operand() *xform.Operand   { return xform.NewOperand(opt.ScanOp) }
func (scanRule) Matches(*xform.RuleCall) bool { return true }

func (scanRule) OnMatch(call *xform.RuleCall) error {
	scan := call.Rel(0).(*rel.Scan)
	traits := physTraits(call)
	if collations := scan.Table().Collations(); len(collations) > 0 {
		traits = traits.Replace(rel.CollationAxis, collations[0])
	}
	call.TransformTo(NewScan(call.Cluster(), traits, scan.Table()))
	return nil
}

// projectRule implements a logical projection over any input. The input is
// demanded in the physical convention; the projection's own collation is
// derived from whatever ordering the input provides through the identity
// columns, so sortedness is not lost crossing a projection.
type projectRule struct{}

// ProjectRule implements logical projections.
var ProjectRule xform.Rule = projectRule{}

func (projectRule) Name() string            { return "PhysProjectRule" }
func (projectRule) Operand() *xform.Operand {
	return xform.NewOperand(opt.ProjectOp, xform.AnyOperand())
}
func (projectRule) Matches(*xform.RuleCall) bool { return true }

func (projectRule) OnMatch(call *xform.RuleCall) error {
	proj := call.Rel(0).(*rel.Project)
	input := call.Convert(proj.Inputs()[0], physTraits(call))

	node := NewProject(call.Cluster(), physTraits(call), input, proj.Projections(), proj.RowType())
	if collations := call.Metadata().Collations(node); len(collations) > 0 {
		traits := node.Traits().Replace(rel.CollationAxis, collations[0])
		node = node.Copy(traits, node.Inputs()).(*Project)
	}
	call.TransformTo(node)
	return nil
}

// aggregateRule implements a logical aggregation as a stream aggregate: the
// input is demanded physical and sorted ascending on the group keys.
type aggregateRule struct{}

// AggregateRule implements logical aggregations.
var AggregateRule xform.Rule = aggregateRule{}

func (aggregateRule) Name() string            { return "PhysAggregateRule" }
func (aggregateRule) Operand() *xform.Operand {
	return xform.NewOperand(opt.AggregateOp, xform.AnyOperand())
}
func (aggregateRule) Matches(*xform.RuleCall) bool { return true }

func (aggregateRule) OnMatch(call *xform.RuleCall) error {
	agg := call.Rel(0).(*rel.Aggregate)

	required := physTraits(call)
	if !agg.GroupKeys().Empty() {
		fields := make([]opt.FieldCollation, 0, agg.GroupKeys().Len())
		for _, ord := range agg.GroupKeys().Ordinals() {
			fields = append(fields, opt.Asc(ord))
		}
		required = required.Replace(rel.CollationAxis, opt.MakeCollation(fields...))
	}
	input := call.Convert(agg.Inputs()[0], required)

	call.TransformTo(NewAggregate(call.Cluster(), physTraits(call), input, agg.GroupKeys(), agg.AggCalls()))
	return nil
}

// sortRule implements any sort - user-written or inserted as a collation
// enforcer - as a physical sort over a physical input.
type sortRule struct{}

// SortRule implements sorts.
var SortRule xform.Rule = sortRule{}

func (sortRule) Name() string            { return "PhysSortRule" }
func (sortRule) Operand() *xform.Operand {
	return xform.NewOperand(opt.SortOp, xform.AnyOperand())
}
func (sortRule) Matches(*xform.RuleCall) bool { return true }

func (sortRule) OnMatch(call *xform.RuleCall) error {
	sort := call.Rel(0).(*rel.Sort)
	input := call.Convert(sort.Inputs()[0], physTraits(call))
	traits := physTraits(call).Replace(rel.CollationAxis, sort.Collation())
	call.TransformTo(NewSort(call.Cluster(), traits, input, sort.Collation(), sort.Offset(), sort.Fetch()))
	return nil
}
