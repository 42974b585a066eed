// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/ldming/volcano/opt"
	"github.com/ldming/volcano/scalar"
)

// typeSize is the assumed average width in bytes of a value of each type
// family.
func typeSize(kind opt.TypeKind) float64 {
	switch kind {
	case opt.BoolType:
		return 1
	case opt.IntType, opt.DateType:
		return 4
	case opt.BigIntType, opt.FloatType, opt.TimestampType:
		return 8
	case opt.StringType:
		return 20
	default:
		return 8
	}
}

func rowTypeSizes(rt opt.RowType) []float64 {
	out := make([]float64, len(rt))
	for i, col := range rt {
		out[i] = typeSize(col.Kind)
	}
	return out
}

func registerSizes(p *TableProvider) {
	// The type-driven default applies to any operator.
	p.RegisterAny(AverageColumnSizesKind, func(q *Query, e opt.RelNode, a Args) interface{} {
		return rowTypeSizes(e.RowType())
	})

	p.Register(AverageColumnSizesKind, opt.FilterOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		sizes, ok := q.AverageColumnSizes(e.Inputs()[0])
		if !ok {
			return nil
		}
		return sizes
	})
	p.RegisterMany(AverageColumnSizesKind, sortOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		sizes, ok := q.AverageColumnSizes(e.Inputs()[0])
		if !ok {
			return nil
		}
		return sizes
	})

	p.RegisterMany(AverageColumnSizesKind, projectOps, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Pass-through columns keep the input estimate; derived expressions
		// fall back to the type default.
		inputSizes, ok := q.AverageColumnSizes(e.Inputs()[0])
		if !ok {
			return nil
		}
		projections := e.(projectNode).Projections()
		out := make([]float64, len(projections))
		for i, proj := range projections {
			if ref, isRef := proj.(*scalar.InputRef); isRef {
				out[i] = inputSizes[ref.Index]
			} else {
				out[i] = typeSize(e.RowType()[i].Kind)
			}
		}
		return out
	})

	p.Register(AverageColumnSizesKind, opt.JoinOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		left, lok := q.AverageColumnSizes(e.Inputs()[0])
		if !lok {
			return nil
		}
		if len(left) == len(e.RowType()) {
			// Semi and anti joins produce only the left columns.
			return left
		}
		right, rok := q.AverageColumnSizes(e.Inputs()[1])
		if !rok {
			return nil
		}
		return append(append([]float64(nil), left...), right...)
	})

	p.Register(AverageColumnSizesKind, opt.UnionOp, func(q *Query, e opt.RelNode, a Args) interface{} {
		// Weight each input's estimate by its row count.
		left, lok := q.AverageColumnSizes(e.Inputs()[0])
		right, rok := q.AverageColumnSizes(e.Inputs()[1])
		if !lok || !rok {
			return nil
		}
		leftRows, rightRows := q.RowCount(e.Inputs()[0]), q.RowCount(e.Inputs()[1])
		total := leftRows + rightRows
		out := make([]float64, len(left))
		for i := range left {
			out[i] = (left[i]*leftRows + right[i]*rightRows) / total
		}
		return out
	})
}
