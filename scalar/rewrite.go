// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package scalar

// Shift returns e with every input reference moved by delta. Used to pull
// predicates over a join, whose output concatenates the input columns.
func Shift(e Expr, delta int) Expr {
	out, _ := Remap(e, func(ord int) (int, bool) { return ord + delta, true })
	return out
}

// Remap returns e with every input reference rewritten through mapping.
// Returns false if mapping rejects any referenced ordinal, in which case
// the expression cannot be expressed over the target columns.
func Remap(e Expr, mapping func(ord int) (int, bool)) (Expr, bool) {
	switch t := e.(type) {
	case *InputRef:
		ord, ok := mapping(t.Index)
		if !ok {
			return nil, false
		}
		if ord == t.Index {
			return t, true
		}
		return NewInputRef(ord), true
	case *Literal:
		return t, true
	case *Call:
		operands := make([]Expr, len(t.operands))
		changed := false
		for i, op := range t.operands {
			mapped, ok := Remap(op, mapping)
			if !ok {
				return nil, false
			}
			operands[i] = mapped
			if mapped != op {
				changed = true
			}
		}
		if !changed {
			return t, true
		}
		return NewCall(t.kind, operands...), true
	}
	return e, true
}
