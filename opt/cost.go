// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"fmt"
	"math"
)

// CostFlags are sentinel markers that dominate the numeric comparison. A
// tiny cost is less than every finite cost and a huge cost is greater than
// every finite cost, regardless of the component values.
type CostFlags uint8

const (
	// TinyCostFlag marks a cost below every finite cost.
	TinyCostFlag CostFlags = 1 << iota
	// HugeCostFlag marks a cost above every finite cost (but below infinity).
	HugeCostFlag
)

// Cost is the estimated expense of executing an expression once. The three
// components are totally ordered lexicographically: rows dominate cpu, cpu
// dominates io.
type Cost struct {
	Rows, CPU, IO float64
	Flags         CostFlags
}

// ZeroCost is the additive identity.
var ZeroCost = Cost{}

// TinyCost is less than every finite cost. Used to make an expression
// unconditionally attractive.
var TinyCost = Cost{Flags: TinyCostFlag}

// HugeCost is greater than every finite cost but still comparable. Used to
// make an expression unconditionally unattractive without removing it from
// contention entirely.
var HugeCost = Cost{Rows: math.MaxFloat64, CPU: math.MaxFloat64, IO: math.MaxFloat64, Flags: HugeCostFlag}

// InfCost is the absorbing element for comparison: nothing is worse. It
// marks subsets with no feasible member.
var InfCost = Cost{Rows: math.Inf(1), CPU: math.Inf(1), IO: math.Inf(1)}

// rank orders the sentinel classes: tiny < finite < huge < infinite.
func (c Cost) rank() int {
	switch {
	case c.Flags&TinyCostFlag != 0:
		return 0
	case c.IsInfinite():
		return 3
	case c.Flags&HugeCostFlag != 0:
		return 2
	default:
		return 1
	}
}

// IsInfinite returns true if any component is +Inf.
func (c Cost) IsInfinite() bool {
	return math.IsInf(c.Rows, 1) || math.IsInf(c.CPU, 1) || math.IsInf(c.IO, 1)
}

// Less returns true if c is strictly cheaper than other.
func (c Cost) Less(other Cost) bool {
	if cr, or := c.rank(), other.rank(); cr != or {
		return cr < or
	}
	if c.Rows != other.Rows {
		return c.Rows < other.Rows
	}
	if c.CPU != other.CPU {
		return c.CPU < other.CPU
	}
	return c.IO < other.IO
}

// Plus returns the componentwise sum. Sentinel flags are sticky.
func (c Cost) Plus(other Cost) Cost {
	return Cost{
		Rows:  c.Rows + other.Rows,
		CPU:   c.CPU + other.CPU,
		IO:    c.IO + other.IO,
		Flags: c.Flags | other.Flags,
	}
}

func (c Cost) String() string {
	switch {
	case c.IsInfinite():
		return "{inf}"
	case c.Flags&HugeCostFlag != 0:
		return "{huge}"
	case c.Flags&TinyCostFlag != 0:
		return "{tiny}"
	}
	return fmt.Sprintf("{rows=%.9g, cpu=%.9g, io=%.9g}", c.Rows, c.CPU, c.IO)
}
