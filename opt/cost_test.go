// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import "testing"

func TestCostLess(t *testing.T) {
	testCases := []struct {
		left, right Cost
		expected    bool
	}{
		{Cost{Rows: 0}, Cost{Rows: 1}, true},
		{Cost{Rows: 1}, Cost{Rows: 0}, false},
		{Cost{Rows: 1, CPU: 1, IO: 1}, Cost{Rows: 1, CPU: 1, IO: 1}, false},
		{Cost{Rows: 1, CPU: 1, IO: 1}, Cost{Rows: 1, CPU: 2, IO: 0}, true},
		{Cost{Rows: 1, CPU: 1, IO: 1}, Cost{Rows: 1, CPU: 1, IO: 2}, true},
		{Cost{Rows: 2, CPU: 0, IO: 0}, Cost{Rows: 1, CPU: 9, IO: 9}, false},
		{TinyCost, Cost{}, true},
		{Cost{}, TinyCost, false},
		{TinyCost, TinyCost, false},
		{HugeCost, Cost{Rows: 1e100}, false},
		{Cost{Rows: 1e100}, HugeCost, true},
		{HugeCost, InfCost, true},
		{InfCost, HugeCost, false},
		{InfCost, InfCost, false},
		{Cost{Rows: 1}, InfCost, true},
		{TinyCost, InfCost, true},
	}
	for _, tc := range testCases {
		if tc.left.Less(tc.right) != tc.expected {
			t.Errorf("expected %v.Less(%v) to be %v", tc.left, tc.right, tc.expected)
		}
	}
}

func TestCostPlus(t *testing.T) {
	testCases := []struct {
		left, right, expected Cost
	}{
		{Cost{Rows: 1, CPU: 2, IO: 3}, Cost{Rows: 4, CPU: 5, IO: 6}, Cost{Rows: 5, CPU: 7, IO: 9}},
		{ZeroCost, Cost{Rows: 1}, Cost{Rows: 1}},
		{
			Cost{Rows: 1, Flags: TinyCostFlag},
			Cost{Rows: 2},
			Cost{Rows: 3, Flags: TinyCostFlag},
		},
		{
			Cost{Rows: 1, Flags: TinyCostFlag},
			Cost{Rows: 2, Flags: HugeCostFlag},
			Cost{Rows: 3, Flags: TinyCostFlag | HugeCostFlag},
		},
	}
	for _, tc := range testCases {
		if got := tc.left.Plus(tc.right); got != tc.expected {
			t.Errorf("expected %v.Plus(%v) to be %v, got %v", tc.left, tc.right, tc.expected, got)
		}
	}
}

func TestCostInfinite(t *testing.T) {
	if ZeroCost.IsInfinite() || HugeCost.IsInfinite() || TinyCost.IsInfinite() {
		t.Error("finite sentinels must not be infinite")
	}
	if !InfCost.IsInfinite() {
		t.Error("InfCost must be infinite")
	}
	if !InfCost.Plus(Cost{Rows: 1}).IsInfinite() {
		t.Error("infinity must absorb addition")
	}
}
