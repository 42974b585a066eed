// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package memo

import (
	"fmt"

	"github.com/ldming/volcano/opt"
)

// SetID identifies an equivalence set within its memo.
type SetID int32

// Set is an equivalence class: every member expression produces the same
// multiset of rows, up to trait differences. A set holds one subset per
// distinct trait set observed among its members and their consumers.
//
// Sets merge when registration discovers that two of them are equivalent.
// The older set survives; the loser keeps a parent pointer, union-find
// style, and is skipped afterwards.
type Set struct {
	id      SetID
	parent  *Set
	rowType opt.RowType
	subsets []*Subset
	members []opt.RelNode
}

// ID returns the set's identity.
func (s *Set) ID() SetID { return s.id }

// Obsolete returns true if the set has been merged into another.
func (s *Set) Obsolete() bool { return s.parent != nil }

// root follows the merge chain to the surviving set, compressing the path.
func (s *Set) root() *Set {
	if s.parent == nil {
		return s
	}
	s.parent = s.parent.root()
	return s.parent
}

// Members returns every member expression of the set, across all subsets.
func (s *Set) Members() []opt.RelNode { return s.root().members }

// Subsets returns the set's subsets.
func (s *Set) Subsets() []*Subset { return s.root().subsets }

// RowType returns the row type shared by all members.
func (s *Set) RowType() opt.RowType { return s.rowType }

// subset returns the subset with exactly the given traits, or nil.
func (s *Set) subset(traits opt.TraitSet) *Subset {
	for _, sub := range s.root().subsets {
		if sub.traits.Equals(traits) {
			return sub
		}
	}
	return nil
}

// Subset is the view of a set through one trait set. It is itself a
// relational expression: registered expressions reference subsets, never
// raw nodes, so substituting a better member never rewrites a parent.
type Subset struct {
	memo   *Memo
	id     opt.RelID
	set    *Set
	traits opt.TraitSet

	// best is the cheapest known member whose traits satisfy this subset's
	// traits; bestCost is its cumulative cost. InfCost until a feasible
	// member has been costed.
	best     opt.RelNode
	bestCost opt.Cost

	// parents lists the registered expressions that have this subset as an
	// input.
	parents []opt.RelNode
}

// Canonical resolves the subset through any set merges that have happened
// since it was created. All read accessors resolve through Canonical, so
// stale references held inside immutable parent expressions stay valid.
func (s *Subset) Canonical() *Subset {
	root := s.set.root()
	if root == s.set {
		return s
	}
	if sub := root.subset(s.traits); sub != nil {
		return sub
	}
	// A merge always creates the counterpart subset, so this is unreachable
	// unless the memo is corrupted.
	panic(fmt.Sprintf("subset %s lost by merge of set %d", s.traits, s.set.id))
}

// SetOf returns the (surviving) set this subset belongs to.
func (s *Subset) SetOf() *Set { return s.set.root() }

// Members returns the set members whose trait sets satisfy this subset's
// traits.
func (s *Subset) Members() []opt.RelNode {
	c := s.Canonical()
	var out []opt.RelNode
	for _, m := range c.set.members {
		if m.Traits().Satisfies(c.traits) {
			out = append(out, m)
		}
	}
	return out
}

// Best returns the cheapest feasible member found so far, or nil.
func (s *Subset) Best() opt.RelNode { return s.Canonical().best }

// BestCost returns the cost of the best member, or InfCost.
func (s *Subset) BestCost() opt.Cost { return s.Canonical().bestCost }

// RelaxBest lowers the subset's best member to the given one if its cost is
// an improvement. Returns true if the subset changed. An improvement bumps
// the memo timestamp: cached cumulative costs upstream are stale now.
func (s *Subset) RelaxBest(member opt.RelNode, cost opt.Cost) bool {
	c := s.Canonical()
	if c.best != nil && !cost.Less(c.bestCost) {
		return false
	}
	c.best = member
	c.bestCost = cost
	c.memo.bump()
	return true
}

// Parents returns the expressions that consume this subset as an input.
func (s *Subset) Parents() []opt.RelNode { return s.Canonical().parents }

// key is the canonical digest component used when this subset appears as a
// child of a registered expression. It is stable under merges only through
// recomputation: the memo re-digests parents when sets merge.
func (s *Subset) key() string {
	c := s.Canonical()
	return fmt.Sprintf("s%d%s", c.set.id, c.traits)
}

// RelNode implementation. A subset stands in for "any member of the set
// providing these traits".

func (s *Subset) ID() opt.RelID        { return s.id }
func (s *Subset) Op() opt.Operator     { return opt.SubsetOp }
func (s *Subset) Traits() opt.TraitSet { return s.traits }
func (s *Subset) RowType() opt.RowType { return s.set.rowType }
func (s *Subset) Inputs() []opt.RelNode { return nil }
func (s *Subset) SelfCost() opt.Cost   { return opt.ZeroCost }

func (s *Subset) Digest() string {
	return fmt.Sprintf("subset %s of set %d", s.traits, s.SetOf().id)
}

// Copy is not meaningful for subsets; the memo owns them.
func (s *Subset) Copy(traits opt.TraitSet, inputs []opt.RelNode) opt.RelNode {
	panic("memo subsets cannot be copied")
}

var _ opt.RelNode = (*Subset)(nil)
