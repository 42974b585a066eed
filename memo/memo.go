// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package memo implements the equivalence structure at the center of the
// optimizer. Expressions are folded into sets (equivalence classes) and
// viewed through subsets (one per trait set). Registration deduplicates by
// structural digest; discovering that two sets are equivalent merges them,
// union-find style, with the older set surviving.
package memo

import (
	"github.com/cockroachdb/errors"
	"github.com/ldming/volcano/opt"
)

// Hooks are the callbacks the driver installs to observe memo mutations.
// All hooks are optional and run synchronously on the session goroutine.
type Hooks struct {
	// OnNewExpr fires after a new expression has been registered.
	OnNewExpr func(expr opt.RelNode)

	// OnNewSubset fires after a subset has been created. Members that
	// already exist in the set may satisfy the new subset's traits; the
	// driver re-offers their costs.
	OnNewSubset func(sub *Subset)

	// OnRequeue fires for each member of a set that loses a merge, once it
	// has been re-homed into the surviving set; new matches may bind it
	// there, so its rule matches are enumerated again.
	OnRequeue func(expr opt.RelNode)

	// OnEquivalence fires when a registered expression turns out to be
	// structurally equal to an existing member.
	OnEquivalence func(expr, equivTo opt.RelNode)

	// OnDiscarded fires for each member of a set that loses a merge.
	OnDiscarded func(expr opt.RelNode)
}

// Memo is the two-level set/subset structure. It is owned by a single
// session and mutated only by the session goroutine.
type Memo struct {
	cluster *opt.Cluster
	hooks   Hooks

	sets []*Set

	// exprs maps full structural digest to the registered member carrying
	// it; digestOf is the reverse index, needed to re-digest parents after a
	// merge.
	exprs    map[string]opt.RelNode
	digestOf map[opt.RelID]string

	// subsetOf maps every registered expression (and every handle that was
	// ever passed to Register) to its subset.
	subsetOf map[opt.RelID]*Subset

	// timestamp advances on every structural change. Cached metadata carries
	// the timestamp it was computed at and is recomputed on mismatch.
	timestamp uint64
}

// New creates an empty memo for the given session.
func New(cluster *opt.Cluster) *Memo {
	return &Memo{
		cluster:  cluster,
		exprs:    make(map[string]opt.RelNode),
		digestOf: make(map[opt.RelID]string),
		subsetOf: make(map[opt.RelID]*Subset),
	}
}

// SetHooks installs the driver callbacks.
func (m *Memo) SetHooks(h Hooks) { m.hooks = h }

// Cluster returns the owning session.
func (m *Memo) Cluster() *opt.Cluster { return m.cluster }

// Timestamp returns the current structural version of the memo.
func (m *Memo) Timestamp() uint64 { return m.timestamp }

// Sets returns all sets ever created, obsolete ones included, indexed by
// SetID.
func (m *Memo) Sets() []*Set { return m.sets }

// IsEmpty returns true if nothing has been registered.
func (m *Memo) IsEmpty() bool { return len(m.sets) == 0 }

func (m *Memo) bump() { m.timestamp++ }

// GetSubset returns the subset an expression was registered into, or nil if
// the expression is unregistered.
func (m *Memo) GetSubset(e opt.RelNode) *Subset {
	if sub, ok := e.(*Subset); ok {
		return sub.Canonical()
	}
	if sub, ok := m.subsetOf[e.ID()]; ok {
		return sub.Canonical()
	}
	return nil
}

// Register adds an expression to the memo and returns the subset it lives
// in. Children are themselves registered and replaced by their subsets. If
// a structurally equal member already exists its subset is returned
// instead, and target (when supplied and distinct) is merged with the
// member's set. Re-registering a registered expression is a no-op that does
// not advance the timestamp.
func (m *Memo) Register(e opt.RelNode, target *Set) *Subset {
	if sub, ok := e.(*Subset); ok {
		sub = sub.Canonical()
		if target != nil && target.root() != sub.set.root() {
			m.MergeSets(sub.set, target)
			sub = sub.Canonical()
		}
		return sub
	}

	if sub, ok := m.subsetOf[e.ID()]; ok {
		sub = sub.Canonical()
		if target != nil && target.root() != sub.set.root() {
			m.MergeSets(sub.set, target)
			sub = sub.Canonical()
		}
		return sub
	}

	// Register children bottom-up and swap each input for its subset.
	inputs := e.Inputs()
	rehomed := false
	newInputs := make([]opt.RelNode, len(inputs))
	for i, in := range inputs {
		sub := m.Register(in, nil)
		newInputs[i] = sub
		if sub != in {
			rehomed = true
		}
	}
	member := e
	if rehomed {
		member = e.Copy(e.Traits(), newInputs)
	}

	digest := m.fullDigest(member)
	if existing, ok := m.exprs[digest]; ok {
		sub := m.subsetOf[existing.ID()].Canonical()
		if m.hooks.OnEquivalence != nil {
			m.hooks.OnEquivalence(e, existing)
		}
		if target != nil && target.root() != sub.set.root() {
			m.MergeSets(sub.set, target)
			sub = sub.Canonical()
		}
		m.subsetOf[e.ID()] = sub
		return sub
	}

	set := target
	if set == nil {
		set = m.newSet(member.RowType())
	} else {
		set = set.root()
	}
	sub := m.getOrCreateSubset(set, member.Traits())
	set = set.root() // converter registration may have merged
	sub = sub.Canonical()

	set.members = append(set.members, member)
	m.exprs[digest] = member
	m.digestOf[member.ID()] = digest
	m.subsetOf[member.ID()] = sub
	m.subsetOf[e.ID()] = sub
	for _, in := range newInputs {
		child := in.(*Subset).Canonical()
		child.parents = append(child.parents, member)
	}
	m.bump()
	if m.hooks.OnNewExpr != nil {
		m.hooks.OnNewExpr(member)
	}
	return sub.Canonical()
}

// EnsureRegistered registers e; if equivTo is present and belongs to a
// different set, the two sets are merged. It returns e's subset after any
// merging.
func (m *Memo) EnsureRegistered(e opt.RelNode, equivTo opt.RelNode) *Subset {
	var target *Set
	if equivTo != nil {
		equivSub := m.Register(equivTo, nil)
		target = equivSub.SetOf()
	}
	return m.Register(e, target).Canonical()
}

// ChangeTraits registers e, then returns the subset with the same set and
// the requested traits. Creating the subset also plants abstract converters
// so that enforcers can be expanded into it.
func (m *Memo) ChangeTraits(e opt.RelNode, traits opt.TraitSet) *Subset {
	sub := m.Register(e, nil)
	if sub.traits.Equals(traits) {
		return sub
	}
	return m.getOrCreateSubset(sub.SetOf(), traits).Canonical()
}

func (m *Memo) newSet(rowType opt.RowType) *Set {
	set := &Set{id: SetID(len(m.sets)), rowType: rowType}
	m.sets = append(m.sets, set)
	m.bump()
	return set
}

// getOrCreateSubset returns the set's subset for the given traits, creating
// it if needed. On creation, abstract converters are registered between the
// new subset and every existing subset that differs but is convertible, in
// both directions, so requested trait sets become reachable by expansion.
func (m *Memo) getOrCreateSubset(set *Set, traits opt.TraitSet) *Subset {
	set = set.root()
	if sub := set.subset(traits); sub != nil {
		return sub
	}
	sub := &Subset{
		memo:     m,
		id:       m.cluster.NextID(),
		set:      set,
		traits:   traits,
		bestCost: opt.InfCost,
	}
	set.subsets = append(set.subsets, sub)
	m.bump()

	others := make([]*Subset, 0, len(set.subsets)-1)
	for _, other := range set.subsets {
		if other != sub {
			others = append(others, other)
		}
	}
	for _, other := range others {
		m.maybeAddConverter(set, other, sub)
		m.maybeAddConverter(set, sub, other)
	}
	if m.hooks.OnNewSubset != nil {
		m.hooks.OnNewSubset(sub)
	}
	return sub.Canonical()
}

// maybeAddConverter registers an abstract converter from subset from to
// subset to, unless from already satisfies to or some axis cannot convert.
func (m *Memo) maybeAddConverter(set *Set, from, to *Subset) {
	if from.traits.Satisfies(to.traits) {
		return
	}
	for ord := 0; ord < to.traits.Len(); ord++ {
		axis, want := to.traits.AxisTrait(ord)
		_, have := from.traits.AxisTrait(ord)
		if axis.Satisfies(have, want) {
			continue
		}
		if !axis.CanConvert(have, want) {
			return
		}
	}
	conv := NewAbstractConverter(m.cluster, from, to.traits)
	m.Register(conv, set)
}

// MergeSets unifies two equivalence sets. The older set survives; the
// loser's subsets and members are re-homed, parents of re-homed subsets are
// re-digested (which can cascade into further merges), and matches on the
// loser's members are re-enumerated.
func (m *Memo) MergeSets(a, b *Set) *Set {
	a, b = a.root(), b.root()
	if a == b {
		return a
	}
	survivor, loser := a, b
	if loser.id < survivor.id {
		survivor, loser = loser, survivor
	}

	loser.parent = survivor

	// Re-home the loser's subsets. The counterpart subset must exist so that
	// stale references canonicalize. Best costs are not copied: the discard
	// hook re-relaxes every moved member, which cascades any improvement to
	// the counterpart's parents.
	for _, sub := range loser.subsets {
		counterpart := m.getOrCreateSubset(survivor, sub.traits)
		counterpart.parents = append(counterpart.parents, sub.parents...)
	}

	// Re-home the loser's members.
	survivor.members = append(survivor.members, loser.members...)
	for _, member := range loser.members {
		if sub := m.subsetOf[member.ID()]; sub != nil {
			m.subsetOf[member.ID()] = sub.Canonical()
		}
		if m.hooks.OnDiscarded != nil {
			m.hooks.OnDiscarded(member)
		}
	}

	m.bump()

	// The loser's subsets appear as children of their parent expressions;
	// those digests changed, which may reveal new structural equalities
	// upward. Matches on re-homed members must be enumerated again.
	for _, sub := range loser.subsets {
		for _, parent := range sub.parents {
			m.redigest(parent)
		}
	}
	for _, member := range loser.members {
		if m.hooks.OnRequeue != nil {
			m.hooks.OnRequeue(member)
		}
	}
	return survivor
}

// redigest recomputes a registered expression's digest after one of its
// child subsets was re-homed. A collision with a member of a different set
// means the two sets are equivalent and are merged in turn.
func (m *Memo) redigest(e opt.RelNode) {
	old, ok := m.digestOf[e.ID()]
	if !ok {
		panic(errors.AssertionFailedf("re-digest of unregistered expression %s", e.Digest()))
	}
	digest := m.fullDigest(e)
	if digest == old {
		return
	}
	delete(m.exprs, old)
	m.digestOf[e.ID()] = digest

	if existing, okE := m.exprs[digest]; okE && existing.ID() != e.ID() {
		mine := m.subsetOf[e.ID()].Canonical()
		theirs := m.subsetOf[existing.ID()].Canonical()
		if mine.set.root() != theirs.set.root() {
			m.MergeSets(mine.set, theirs.set)
		}
		return
	}
	m.exprs[digest] = e
	m.bump()
}

// fullDigest composes the structural digest the memo deduplicates on: the
// expression's own digest (variant plus payload), its trait set, and the
// canonical key of each child subset.
func (m *Memo) fullDigest(e opt.RelNode) string {
	d := e.Digest() + "|" + e.Traits().String() + "|"
	for i, in := range e.Inputs() {
		sub, ok := in.(*Subset)
		if !ok {
			panic(errors.AssertionFailedf("digest of expression with raw child %s", in.Digest()))
		}
		if i > 0 {
			d += ","
		}
		d += sub.key()
	}
	return d
}
