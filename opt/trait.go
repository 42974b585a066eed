// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"bytes"
)

// Trait is a value on one axis of physical properties, such as a calling
// convention or a sort order.
type Trait interface {
	// Equal reports value equality with another trait on the same axis.
	Equal(other Trait) bool
	String() string
}

// Axis defines one axis of physical properties. Axes are registered with
// the cluster before optimization; a trait set carries exactly one trait
// per registered axis, in registration order.
type Axis interface {
	Name() string

	// Default returns the trait assigned on this axis when none is given.
	Default() Trait

	// Satisfies reports whether trait a is at least as strong as trait b.
	// The relation is a partial order: reflexive and transitive.
	Satisfies(a, b Trait) bool

	// CanConvert reports whether an enforcer can turn a child with trait
	// from into one with trait to.
	CanConvert(from, to Trait) bool

	// Convert builds the enforcer expression over child that provides the
	// to trait, or returns nil if this axis has no converter.
	Convert(c *Cluster, child RelNode, to Trait) RelNode
}

// TraitSet is an immutable fixed-length vector with one trait per axis
// registered on the cluster, in registration order.
type TraitSet struct {
	cluster *Cluster
	traits  []Trait
}

// Trait returns the value on the given axis.
func (ts TraitSet) Trait(axis Axis) Trait {
	return ts.traits[ts.cluster.axisOrdinal(axis)]
}

// Replace returns a copy of the trait set with the value on the given axis
// replaced.
func (ts TraitSet) Replace(axis Axis, t Trait) TraitSet {
	ord := ts.cluster.axisOrdinal(axis)
	out := make([]Trait, len(ts.traits))
	copy(out, ts.traits)
	out[ord] = t
	return TraitSet{cluster: ts.cluster, traits: out}
}

// Satisfies reports whether every trait in ts satisfies the corresponding
// trait in other.
func (ts TraitSet) Satisfies(other TraitSet) bool {
	for i, axis := range ts.cluster.axes {
		if !axis.Satisfies(ts.traits[i], other.traits[i]) {
			return false
		}
	}
	return true
}

// Equals reports value equality.
func (ts TraitSet) Equals(other TraitSet) bool {
	if len(ts.traits) != len(other.traits) {
		return false
	}
	for i := range ts.traits {
		if !ts.traits[i].Equal(other.traits[i]) {
			return false
		}
	}
	return true
}

// IsDefault reports whether the trait on the given axis equals the axis
// default.
func (ts TraitSet) IsDefault(axis Axis) bool {
	return ts.Trait(axis).Equal(axis.Default())
}

// Len returns the number of axes.
func (ts TraitSet) Len() int { return len(ts.traits) }

// AxisTrait returns the axis and trait at the given ordinal.
func (ts TraitSet) AxisTrait(ord int) (Axis, Trait) {
	return ts.cluster.axes[ord], ts.traits[ord]
}

// String renders the trait set canonically; the result doubles as the trait
// component of structural digests.
func (ts TraitSet) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range ts.traits {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.String())
	}
	buf.WriteByte('}')
	return buf.String()
}
