// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package opt

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Cluster is the per-session container for everything an optimization run
// owns: the expression ID counter and the registry of trait axes. A cluster
// must not be shared between concurrent sessions; it is mutated only by the
// session's own goroutine.
type Cluster struct {
	sessionID uuid.UUID
	nextID    RelID
	axes      []Axis
	axisOrds  map[Axis]int
}

// NewCluster creates an empty cluster. Trait axes must be registered before
// the first trait set is built.
func NewCluster() *Cluster {
	return &Cluster{
		sessionID: uuid.New(),
		axisOrds:  make(map[Axis]int),
	}
}

// SessionID identifies this session in trace output.
func (c *Cluster) SessionID() uuid.UUID { return c.sessionID }

// NextID allocates the next expression identity.
func (c *Cluster) NextID() RelID {
	c.nextID++
	return c.nextID
}

// AddTraitAxis registers an axis. Axes registered after a trait set has
// been built would invalidate every existing vector, so registration is
// only legal before optimization starts; the caller enforces that ordering.
func (c *Cluster) AddTraitAxis(axis Axis) error {
	if _, ok := c.axisOrds[axis]; ok {
		return errors.Newf("trait axis %q already registered", axis.Name())
	}
	c.axisOrds[axis] = len(c.axes)
	c.axes = append(c.axes, axis)
	return nil
}

// Axes returns the registered axes in registration order.
func (c *Cluster) Axes() []Axis { return c.axes }

// EmptyTraitSet returns the trait set holding every axis's default.
func (c *Cluster) EmptyTraitSet() TraitSet {
	traits := make([]Trait, len(c.axes))
	for i, axis := range c.axes {
		traits[i] = axis.Default()
	}
	return TraitSet{cluster: c, traits: traits}
}

func (c *Cluster) axisOrdinal(axis Axis) int {
	ord, ok := c.axisOrds[axis]
	if !ok {
		panic(errors.AssertionFailedf("trait axis %q not registered", axis.Name()))
	}
	return ord
}
