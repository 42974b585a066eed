// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package memo

import (
	"github.com/cockroachdb/errors"
	"github.com/ldming/volcano/opt"
)

// Check verifies the memo's structural invariants. It is called from tests
// and before plan extraction; a failure is an assertion error carrying the
// diagnostic dump.
func (m *Memo) Check() error {
	seen := make(map[opt.RelID]SetID)
	for _, set := range m.sets {
		if set.Obsolete() {
			continue
		}
		traitsSeen := make(map[string]bool)
		for _, sub := range set.subsets {
			key := sub.traits.String()
			if traitsSeen[key] {
				return m.corrupt("set %d has two subsets with traits %s", set.id, sub.traits)
			}
			traitsSeen[key] = true
			if sub.set.root() != set {
				return m.corrupt("subset %s does not point back to set %d", sub.traits, set.id)
			}
		}
		for _, member := range set.members {
			if prev, ok := seen[member.ID()]; ok {
				return m.corrupt("expression %d in sets %d and %d", member.ID(), prev, set.id)
			}
			seen[member.ID()] = set.id

			for _, in := range member.Inputs() {
				if _, ok := in.(*Subset); !ok {
					return m.corrupt("expression %d has a raw (non-subset) child", member.ID())
				}
			}
			digest, ok := m.digestOf[member.ID()]
			if !ok {
				return m.corrupt("expression %d has no recorded digest", member.ID())
			}
			if got := m.fullDigest(member); got != digest {
				return m.corrupt("expression %d digest drift: recorded %q, computed %q", member.ID(), digest, got)
			}
			sub := m.subsetOf[member.ID()]
			if sub == nil {
				return m.corrupt("expression %d has no subset", member.ID())
			}
			if sub.Canonical().set.root() != set {
				return m.corrupt("expression %d maps to a subset outside its set", member.ID())
			}
		}
	}
	return nil
}

func (m *Memo) corrupt(format string, args ...interface{}) error {
	err := errors.AssertionFailedf("memo: "+format, args...)
	return errors.WithDetail(err, m.Diagnostic())
}
