// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package xform

import (
	"bytes"
	"fmt"

	"github.com/ldming/volcano/opt"
)

// ruleMatch is one pending rule call: a rule with a complete operand
// binding.
type ruleMatch struct {
	rule *registeredRule
	rels []opt.RelNode
}

// ruleQueue holds pending rule calls in FIFO order and drops duplicate
// bindings. Set merges re-enumerate matches on re-homed expressions, so
// the same binding is routinely offered more than once.
type ruleQueue struct {
	pending []ruleMatch
	seen    map[string]bool
}

func (q *ruleQueue) init() {
	q.seen = make(map[string]bool)
}

func (q *ruleQueue) key(rr *registeredRule, rels []opt.RelNode) string {
	var buf bytes.Buffer
	buf.WriteString(rr.rule.Name())
	for _, r := range rels {
		fmt.Fprintf(&buf, ":%d", r.ID())
	}
	return buf.String()
}

// offer enqueues the binding unless it was enqueued before. The binding
// slice is copied.
func (q *ruleQueue) offer(rr *registeredRule, rels []opt.RelNode) bool {
	key := q.key(rr, rels)
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.pending = append(q.pending, ruleMatch{rule: rr, rels: append([]opt.RelNode(nil), rels...)})
	return true
}

func (q *ruleQueue) empty() bool { return len(q.pending) == 0 }

func (q *ruleQueue) pop() ruleMatch {
	m := q.pending[0]
	q.pending[0] = ruleMatch{}
	q.pending = q.pending[1:]
	return m
}
