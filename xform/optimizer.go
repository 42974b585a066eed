// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

// Package xform is the optimizer driver: it owns the memo, the rule set,
// and the rule queue, and runs the search to quiescence before extracting
// the cheapest plan that satisfies the requested traits.
package xform

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/ldming/volcano/memo"
	"github.com/ldming/volcano/metadata"
	"github.com/ldming/volcano/opt"
)

// Config carries the optimizer knobs.
type Config struct {
	// MaxRuleCalls bounds the number of rule calls fired in one session.
	// Zero means the default.
	MaxRuleCalls int

	// MaxFiresPerRule bounds how often a single rule may fire, as a guard
	// against rule sets that are not monotone. Zero means the default.
	MaxFiresPerRule int

	// ContinueOnRuleError keeps the session going when a rule's action
	// fails. By default a rule error aborts the session.
	ContinueOnRuleError bool

	// Tracer, when set, receives unstructured text describing the search.
	Tracer io.Writer
}

const (
	defaultMaxRuleCalls    = 100000
	defaultMaxFiresPerRule = 1000
)

// Optimizer is a single optimization session. It owns its cluster, memo,
// metadata cache, queue, and importance bookkeeping; nothing is shared
// with concurrent sessions.
type Optimizer struct {
	cluster *opt.Cluster
	mem     *memo.Memo
	mq      *metadata.Query
	config  Config

	rules map[string]*registeredRule
	// index maps an operator to the operands (across all rules) that match
	// it, so enumerating matches on a new expression touches only the rules
	// that can fire on its variant.
	index map[opt.Operator][]*Operand

	queue      ruleQueue
	fires      map[string]int
	importance map[opt.RelID]float64
	excluded   func(Rule) bool
	listeners  []opt.Listener
}

// New creates a session around the given cluster. Trait axes must already
// be registered on the cluster (or via AddTraitAxis before Optimize).
func New(cluster *opt.Cluster, config Config) *Optimizer {
	if config.MaxRuleCalls == 0 {
		config.MaxRuleCalls = defaultMaxRuleCalls
	}
	if config.MaxFiresPerRule == 0 {
		config.MaxFiresPerRule = defaultMaxFiresPerRule
	}
	o := &Optimizer{
		cluster:    cluster,
		config:     config,
		rules:      make(map[string]*registeredRule),
		index:      make(map[opt.Operator][]*Operand),
		fires:      make(map[string]int),
		importance: make(map[opt.RelID]float64),
	}
	o.mem = memo.New(cluster)
	o.mq = metadata.NewDefaultQuery(o.mem)
	o.queue.init()
	o.mem.SetHooks(memo.Hooks{
		OnNewExpr:     o.onNewExpr,
		OnNewSubset:   o.onNewSubset,
		OnRequeue:     o.enumerateMatches,
		OnEquivalence: o.onEquivalence,
		OnDiscarded:   o.onDiscarded,
	})
	return o
}

// Cluster returns the session.
func (o *Optimizer) Cluster() *opt.Cluster { return o.cluster }

// Memo returns the session's memo.
func (o *Optimizer) Memo() *memo.Memo { return o.mem }

// Metadata returns the session's metadata query.
func (o *Optimizer) Metadata() *metadata.Query { return o.mq }

// SetMetadata replaces the metadata query, letting embedders layer their
// own providers. Call before Optimize.
func (o *Optimizer) SetMetadata(mq *metadata.Query) { o.mq = mq }

// AddTraitAxis registers a trait axis on the session's cluster.
func (o *Optimizer) AddTraitAxis(axis opt.Axis) error {
	return o.cluster.AddTraitAxis(axis)
}

// AddRule registers a rule. Rules must be added before Optimize; a later
// addition misses matches on already registered expressions.
func (o *Optimizer) AddRule(r Rule) error {
	if _, ok := o.rules[r.Name()]; ok {
		return errors.Newf("rule %q already registered", r.Name())
	}
	rr := flattenRule(r)
	o.rules[r.Name()] = rr
	for _, operand := range rr.operands {
		o.index[operand.op] = append(o.index[operand.op], operand)
	}
	return nil
}

// RemoveRule deregisters a rule; pending matches for it are skipped.
func (o *Optimizer) RemoveRule(r Rule) {
	rr, ok := o.rules[r.Name()]
	if !ok {
		return
	}
	delete(o.rules, r.Name())
	for _, operand := range rr.operands {
		ops := o.index[operand.op]
		for i, other := range ops {
			if other == operand {
				o.index[operand.op] = append(ops[:i:i], ops[i+1:]...)
				break
			}
		}
	}
}

// SetRuleExcluded installs a predicate; rules it accepts are skipped at
// fire time.
func (o *Optimizer) SetRuleExcluded(pred func(Rule) bool) { o.excluded = pred }

// AddListener attaches a tracing listener.
func (o *Optimizer) AddListener(l opt.Listener) { o.listeners = append(o.listeners, l) }

// SetImportance overrides the importance of an expression. Zero prunes:
// no rule call binding the expression will fire.
func (o *Optimizer) SetImportance(e opt.RelNode, v float64) {
	o.importance[e.ID()] = v
}

// Optimize searches for the cheapest expression equivalent to root whose
// trait set satisfies required. It returns the extracted plan tree and its
// cumulative cost.
//
// Cancellation is cooperative: the context is polled between rule calls.
// On cancellation the best plan found so far is returned, or ErrCancelled
// if there is none yet.
func (o *Optimizer) Optimize(
	ctx context.Context, root opt.RelNode, required opt.TraitSet,
) (opt.RelNode, opt.Cost, error) {
	o.mem.Register(root, nil)
	target := o.mem.ChangeTraits(root, required)

	calls := 0
	for !o.queue.empty() {
		if err := ctx.Err(); err != nil {
			o.tracef("cancelled after %d rule calls", calls)
			if plan, cost, perr := o.extract(target); perr == nil {
				return plan, cost, nil
			}
			return nil, opt.ZeroCost, errors.Mark(err, opt.ErrCancelled)
		}
		if calls >= o.config.MaxRuleCalls {
			o.tracef("rule call budget %d exhausted", o.config.MaxRuleCalls)
			break
		}
		match := o.queue.pop()
		if !o.validate(match) {
			continue
		}
		calls++
		if err := o.fire(match); err != nil {
			if o.config.ContinueOnRuleError {
				o.tracef("rule %s failed (continuing): %v", match.rule.rule.Name(), err)
				continue
			}
			return nil, opt.ZeroCost, err
		}
	}

	if err := o.mem.Check(); err != nil {
		return nil, opt.ZeroCost, err
	}
	return o.extract(target)
}

// validate re-checks a match just before firing: the rule may have been
// removed or excluded, a bound expression may have importance zero or no
// longer be registered, and the rule may have hit its fire cap. A bound
// expression whose set was merged away resolves to the surviving set and
// is not skipped.
func (o *Optimizer) validate(match ruleMatch) bool {
	name := match.rule.rule.Name()
	if _, ok := o.rules[name]; !ok {
		return false
	}
	if o.excluded != nil && o.excluded(match.rule.rule) {
		o.tracef("rule %s skipped by exclusion filter", name)
		return false
	}
	if o.fires[name] >= o.config.MaxFiresPerRule {
		o.tracef("rule %s skipped: fire cap %d reached", name, o.config.MaxFiresPerRule)
		return false
	}
	for _, rel := range match.rels {
		if imp, ok := o.importance[rel.ID()]; ok && imp == 0 {
			return false
		}
		sub := o.mem.GetSubset(rel)
		if sub == nil {
			return false
		}
	}
	return true
}

// fire runs one rule call: side condition, action, then commit of the
// staged transforms.
func (o *Optimizer) fire(match ruleMatch) error {
	rule := match.rule.rule
	call := &RuleCall{o: o, rule: match.rule, rels: match.rels}

	for _, l := range o.listeners {
		l.RuleAttempted(rule.Name(), match.rels[0])
	}
	if !rule.Matches(call) {
		return nil
	}
	o.fires[rule.Name()]++
	o.tracef("firing %s on %s", rule.Name(), match.rels[0].Digest())

	if err := rule.OnMatch(call); err != nil {
		return opt.RuleError(rule.Name(), err)
	}

	// The action succeeded; its productions take effect now, in call order.
	original := match.rels[0]
	for _, staged := range call.staged {
		expr := o.propagateTraits(staged.expr, original.Traits())
		for _, equiv := range staged.equivs {
			o.mem.EnsureRegistered(equiv.Expr, equiv.EquivTo)
		}
		o.mem.EnsureRegistered(expr, original)
		for _, l := range o.listeners {
			l.RuleProduction(rule.Name(), expr)
		}
	}
	return nil
}

// propagateTraits fills in traits the new expression left at their axis
// default with the matched root's values, recursively over the unregistered
// part of the tree. Subsets and registered expressions are left alone.
func (o *Optimizer) propagateTraits(e opt.RelNode, from opt.TraitSet) opt.RelNode {
	if _, ok := e.(*memo.Subset); ok {
		return e
	}
	if o.mem.GetSubset(e) != nil {
		return e
	}

	traits := e.Traits()
	changed := false
	for ord := 0; ord < traits.Len(); ord++ {
		axis, t := traits.AxisTrait(ord)
		if !t.Equal(axis.Default()) {
			continue
		}
		_, ft := from.AxisTrait(ord)
		if !ft.Equal(axis.Default()) {
			traits = traits.Replace(axis, ft)
			changed = true
		}
	}

	inputs := e.Inputs()
	newInputs := make([]opt.RelNode, len(inputs))
	inputsChanged := false
	for i, in := range inputs {
		newInputs[i] = o.propagateTraits(in, from)
		if newInputs[i] != in {
			inputsChanged = true
		}
	}
	if !changed && !inputsChanged {
		return e
	}
	return e.Copy(traits, newInputs)
}

// onNewExpr runs for every expression the memo accepts: its cost is
// relaxed into the subsets it can serve, and its rule matches are
// enqueued.
func (o *Optimizer) onNewExpr(e opt.RelNode) {
	o.relaxCost(e)
	o.enumerateMatches(e)
}

// relaxCost computes the expression's cumulative cost and offers it to
// every subset of its set whose traits it satisfies. An improvement
// cascades to the parents of the improved subsets, shortest-path style.
// Importance is seeded from the first finite cumulative cost as a side
// effect.
func (o *Optimizer) relaxCost(e opt.RelNode) {
	sub := o.mem.GetSubset(e)
	if sub == nil {
		return
	}
	cost := o.mq.CumulativeCost(e)
	if cost.IsInfinite() {
		return
	}
	if _, ok := o.importance[e.ID()]; !ok {
		o.importance[e.ID()] = 1 / (1 + cost.Rows)
	}
	var improvedParents []opt.RelNode
	for _, candidate := range sub.SetOf().Subsets() {
		if !e.Traits().Satisfies(candidate.Traits()) {
			continue
		}
		if candidate.RelaxBest(e, cost) {
			improvedParents = append(improvedParents, candidate.Parents()...)
		}
	}
	for _, parent := range improvedParents {
		o.relaxCost(parent)
	}
}

// onNewSubset re-offers the costs of existing members that can serve a
// subset created after them.
func (o *Optimizer) onNewSubset(sub *memo.Subset) {
	for _, member := range sub.SetOf().Members() {
		if member.Traits().Satisfies(sub.Traits()) {
			o.relaxCost(member)
		}
	}
}

func (o *Optimizer) onEquivalence(e, equivTo opt.RelNode) {
	for _, l := range o.listeners {
		l.RelEquivalenceFound(e, equivTo)
	}
}

func (o *Optimizer) onDiscarded(e opt.RelNode) {
	for _, l := range o.listeners {
		l.RelDiscarded(e)
	}
	// A re-homed expression may now satisfy subsets of the surviving set.
	o.relaxCost(e)
}

// enqueue is called by the matcher with a complete binding.
func (o *Optimizer) enqueue(rr *registeredRule, rels []opt.RelNode) {
	if o.queue.offer(rr, rels) {
		o.tracef("enqueued %s on %s", rr.rule.Name(), rels[0].Digest())
	}
}

// extract walks from the target subset, choosing at each subset the member
// with the best cumulative cost and recursing into its child subsets.
func (o *Optimizer) extract(target *memo.Subset) (opt.RelNode, opt.Cost, error) {
	plan, err := o.buildPlan(target)
	if err != nil {
		return nil, opt.ZeroCost, err
	}
	return plan, target.BestCost(), nil
}

func (o *Optimizer) buildPlan(sub *memo.Subset) (opt.RelNode, error) {
	best := sub.Best()
	if best == nil || sub.BestCost().IsInfinite() {
		return nil, opt.NoPlanError(sub.Traits())
	}
	inputs := best.Inputs()
	children := make([]opt.RelNode, len(inputs))
	for i, in := range inputs {
		childSub, ok := in.(*memo.Subset)
		if !ok {
			return nil, errors.AssertionFailedf("winner %s has a raw child", best.Digest())
		}
		child, err := o.buildPlan(childSub)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	if len(children) == 0 {
		return best, nil
	}
	return best.Copy(best.Traits(), children), nil
}

func (o *Optimizer) tracef(format string, args ...interface{}) {
	if o.config.Tracer == nil {
		return
	}
	fmt.Fprintf(o.config.Tracer, "[session %s] %s\n",
		o.cluster.SessionID(), redact.Sprintf(format, args...).StripMarkers())
}
