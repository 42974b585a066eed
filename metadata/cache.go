// Copyright 2026 The Volcano Authors.
//
// Use of this software is governed by the Apache License, Version 2.0
// included in the /LICENSE file.

package metadata

import (
	"github.com/dchest/siphash"
	"github.com/ldming/volcano/opt"
)

// TimestampSource exposes the memo's structural version. Cached entries
// carry the timestamp they were computed at; a mismatch means the memo
// changed and the entry is recomputed.
type TimestampSource interface {
	Timestamp() uint64
}

// siphash keys for cache-key hashing. Any fixed keys work: the cache is
// per-session and never sees adversarial input.
const (
	cacheKey0 = 0x6f70746d64686173
	cacheKey1 = 0x63616368656b6579
)

type cacheKey struct {
	kind Kind
	rel  opt.RelID
	args uint64
}

type cacheEntry struct {
	timestamp uint64
	result    interface{}
}

// CachingProvider memoizes the results of an underlying provider by
// (kind, expression identity, argument vector), stamped with the memo
// timestamp. Stale entries are recomputed; nil (unknown) results are not
// cached. Re-entrant reads during a nested metadata query are fine; the
// cache is not safe for concurrent use across goroutines.
type CachingProvider struct {
	under   Provider
	source  TimestampSource
	cache   map[cacheKey]cacheEntry
	wrapped map[providerKey]Handler
}

// NewCachingProvider wraps under with a timestamp-validated cache.
func NewCachingProvider(under Provider, source TimestampSource) *CachingProvider {
	return &CachingProvider{
		under:   under,
		source:  source,
		cache:   make(map[cacheKey]cacheEntry),
		wrapped: make(map[providerKey]Handler),
	}
}

// Handler implements Provider.
func (c *CachingProvider) Handler(kind Kind, op opt.Operator) Handler {
	pk := providerKey{kind: kind, op: op}
	if h, ok := c.wrapped[pk]; ok {
		return h
	}
	under := c.under.Handler(kind, op)
	if under == nil {
		return nil
	}
	h := func(q *Query, e opt.RelNode, a Args) interface{} {
		key := cacheKey{
			kind: kind,
			rel:  e.ID(),
			args: siphash.Hash(cacheKey0, cacheKey1, []byte(a.key())),
		}
		now := c.source.Timestamp()
		if entry, ok := c.cache[key]; ok && entry.timestamp == now {
			return entry.result
		}
		result := under(q, e, a)
		if result != nil {
			c.cache[key] = cacheEntry{timestamp: now, result: result}
		}
		return result
	}
	c.wrapped[pk] = h
	return h
}
