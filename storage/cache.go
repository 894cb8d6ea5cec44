// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// what the read cache knows about a key
type entryState int

const (
	entryUnknown entryState = iota
	entryPresent
	entryRemoved
)

const (
	cacheLifetime = 2 * time.Minute
	cachePurge    = 1 * time.Minute
)

// readCache - recent values keyed by the full database key
//
// a removal is remembered as well so that a queued delete hides the
// committed value until the batch is written
type readCache struct {
	entries *cache.Cache
}

func newReadCache() *readCache {
	return &readCache{
		entries: cache.New(cachePurge, cacheLifetime),
	}
}

func (c *readCache) lookup(key []byte) ([]byte, entryState) {
	item, ok := c.entries.Get(string(key))
	if !ok {
		return nil, entryUnknown
	}
	value := item.([]byte)
	if nil == value {
		return nil, entryRemoved
	}
	return value, entryPresent
}

func (c *readCache) store(key []byte, value []byte) {
	if nil == value {
		value = []byte{}
	}
	c.entries.Set(string(key), value, cache.DefaultExpiration)
}

func (c *readCache) remove(key []byte) {
	c.entries.Set(string(key), []byte(nil), cache.DefaultExpiration)
}

func (c *readCache) flush() {
	c.entries.Flush()
}
