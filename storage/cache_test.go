// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadCacheStore(t *testing.T) {
	c := newReadCache()

	_, state := c.lookup([]byte("key"))
	assert.Equal(t, entryUnknown, state, "empty cache")

	c.store([]byte("key"), []byte("value"))
	value, state := c.lookup([]byte("key"))
	assert.Equal(t, entryPresent, state, "after store")
	assert.Equal(t, []byte("value"), value, "stored value")

	c.store([]byte("empty"), nil)
	value, state = c.lookup([]byte("empty"))
	assert.Equal(t, entryPresent, state, "empty value")
	assert.Empty(t, value, "empty value")
}

func TestReadCacheRemove(t *testing.T) {
	c := newReadCache()

	c.store([]byte("key"), []byte{1})
	c.remove([]byte("key"))

	value, state := c.lookup([]byte("key"))
	assert.Equal(t, entryRemoved, state, "after remove")
	assert.Nil(t, value, "removed value")
}

func TestReadCacheFlush(t *testing.T) {
	c := newReadCache()

	c.store([]byte("key"), []byte("value"))
	c.remove([]byte("gone"))
	c.flush()

	_, state := c.lookup([]byte("key"))
	assert.Equal(t, entryUnknown, state, "stored key")
	_, state = c.lookup([]byte("gone"))
	assert.Equal(t, entryUnknown, state, "removed key")
}
