// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Access - batched writes to one database
//
// writes are collected between Begin and Commit; reads see the
// pending writes through the cache, iterators only see committed data
type Access interface {
	Abort()
	Begin() error
	Commit() error
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
	Put([]byte, []byte)
}

type batchAccess struct {
	sync.Mutex
	open  bool
	db    *leveldb.DB
	batch leveldb.Batch
	cache *readCache
}

func newBatchAccess(db *leveldb.DB) *batchAccess {
	return &batchAccess{
		db:    db,
		cache: newReadCache(),
	}
}

func (a *batchAccess) Begin() error {
	a.Lock()
	defer a.Unlock()

	if a.open {
		return fault.ErrBatchInUse
	}
	a.open = true
	return nil
}

func (a *batchAccess) Put(key []byte, value []byte) {
	a.Lock()
	defer a.Unlock()

	a.cache.store(key, value)
	a.batch.Put(key, value)
}

func (a *batchAccess) Delete(key []byte) {
	a.Lock()
	defer a.Unlock()

	a.cache.remove(key)
	a.batch.Delete(key)
}

// Commit - write the batch atomically, on failure the cache may hold
// writes that never reached the database so it is dropped
func (a *batchAccess) Commit() error {
	a.Lock()
	defer a.Unlock()

	if !a.open {
		return fault.ErrBatchNotInUse
	}
	err := a.db.Write(&a.batch, nil)
	a.reset(nil != err)
	return err
}

func (a *batchAccess) Abort() {
	a.Lock()
	defer a.Unlock()

	a.reset(true)
}

// must hold lock
func (a *batchAccess) reset(flush bool) {
	a.batch.Reset()
	a.open = false
	if flush {
		a.cache.flush()
	}
}

// Get - nil for an absent key
func (a *batchAccess) Get(key []byte) ([]byte, error) {
	switch value, state := a.cache.lookup(key); state {
	case entryPresent:
		return value, nil
	case entryRemoved:
		return nil, nil
	}

	value, err := a.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	a.cache.store(key, value)
	return value, nil
}

func (a *batchAccess) Has(key []byte) (bool, error) {
	switch _, state := a.cache.lookup(key); state {
	case entryPresent:
		return true, nil
	case entryRemoved:
		return false, nil
	}
	return a.db.Has(key, nil)
}

func (a *batchAccess) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return a.db.NewIterator(searchRange, nil)
}
