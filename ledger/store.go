// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
)

// key of the head block number in the properties pool
var headKey = []byte("head")

// objects are restored in pages of this size
const restoreBatchSize = 1000

// big endian block number, so blocks iterate in order
func blockKey(number uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, number)
	return key
}

// space, type
func indexKey(index objectstore.Persistent) []byte {
	return []byte{index.Space(), index.Type()}
}

// space, type, big endian instance
func objectKey(index objectstore.Persistent, instance uint64) []byte {
	key := make([]byte, 10)
	key[0] = index.Space()
	key[1] = index.Type()
	binary.BigEndian.PutUint64(key[2:], instance)
	return key
}

// write a block, its history and every changed object in one batch
//
// block is nil for the genesis checkpoint
func (l *Ledger) persist(block *blockrecord.Block, operations []AppliedOperation) error {
	indices := l.db.Store().Indices()

	if nil == l.store {
		for _, index := range indices {
			index.ClearDirty()
		}
		return nil
	}

	pool := l.store.Pool

	err := l.store.Begin()
	if nil != err {
		return err
	}

	head := uint64(0)
	if nil != block {
		head = block.Header.Number
		key := blockKey(head)

		packed, err := block.Pack()
		if nil != err {
			l.store.Abort()
			return err
		}
		history, err := json.Marshal(operations)
		if nil != err {
			l.store.Abort()
			return err
		}
		pool.Blocks.Put(key, packed)
		pool.Virtual.Put(key, history)

		for _, stx := range block.Transactions {
			txId, err := stx.Id()
			if nil != err {
				l.store.Abort()
				return err
			}
			pool.Transactions.Put(txId[:], key)
		}
	}

	for _, index := range indices {
		for _, instance := range index.Dirty() {
			key := objectKey(index, instance)
			data, found, err := index.Marshal(instance)
			if nil != err {
				l.store.Abort()
				return err
			}
			if found {
				pool.Objects.Put(key, data)
			} else {
				pool.Objects.Delete(key)
			}
		}
		pool.Allocators.PutN(indexKey(index), index.NextInstance())
	}
	pool.Properties.PutN(headKey, head)

	err = l.store.Commit()
	if nil != err {
		l.log.Criticalf("block: %d  store failed: %s", head, err)
		l.store.Abort()
		return err
	}

	for _, index := range indices {
		index.ClearDirty()
	}
	return nil
}

// load every index from the last checkpoint
//
// returns false if the store holds no checkpoint
func restore(store *storage.Store, db *state.Database) (uint64, bool, error) {
	if nil == store {
		return 0, false, fault.ErrDatabaseIsNotSet
	}

	head, found, err := store.Pool.Properties.GetN(headKey)
	if nil != err || !found {
		return 0, false, err
	}

	for _, index := range db.Store().Indices() {
		prefix := indexKey(index)
		next, _, err := store.Pool.Allocators.GetN(prefix)
		if nil != err {
			return 0, false, err
		}

		records := [][]byte{}
		cursor := store.Pool.Objects.NewFetchCursor().Seek(prefix)
	fetching:
		for {
			elements, err := cursor.Fetch(restoreBatchSize)
			if nil != err {
				return 0, false, err
			}
			if 0 == len(elements) {
				break fetching
			}
			for _, e := range elements {
				if !bytes.HasPrefix(e.Key, prefix) {
					break fetching
				}
				records = append(records, e.Value)
			}
		}

		err = index.Load(next, records)
		if nil != err {
			return 0, false, fmt.Errorf("index: %s  %w", index.Name(), err)
		}
	}

	if head != db.DynamicProperties().HeadBlockNumber {
		return 0, false, fault.ErrCheckpointMismatch
	}
	return head, true, nil
}
