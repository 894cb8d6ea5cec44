// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/ledgerd/fault"
)

// FetchCursor - resumable scan over one pool
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - a cursor over the whole pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // included
			Limit: p.limit,          // excluded
		},
	}
}

// Seek - start the next fetch at key
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange.Start = cursor.pool.prefixKey(key)
	return cursor
}

// copy the current entry without its pool prefix, the iterator
// reuses its buffers on Next
func element(iter iterator.Iterator) Element {
	key := iter.Key()
	value := iter.Value()

	e := Element{
		Key:   make([]byte, len(key)-1),
		Value: make([]byte, len(value)),
	}
	copy(e.Key, key[1:])
	copy(e.Value, value)
	return e
}

// Fetch - up to count elements, the cursor then moves past the last
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	results := make([]Element, 0, count)
	for len(results) < count && iter.Next() {
		results = append(results, element(iter))
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}

	if n := len(results); n > 0 {
		last := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(last, 0x00)
	}
	return results, nil
}

// Map - call f for every remaining element, stopping at its first
// error
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {
		e := element(iter)
		if err := f(e.Key, e.Value); nil != err {
			return err
		}
	}
	return iter.Error()
}
