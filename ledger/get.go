// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// MaximumBlockCount - most blocks returned by one request
const MaximumBlockCount = 100

// GetBlocks - up to count blocks starting at start, stopping at the
// head block
func (l *Ledger) GetBlocks(start uint64, count int) ([]*blockrecord.Block, error) {
	l.RLock()
	defer l.RUnlock()

	end, err := l.blockRange(start, count)
	if nil != err {
		return nil, err
	}

	blocks := make([]*blockrecord.Block, 0, end-start+1)
	for n := start; n <= end; n += 1 {
		packed, err := l.store.Pool.Blocks.Get(blockKey(n))
		if nil != err {
			return nil, err
		}
		if nil == packed {
			return nil, fault.ErrBlockNotFound
		}
		block, err := blockrecord.PackedBlock(packed).Unpack()
		if nil != err {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// GetBlocksWithVirtualOperations - the virtual operations of up to
// count blocks, restricted to the given tags unless tags is empty
func (l *Ledger) GetBlocksWithVirtualOperations(start uint64, count int, tags []transactionrecord.TagType) ([]BlockOperations, error) {
	l.RLock()
	defer l.RUnlock()

	end, err := l.blockRange(start, count)
	if nil != err {
		return nil, err
	}

	wanted := make(map[transactionrecord.TagType]struct{}, len(tags))
	for _, tag := range tags {
		wanted[tag] = struct{}{}
	}

	result := make([]BlockOperations, 0, end-start+1)
	for n := start; n <= end; n += 1 {
		data, err := l.store.Pool.Virtual.Get(blockKey(n))
		if nil != err {
			return nil, err
		}
		if nil == data {
			return nil, fault.ErrBlockNotFound
		}
		var operations []AppliedOperation
		err = json.Unmarshal(data, &operations)
		if nil != err {
			return nil, err
		}

		selected := BlockOperations{
			Number:     n,
			Operations: []AppliedOperation{},
		}
		for _, op := range operations {
			if !op.IsVirtual() {
				continue
			}
			if 0 != len(wanted) {
				if _, ok := wanted[op.Operation.Operation.Tag()]; !ok {
					continue
				}
			}
			selected.Operations = append(selected.Operations, op)
		}
		result = append(result, selected)
	}
	return result, nil
}

// GetOperationHistory - every operation of one block in order
func (l *Ledger) GetOperationHistory(number uint64) ([]AppliedOperation, error) {
	l.RLock()
	defer l.RUnlock()

	if _, err := l.blockRange(number, 1); nil != err {
		return nil, err
	}
	data, err := l.store.Pool.Virtual.Get(blockKey(number))
	if nil != err {
		return nil, err
	}
	if nil == data {
		return nil, fault.ErrBlockNotFound
	}
	var operations []AppliedOperation
	err = json.Unmarshal(data, &operations)
	return operations, err
}

// TransactionBlock - number of the block holding a transaction
func (l *Ledger) TransactionBlock(txId merkle.Digest) (uint64, bool, error) {
	l.RLock()
	defer l.RUnlock()

	if nil == l.store {
		return 0, false, fault.ErrDatabaseIsNotSet
	}
	data, err := l.store.Pool.Transactions.Get(txId[:])
	if nil != err || nil == data {
		return 0, false, err
	}
	if len(data) < 8 {
		return 0, false, fault.ErrNotEnoughData
	}
	return binary.BigEndian.Uint64(data), true, nil
}

// validate a request, returns the last block number to fetch
func (l *Ledger) blockRange(start uint64, count int) (uint64, error) {
	if nil == l.store {
		return 0, fault.ErrDatabaseIsNotSet
	}
	if count <= 0 || count > MaximumBlockCount {
		return 0, fault.ErrCountOutOfRange
	}
	head := l.db.DynamicProperties().HeadBlockNumber
	if 0 == start || start > head {
		return 0, fault.ErrOutOfRange
	}
	end := start + uint64(count) - 1
	if end > head {
		end = head
	}
	return end, nil
}
