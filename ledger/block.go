// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// SealBlock - close the pending transactions into the next block
//
// an empty block is allowed so that maintenance still runs; on failure
// the pending transactions that are still valid stay pending
func (l *Ledger) SealBlock(timestamp int64) (*blockrecord.Block, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.pendingSession {
		l.pendingSession = l.db.StartUndoSession()
	}
	session := l.pendingSession
	transactions := l.pendingTransactions
	operations := l.pendingOperations
	l.pendingSession = nil
	l.pendingTransactions = nil
	l.pendingOperations = nil

	dynamic := l.db.DynamicProperties()
	block, err := blockrecord.New(dynamic.HeadBlockNumber+1, dynamic.HeadBlockId, timestamp, transactions)
	if nil == err {
		err = l.finishBlock(block, operations)
	}
	if nil != err {
		session.Undo()
		l.db.TakeVirtual()
		l.log.Errorf("seal block: %d failed: %s", dynamic.HeadBlockNumber+1, err)
		l.repush(transactions)
		return nil, err
	}
	session.Commit()

	l.log.Infof("sealed block: %d  transactions: %d  digest: %s", block.Header.Number, len(transactions), block.Digest)
	return block, nil
}

// ApplyBlock - process a block produced elsewhere
//
// pending transactions are set aside while the block is applied and
// then pushed again; those the block made invalid are dropped
func (l *Ledger) ApplyBlock(block *blockrecord.Block) error {
	l.Lock()
	defer l.Unlock()

	deferred := l.pendingTransactions
	if nil != l.pendingSession {
		l.pendingSession.Undo()
		l.db.TakeVirtual()
	}
	l.pendingSession = nil
	l.pendingTransactions = nil
	l.pendingOperations = nil

	err := l.applyBlock(block)
	l.repush(deferred)
	return err
}

// apply transactions set aside from the pending state again, dropping
// those that are no longer valid
//
// must hold lock, the pending state must be empty
func (l *Ledger) repush(transactions []*transactionrecord.SignedTransaction) {
	for _, stx := range transactions {
		if nil == l.pendingSession {
			l.pendingSession = l.db.StartUndoSession()
		}
		processed, err := l.applyTransaction(stx, len(l.pendingTransactions), true)
		if nil != err {
			l.log.Debugf("pending transaction dropped: %s", err)
			continue
		}
		l.pendingTransactions = append(l.pendingTransactions, stx)
		l.pendingOperations = append(l.pendingOperations, processed.Operations...)
	}
	if nil != l.pendingSession && 0 == len(l.pendingTransactions) {
		l.pendingSession.Undo()
		l.pendingSession = nil
	}
}

func (l *Ledger) applyBlock(block *blockrecord.Block) error {
	header := block.Header
	dynamic := l.db.DynamicProperties()

	if header.Number != dynamic.HeadBlockNumber+1 {
		return fmt.Errorf("%w: actual: %d  expected: %d", fault.ErrBlockNumberMismatch, header.Number, dynamic.HeadBlockNumber+1)
	}
	if header.PreviousBlock != dynamic.HeadBlockId {
		return fault.ErrPreviousBlockMismatch
	}
	if int(header.TransactionCount) != len(block.Transactions) {
		return fault.ErrTransactionCountOutOfRange
	}
	root, err := blockrecord.MerkleRoot(block.Transactions)
	if nil != err {
		return err
	}
	if root != header.MerkleRoot {
		return fault.ErrMerkleRootMismatch
	}
	block.Digest = header.Pack().Digest()

	session := l.db.StartUndoSession()
	operations := make([]AppliedOperation, 0, len(block.Transactions))
	for i, stx := range block.Transactions {
		processed, err := l.applyTransaction(stx, i, l.options.SkipSignatures)
		if nil != err {
			session.Undo()
			l.log.Errorf("block: %d  transaction: %d  rejected: %s", header.Number, i, err)
			return err
		}
		operations = append(operations, processed.Operations...)
	}

	err = l.finishBlock(block, operations)
	if nil != err {
		session.Undo()
		l.db.TakeVirtual()
		l.log.Errorf("block: %d  failed: %s", header.Number, err)
		return err
	}
	session.Commit()

	l.log.Infof("applied block: %d  transactions: %d  digest: %s", header.Number, len(block.Transactions), block.Digest)
	return nil
}

// advance the head, run maintenance and write everything to storage
func (l *Ledger) finishBlock(block *blockrecord.Block, operations []AppliedOperation) error {
	db := l.db
	header := block.Header

	if header.Timestamp < db.HeadTime() {
		return fault.ErrInvalidBlockTime
	}

	err := db.ModifyDynamic(func(d *state.DynamicGlobalProperties) {
		d.HeadBlockNumber = header.Number
		d.HeadBlockId = block.Digest
		d.Time = header.Timestamp
	})
	if nil != err {
		return err
	}

	err = l.maintenance()
	if nil != err {
		return err
	}

	trxInBlock := uint16(len(block.Transactions))
	for n, v := range db.TakeVirtual() {
		operations = append(operations, AppliedOperation{
			TrxInBlock: trxInBlock,
			VirtualOp:  uint32(n + 1),
			Operation:  transactionrecord.Envelope{Operation: v},
		})
	}
	for i := range operations {
		operations[i].Block = header.Number
	}

	return l.persist(block, operations)
}
