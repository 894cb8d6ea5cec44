// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// PushTransaction - apply a transaction to the pending state
//
// on error nothing has changed
func (l *Ledger) PushTransaction(stx *transactionrecord.SignedTransaction) (*ProcessedTransaction, error) {
	l.Lock()
	defer l.Unlock()

	if nil == l.pendingSession {
		l.pendingSession = l.db.StartUndoSession()
	}

	processed, err := l.applyTransaction(stx, len(l.pendingTransactions), l.options.SkipSignatures)
	if nil != err {
		if 0 == len(l.pendingTransactions) {
			l.pendingSession.Undo()
			l.pendingSession = nil
		}
		return nil, err
	}

	l.pendingTransactions = append(l.pendingTransactions, stx)
	l.pendingOperations = append(l.pendingOperations, processed.Operations...)
	return processed, nil
}

// run every step of the driver inside an undo session
func (l *Ledger) applyTransaction(stx *transactionrecord.SignedTransaction, trxInBlock int, skipSignatures bool) (*ProcessedTransaction, error) {
	log := l.log
	db := l.db

	txId, err := l.checkStructure(stx)
	if nil != err {
		log.Warnf("rejected: %s", err)
		return nil, err
	}

	if !skipSignatures {
		err = l.checkAuthorities(stx)
		if nil != err {
			log.Warnf("tx: %s  rejected: %s", txId, err)
			return nil, err
		}
	}

	session := db.StartUndoSession()
	mark := db.VirtualMark()

	abort := func(err error) (*ProcessedTransaction, error) {
		session.Undo()
		db.RollbackVirtual(mark)
		log.Warnf("tx: %s  rejected: %s", txId, err)
		return nil, err
	}

	for i, op := range stx.Operations {
		err = payFee(db, op)
		if nil != err {
			return abort(fmt.Errorf("operation %d fee: %w", i, err))
		}
	}

	processed := &ProcessedTransaction{
		Id:          txId,
		Transaction: stx,
		Results:     make([]evaluator.Result, 0, len(stx.Operations)),
		Operations:  make([]AppliedOperation, 0, len(stx.Operations)),
	}

	// each operation sees the effects of those before it
	for i, op := range stx.Operations {
		result, err := l.registry.Process(db, op)
		if errors.Is(err, fault.ErrApplyFailed) {
			session.Undo()
			db.RollbackVirtual(mark)
			log.Criticalf("tx: %s  operation: %d  %s: %s", txId, i, op.Tag(), err)
			log.Flush()
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		if nil != err {
			return abort(fmt.Errorf("operation %d: %w", i, err))
		}
		processed.Results = append(processed.Results, result)
		processed.Operations = append(processed.Operations, AppliedOperation{
			TrxInBlock: uint16(trxInBlock),
			OpInTrx:    uint16(i),
			TxId:       txId,
			Operation:  transactionrecord.Envelope{Operation: op},
			Result:     result,
		})
		for n, v := range db.TakeVirtual() {
			processed.Operations = append(processed.Operations, AppliedOperation{
				TrxInBlock: uint16(trxInBlock),
				OpInTrx:    uint16(i),
				VirtualOp:  uint32(n + 1),
				TxId:       txId,
				Operation:  transactionrecord.Envelope{Operation: v},
				Result:     evaluator.VoidResult(),
			})
		}
	}

	_, err = db.Transactions.Create(func(id protocol.ObjectId) state.TransactionRecord {
		return state.TransactionRecord{
			Id:         id,
			TxId:       txId,
			Expiration: stx.Expiration,
		}
	})
	if nil != err {
		return abort(err)
	}

	session.Commit()
	log.Debugf("tx: %s  operations: %d  applied", txId, len(stx.Operations))
	return processed, nil
}

// checks that need no evaluator, returns the transaction id
func (l *Ledger) checkStructure(stx *transactionrecord.SignedTransaction) (merkle.Digest, error) {
	if nil == stx || 0 == len(stx.Operations) {
		return merkle.Digest{}, fault.ErrEmptyTransaction
	}

	parameters := l.db.Parameters()
	packed, err := stx.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	if len(packed) > int(parameters.MaximumTransactionSize) {
		return merkle.Digest{}, fault.ErrTransactionTooLarge
	}

	txId, err := stx.Id()
	if nil != err {
		return merkle.Digest{}, err
	}

	now := l.db.HeadTime()
	if stx.Expiration < now {
		return txId, fault.ErrTransactionExpired
	}
	if stx.Expiration > now+int64(parameters.MaximumTimeUntilExpiration) {
		return txId, fault.ErrTransactionExpirationTooFar
	}

	for i, op := range stx.Operations {
		if transactionrecord.IsVirtual(op.Tag()) {
			return txId, fmt.Errorf("operation %d: %w", i, fault.ErrVirtualOperation)
		}
		if err := op.Validate(); nil != err {
			return txId, fmt.Errorf("operation %d: %w", i, err)
		}
	}

	if l.db.FindTransaction(txId) {
		return txId, fault.ErrDuplicateTransaction
	}
	return txId, nil
}

// every account named by an operation must have signed
func (l *Ledger) checkAuthorities(stx *transactionrecord.SignedTransaction) error {
	message, err := stx.SigningMessage(l.db.ChainId())
	if nil != err {
		return err
	}

	seen := make(map[protocol.ObjectId]struct{})
	for _, op := range stx.Operations {
		for _, id := range op.RequiredAuthorities() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			a, err := l.db.GetAccount(id)
			if nil != err {
				return err
			}
			if !hasSignature(a, message, stx) {
				return fmt.Errorf("%w: %s", fault.ErrMissingSignature, id)
			}
		}
	}
	return nil
}

func hasSignature(a state.Account, message []byte, stx *transactionrecord.SignedTransaction) bool {
	for _, signature := range stx.Signatures {
		if nil == a.ActiveKey.CheckSignature(message, signature) {
			return true
		}
	}
	return false
}
