// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

//go:generate mockgen -source=transaction.go -destination=../mocks/transaction.go -package=mocks

import (
	"encoding/hex"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const (
	rateLimitTransaction = 200
	rateBurstTransaction = 100
)

// status values
const (
	Confirmed = "confirmed"
	Pending   = "pending"
)

// Processor - accepts transactions and reports where they are
type Processor interface {
	PushTransaction(stx *transactionrecord.SignedTransaction) (*ledger.ProcessedTransaction, error)
	TransactionBlock(txId merkle.Digest) (uint64, bool, error)
	IsPending(txId merkle.Digest) bool
}

// Transaction - type for the RPC
type Transaction struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Processor Processor
}

// New - create the Transaction service
func New(log *logger.L, processor Processor) *Transaction {
	return &Transaction{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitTransaction, rateBurstTransaction),
		Processor: processor,
	}
}

// BroadcastArguments - a signed transaction, either as JSON or as the
// hex of its binary form
type BroadcastArguments struct {
	Transaction *transactionrecord.SignedTransaction `json:"transaction"`
	Packed      string                               `json:"packed"`
}

// BroadcastReply - result of applying the transaction to the pending
// state
type BroadcastReply struct {
	Id        merkle.Digest                `json:"id"`
	Processed *ledger.ProcessedTransaction `json:"processed"`
}

// Broadcast - validate and apply a transaction, it is included in the
// next block
func (t *Transaction) Broadcast(arguments *BroadcastArguments, reply *BroadcastReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	stx, err := signedTransaction(arguments)
	if nil != err {
		return err
	}

	processed, err := t.Processor.PushTransaction(stx)
	if nil != err {
		t.Log.Warnf("Transaction.Broadcast: rejected: %s", err)
		return err
	}

	t.Log.Debugf("Transaction.Broadcast: accepted: %s", processed.Id)

	reply.Id = processed.Id
	reply.Processed = processed
	return nil
}

func signedTransaction(arguments *BroadcastArguments) (*transactionrecord.SignedTransaction, error) {
	if nil != arguments.Transaction {
		if "" != arguments.Packed {
			return nil, fault.ErrInvalidTransaction
		}
		return arguments.Transaction, nil
	}
	if "" == arguments.Packed {
		return nil, fault.ErrMissingParameters
	}

	packed, err := hex.DecodeString(arguments.Packed)
	if nil != err {
		return nil, fault.ErrInvalidHex
	}
	stx, n, err := transactionrecord.UnpackTransaction(packed)
	if nil != err {
		return nil, err
	}
	if n != len(packed) {
		return nil, fault.ErrInvalidTransaction
	}
	return stx, nil
}

// StatusArguments - arguments for Status
type StatusArguments struct {
	TxId merkle.Digest `json:"txId"`
}

// StatusReply - results from Status
type StatusReply struct {
	Status string `json:"status"`
	Block  uint64 `json:"block,string,omitempty"`
}

// Status - whether a transaction is in a block or waiting for one
func (t *Transaction) Status(arguments *StatusArguments, reply *StatusReply) error {
	if err := ratelimit.Limit(t.Limiter); nil != err {
		return err
	}

	number, found, err := t.Processor.TransactionBlock(arguments.TxId)
	if nil != err {
		return err
	}
	if found {
		reply.Status = Confirmed
		reply.Block = number
		return nil
	}
	if t.Processor.IsPending(arguments.TxId) {
		reply.Status = Pending
		return nil
	}
	return fault.ErrNotFoundTransaction
}
