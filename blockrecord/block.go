// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrecord

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Block - a header and the transactions it commits to
type Block struct {
	Header       Header                                 `json:"header"`
	Digest       merkle.Digest                          `json:"digest"`
	Transactions []*transactionrecord.SignedTransaction `json:"transactions"`
}

// New - assemble a block, computing its merkle root and digest
func New(number uint64, previous merkle.Digest, timestamp int64, transactions []*transactionrecord.SignedTransaction) (*Block, error) {
	if len(transactions) > MaximumTransactions {
		return nil, fault.ErrTransactionCountOutOfRange
	}
	root, err := MerkleRoot(transactions)
	if nil != err {
		return nil, err
	}
	b := &Block{
		Header: Header{
			Version:          Version,
			TransactionCount: uint16(len(transactions)),
			Number:           number,
			PreviousBlock:    previous,
			MerkleRoot:       root,
			Timestamp:        timestamp,
		},
		Transactions: transactions,
	}
	b.Digest = b.Header.Pack().Digest()
	return b, nil
}

// MerkleRoot - root of the ids of a list of transactions
func MerkleRoot(transactions []*transactionrecord.SignedTransaction) (merkle.Digest, error) {
	ids := make([]merkle.Digest, len(transactions))
	for i, stx := range transactions {
		id, err := stx.Id()
		if nil != err {
			return merkle.Digest{}, err
		}
		ids[i] = id
	}
	return merkle.Root(ids), nil
}

// Pack - header followed by each signed transaction
func (b *Block) Pack() (PackedBlock, error) {
	header := b.Header.Pack()
	buffer := make([]byte, 0, len(header))
	buffer = append(buffer, header[:]...)
	for _, stx := range b.Transactions {
		packed, err := stx.Pack()
		if nil != err {
			return nil, err
		}
		buffer = append(buffer, packed...)
	}
	return buffer, nil
}

// Unpack - decode a packed block and check its merkle root
func (record PackedBlock) Unpack() (*Block, error) {
	header, digest, data, err := ExtractHeader(record)
	if nil != err {
		return nil, err
	}

	b := &Block{
		Header:       *header,
		Digest:       digest,
		Transactions: make([]*transactionrecord.SignedTransaction, 0, header.TransactionCount),
	}
	for i := 0; i < int(header.TransactionCount); i += 1 {
		stx, n, err := transactionrecord.UnpackTransaction(data)
		if nil != err {
			return nil, err
		}
		b.Transactions = append(b.Transactions, stx)
		data = data[n:]
	}
	if 0 != len(data) {
		return nil, fault.ErrTransactionCountOutOfRange
	}

	root, err := MerkleRoot(b.Transactions)
	if nil != err {
		return nil, err
	}
	if root != header.MerkleRoot {
		return nil, fault.ErrMerkleRootMismatch
	}
	return b, nil
}
