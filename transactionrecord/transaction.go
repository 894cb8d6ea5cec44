// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/json"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

// MaxOperations - upper bound on operations in one transaction
const MaxOperations = 256

// Transaction - operations applied atomically
type Transaction struct {
	Expiration int64       `json:"expiration"`
	Operations []Operation `json:"-"`
}

// SignedTransaction - a transaction with the signatures of every
// required authority
type SignedTransaction struct {
	Transaction
	Signatures []account.Signature `json:"signatures"`
}

// Pack - binary form of the unsigned part, used for the id and for
// signing
func (tx *Transaction) Pack() (Packed, error) {
	c := newWriter()
	tx.serialise(c)
	if nil != c.err {
		return nil, c.err
	}
	return c.buffer, nil
}

func (tx *Transaction) serialise(c *codec) {
	c.int64(&tx.Expiration)
	count := uint64(len(tx.Operations))
	c.unsigned(&count, MaxOperations)
	if nil != c.err {
		return
	}
	if c.reading {
		tx.Operations = make([]Operation, count)
		for i := range tx.Operations {
			tx.Operations[i] = unpackOperation(c)
		}
		return
	}
	for _, op := range tx.Operations {
		packOperation(c, op)
	}
}

// Id - digest of the packed transaction
func (tx *Transaction) Id() (merkle.Digest, error) {
	packed, err := tx.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.NewDigest(packed), nil
}

// SigningMessage - chain id followed by the packed transaction so a
// signature cannot be replayed on another chain
func (tx *Transaction) SigningMessage(chainId merkle.Digest) ([]byte, error) {
	packed, err := tx.Pack()
	if nil != err {
		return nil, err
	}
	message := make([]byte, 0, len(chainId)+len(packed))
	message = append(message, chainId[:]...)
	return append(message, packed...), nil
}

// Sign - append a signature by each key
func (stx *SignedTransaction) Sign(chainId merkle.Digest, keys ...*account.PrivateKey) error {
	message, err := stx.SigningMessage(chainId)
	if nil != err {
		return err
	}
	for _, key := range keys {
		stx.Signatures = append(stx.Signatures, key.Sign(message))
	}
	return nil
}

// Pack - binary form including signatures
func (stx *SignedTransaction) Pack() (Packed, error) {
	c := newWriter()
	stx.serialise(c)
	if nil != c.err {
		return nil, c.err
	}
	return c.buffer, nil
}

func (stx *SignedTransaction) serialise(c *codec) {
	stx.Transaction.serialise(c)
	count := uint64(len(stx.Signatures))
	c.unsigned(&count, MaxOperations)
	if nil != c.err {
		return
	}
	if c.reading {
		stx.Signatures = make([]account.Signature, count)
	}
	for i := range stx.Signatures {
		c.signature(&stx.Signatures[i])
	}
}

// UnpackTransaction - decode a signed transaction
//
// returns the number of bytes consumed
func UnpackTransaction(record Packed) (*SignedTransaction, int, error) {
	stx := &SignedTransaction{}
	c := newReader(record)
	stx.serialise(c)
	if nil != c.err {
		return nil, 0, c.err
	}
	return stx, c.offset, nil
}

type transactionJSON struct {
	Expiration int64               `json:"expiration"`
	Operations []Envelope          `json:"operations"`
	Signatures []account.Signature `json:"signatures,omitempty"`
}

// MarshalJSON - operations as named envelopes
func (stx SignedTransaction) MarshalJSON() ([]byte, error) {
	j := transactionJSON{
		Expiration: stx.Expiration,
		Operations: make([]Envelope, len(stx.Operations)),
		Signatures: stx.Signatures,
	}
	for i, op := range stx.Operations {
		j.Operations[i] = Envelope{Operation: op}
	}
	return json.Marshal(j)
}

// UnmarshalJSON - operations from named envelopes
func (stx *SignedTransaction) UnmarshalJSON(s []byte) error {
	var j transactionJSON
	if err := json.Unmarshal(s, &j); nil != err {
		return err
	}
	if len(j.Operations) > MaxOperations {
		return fault.ErrOperationCountExceeded
	}
	stx.Expiration = j.Expiration
	stx.Operations = make([]Operation, len(j.Operations))
	for i, e := range j.Operations {
		stx.Operations[i] = e.Operation
	}
	stx.Signatures = j.Signatures
	return nil
}
