// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/json"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Pack - turn an operation into its binary form
func Pack(op Operation) (Packed, error) {
	c := newWriter()
	packOperation(c, op)
	if nil != c.err {
		return nil, c.err
	}
	return c.buffer, nil
}

// Unpack - turn a byte slice into an operation
//
// returns the number of bytes consumed
func (record Packed) Unpack() (Operation, int, error) {
	c := newReader(record)
	op := unpackOperation(c)
	if nil != c.err {
		return nil, 0, c.err
	}
	return op, c.offset, nil
}

func packOperation(c *codec, op Operation) {
	if nil == op || !op.Tag().IsValid() {
		c.err = fault.ErrUnknownOperation
		return
	}
	tag := uint64(op.Tag())
	c.uvarint(&tag)
	op.serialise(c)
}

func unpackOperation(c *codec) Operation {
	tag := uint64(0)
	c.uvarint(&tag)
	if nil != c.err {
		return nil
	}
	op, err := New(TagType(tag))
	if nil != err {
		c.err = err
		return nil
	}
	op.serialise(c)
	if nil != c.err {
		return nil
	}
	return op
}

// Envelope - JSON form of an operation: its name and its fields
type Envelope struct {
	Operation Operation
}

type envelopeJSON struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON - name and fields
func (e Envelope) MarshalJSON() ([]byte, error) {
	if nil == e.Operation {
		return []byte("null"), nil
	}
	data, err := json.Marshal(e.Operation)
	if nil != err {
		return nil, err
	}
	return json.Marshal(envelopeJSON{
		Type: e.Operation.Tag().String(),
		Data: data,
	})
}

// UnmarshalJSON - select the operation type by name
func (e *Envelope) UnmarshalJSON(s []byte) error {
	var raw envelopeJSON
	if err := json.Unmarshal(s, &raw); nil != err {
		return err
	}
	tag, ok := TagFromName(raw.Type)
	if !ok {
		return fault.ErrUnknownOperation
	}
	op, err := New(tag)
	if nil != err {
		return err
	}
	if err := json.Unmarshal(raw.Data, op); nil != err {
		return err
	}
	e.Operation = op
	return nil
}
