// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// WireOut - move web asset into a holder pending an external payout
type WireOut struct {
	FeeHeader
	Account protocol.ObjectId `json:"account"`
	Asset   protocol.Amount   `json:"asset_to_wire"`
	Memo    string            `json:"memo"`
}

// WireOutComplete - payout done, holder is burned
type WireOutComplete struct {
	FeeHeader
	WireOutHandler protocol.ObjectId `json:"wire_out_handler"`
	Holder         protocol.ObjectId `json:"holder_object_id"`
}

// WireOutReject - payout refused, holder is refunded
type WireOutReject struct {
	FeeHeader
	WireOutHandler protocol.ObjectId `json:"wire_out_handler"`
	Holder         protocol.ObjectId `json:"holder_object_id"`
}

// Tag - operation type
func (op *WireOut) Tag() TagType { return WireOutTag }

// FeePayer - the account wiring out
func (op *WireOut) FeePayer() protocol.ObjectId { return op.Account }

// RequiredAuthorities - the account wiring out
func (op *WireOut) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Account}
}

// Validate - stateless checks
func (op *WireOut) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	if len(op.Memo) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return op.Asset.ValidatePositive()
}

func (op *WireOut) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Account)
	c.amount(&op.Asset)
	c.string(&op.Memo)
}

// Tag - operation type
func (op *WireOutComplete) Tag() TagType { return WireOutCompleteTag }

// FeePayer - the handler
func (op *WireOutComplete) FeePayer() protocol.ObjectId { return op.WireOutHandler }

// RequiredAuthorities - the handler
func (op *WireOutComplete) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.WireOutHandler}
}

// Validate - stateless checks
func (op *WireOutComplete) Validate() error {
	return validateHolderOperation(op.FeeHeader, op.WireOutHandler, op.Holder)
}

func (op *WireOutComplete) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.WireOutHandler)
	c.id(&op.Holder)
}

// Tag - operation type
func (op *WireOutReject) Tag() TagType { return WireOutRejectTag }

// FeePayer - the handler
func (op *WireOutReject) FeePayer() protocol.ObjectId { return op.WireOutHandler }

// RequiredAuthorities - the handler
func (op *WireOutReject) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.WireOutHandler}
}

// Validate - stateless checks
func (op *WireOutReject) Validate() error {
	return validateHolderOperation(op.FeeHeader, op.WireOutHandler, op.Holder)
}

func (op *WireOutReject) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.WireOutHandler)
	c.id(&op.Holder)
}

func validateHolderOperation(fee FeeHeader, handler protocol.ObjectId, holder protocol.ObjectId) error {
	if err := fee.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(handler) {
		return fault.ErrInvalidObjectId
	}
	if !holder.Is(protocol.ProtocolSpace, protocol.WireOutHolderType) {
		return fault.ErrWrongObjectType
	}
	return nil
}
