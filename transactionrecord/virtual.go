// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/protocol"
)

// AssetSettleCancel - a pending force settlement was returned
type AssetSettleCancel struct {
	virtualHeader
	Settlement protocol.ObjectId `json:"settlement"`
	Account    protocol.ObjectId `json:"account"`
	Amount     protocol.Amount   `json:"amount"`
}

// AssetSettleFill - a matured force settlement was executed
type AssetSettleFill struct {
	virtualHeader
	Settlement protocol.ObjectId `json:"settlement"`
	Account    protocol.ObjectId `json:"account"`
	Pays       protocol.Amount   `json:"pays"`
	Receives   protocol.Amount   `json:"receives"`
}

// AssetGlobalSettled - an asset entered the settled state
type AssetGlobalSettled struct {
	virtualHeader
	Asset           protocol.ObjectId `json:"asset"`
	SettlementPrice protocol.Price    `json:"settlement_price"`
}

// WireOutResult - outcome of a wire out request
type WireOutResult struct {
	virtualHeader
	Account   protocol.ObjectId `json:"account"`
	Amount    protocol.Amount   `json:"amount"`
	Completed bool              `json:"completed"`
	Memo      string            `json:"memo"`
}

// Tag - operation type
func (op *AssetSettleCancel) Tag() TagType { return AssetSettleCancelTag }

// FeePayer - the settling account
func (op *AssetSettleCancel) FeePayer() protocol.ObjectId { return op.Account }

func (op *AssetSettleCancel) serialise(c *codec) {
	c.id(&op.Settlement)
	c.id(&op.Account)
	c.amount(&op.Amount)
}

// Tag - operation type
func (op *AssetSettleFill) Tag() TagType { return AssetSettleFillTag }

// FeePayer - the settling account
func (op *AssetSettleFill) FeePayer() protocol.ObjectId { return op.Account }

func (op *AssetSettleFill) serialise(c *codec) {
	c.id(&op.Settlement)
	c.id(&op.Account)
	c.amount(&op.Pays)
	c.amount(&op.Receives)
}

// Tag - operation type
func (op *AssetGlobalSettled) Tag() TagType { return AssetGlobalSettledTag }

// FeePayer - the chain
func (op *AssetGlobalSettled) FeePayer() protocol.ObjectId { return protocol.CommitteeAccount }

func (op *AssetGlobalSettled) serialise(c *codec) {
	c.id(&op.Asset)
	c.price(&op.SettlementPrice)
}

// Tag - operation type
func (op *WireOutResult) Tag() TagType { return WireOutResultTag }

// FeePayer - the account that wired out
func (op *WireOutResult) FeePayer() protocol.ObjectId { return op.Account }

func (op *WireOutResult) serialise(c *codec) {
	c.id(&op.Account)
	c.amount(&op.Amount)
	c.bool(&op.Completed)
	c.string(&op.Memo)
}
