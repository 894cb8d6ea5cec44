// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// the asset whose supply an operation changes
type supplyContext struct {
	asset state.Asset
}

// check that supply can grow by delta
func checkSupply(db state.Reader, a state.Asset, delta int64) error {
	dynamic, err := db.GetDynamicData(a)
	if nil != err {
		return err
	}
	supply, err := protocol.AddShares(dynamic.CurrentSupply, delta)
	if nil != err {
		return fault.ErrSupplyExceedsMaximum
	}
	if supply > a.Options.MaxSupply {
		return fault.ErrSupplyExceedsMaximum
	}
	if supply < 0 {
		return fault.ErrSupplyNegative
	}
	return nil
}

func evaluateIssue(db state.Reader, op *transactionrecord.AssetIssue) (supplyContext, error) {
	a, err := db.GetAsset(op.AssetToIssue.AssetId)
	if nil != err {
		return supplyContext{}, err
	}
	if a.Issuer != op.Issuer {
		return supplyContext{}, fault.ErrIssuerMismatch
	}
	if a.IsMarketIssued() {
		return supplyContext{}, fault.ErrAssetIsMarketIssued
	}

	receiver, err := db.GetAccount(op.IssueToAccount)
	if nil != err {
		return supplyContext{}, err
	}
	if !db.IsAuthorizedAsset(receiver, a) {
		return supplyContext{}, fault.ErrAccountNotAuthorised
	}
	if err := checkSupply(db, a, op.AssetToIssue.Amount); nil != err {
		return supplyContext{}, err
	}
	return supplyContext{asset: a}, nil
}

func applyIssue(db *state.Database, op *transactionrecord.AssetIssue, ctx supplyContext) (evaluator.Result, error) {
	if err := db.AdjustBalance(op.IssueToAccount, op.AssetToIssue); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustSupply(ctx.asset, op.AssetToIssue.Amount); nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.VoidResult(), nil
}

func evaluateReserve(db state.Reader, op *transactionrecord.AssetReserve) (supplyContext, error) {
	a, err := db.GetAsset(op.AmountToReserve.AssetId)
	if nil != err {
		return supplyContext{}, err
	}
	if a.IsMarketIssued() {
		return supplyContext{}, fault.ErrAssetIsMarketIssued
	}

	payer, err := db.GetAccount(op.Payer)
	if nil != err {
		return supplyContext{}, err
	}
	if !db.IsAuthorizedAsset(payer, a) {
		return supplyContext{}, fault.ErrAccountNotAuthorised
	}
	if db.GetBalance(op.Payer, a.Id) < op.AmountToReserve.Amount {
		return supplyContext{}, fault.ErrInsufficientBalance
	}
	if err := checkSupply(db, a, -op.AmountToReserve.Amount); nil != err {
		return supplyContext{}, err
	}
	return supplyContext{asset: a}, nil
}

func applyReserve(db *state.Database, op *transactionrecord.AssetReserve, ctx supplyContext) (evaluator.Result, error) {
	debit := protocol.NewAmount(-op.AmountToReserve.Amount, ctx.asset.Id)
	if err := db.AdjustBalance(op.Payer, debit); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustSupply(ctx.asset, -op.AmountToReserve.Amount); nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.VoidResult(), nil
}

func evaluateFundFeePool(db state.Reader, op *transactionrecord.AssetFundFeePool) (supplyContext, error) {
	a, err := db.GetAsset(op.AssetId)
	if nil != err {
		return supplyContext{}, err
	}
	if _, err := db.GetAccount(op.FromAccount); nil != err {
		return supplyContext{}, err
	}
	if db.GetBalance(op.FromAccount, protocol.CoreAsset) < op.Amount {
		return supplyContext{}, fault.ErrInsufficientBalance
	}
	return supplyContext{asset: a}, nil
}

func applyFundFeePool(db *state.Database, op *transactionrecord.AssetFundFeePool, ctx supplyContext) (evaluator.Result, error) {
	if err := db.AdjustBalance(op.FromAccount, protocol.NewAmount(-op.Amount, protocol.CoreAsset)); nil != err {
		return evaluator.VoidResult(), err
	}
	err := db.DynamicData.Modify(ctx.asset.DynamicAssetDataId, func(d *state.AssetDynamicData) {
		d.FeePool += op.Amount
	})
	return evaluator.VoidResult(), err
}

func evaluateClaimFees(db state.Reader, op *transactionrecord.AssetClaimFees) (supplyContext, error) {
	a, err := db.GetAsset(op.AmountToClaim.AssetId)
	if nil != err {
		return supplyContext{}, err
	}
	if a.Issuer != op.Issuer {
		return supplyContext{}, fault.ErrIssuerMismatch
	}
	dynamic, err := db.GetDynamicData(a)
	if nil != err {
		return supplyContext{}, err
	}
	if op.AmountToClaim.Amount > dynamic.AccumulatedFees {
		return supplyContext{}, fault.ErrInsufficientFees
	}
	return supplyContext{asset: a}, nil
}

func applyClaimFees(db *state.Database, op *transactionrecord.AssetClaimFees, ctx supplyContext) (evaluator.Result, error) {
	err := db.DynamicData.Modify(ctx.asset.DynamicAssetDataId, func(d *state.AssetDynamicData) {
		d.AccumulatedFees -= op.AmountToClaim.Amount
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustBalance(op.Issuer, op.AmountToClaim); nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.VoidResult(), nil
}

func evaluateIssueRequest(db state.Reader, op *transactionrecord.AssetCreateIssueRequest) (supplyContext, error) {
	global := db.GlobalProperties()
	if op.Issuer != global.Authorities.WebassetIssuer {
		return supplyContext{}, fault.ErrUnauthorisedAuthority
	}

	a, err := db.GetAsset(op.Asset)
	if nil != err {
		return supplyContext{}, err
	}
	if a.Id == global.DascoinAsset {
		return supplyContext{}, fault.ErrCannotIssueSettlementCoin
	}
	if a.IsMarketIssued() {
		return supplyContext{}, fault.ErrAssetIsMarketIssued
	}

	receiver, err := db.GetAccount(op.Receiver)
	if nil != err {
		return supplyContext{}, err
	}
	if a.Id == global.CycleAsset && !receiver.IsWallet() && !receiver.IsCustodian() {
		return supplyContext{}, fault.ErrCycleAssetReceiver
	}

	total, err := protocol.AddShares(op.Amount, op.Reserved)
	if nil != err {
		return supplyContext{}, fault.ErrSupplyExceedsMaximum
	}
	if err := checkSupply(db, a, total); nil != err {
		return supplyContext{}, err
	}

	if _, ok := db.FindIssuedAsset(op.UniqueId, a.Id); ok {
		return supplyContext{}, fault.ErrIssuedAssetRecordExists
	}
	return supplyContext{asset: a}, nil
}

func applyIssueRequest(db *state.Database, op *transactionrecord.AssetCreateIssueRequest, ctx supplyContext) (evaluator.Result, error) {
	if err := db.AdjustBalance(op.Receiver, ctx.asset.Amount(op.Amount)); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustReserved(op.Receiver, ctx.asset.Amount(op.Reserved)); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustSupply(ctx.asset, op.Amount+op.Reserved); nil != err {
		return evaluator.VoidResult(), err
	}

	now := db.HeadTime()
	record, err := db.IssuedAssets.Create(func(id protocol.ObjectId) state.IssuedAssetRecord {
		return state.IssuedAssetRecord{
			Id:       id,
			UniqueId: op.UniqueId,
			Asset:    ctx.asset.Id,
			Receiver: op.Receiver,
			Amount:   op.Amount,
			Reserved: op.Reserved,
			Comment:  op.Comment,
			Time:     now,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(record.Id), nil
}
