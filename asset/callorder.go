// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"math/big"

	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type callOrderContext struct {
	asset      state.Asset
	order      state.CallOrder
	exists     bool
	collateral int64
	debt       int64
}

func evaluateCallOrderUpdate(db state.Reader, op *transactionrecord.CallOrderUpdate) (callOrderContext, error) {
	a, bitasset, err := getMarket(db, op.DeltaDebt.AssetId)
	if nil != err {
		return callOrderContext{}, err
	}
	if bitasset.HasSettlement() {
		return callOrderContext{}, fault.ErrAssetAlreadySettled
	}
	if op.DeltaCollateral.AssetId != bitasset.Options.ShortBackingAsset {
		return callOrderContext{}, fault.ErrInvalidBackingAsset
	}
	if bitasset.CurrentFeed.IsNull() {
		return callOrderContext{}, fault.ErrInsufficientFeeds
	}
	if bitasset.IsPredictionMarket && op.DeltaCollateral.Amount != op.DeltaDebt.Amount {
		return callOrderContext{}, fault.ErrPredictionMarketCollateral
	}
	if _, err := db.GetAccount(op.FundingAccount); nil != err {
		return callOrderContext{}, err
	}

	// repaying needs the debt asset, adding collateral needs the backing
	if op.DeltaDebt.Amount < 0 && db.GetBalance(op.FundingAccount, a.Id) < -op.DeltaDebt.Amount {
		return callOrderContext{}, fault.ErrInsufficientBalance
	}
	if op.DeltaCollateral.Amount > 0 && db.GetBalance(op.FundingAccount, op.DeltaCollateral.AssetId) < op.DeltaCollateral.Amount {
		return callOrderContext{}, fault.ErrInsufficientBalance
	}

	ctx := callOrderContext{
		asset: a,
	}
	ctx.order, ctx.exists = db.FindCallOrder(op.FundingAccount, a.Id)

	ctx.collateral, err = protocol.AddShares(ctx.order.Collateral, op.DeltaCollateral.Amount)
	if nil != err {
		return callOrderContext{}, err
	}
	ctx.debt, err = protocol.AddShares(ctx.order.Debt, op.DeltaDebt.Amount)
	if nil != err {
		return callOrderContext{}, err
	}
	if ctx.collateral < 0 || ctx.debt < 0 {
		return callOrderContext{}, fault.ErrNegativePosition
	}

	if op.DeltaDebt.Amount > 0 {
		if err := checkSupply(db, a, op.DeltaDebt.Amount); nil != err {
			return callOrderContext{}, err
		}
	}

	if 0 == ctx.debt {
		if 0 != ctx.collateral || !ctx.exists {
			return callOrderContext{}, fault.ErrInvalidPosition
		}
		return ctx, nil
	}

	// collateral × denominator ≥ debt value × maintenance ratio
	value, err := bitasset.CurrentFeed.SettlementPrice.Multiply(a.Amount(ctx.debt))
	if nil != err {
		return callOrderContext{}, err
	}
	left := new(big.Int).Mul(big.NewInt(ctx.collateral), big.NewInt(protocol.CollateralRatioDenominator))
	right := new(big.Int).Mul(big.NewInt(value.Amount), big.NewInt(int64(bitasset.CurrentFeed.MaintenanceCollateralRatio)))
	if left.Cmp(right) < 0 {
		return callOrderContext{}, fault.ErrCollateralTooLow
	}
	return ctx, nil
}

func applyCallOrderUpdate(db *state.Database, op *transactionrecord.CallOrderUpdate, ctx callOrderContext) (evaluator.Result, error) {
	collateral := protocol.NewAmount(-op.DeltaCollateral.Amount, op.DeltaCollateral.AssetId)
	if err := db.AdjustBalance(op.FundingAccount, collateral); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustBalance(op.FundingAccount, op.DeltaDebt); nil != err {
		return evaluator.VoidResult(), err
	}
	if err := db.AdjustSupply(ctx.asset, op.DeltaDebt.Amount); nil != err {
		return evaluator.VoidResult(), err
	}

	switch {
	case !ctx.exists:
		order, err := db.CallOrders.Create(func(id protocol.ObjectId) state.CallOrder {
			return state.CallOrder{
				Id:              id,
				Borrower:        op.FundingAccount,
				Collateral:      ctx.collateral,
				CollateralAsset: op.DeltaCollateral.AssetId,
				Debt:            ctx.debt,
				DebtAsset:       ctx.asset.Id,
			}
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
		return evaluator.ObjectResult(order.Id), nil

	case 0 == ctx.debt:
		return evaluator.VoidResult(), db.CallOrders.Remove(ctx.order.Id)

	default:
		err := db.CallOrders.Modify(ctx.order.Id, func(c *state.CallOrder) {
			c.Collateral = ctx.collateral
			c.Debt = ctx.debt
		})
		return evaluator.VoidResult(), err
	}
}
