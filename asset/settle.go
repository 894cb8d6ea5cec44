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

type settleContext struct {
	asset    state.Asset
	bitasset state.BitassetData
	proceeds protocol.Amount
}

func evaluateSettle(db state.Reader, op *transactionrecord.AssetSettle) (settleContext, error) {
	a, bitasset, err := getMarket(db, op.Amount.AssetId)
	if nil != err {
		return settleContext{}, err
	}
	if bitasset.IsPredictionMarket && !bitasset.HasSettlement() {
		return settleContext{}, fault.ErrPredictionMarketNotSettled
	}
	if !a.CanForceSettle() && !bitasset.HasSettlement() {
		return settleContext{}, fault.ErrAssetCannotForceSettle
	}
	if !bitasset.HasSettlement() && bitasset.CurrentFeed.IsNull() {
		return settleContext{}, fault.ErrInsufficientFeeds
	}
	if _, err := db.GetAccount(op.Account); nil != err {
		return settleContext{}, err
	}
	if db.GetBalance(op.Account, a.Id) < op.Amount.Amount {
		return settleContext{}, fault.ErrInsufficientBalance
	}

	ctx := settleContext{
		asset:    a,
		bitasset: bitasset,
	}
	if bitasset.HasSettlement() {
		proceeds, err := bitasset.SettlementPrice.Multiply(op.Amount)
		if nil != err {
			return settleContext{}, err
		}
		if proceeds.Amount > bitasset.SettlementFund {
			return settleContext{}, fault.ErrInsufficientFund
		}
		ctx.proceeds = proceeds
	}
	return ctx, nil
}

func applySettle(db *state.Database, op *transactionrecord.AssetSettle, ctx settleContext) (evaluator.Result, error) {
	debit := protocol.NewAmount(-op.Amount.Amount, op.Amount.AssetId)
	if err := db.AdjustBalance(op.Account, debit); nil != err {
		return evaluator.VoidResult(), err
	}

	if ctx.bitasset.HasSettlement() {
		err := db.Bitassets.Modify(ctx.bitasset.Id, func(b *state.BitassetData) {
			b.SettlementFund -= ctx.proceeds.Amount
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
		if err := db.AdjustSupply(ctx.asset, -op.Amount.Amount); nil != err {
			return evaluator.VoidResult(), err
		}
		if err := db.AdjustBalance(op.Account, ctx.proceeds); nil != err {
			return evaluator.VoidResult(), err
		}
		return evaluator.AssetResult(ctx.proceeds), nil
	}

	date := db.HeadTime() + int64(ctx.bitasset.Options.ForceSettlementDelaySec)
	settlement, err := db.ForceSettlements.Create(func(id protocol.ObjectId) state.ForceSettlement {
		return state.ForceSettlement{
			Id:             id,
			Owner:          op.Account,
			Balance:        op.Amount,
			SettlementDate: date,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(settlement.Id), nil
}

// return a pending settlement to its owner
func cancelSettlement(db *state.Database, settlement state.ForceSettlement) error {
	if err := db.ForceSettlements.Remove(settlement.Id); nil != err {
		return err
	}
	if err := db.AdjustBalance(settlement.Owner, settlement.Balance); nil != err {
		return err
	}
	db.Emit(&transactionrecord.AssetSettleCancel{
		Settlement: settlement.Id,
		Account:    settlement.Owner,
		Amount:     settlement.Balance,
	})
	return nil
}

// ProcessSettlements - execute every force settlement whose date has
// arrived against the least collateralised positions
//
// settlements of a settled or unpriced asset, or that no position can
// cover, are cancelled; those beyond the interval volume limit wait
func ProcessSettlements(db *state.Database) error {
	now := db.HeadTime()

	for _, bitasset := range db.Bitassets.All() {
		matured := []state.ForceSettlement{}
		for _, settlement := range db.SettlementsFor(bitasset.AssetId) {
			if settlement.SettlementDate > now {
				break
			}
			matured = append(matured, settlement)
		}
		if 0 == len(matured) {
			continue
		}

		a, err := db.GetAsset(bitasset.AssetId)
		if nil != err {
			return err
		}

	settlements:
		for _, settlement := range matured {
			b, err := db.GetBitasset(a)
			if nil != err {
				return err
			}
			if b.HasSettlement() || b.CurrentFeed.IsNull() {
				if err := cancelSettlement(db, settlement); nil != err {
					return err
				}
				continue settlements
			}
			finished, err := executeSettlement(db, a, settlement)
			if nil != err {
				return err
			}
			if !finished {
				break settlements
			}
		}
	}
	return nil
}

// fill one matured settlement; false when the volume limit stopped it
func executeSettlement(db *state.Database, a state.Asset, settlement state.ForceSettlement) (bool, error) {
	remaining := settlement.Balance.Amount

	for remaining > 0 {
		bitasset, err := db.GetBitasset(a)
		if nil != err {
			return false, err
		}
		dynamic, err := db.GetDynamicData(a)
		if nil != err {
			return false, err
		}

		limit := bitasset.MaxForceSettlementVolume(dynamic.CurrentSupply) - bitasset.ForceSettledVolume
		if limit <= 0 {
			infof("settlement volume reached: %s  pending: %s", a.Symbol, settlement.Id)
			err := db.ForceSettlements.Modify(settlement.Id, func(s *state.ForceSettlement) {
				s.Balance.Amount = remaining
			})
			return false, err
		}

		order, ok := db.LeastCollateralised(a.Id)
		if !ok {
			return true, cancelRemaining(db, settlement, remaining)
		}

		fill := remaining
		if order.Debt < fill {
			fill = order.Debt
		}
		if limit < fill {
			fill = limit
		}

		receives, err := settlementValue(bitasset, a.Amount(fill))
		if nil != err {
			return false, err
		}
		if receives.Amount > order.Collateral {
			return true, cancelRemaining(db, settlement, remaining)
		}

		if err := fillCallOrder(db, order, fill, receives.Amount); nil != err {
			return false, err
		}
		if err := db.AdjustSupply(a, -fill); nil != err {
			return false, err
		}
		if err := db.AdjustBalance(settlement.Owner, receives); nil != err {
			return false, err
		}
		err = db.Bitassets.Modify(bitasset.Id, func(b *state.BitassetData) {
			b.ForceSettledVolume += fill
		})
		if nil != err {
			return false, err
		}

		db.Emit(&transactionrecord.AssetSettleFill{
			Settlement: settlement.Id,
			Account:    settlement.Owner,
			Pays:       a.Amount(fill),
			Receives:   receives,
		})
		remaining -= fill
	}

	return true, db.ForceSettlements.Remove(settlement.Id)
}

// return the unfilled part of a settlement
func cancelRemaining(db *state.Database, settlement state.ForceSettlement, remaining int64) error {
	settlement.Balance.Amount = remaining
	return cancelSettlement(db, settlement)
}

// reduce a position by debt repaid and collateral taken, closing it
// when no debt remains
func fillCallOrder(db *state.Database, order state.CallOrder, debt int64, collateral int64) error {
	if order.Debt == debt {
		if err := db.CallOrders.Remove(order.Id); nil != err {
			return err
		}
		return db.AdjustBalance(order.Borrower, protocol.NewAmount(order.Collateral-collateral, order.CollateralAsset))
	}
	return db.CallOrders.Modify(order.Id, func(c *state.CallOrder) {
		c.Debt -= debt
		c.Collateral -= collateral
	})
}

// backing paid for an amount at the median price less the settlement
// offset, which is kept by the position
func settlementValue(bitasset state.BitassetData, amount protocol.Amount) (protocol.Amount, error) {
	value, err := bitasset.CurrentFeed.SettlementPrice.Multiply(amount)
	if nil != err {
		return value, err
	}
	offset := int64(bitasset.Options.ForceSettlementOffsetPercent)
	if 0 == offset {
		return value, nil
	}
	v := new(big.Int).Mul(big.NewInt(value.Amount), big.NewInt(protocol.OneHundredPercent-offset))
	v.Quo(v, big.NewInt(protocol.OneHundredPercent))
	value.Amount = v.Int64()
	return value, nil
}

// ResetForceSettledVolume - start a new settlement volume interval
func ResetForceSettledVolume(db *state.Database) error {
	for _, bitasset := range db.Bitassets.All() {
		if 0 == bitasset.ForceSettledVolume {
			continue
		}
		err := db.Bitassets.Modify(bitasset.Id, func(b *state.BitassetData) {
			b.ForceSettledVolume = 0
		})
		if nil != err {
			return err
		}
	}
	return nil
}
