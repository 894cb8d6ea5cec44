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

type feedContext struct {
	asset state.Asset
}

func evaluateUpdateFeedProducers(db state.Reader, op *transactionrecord.AssetUpdateFeedProducers) (feedContext, error) {
	a, bitasset, err := getMarket(db, op.AssetToUpdate)
	if nil != err {
		return feedContext{}, err
	}
	if a.IsWitnessFed() || a.IsCommitteeFed() {
		return feedContext{}, fault.ErrNotWitnessOrCommitteeFed
	}
	if a.Issuer != op.Issuer {
		return feedContext{}, fault.ErrIssuerMismatch
	}
	if len(op.NewFeedProducers) > int(db.Parameters().MaximumAssetFeedPublishers) {
		return feedContext{}, fault.ErrFeedProducerCount
	}
	if err := accountsExist(db, op.NewFeedProducers); nil != err {
		return feedContext{}, err
	}
	if bitasset.HasSettlement() {
		return feedContext{}, fault.ErrAssetAlreadySettled
	}
	return feedContext{asset: a}, nil
}

func applyUpdateFeedProducers(db *state.Database, op *transactionrecord.AssetUpdateFeedProducers, ctx feedContext) (evaluator.Result, error) {
	now := db.HeadTime()
	err := db.Bitassets.Modify(ctx.asset.BitassetDataId, func(b *state.BitassetData) {
		keep := make(map[protocol.ObjectId]state.FeedEntry, len(op.NewFeedProducers))
		for _, producer := range op.NewFeedProducers {
			keep[producer] = b.Feeds[producer]
		}
		b.Feeds = keep
		b.UpdateMedianFeeds(now)
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	if err := checkCallOrders(db, ctx.asset); nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.VoidResult(), nil
}

func evaluatePublishFeed(db state.Reader, op *transactionrecord.AssetPublishFeed) (feedContext, error) {
	a, bitasset, err := getMarket(db, op.AssetId)
	if nil != err {
		return feedContext{}, err
	}
	if bitasset.HasSettlement() {
		return feedContext{}, fault.ErrAssetAlreadySettled
	}

	if err := checkFeedAssets(db, a, bitasset, op.Feed); nil != err {
		return feedContext{}, err
	}

	global := db.GlobalProperties()
	switch {
	case a.IsWitnessFed():
		if !global.IsWitness(op.Publisher) {
			return feedContext{}, fault.ErrUnauthorisedPublisher
		}
	case a.IsCommitteeFed():
		if !global.IsCommitteeMember(op.Publisher) {
			return feedContext{}, fault.ErrUnauthorisedPublisher
		}
	default:
		if _, ok := bitasset.Feeds[op.Publisher]; !ok {
			return feedContext{}, fault.ErrUnauthorisedPublisher
		}
	}
	return feedContext{asset: a}, nil
}

// a null price on either side of a feed is allowed; a set price must
// name the right assets
func checkFeedAssets(db state.Reader, a state.Asset, bitasset state.BitassetData, feed protocol.PriceFeed) error {
	settlement := feed.SettlementPrice
	core := feed.CoreExchangeRate

	if !settlement.IsNull() {
		if settlement.Base.AssetId != a.Id || settlement.Quote.AssetId != bitasset.Options.ShortBackingAsset {
			return fault.ErrFeedWrongAsset
		}
	}
	if core.IsNull() {
		return nil
	}

	if db.HeadTime() > db.Parameters().HardforkFeedCoreRate {
		if protocol.CoreAsset != core.Quote.AssetId {
			return fault.ErrFeedWrongCoreRate
		}
	} else if !settlement.IsNull() && settlement.Quote.AssetId != core.Quote.AssetId {
		return fault.ErrFeedWrongCoreRate
	}
	return nil
}

func applyPublishFeed(db *state.Database, op *transactionrecord.AssetPublishFeed, ctx feedContext) (evaluator.Result, error) {
	now := db.HeadTime()
	changed := false
	err := db.Bitassets.Modify(ctx.asset.BitassetDataId, func(b *state.BitassetData) {
		old := b.CurrentFeed
		b.Feeds[op.Publisher] = state.FeedEntry{
			Time: now,
			Feed: op.Feed,
		}
		b.UpdateMedianFeeds(now)
		changed = old != b.CurrentFeed
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	if changed {
		if err := checkCallOrders(db, ctx.asset); nil != err {
			return evaluator.VoidResult(), err
		}
	}
	return evaluator.VoidResult(), nil
}

// UpdateExpiredFeeds - recompute the median of every unsettled market
// asset whose feeds have aged, settling any asset the new price leaves
// undercollateralised
func UpdateExpiredFeeds(db *state.Database) error {
	now := db.HeadTime()

	expired := []state.BitassetData{}
	db.Bitassets.Each(func(b state.BitassetData) bool {
		if !b.HasSettlement() && !b.CurrentFeed.IsNull() && b.FeedIsExpired(now) {
			expired = append(expired, b)
		}
		return true
	})

	for _, b := range expired {
		a, err := db.GetAsset(b.AssetId)
		if nil != err {
			return err
		}
		changed := false
		err = db.Bitassets.Modify(b.Id, func(b *state.BitassetData) {
			old := b.CurrentFeed
			b.UpdateMedianFeeds(now)
			changed = old != b.CurrentFeed
		})
		if nil != err {
			return err
		}
		if changed {
			if err := checkCallOrders(db, a); nil != err {
				return err
			}
		}
	}
	return nil
}

// checkCallOrders - globally settle the asset if its least
// collateralised position cannot cover its debt at the median price
//
// there is no order book, so positions that are merely below the
// maintenance ratio are left open
func checkCallOrders(db *state.Database, a state.Asset) error {
	bitasset, err := db.GetBitasset(a)
	if nil != err {
		return err
	}
	if bitasset.HasSettlement() || bitasset.IsPredictionMarket || bitasset.CurrentFeed.IsNull() {
		return nil
	}

	least, ok := db.LeastCollateralised(a.Id)
	if !ok {
		return nil
	}

	value, err := bitasset.CurrentFeed.SettlementPrice.Multiply(least.DebtAmount())
	if nil != err {
		return err
	}
	if value.Amount <= least.Collateral {
		return nil
	}

	price := protocol.NewPrice(least.DebtAmount(), least.CollateralAmount())
	infof("black swan: %s least collateralised: %s  settle at: %s", a.Symbol, least.Id, price)
	return globallySettle(db, a, price)
}

type globalSettleContext struct {
	asset state.Asset
}

func evaluateGlobalSettle(db state.Reader, op *transactionrecord.AssetGlobalSettle) (globalSettleContext, error) {
	a, bitasset, err := getMarket(db, op.AssetToSettle)
	if nil != err {
		return globalSettleContext{}, err
	}
	if !a.CanGlobalSettle() {
		return globalSettleContext{}, fault.ErrAssetCannotGlobalSettle
	}
	if a.Issuer != op.Issuer {
		return globalSettleContext{}, fault.ErrIssuerMismatch
	}
	if bitasset.HasSettlement() {
		return globalSettleContext{}, fault.ErrAssetAlreadySettled
	}
	if op.SettlePrice.Quote.AssetId != bitasset.Options.ShortBackingAsset {
		return globalSettleContext{}, fault.ErrInvalidPrice
	}

	dynamic, err := db.GetDynamicData(a)
	if nil != err {
		return globalSettleContext{}, err
	}
	if dynamic.CurrentSupply <= 0 {
		return globalSettleContext{}, fault.ErrAssetHasNoSupply
	}

	if least, ok := db.LeastCollateralised(a.Id); ok {
		pays, err := op.SettlePrice.Multiply(least.DebtAmount())
		if nil != err {
			return globalSettleContext{}, err
		}
		if pays.Amount > least.Collateral {
			return globalSettleContext{}, fault.ErrSettlementCannotCover
		}
	}
	return globalSettleContext{asset: a}, nil
}

func applyGlobalSettle(db *state.Database, op *transactionrecord.AssetGlobalSettle, ctx globalSettleContext) (evaluator.Result, error) {
	return evaluator.VoidResult(), globallySettle(db, ctx.asset, op.SettlePrice)
}

// globallySettle - close every position at price, base the asset and
// quote the backing asset
//
// each position pays its debt rounded up, capped at its collateral,
// and gets the remainder back; the gathered collateral becomes the
// fund that holders redeem from
func globallySettle(db *state.Database, a state.Asset, price protocol.Price) error {
	bitasset, err := db.GetBitasset(a)
	if nil != err {
		return err
	}
	dynamic, err := db.GetDynamicData(a)
	if nil != err {
		return err
	}
	backing := bitasset.Options.ShortBackingAsset

	gathered := int64(0)
	for _, order := range db.CallOrdersFor(a.Id) {
		pays, err := price.MultiplyRoundUp(order.DebtAmount())
		if nil != err {
			return err
		}
		if pays.Amount > order.Collateral {
			pays.Amount = order.Collateral
		}
		gathered, err = protocol.AddShares(gathered, pays.Amount)
		if nil != err {
			return err
		}

		if err := db.CallOrders.Remove(order.Id); nil != err {
			return err
		}
		if err := db.AdjustBalance(order.Borrower, protocol.NewAmount(order.Collateral-pays.Amount, backing)); nil != err {
			return err
		}
	}

	settlement := protocol.NewPrice(a.Amount(dynamic.CurrentSupply), protocol.NewAmount(gathered, backing))
	err = db.Bitassets.Modify(bitasset.Id, func(b *state.BitassetData) {
		b.SettlementPrice = settlement
		b.SettlementFund = gathered
	})
	if nil != err {
		return err
	}

	for _, settlement := range db.SettlementsFor(a.Id) {
		if err := cancelSettlement(db, settlement); nil != err {
			return err
		}
	}

	db.Emit(&transactionrecord.AssetGlobalSettled{
		Asset:           a.Id,
		SettlementPrice: settlement,
	})
	infof("globally settled: %s  price: %s  fund: %d", a.Symbol, settlement, gathered)
	return nil
}
