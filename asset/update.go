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

type updateContext struct {
	asset                state.Asset
	disablingForceSettle bool
}

func evaluateUpdate(db state.Reader, op *transactionrecord.AssetUpdate) (updateContext, error) {
	a, err := db.GetAsset(op.AssetToUpdate)
	if nil != err {
		return updateContext{}, err
	}
	if a.Issuer != op.Issuer {
		return updateContext{}, fault.ErrIssuerMismatch
	}
	if nil != op.NewIssuer {
		if *op.NewIssuer == a.Issuer {
			return updateContext{}, fault.ErrSameIssuer
		}
		if _, err := db.GetAccount(*op.NewIssuer); nil != err {
			return updateContext{}, err
		}
	}

	dynamic, err := db.GetDynamicData(a)
	if nil != err {
		return updateContext{}, err
	}

	current := a.Options
	next := op.NewOptions

	// revoked permissions stay revoked once there is supply
	if db.HeadTime() < db.Parameters().HardforkPermissions || 0 != dynamic.CurrentSupply {
		if 0 != next.IssuerPermissions&^current.IssuerPermissions {
			return updateContext{}, fault.ErrPermissionReinstated
		}
	}
	if 0 != (current.Flags^next.Flags)&^current.IssuerPermissions {
		return updateContext{}, fault.ErrPermissionNotHeld
	}

	if !a.IsMarketIssued() {
		if 0 != next.Flags&^protocol.UserIssuedPermissionMask || 0 != next.IssuerPermissions&^protocol.UserIssuedPermissionMask {
			return updateContext{}, fault.ErrInvalidFlags
		}
	}

	// the exchange rate must relate this asset to the core asset
	rate := next.CoreExchangeRate
	if !(rate.Base.AssetId == a.Id && protocol.CoreAsset == rate.Quote.AssetId) &&
		!(rate.Quote.AssetId == a.Id && protocol.CoreAsset == rate.Base.AssetId) &&
		protocol.CoreAsset != a.Id {
		return updateContext{}, fault.ErrFeedWrongCoreRate
	}

	if err := checkAuthorities(db, next); nil != err {
		return updateContext{}, err
	}

	ctx := updateContext{
		asset:                a,
		disablingForceSettle: a.IsMarketIssued() && !current.Flags.Has(protocol.DisableForceSettle) && next.Flags.Has(protocol.DisableForceSettle),
	}
	return ctx, nil
}

func applyUpdate(db *state.Database, op *transactionrecord.AssetUpdate, ctx updateContext) (evaluator.Result, error) {
	if ctx.disablingForceSettle {
		for _, settlement := range db.SettlementsFor(ctx.asset.Id) {
			if err := cancelSettlement(db, settlement); nil != err {
				return evaluator.VoidResult(), err
			}
		}
	}

	err := db.Assets.Modify(ctx.asset.Id, func(a *state.Asset) {
		a.Options = op.NewOptions.Clone()
		if nil != op.NewIssuer {
			a.Issuer = *op.NewIssuer
		}
	})
	return evaluator.VoidResult(), err
}

type bitassetContext struct {
	asset          state.Asset
	recompute      bool
	backingChanged bool
}

func evaluateUpdateBitasset(db state.Reader, op *transactionrecord.AssetUpdateBitasset) (bitassetContext, error) {
	a, bitasset, err := getMarket(db, op.AssetToUpdate)
	if nil != err {
		return bitassetContext{}, err
	}
	if bitasset.HasSettlement() {
		return bitassetContext{}, fault.ErrAssetAlreadySettled
	}
	if a.Issuer != op.Issuer {
		return bitassetContext{}, fault.ErrIssuerMismatch
	}

	current := bitasset.Options
	next := op.NewOptions

	backingChanged := next.ShortBackingAsset != current.ShortBackingAsset
	if backingChanged {
		dynamic, err := db.GetDynamicData(a)
		if nil != err {
			return bitassetContext{}, err
		}
		if 0 != dynamic.CurrentSupply {
			return bitassetContext{}, fault.ErrBackingAssetChange
		}
		if next.ShortBackingAsset == a.Id {
			return bitassetContext{}, fault.ErrInvalidBackingAsset
		}
		if _, err := checkBacking(db, a.Issuer, next.ShortBackingAsset); nil != err {
			return bitassetContext{}, err
		}
	}
	if err := checkBitassetTiming(db, next); nil != err {
		return bitassetContext{}, err
	}

	ctx := bitassetContext{
		asset:          a,
		recompute:      next.MinimumFeeds != current.MinimumFeeds || next.FeedLifetimeSec != current.FeedLifetimeSec,
		backingChanged: backingChanged,
	}
	return ctx, nil
}

func applyUpdateBitasset(db *state.Database, op *transactionrecord.AssetUpdateBitasset, ctx bitassetContext) (evaluator.Result, error) {
	now := db.HeadTime()
	changed := false
	err := db.Bitassets.Modify(ctx.asset.BitassetDataId, func(b *state.BitassetData) {
		old := b.CurrentFeed
		b.Options = op.NewOptions

		// feeds quoted in the previous backing asset are meaningless
		if ctx.backingChanged {
			for publisher := range b.Feeds {
				b.Feeds[publisher] = state.FeedEntry{}
			}
		}
		if ctx.recompute || ctx.backingChanged {
			b.UpdateMedianFeeds(now)
		}
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
