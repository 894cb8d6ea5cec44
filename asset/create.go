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

type createContext struct{}

func evaluateCreate(db state.Reader, op *transactionrecord.AssetCreate) (createContext, error) {
	ctx := createContext{}

	if _, err := db.GetAccount(op.Issuer); nil != err {
		return ctx, err
	}
	if _, ok := db.FindAssetBySymbol(op.Symbol); ok {
		return ctx, fault.ErrAssetSymbolExists
	}

	// a dotted symbol belongs to the owner of its prefix
	if prefix := protocol.SymbolPrefix(op.Symbol); "" != prefix {
		parent, ok := db.FindAssetBySymbol(prefix)
		if !ok {
			return ctx, fault.ErrNotFoundPrefixAsset
		}
		if parent.Issuer != op.Issuer {
			return ctx, fault.ErrPrefixIssuerMismatch
		}
	}

	if err := checkAuthorities(db, op.CommonOptions); nil != err {
		return ctx, err
	}

	if nil == op.BitassetOptions {
		return ctx, nil
	}

	backing, err := checkBacking(db, op.Issuer, op.BitassetOptions.ShortBackingAsset)
	if nil != err {
		return ctx, err
	}
	if err := checkBitassetTiming(db, *op.BitassetOptions); nil != err {
		return ctx, err
	}
	if op.IsPredictionMarket && op.Precision != backing.Precision {
		return ctx, fault.ErrPredictionMarketPrecision
	}
	return ctx, nil
}

func applyCreate(db *state.Database, op *transactionrecord.AssetCreate, ctx createContext) (evaluator.Result, error) {
	now := db.HeadTime()
	assetId := db.Assets.NextId()

	dynamic, err := db.DynamicData.Create(func(id protocol.ObjectId) state.AssetDynamicData {
		return state.AssetDynamicData{Id: id}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}

	bitassetId := protocol.ObjectId{}
	if nil != op.BitassetOptions {
		bitasset, err := db.Bitassets.Create(func(id protocol.ObjectId) state.BitassetData {
			return state.BitassetData{
				Id:                         id,
				AssetId:                    assetId,
				Options:                    *op.BitassetOptions,
				Feeds:                      make(map[protocol.ObjectId]state.FeedEntry),
				CurrentFeedPublicationTime: now,
				IsPredictionMarket:         op.IsPredictionMarket,
			}
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
		bitassetId = bitasset.Id
	}

	// the non core side of the exchange rate is a placeholder for the
	// id being created
	options := op.CommonOptions.Clone()
	if 0 == options.CoreExchangeRate.Base.AssetId.Instance {
		options.CoreExchangeRate.Quote.AssetId = assetId
	} else {
		options.CoreExchangeRate.Base.AssetId = assetId
	}

	a, err := db.Assets.Create(func(id protocol.ObjectId) state.Asset {
		return state.Asset{
			Id:                 id,
			Symbol:             op.Symbol,
			Precision:          op.Precision,
			Issuer:             op.Issuer,
			Options:            options,
			DynamicAssetDataId: dynamic.Id,
			BitassetDataId:     bitassetId,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(a.Id), nil
}
