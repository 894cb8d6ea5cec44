// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// LookupAsset - an asset by id or symbol
//
// a string starting with a digit is parsed as an id
func (a *Access) LookupAsset(symbolOrId string) *state.Asset {
	var result *state.Asset
	a.view(func(db *state.Database) {
		result = lookupAsset(db, symbolOrId)
	})
	return result
}

// LookupAssets - LookupAsset for several keys, nil for unknown keys
func (a *Access) LookupAssets(symbolsOrIds []string) []*state.Asset {
	result := make([]*state.Asset, 0, len(symbolsOrIds))
	a.view(func(db *state.Database) {
		for _, s := range symbolsOrIds {
			result = append(result, lookupAsset(db, s))
		}
	})
	return result
}

func lookupAsset(db *state.Database, symbolOrId string) *state.Asset {
	if "" == symbolOrId {
		return nil
	}
	if c := symbolOrId[0]; c >= '0' && c <= '9' {
		id, err := objectstore.ParseObjectId(symbolOrId)
		if nil != err {
			return nil
		}
		asset, ok := db.Assets.Find(id)
		return found(asset.Clone(), ok)
	}
	asset, ok := db.FindAssetBySymbol(symbolOrId)
	return found(asset.Clone(), ok)
}

// ListAssets - up to limit assets in symbol order starting at the
// first symbol not below lowerBound
func (a *Access) ListAssets(lowerBound string, limit int) ([]state.Asset, error) {
	if limit < 0 || limit > MaximumPageSize {
		return nil, errPageSize(limit)
	}
	result := []state.Asset{}
	a.view(func(db *state.Database) {
		db.AssetsBySymbol.From(objectstore.StringKey(lowerBound), func(asset state.Asset) bool {
			if len(result) >= limit {
				return false
			}
			result = append(result, asset.Clone())
			return true
		})
	})
	return result, nil
}

// AssetDynamicData - supply and fee figures of an asset
func (a *Access) AssetDynamicData(id protocol.ObjectId) *state.AssetDynamicData {
	var result *state.AssetDynamicData
	a.view(func(db *state.Database) {
		asset, ok := db.Assets.Find(id)
		if !ok {
			return
		}
		d, err := db.GetDynamicData(asset)
		result = found(d, nil == err)
	})
	return result
}

// BitassetData - market state of a market issued asset, nil for
// unknown or user issued assets
func (a *Access) BitassetData(id protocol.ObjectId) *state.BitassetData {
	var result *state.BitassetData
	a.view(func(db *state.Database) {
		asset, ok := db.Assets.Find(id)
		if !ok || !asset.IsMarketIssued() {
			return
		}
		b, err := db.GetBitasset(asset)
		result = found(b.Clone(), nil == err)
	})
	return result
}

// SettleOrders - pending force settlements of an asset, earliest
// settlement first
func (a *Access) SettleOrders(id protocol.ObjectId, limit int) ([]state.ForceSettlement, error) {
	if limit < 0 || limit > MaximumOrderPageSize {
		return nil, errPageSize(limit)
	}
	var result []state.ForceSettlement
	a.view(func(db *state.Database) {
		result = db.SettlementsFor(id)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CallOrders - open call orders against an asset, least collateralised
// first
func (a *Access) CallOrders(id protocol.ObjectId, limit int) ([]state.CallOrder, error) {
	if limit < 0 || limit > MaximumOrderPageSize {
		return nil, errPageSize(limit)
	}
	var result []state.CallOrder
	a.view(func(db *state.Database) {
		result = db.CallOrdersFor(id)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// IssuedAsset - the record of an external issue, nil if never issued
func (a *Access) IssuedAsset(uniqueId string, asset protocol.ObjectId) *state.IssuedAssetRecord {
	var result *state.IssuedAssetRecord
	a.view(func(db *state.Database) {
		record, ok := db.FindIssuedAsset(uniqueId, asset)
		result = found(record, ok)
	})
	return result
}

// CheckIssuedAsset - true if an external issue was already recorded
// for the asset with this symbol or id
func (a *Access) CheckIssuedAsset(uniqueId string, symbolOrId string) bool {
	issued := false
	a.view(func(db *state.Database) {
		asset := lookupAsset(db, symbolOrId)
		if nil == asset {
			return
		}
		_, issued = db.FindIssuedAsset(uniqueId, asset.Id)
	})
	return issued
}

// CheckIssuedWebeur - CheckIssuedAsset for the web asset
func (a *Access) CheckIssuedWebeur(uniqueId string) bool {
	issued := false
	a.view(func(db *state.Database) {
		_, issued = db.FindIssuedAsset(uniqueId, db.GlobalProperties().WebAsset)
	})
	return issued
}

// WireOutHolders - pending wire out requests of an account, restricted
// to the given assets unless assets is empty
func (a *Access) WireOutHolders(account protocol.ObjectId, assets []protocol.ObjectId) []state.WireOutHolder {
	wanted := make(map[protocol.ObjectId]struct{}, len(assets))
	for _, id := range assets {
		wanted[id] = struct{}{}
	}

	result := []state.WireOutHolder{}
	a.view(func(db *state.Database) {
		db.WireOutHoldersByAccount.Prefix(objectstore.Composite{account}, func(h state.WireOutHolder) bool {
			if 0 != len(wanted) {
				if _, ok := wanted[h.Asset.AssetId]; !ok {
					return true
				}
			}
			result = append(result, h)
			return true
		})
	})
	return result
}
