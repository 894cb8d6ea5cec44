// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

func TestLookupAssets(t *testing.T) {
	db, _, a := setup()
	web := fixtures.Asset(db, "WEB")

	bySymbol := a.LookupAsset("WEB")
	require.NotNil(t, bySymbol, "by symbol")
	assert.Equal(t, web.Id, bySymbol.Id, "web id")

	byId := a.LookupAsset(web.Id.String())
	require.NotNil(t, byId, "by id")
	assert.Equal(t, "WEB", byId.Symbol, "web symbol")

	assets := a.LookupAssets([]string{"CORE", "NOPE", "1.3.99", "9bad", ""})
	require.Len(t, assets, 5, "one result per key")
	require.NotNil(t, assets[0], "core")
	assert.Equal(t, protocol.CoreAsset, assets[0].Id, "core id")
	assert.Nil(t, assets[1], "unknown symbol")
	assert.Nil(t, assets[2], "unknown id")
	assert.Nil(t, assets[3], "malformed id")
	assert.Nil(t, assets[4], "empty")
}

func TestListAssets(t *testing.T) {
	_, _, a := setup()

	assets, err := a.ListAssets("", access.MaximumPageSize)
	require.NoError(t, err, "all")
	symbols := []string{}
	for _, asset := range assets {
		symbols = append(symbols, asset.Symbol)
	}
	assert.Equal(t, []string{"CORE", "CYCLE", "DASC", "WEB"}, symbols, "symbol order")

	assets, err = a.ListAssets("D", 1)
	require.NoError(t, err, "from D")
	require.Len(t, assets, 1, "limit")
	assert.Equal(t, "DASC", assets[0].Symbol, "lower bound")

	_, err = a.ListAssets("", access.MaximumPageSize+1)
	assert.True(t, fault.IsErrLength(err), "limit too large")
}

func TestAssetData(t *testing.T) {
	db, _, a := setup()
	web := fixtures.Asset(db, "WEB")

	dynamic := a.AssetDynamicData(web.Id)
	require.NotNil(t, dynamic, "dynamic data")
	assert.Equal(t, int64(0), dynamic.CurrentSupply, "no supply")
	assert.Nil(t, a.AssetDynamicData(protocol.AssetId(99)), "unknown asset")

	assert.Nil(t, a.BitassetData(web.Id), "user issued asset")

	_, err := a.SettleOrders(web.Id, access.MaximumOrderPageSize+1)
	assert.True(t, fault.IsErrLength(err), "settle limit")
	orders, err := a.SettleOrders(web.Id, access.MaximumOrderPageSize)
	require.NoError(t, err, "settle orders")
	assert.Empty(t, orders, "no settlements")

	_, err = a.CallOrders(web.Id, access.MaximumOrderPageSize+1)
	assert.True(t, fault.IsErrLength(err), "call limit")
}

func TestIssuedAssets(t *testing.T) {
	db, _, a := setup()
	web := fixtures.Asset(db, "WEB")

	assert.False(t, a.CheckIssuedWebeur("payment-1"), "not issued")
	assert.Nil(t, a.IssuedAsset("payment-1", web.Id), "no record")

	_, err := db.IssuedAssets.Create(func(id protocol.ObjectId) state.IssuedAssetRecord {
		return state.IssuedAssetRecord{
			Id:       id,
			UniqueId: "payment-1",
			Asset:    web.Id,
			Receiver: fixtures.Id(db, "alice"),
			Amount:   100,
		}
	})
	require.NoError(t, err, "record")

	record := a.IssuedAsset("payment-1", web.Id)
	require.NotNil(t, record, "record")
	assert.Equal(t, int64(100), record.Amount, "amount")

	assert.True(t, a.CheckIssuedWebeur("payment-1"), "web issued")
	assert.True(t, a.CheckIssuedAsset("payment-1", "WEB"), "by symbol")
	assert.True(t, a.CheckIssuedAsset("payment-1", web.Id.String()), "by id")
	assert.False(t, a.CheckIssuedAsset("payment-1", "DASC"), "other asset")
	assert.False(t, a.CheckIssuedAsset("payment-1", "NOPE"), "unknown asset")
}

func TestWireOutHolders(t *testing.T) {
	db, _, a := setup()
	alice := fixtures.Id(db, "alice")
	web := fixtures.Asset(db, "WEB")
	dasc := fixtures.Asset(db, "DASC")

	for _, amount := range []protocol.Amount{protocol.NewAmount(10, web.Id), protocol.NewAmount(20, dasc.Id)} {
		_, err := db.WireOutHolders.Create(func(id protocol.ObjectId) state.WireOutHolder {
			return state.WireOutHolder{
				Id:      id,
				Account: alice,
				Asset:   amount,
			}
		})
		require.NoError(t, err, "holder")
	}

	assert.Len(t, a.WireOutHolders(alice, nil), 2, "all assets")
	holders := a.WireOutHolders(alice, []protocol.ObjectId{dasc.Id})
	require.Len(t, holders, 1, "dascoin only")
	assert.Equal(t, int64(20), holders[0].Asset.Amount, "amount")
	assert.Empty(t, a.WireOutHolders(fixtures.Id(db, "bob"), nil), "bob")
}
