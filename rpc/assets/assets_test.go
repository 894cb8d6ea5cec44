// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/assets"
	"github.com/bitmark-inc/ledgerd/state"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func setup() (*state.Database, *assets.Assets) {
	db := fixtures.Database()
	return db, assets.New(logger.New(fixtures.LogCategory), access.New(fixtures.Viewer{DB: db}))
}

func TestAssetsLookup(t *testing.T) {
	db, a := setup()
	web := fixtures.Asset(db, "WEB")

	var reply assets.AssetsReply
	err := a.Lookup(&assets.LookupArguments{Assets: []string{"WEB", "NOPE", protocol.CoreAsset.String()}}, &reply)
	assert.Nil(t, err, "wrong lookup")
	require.Equal(t, 3, len(reply.Assets), "wrong result count")
	require.NotNil(t, reply.Assets[0], "WEB missing")
	assert.Equal(t, web.Id, reply.Assets[0].Id, "wrong WEB id")
	assert.Nil(t, reply.Assets[1], "unknown symbol found")
	require.NotNil(t, reply.Assets[2], "core missing")
	assert.Equal(t, "CORE", reply.Assets[2].Symbol, "wrong core symbol")

	err = a.Lookup(&assets.LookupArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted empty lookup")
}

func TestAssetsList(t *testing.T) {
	_, a := setup()

	var reply assets.ListReply
	err := a.List(&assets.ListArguments{LowerBound: "CY", Limit: 2}, &reply)
	assert.Nil(t, err, "wrong list")
	require.Equal(t, 2, len(reply.Assets), "wrong page size")
	assert.Equal(t, "CYCLE", reply.Assets[0].Symbol, "wrong first")
	assert.Equal(t, "DASC", reply.Assets[1].Symbol, "wrong second")

	err = a.List(&assets.ListArguments{Limit: access.MaximumPageSize + 1}, &reply)
	assert.True(t, fault.IsErrLength(err), "accepted large page")
}

func TestAssetsData(t *testing.T) {
	db, a := setup()
	web := fixtures.Asset(db, "WEB")

	var dynamic assets.DynamicReply
	err := a.Dynamic(&assets.IdsArguments{Ids: []protocol.ObjectId{web.Id, protocol.AssetId(99)}}, &dynamic)
	assert.Nil(t, err, "wrong dynamic")
	require.Equal(t, 2, len(dynamic.Data), "wrong result count")
	assert.NotNil(t, dynamic.Data[0], "WEB data missing")
	assert.Nil(t, dynamic.Data[1], "unknown asset data found")

	var bitasset assets.BitassetReply
	err = a.Bitasset(&assets.IdsArguments{Ids: []protocol.ObjectId{web.Id}}, &bitasset)
	assert.Nil(t, err, "wrong bitasset")
	assert.Nil(t, bitasset.Data[0], "user issued asset has market data")

	var settle assets.SettleOrdersReply
	err = a.SettleOrders(&assets.OrdersArguments{Asset: web.Id, Limit: 10}, &settle)
	assert.Nil(t, err, "wrong settle orders")
	assert.Equal(t, 0, len(settle.Orders), "unexpected settle orders")

	var calls assets.CallOrdersReply
	err = a.CallOrders(&assets.OrdersArguments{Asset: web.Id, Limit: access.MaximumOrderPageSize + 1}, &calls)
	assert.True(t, fault.IsErrLength(err), "accepted large limit")
}

func TestAssetsIssued(t *testing.T) {
	db, a := setup()
	web := fixtures.Asset(db, "WEB")

	var reply assets.IssuedReply
	err := a.Issued(&assets.IssuedArguments{UniqueId: "payment-1"}, &reply)
	assert.Nil(t, err, "wrong issued")
	assert.False(t, reply.Issued, "issued before record")

	_, err = db.IssuedAssets.Create(func(id protocol.ObjectId) state.IssuedAssetRecord {
		return state.IssuedAssetRecord{
			Id:       id,
			UniqueId: "payment-1",
			Asset:    web.Id,
			Receiver: fixtures.Id(db, "alice"),
			Amount:   100,
		}
	})
	require.NoError(t, err, "record")

	reply = assets.IssuedReply{}
	err = a.Issued(&assets.IssuedArguments{UniqueId: "payment-1"}, &reply)
	assert.Nil(t, err, "wrong issued")
	assert.True(t, reply.Issued, "web issue not found")

	reply = assets.IssuedReply{}
	err = a.Issued(&assets.IssuedArguments{UniqueId: "payment-1", Asset: "WEB"}, &reply)
	assert.Nil(t, err, "wrong issued")
	assert.True(t, reply.Issued, "issue by symbol not found")
	require.NotNil(t, reply.Record, "record missing")
	assert.Equal(t, int64(100), reply.Record.Amount, "wrong amount")

	reply = assets.IssuedReply{}
	err = a.Issued(&assets.IssuedArguments{UniqueId: "payment-1", Asset: "NOPE"}, &reply)
	assert.Nil(t, err, "wrong issued")
	assert.False(t, reply.Issued, "unknown asset issued")
}

func TestAssetsWireOut(t *testing.T) {
	db, a := setup()

	var reply assets.WireOutReply
	err := a.WireOut(&assets.WireOutArguments{Account: fixtures.Id(db, "alice")}, &reply)
	assert.Nil(t, err, "wrong wire out")
	assert.Equal(t, 0, len(reply.Holders), "unexpected holders")
}
