// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

func TestGenesis(t *testing.T) {
	db := fixtures.Database()

	assert.Equal(t, protocol.CommitteeAccount, fixtures.Id(db, state.CommitteeAccountName), "committee")
	assert.Equal(t, protocol.WitnessAccount, fixtures.Id(db, state.WitnessAccountName), "witness")
	assert.Equal(t, protocol.AccountId(2), fixtures.Id(db, "alice"), "first genesis account")

	core, err := db.GetAsset(protocol.CoreAsset)
	require.NoError(t, err, "core asset")
	assert.Equal(t, "CORE", core.Symbol, "core symbol")

	dynamic, err := db.GetDynamicData(core)
	require.NoError(t, err, "core dynamic data")
	assert.Equal(t, int64(len(fixtures.Names))*fixtures.InitialCore, dynamic.CurrentSupply, "core supply")

	global := db.GlobalProperties()
	assert.Equal(t, fixtures.Asset(db, "WEB").Id, global.WebAsset, "web asset")
	assert.Equal(t, fixtures.Id(db, "webasset-issuer"), global.Authorities.WebassetIssuer, "web issuer")
	assert.True(t, global.IsWitness(fixtures.Id(db, "feeder-one")), "witness set")
	assert.Equal(t, fixtures.GenesisTime, db.HeadTime(), "head time")
	assert.True(t, db.DynamicProperties().NextMaintenanceTime > fixtures.GenesisTime, "next maintenance")

	assert.Equal(t, fault.ErrAlreadyInitialised, db.Initialise(fixtures.Genesis()), "second genesis")
}

func TestAdjustBalance(t *testing.T) {
	db := fixtures.Database()
	alice := fixtures.Id(db, "alice")
	web := fixtures.Asset(db, "WEB").Id

	assert.Equal(t, int64(0), db.GetBalance(alice, web), "never held")
	assert.Equal(t, fault.ErrInsufficientBalance, db.AdjustBalance(alice, protocol.NewAmount(-1, web)), "debit of nothing")

	require.NoError(t, db.AdjustBalance(alice, protocol.NewAmount(50, web)), "credit")
	require.NoError(t, db.AdjustReserved(alice, protocol.NewAmount(20, web)), "reserve")
	assert.Equal(t, int64(50), db.GetBalance(alice, web), "balance")

	b, ok := db.FindBalance(alice, web)
	require.True(t, ok, "balance object")
	assert.Equal(t, int64(20), b.Reserved, "reserved")

	assert.Equal(t, fault.ErrInsufficientBalance, db.AdjustBalance(alice, protocol.NewAmount(-51, web)), "overdraw")
	assert.Equal(t, int64(50), db.GetBalance(alice, web), "unchanged after failure")
}

func TestBalanceUndo(t *testing.T) {
	db := fixtures.Database()
	alice := fixtures.Id(db, "alice")
	web := fixtures.Asset(db, "WEB").Id
	size := db.Balances.Size()

	session := db.StartUndoSession()
	require.NoError(t, db.AdjustBalance(alice, protocol.NewAmount(50, web)), "credit")
	require.NoError(t, db.AdjustCycles(alice, 10), "cycles")
	session.Undo()

	assert.Equal(t, size, db.Balances.Size(), "balance object removed")
	assert.Equal(t, int64(0), db.GetCycleBalance(alice), "cycles removed")

	require.NoError(t, db.AdjustBalance(alice, protocol.NewAmount(50, web)), "credit again")
	b, _ := db.FindBalance(alice, web)
	assert.Equal(t, uint64(size), b.Id.Instance, "id reused after undo")
}

func TestUpdateMedianFeeds(t *testing.T) {
	bit := protocol.AssetId(10)
	price := func(backing int64) protocol.Price {
		return protocol.NewPrice(protocol.NewAmount(1, bit), protocol.NewAmount(backing, protocol.CoreAsset))
	}
	cer := protocol.NewPrice(protocol.NewAmount(1, bit), protocol.NewAmount(1, protocol.CoreAsset))
	now := int64(100000)

	b := state.BitassetData{
		Options: protocol.DefaultBitassetOptions(protocol.CoreAsset),
		Feeds: map[protocol.ObjectId]state.FeedEntry{
			protocol.AccountId(20): {Time: now - 10, Feed: protocol.NewPriceFeed(price(10), cer)},
			protocol.AccountId(21): {Time: now - 20, Feed: protocol.NewPriceFeed(price(12), cer)},
			protocol.AccountId(22): {},
		},
	}
	b.UpdateMedianFeeds(now)
	assert.Equal(t, price(10), b.CurrentFeed.SettlementPrice, "median of two")
	assert.Equal(t, now-20, b.CurrentFeedPublicationTime, "oldest contributing feed")

	b.Options.MinimumFeeds = 3
	b.UpdateMedianFeeds(now)
	assert.True(t, b.CurrentFeed.IsNull(), "too few feeds")
	assert.Equal(t, now, b.CurrentFeedPublicationTime, "publication time reset")

	b.Options.MinimumFeeds = 1
	b.Options.FeedLifetimeSec = 15
	b.UpdateMedianFeeds(now)
	assert.Equal(t, price(10), b.CurrentFeed.SettlementPrice, "expired feed ignored")
}

func TestLeastCollateralised(t *testing.T) {
	db := fixtures.Database()
	bit := protocol.AssetId(10)

	for i, collateral := range []int64{3000, 1800, 2500} {
		_, err := db.CallOrders.Create(func(id protocol.ObjectId) state.CallOrder {
			return state.CallOrder{
				Id:              id,
				Borrower:        protocol.AccountId(uint64(2 + i)),
				Collateral:      collateral,
				CollateralAsset: protocol.CoreAsset,
				Debt:            1000,
				DebtAsset:       bit,
			}
		})
		require.NoError(t, err, "create call order")
	}

	least, ok := db.LeastCollateralised(bit)
	require.True(t, ok, "found")
	assert.Equal(t, int64(1800), least.Collateral, "least collateralised")

	orders := db.CallOrdersFor(bit)
	require.Len(t, orders, 3, "all orders")
	assert.Equal(t, int64(2500), orders[1].Collateral, "second")

	_, ok = db.LeastCollateralised(protocol.AssetId(11))
	assert.False(t, ok, "other asset has none")

	_, ok = db.FindCallOrder(protocol.AccountId(3), bit)
	assert.True(t, ok, "by borrower")
}

func TestIsAuthorizedAsset(t *testing.T) {
	db := fixtures.Database()
	authority := protocol.AccountId(5)
	asset := state.Asset{
		Options: protocol.AssetOptions{
			Flags:                protocol.WhiteList,
			WhitelistAuthorities: []protocol.ObjectId{authority},
			BlacklistAuthorities: []protocol.ObjectId{authority},
		},
	}

	listed := state.Account{WhitelistingAccounts: []protocol.ObjectId{authority}}
	assert.True(t, db.IsAuthorizedAsset(listed, asset), "whitelisted")
	assert.False(t, db.IsAuthorizedAsset(state.Account{}, asset), "not whitelisted")

	listed.BlacklistingAccounts = []protocol.ObjectId{authority}
	assert.False(t, db.IsAuthorizedAsset(listed, asset), "blacklisted")

	asset.Options.Flags = 0
	assert.True(t, db.IsAuthorizedAsset(state.Account{}, asset), "no white list flag")
}
