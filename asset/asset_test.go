// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/asset"
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func setup() (*state.Database, *evaluator.Registry) {
	r := evaluator.NewRegistry()
	asset.Register(r)
	return fixtures.Database(), r
}

// options with an exchange rate whose base is the placeholder for
// the asset being created
func userOptions(maxSupply int64) protocol.AssetOptions {
	return protocol.AssetOptions{
		MaxSupply:         maxSupply,
		IssuerPermissions: protocol.UserIssuedPermissionMask,
		CoreExchangeRate: protocol.NewPrice(
			protocol.NewAmount(1, protocol.AssetId(1)),
			protocol.NewAmount(1, protocol.CoreAsset),
		),
	}
}

func createUserAsset(t *testing.T, db *state.Database, r *evaluator.Registry, issuer string, symbol string) state.Asset {
	op := &transactionrecord.AssetCreate{
		Issuer:        fixtures.Id(db, issuer),
		Symbol:        symbol,
		Precision:     2,
		CommonOptions: userOptions(1000000),
	}
	result, err := fixtures.Execute(db, r, op)
	require.NoError(t, err, "create %s", symbol)
	require.Equal(t, evaluator.Object, result.Kind, "create result")

	a, err := db.GetAsset(result.Id)
	require.NoError(t, err, "created asset")
	return a
}

func supply(t *testing.T, db *state.Database, a state.Asset) int64 {
	dynamic, err := db.GetDynamicData(a)
	require.NoError(t, err, "dynamic data")
	return dynamic.CurrentSupply
}

func TestCreate(t *testing.T) {
	db, r := setup()

	a := createUserAsset(t, db, r, "issuer", "ALPHA")
	assert.Equal(t, protocol.AssetId(4), a.Id, "next asset id")
	assert.Equal(t, fixtures.Id(db, "issuer"), a.Issuer, "issuer")
	assert.Equal(t, a.Id, a.Options.CoreExchangeRate.Base.AssetId, "exchange rate placeholder fixed")
	assert.False(t, a.IsMarketIssued(), "user issued")
	assert.Equal(t, int64(0), supply(t, db, a), "no supply")

	op := &transactionrecord.AssetCreate{
		Issuer:        fixtures.Id(db, "bob"),
		Symbol:        "ALPHA",
		Precision:     2,
		CommonOptions: userOptions(1000),
	}
	_, err := fixtures.Execute(db, r, op)
	assert.Equal(t, fault.ErrAssetSymbolExists, err, "duplicate symbol")

	op.Symbol = "ALPHA.ONE"
	_, err = fixtures.Execute(db, r, op)
	assert.Equal(t, fault.ErrPrefixIssuerMismatch, err, "prefix of another issuer")

	op.Symbol = "GAMMA.ONE"
	_, err = fixtures.Execute(db, r, op)
	assert.Equal(t, fault.ErrNotFoundPrefixAsset, err, "unknown prefix")

	createUserAsset(t, db, r, "issuer", "ALPHA.ONE")

	op.Symbol = "BETA"
	op.CommonOptions.WhitelistAuthorities = []protocol.ObjectId{protocol.AccountId(999)}
	_, err = fixtures.Execute(db, r, op)
	assert.True(t, fault.IsErrNotFound(err), "unknown authority: %v", err)
}

func TestIssueAndReserve(t *testing.T) {
	db, r := setup()
	a := createUserAsset(t, db, r, "issuer", "ALPHA")
	alice := fixtures.Id(db, "alice")

	issue := &transactionrecord.AssetIssue{
		Issuer:         fixtures.Id(db, "issuer"),
		AssetToIssue:   a.Amount(500),
		IssueToAccount: alice,
	}
	_, err := fixtures.Execute(db, r, issue)
	require.NoError(t, err, "issue")
	assert.Equal(t, int64(500), db.GetBalance(alice, a.Id), "balance")
	assert.Equal(t, int64(500), supply(t, db, a), "supply")

	issue.AssetToIssue = a.Amount(999501)
	_, err = fixtures.Execute(db, r, issue)
	assert.Equal(t, fault.ErrSupplyExceedsMaximum, err, "beyond maximum")

	issue.AssetToIssue = a.Amount(10)
	issue.Issuer = alice
	_, err = fixtures.Execute(db, r, issue)
	assert.Equal(t, fault.ErrIssuerMismatch, err, "not the issuer")

	reserve := &transactionrecord.AssetReserve{
		Payer:           alice,
		AmountToReserve: a.Amount(200),
	}
	_, err = fixtures.Execute(db, r, reserve)
	require.NoError(t, err, "reserve")
	assert.Equal(t, int64(300), db.GetBalance(alice, a.Id), "balance after reserve")
	assert.Equal(t, int64(300), supply(t, db, a), "supply after reserve")

	reserve.AmountToReserve = a.Amount(301)
	_, err = fixtures.Execute(db, r, reserve)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "reserve more than held")
	assert.Equal(t, int64(300), supply(t, db, a), "supply unchanged")
}

func TestFeePoolAndClaim(t *testing.T) {
	db, r := setup()
	a := createUserAsset(t, db, r, "issuer", "ALPHA")
	bob := fixtures.Id(db, "bob")
	issuer := fixtures.Id(db, "issuer")

	fund := &transactionrecord.AssetFundFeePool{
		FromAccount: bob,
		AssetId:     a.Id,
		Amount:      1000,
	}
	_, err := fixtures.Execute(db, r, fund)
	require.NoError(t, err, "fund")
	dynamic, _ := db.GetDynamicData(a)
	assert.Equal(t, int64(1000), dynamic.FeePool, "fee pool")
	assert.Equal(t, fixtures.InitialCore-1000, db.GetBalance(bob, protocol.CoreAsset), "core debited")

	fund.Amount = fixtures.InitialCore
	_, err = fixtures.Execute(db, r, fund)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "fund beyond balance")

	require.NoError(t, db.DynamicData.Modify(a.DynamicAssetDataId, func(d *state.AssetDynamicData) {
		d.AccumulatedFees = 70
	}), "accumulate fees")

	claim := &transactionrecord.AssetClaimFees{
		Issuer:        issuer,
		AmountToClaim: a.Amount(71),
	}
	_, err = fixtures.Execute(db, r, claim)
	assert.Equal(t, fault.ErrInsufficientFees, err, "claim beyond fees")

	claim.AmountToClaim = a.Amount(70)
	_, err = fixtures.Execute(db, r, claim)
	require.NoError(t, err, "claim")
	assert.Equal(t, int64(70), db.GetBalance(issuer, a.Id), "fees moved to issuer")
	dynamic, _ = db.GetDynamicData(a)
	assert.Equal(t, int64(0), dynamic.AccumulatedFees, "fees cleared")
}

func TestIssueRequestIsIdempotent(t *testing.T) {
	db, r := setup()
	web := fixtures.Asset(db, "WEB")
	vault := fixtures.Id(db, "vault-one")

	request := &transactionrecord.AssetCreateIssueRequest{
		Issuer:   fixtures.Id(db, "webasset-issuer"),
		Receiver: vault,
		Amount:   15000,
		Asset:    web.Id,
		UniqueId: "1",
		Comment:  "first payment",
	}
	result, err := fixtures.Execute(db, r, request)
	require.NoError(t, err, "first issue")
	assert.Equal(t, evaluator.Object, result.Kind, "record id returned")

	assert.Equal(t, int64(15000), db.GetBalance(vault, web.Id), "cash")
	assert.Equal(t, int64(15000), supply(t, db, web), "supply")
	record, ok := db.FindIssuedAsset("1", web.Id)
	require.True(t, ok, "issued asset record")
	assert.Equal(t, result.Id, record.Id, "record id")
	assert.Equal(t, int64(15000), record.Amount, "record amount")

	_, err = fixtures.Execute(db, r, request)
	assert.Equal(t, fault.ErrIssuedAssetRecordExists, err, "replay")
	assert.True(t, fault.IsValidation(err), "replay is a validation error")
	assert.Equal(t, int64(15000), supply(t, db, web), "supply after replay")

	request.UniqueId = "2"
	request.Reserved = 500
	_, err = fixtures.Execute(db, r, request)
	require.NoError(t, err, "second issue")
	b, _ := db.FindBalance(vault, web.Id)
	assert.Equal(t, int64(30000), b.Balance, "cash after second")
	assert.Equal(t, int64(500), b.Reserved, "reserved after second")
	assert.Equal(t, int64(30500), supply(t, db, web), "supply counts reserved")
}

func TestIssueRequestRules(t *testing.T) {
	db, r := setup()
	issuer := fixtures.Id(db, "webasset-issuer")

	request := &transactionrecord.AssetCreateIssueRequest{
		Issuer:   fixtures.Id(db, "alice"),
		Receiver: fixtures.Id(db, "alice"),
		Amount:   10,
		Asset:    fixtures.Asset(db, "WEB").Id,
		UniqueId: "x",
	}
	_, err := fixtures.Execute(db, r, request)
	assert.Equal(t, fault.ErrUnauthorisedAuthority, err, "not the web issuer")

	request.Issuer = issuer
	request.Asset = fixtures.Asset(db, "DASC").Id
	_, err = fixtures.Execute(db, r, request)
	assert.Equal(t, fault.ErrCannotIssueSettlementCoin, err, "settlement coin")

	request.Asset = fixtures.Asset(db, "CYCLE").Id
	request.Receiver = fixtures.Id(db, "vault-one")
	_, err = fixtures.Execute(db, r, request)
	assert.Equal(t, fault.ErrCycleAssetReceiver, err, "cycles to a vault")

	request.Receiver = fixtures.Id(db, "custodian")
	_, err = fixtures.Execute(db, r, request)
	assert.NoError(t, err, "cycles to a custodian")
}
