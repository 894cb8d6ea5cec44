// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// push operations as one transaction without signatures
func push(t *testing.T, l *Ledger, operations ...transactionrecord.Operation) error {
	l.options.SkipSignatures = true
	_, err := l.PushTransaction(signed(t, l, operations))
	return err
}

// a core backed asset "BIT" with a feed of 10 core per unit
func market(t *testing.T, l *Ledger) state.Asset {
	options := protocol.DefaultBitassetOptions(protocol.CoreAsset)
	err := push(t, l, &transactionrecord.AssetCreate{
		Issuer:    idOf(l, "issuer"),
		Symbol:    "BIT",
		Precision: 5,
		CommonOptions: protocol.AssetOptions{
			MaxSupply: protocol.MaxShareSupply,
			CoreExchangeRate: protocol.NewPrice(
				protocol.NewAmount(1, protocol.AssetId(1)),
				protocol.NewAmount(1, protocol.CoreAsset),
			),
		},
		BitassetOptions: &options,
	})
	require.NoError(t, err, "create bitasset")

	a := fixtures.Asset(l.db, "BIT")
	err = push(t, l, &transactionrecord.AssetUpdateFeedProducers{
		Issuer:           a.Issuer,
		AssetToUpdate:    a.Id,
		NewFeedProducers: []protocol.ObjectId{idOf(l, "feeder-three")},
	})
	require.NoError(t, err, "feed producers")

	price := protocol.NewPrice(a.Amount(1), protocol.NewAmount(10, protocol.CoreAsset))
	err = push(t, l, &transactionrecord.AssetPublishFeed{
		Publisher: idOf(l, "feeder-three"),
		AssetId:   a.Id,
		Feed:      protocol.NewPriceFeed(price, price),
	})
	require.NoError(t, err, "publish feed")
	return a
}

func borrowOp(l *Ledger, a state.Asset, collateral int64, debt int64) *transactionrecord.CallOrderUpdate {
	return &transactionrecord.CallOrderUpdate{
		FundingAccount:  idOf(l, "alice"),
		DeltaCollateral: protocol.NewAmount(collateral, protocol.CoreAsset),
		DeltaDebt:       a.Amount(debt),
	}
}

// a locked frequency license of 100 cycles issued to vault-one
func lockedLicense(t *testing.T, l *Ledger) protocol.ObjectId {
	err := push(t, l, &transactionrecord.CreateLicenseType{
		Authority: idOf(l, "license-authority"),
		Name:      "locked",
		Amount:    100,
		Kind:      protocol.LockedFrequencyLicense,
		Policy:    protocol.StandardPolicy,
	})
	require.NoError(t, err, "create license")

	var id protocol.ObjectId
	l.View(func(db *state.Database) {
		types := db.LicenseTypes.All()
		require.Len(t, types, 1, "license types")
		id = types[0].Id
	})
	return id
}

func issueOp(l *Ledger, license protocol.ObjectId) *transactionrecord.IssueLicense {
	return &transactionrecord.IssueLicense{
		Issuer:        idOf(l, "license-issuer"),
		Account:       idOf(l, "vault-one"),
		License:       license,
		FrequencyLock: 300,
	}
}

func submitOp(l *Ledger, license protocol.ObjectId, amount int64) *transactionrecord.SubmitLicenseCycles {
	return &transactionrecord.SubmitLicenseCycles{
		Account: idOf(l, "vault-one"),
		License: license,
		Amount:  amount,
	}
}

func licenseRecord(t *testing.T, l *Ledger, license protocol.ObjectId) state.LicenseHistoryRecord {
	information, ok := l.db.FindLicenseInformation(idOf(l, "vault-one"))
	require.True(t, ok, "license information")
	i, ok := information.Find(license)
	require.True(t, ok, "license record")
	return information.History[i]
}

// two operations of one transaction touching the same object either
// add up or reject the whole transaction
func TestConflictingOperations(t *testing.T) {
	tests := []struct {
		name  string
		run   func(t *testing.T, l *Ledger) error
		err   error
		check func(t *testing.T, l *Ledger)
	}{
		{
			name: "two transfers",
			run: func(t *testing.T, l *Ledger) error {
				return push(t, l, transferOp(l, "alice", "bob", 100), transferOp(l, "alice", "bob", 200))
			},
			check: func(t *testing.T, l *Ledger) {
				assert.Equal(t, fixtures.InitialCore-300, balance(l, "alice", protocol.CoreAsset), "alice")
				assert.Equal(t, fixtures.InitialCore+300, balance(l, "bob", protocol.CoreAsset), "bob")
			},
		},
		{
			name: "two borrows on one position",
			run: func(t *testing.T, l *Ledger) error {
				a := market(t, l)
				return push(t, l, borrowOp(l, a, 1750, 100), borrowOp(l, a, 1750, 100))
			},
			check: func(t *testing.T, l *Ledger) {
				a := fixtures.Asset(l.db, "BIT")
				order, ok := l.db.FindCallOrder(idOf(l, "alice"), a.Id)
				require.True(t, ok, "position")
				assert.Equal(t, int64(3500), order.Collateral, "collateral")
				assert.Equal(t, int64(200), order.Debt, "debt")
				assert.Equal(t, int64(200), balance(l, "alice", a.Id), "borrowed")

				dynamic, err := l.db.GetDynamicData(a)
				require.NoError(t, err, "dynamic data")
				assert.Equal(t, order.Debt, dynamic.CurrentSupply, "supply equals debt")
			},
		},
		{
			name: "borrow then repay more than borrowed",
			run: func(t *testing.T, l *Ledger) error {
				a := market(t, l)
				return push(t, l, borrowOp(l, a, 1750, 100), borrowOp(l, a, 0, -150))
			},
			err: fault.ErrInsufficientBalance,
			check: func(t *testing.T, l *Ledger) {
				a := fixtures.Asset(l.db, "BIT")
				_, ok := l.db.FindCallOrder(idOf(l, "alice"), a.Id)
				assert.False(t, ok, "no position")
				assert.Equal(t, fixtures.InitialCore, balance(l, "alice", protocol.CoreAsset), "collateral untouched")
			},
		},
		{
			name: "two submits within the record",
			run: func(t *testing.T, l *Ledger) error {
				id := lockedLicense(t, l)
				require.NoError(t, push(t, l, issueOp(l, id)), "issue")
				return push(t, l, submitOp(l, id, 40), submitOp(l, id, 40))
			},
			check: func(t *testing.T, l *Ledger) {
				id := l.db.LicenseTypes.All()[0].Id
				assert.Equal(t, int64(20), licenseRecord(t, l, id).Amount, "remaining")
				assert.Len(t, l.db.RewardQueue.All(), 2, "queued")
			},
		},
		{
			name: "two submits beyond the record",
			run: func(t *testing.T, l *Ledger) error {
				id := lockedLicense(t, l)
				require.NoError(t, push(t, l, issueOp(l, id)), "issue")
				return push(t, l, submitOp(l, id, 70), submitOp(l, id, 70))
			},
			err: fault.ErrInsufficientCycles,
			check: func(t *testing.T, l *Ledger) {
				id := l.db.LicenseTypes.All()[0].Id
				assert.Equal(t, int64(100), licenseRecord(t, l, id).Amount, "record unchanged")
				assert.Empty(t, l.db.RewardQueue.All(), "nothing queued")
			},
		},
		{
			name: "one license issued twice",
			run: func(t *testing.T, l *Ledger) error {
				id := lockedLicense(t, l)
				return push(t, l, issueOp(l, id), issueOp(l, id))
			},
			err: fault.ErrLicenseAlreadyIssued,
			check: func(t *testing.T, l *Ledger) {
				_, ok := l.db.FindLicenseInformation(idOf(l, "vault-one"))
				assert.False(t, ok, "no license information")
			},
		},
	}

	for _, item := range tests {
		t.Run(item.name, func(t *testing.T) {
			l := setup(t)

			err := item.run(t, l)
			if nil == item.err {
				require.NoError(t, err, "push")
			} else {
				assert.ErrorIs(t, err, item.err, "push")
				assert.False(t, fault.IsErrFatal(err), "rejected, not fatal")
			}
			item.check(t, l)
		})
	}
}
