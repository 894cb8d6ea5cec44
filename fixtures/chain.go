// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// GenesisTime - start of the test chain
const GenesisTime int64 = 1577836800

// InitialCore - core balance of each funded test account
const InitialCore int64 = 1000000

// account names of the test chain, in creation order after the two
// chain accounts, so alice is 1.2.2 and so on
var Names = []string{
	"alice",
	"bob",
	"vault-one",
	"issuer",
	"webasset-issuer",
	"license-authority",
	"license-issuer",
	"cycle-issuer",
	"wire-handler",
	"feeder-one",
	"feeder-two",
	"feeder-three",
	"custodian",
}

var kinds = map[string]protocol.AccountKind{
	"vault-one": protocol.Vault,
	"custodian": protocol.Custodian,
}

// Key - deterministic private key of a test account
func Key(name string) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed([]byte("ledgerd test " + name))
	fault.PanicIfError("fixtures: key", err)
	return key
}

// Genesis - a test chain with core, web, cycle and settlement assets
func Genesis() state.Genesis {
	accounts := make([]state.GenesisAccount, 0, len(Names))
	for _, name := range Names {
		accounts = append(accounts, state.GenesisAccount{
			Name:    name,
			Kind:    kinds[name],
			Key:     Key(name).PublicKey(),
			Balance: InitialCore,
		})
	}
	return state.Genesis{
		ChainId:       merkle.NewDigest([]byte("ledgerd test chain")),
		Time:          GenesisTime,
		Parameters:    state.DefaultChainParameters(),
		CoreSymbol:    "CORE",
		CorePrecision: 5,
		CoreMaxSupply: protocol.MaxShareSupply,
		Accounts:      accounts,
		Assets: []state.GenesisAsset{
			{Symbol: "WEB", Issuer: "webasset-issuer", Precision: 2, MaxSupply: protocol.MaxShareSupply},
			{Symbol: "CYCLE", Issuer: "cycle-issuer", Precision: 0, MaxSupply: protocol.MaxShareSupply},
			{Symbol: "DASC", Issuer: "license-issuer", Precision: 5, MaxSupply: protocol.MaxShareSupply},
		},
		WebAsset:     "WEB",
		CycleAsset:   "CYCLE",
		DascoinAsset: "DASC",
		Authorities: state.GenesisAuthorities{
			WebassetIssuer:   "webasset-issuer",
			LicenseAuthority: "license-authority",
			LicenseIssuer:    "license-issuer",
			CycleIssuer:      "cycle-issuer",
			WireOutHandler:   "wire-handler",
		},
		Witnesses: []string{"feeder-one"},
		Committee: []string{"feeder-two"},
		Frequency: 200,
	}
}

// Database - an initialised test database
func Database() *state.Database {
	db := state.New()
	fault.PanicIfError("fixtures: genesis", db.Initialise(Genesis()))
	return db
}

// Id - account id of a test account by name
func Id(db state.Reader, name string) protocol.ObjectId {
	a, ok := db.FindAccountByName(name)
	if !ok {
		fault.Panicf("fixtures: no account: %s", name)
	}
	return a.Id
}

// Asset - asset by symbol
func Asset(db state.Reader, symbol string) state.Asset {
	a, ok := db.FindAssetBySymbol(symbol)
	if !ok {
		fault.Panicf("fixtures: no asset: %s", symbol)
	}
	return a
}

// Viewer - unlocked view of a bare database for query tests
type Viewer struct {
	DB *state.Database
}

// View - run f on the database
func (v Viewer) View(f func(db *state.Database)) {
	f(v.DB)
}
