// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// names of the two chain accounts created first
const (
	CommitteeAccountName = "committee-account"
	WitnessAccountName   = "witness-account"
)

// GenesisAccount - an account present at chain start
type GenesisAccount struct {
	Name    string
	Kind    protocol.AccountKind
	Key     account.PublicKey
	Balance int64
}

// GenesisAsset - a user issued asset present at chain start
type GenesisAsset struct {
	Symbol      string
	Issuer      string
	Precision   uint8
	MaxSupply   int64
	Permissions protocol.AssetFlags
	Flags       protocol.AssetFlags
	Description string
}

// GenesisAuthorities - account names of the chain roles
type GenesisAuthorities struct {
	WebassetIssuer   string
	LicenseAuthority string
	LicenseIssuer    string
	CycleIssuer      string
	WireOutHandler   string
}

// Genesis - the initial state of a chain
type Genesis struct {
	ChainId       merkle.Digest
	Time          int64
	Parameters    ChainParameters
	CoreSymbol    string
	CorePrecision uint8
	CoreMaxSupply int64
	Accounts      []GenesisAccount
	Assets        []GenesisAsset
	WebAsset      string
	CycleAsset    string
	DascoinAsset  string
	Authorities   GenesisAuthorities
	Witnesses     []string
	Committee     []string
	Frequency     uint32
}

// Initialise - populate an empty database from a genesis description
func (db *Database) Initialise(g Genesis) error {
	if 0 != db.Accounts.Size() {
		return fault.ErrAlreadyInitialised
	}

	for _, name := range []string{CommitteeAccountName, WitnessAccountName} {
		if err := db.createGenesisAccount(GenesisAccount{Name: name, Kind: protocol.Wallet}, protocol.CommitteeAccount); nil != err {
			return err
		}
	}
	for _, a := range g.Accounts {
		if err := db.createGenesisAccount(a, protocol.CommitteeAccount); nil != err {
			return err
		}
	}

	supply := int64(0)
	for _, a := range g.Accounts {
		n, err := protocol.AddShares(supply, a.Balance)
		if nil != err {
			return err
		}
		supply = n
	}
	if supply > g.CoreMaxSupply {
		return fault.ErrSupplyExceedsMaximum
	}

	core := GenesisAsset{
		Symbol:    g.CoreSymbol,
		Precision: g.CorePrecision,
		MaxSupply: g.CoreMaxSupply,
	}
	if _, err := db.createGenesisAsset(core, protocol.CommitteeAccount, supply); nil != err {
		return err
	}
	for _, a := range g.Accounts {
		if 0 == a.Balance {
			continue
		}
		owner, _ := db.FindAccountByName(a.Name)
		if err := db.AdjustBalance(owner.Id, protocol.NewAmount(a.Balance, protocol.CoreAsset)); nil != err {
			return err
		}
	}

	for _, a := range g.Assets {
		issuer, err := db.lookupName(a.Issuer)
		if nil != err {
			return err
		}
		if _, err := db.createGenesisAsset(a, issuer, 0); nil != err {
			return err
		}
	}

	global := GlobalProperties{
		Id:         GlobalPropertiesId,
		ChainId:    g.ChainId,
		Parameters: g.Parameters.Clone(),
	}
	var err error
	roles := []struct {
		name   string
		target *ObjectId
	}{
		{g.Authorities.WebassetIssuer, &global.Authorities.WebassetIssuer},
		{g.Authorities.LicenseAuthority, &global.Authorities.LicenseAuthority},
		{g.Authorities.LicenseIssuer, &global.Authorities.LicenseIssuer},
		{g.Authorities.CycleIssuer, &global.Authorities.CycleIssuer},
		{g.Authorities.WireOutHandler, &global.Authorities.WireOutHandler},
	}
	for _, role := range roles {
		if *role.target, err = db.lookupName(role.name); nil != err {
			return err
		}
	}
	for _, name := range g.Witnesses {
		id, err := db.lookupName(name)
		if nil != err {
			return err
		}
		global.ActiveWitnesses = append(global.ActiveWitnesses, id)
	}
	for _, name := range g.Committee {
		id, err := db.lookupName(name)
		if nil != err {
			return err
		}
		global.ActiveCommittee = append(global.ActiveCommittee, id)
	}
	assets := []struct {
		symbol string
		target *ObjectId
	}{
		{g.WebAsset, &global.WebAsset},
		{g.CycleAsset, &global.CycleAsset},
		{g.DascoinAsset, &global.DascoinAsset},
	}
	for _, a := range assets {
		if "" == a.symbol {
			continue
		}
		asset, ok := db.FindAssetBySymbol(a.symbol)
		if !ok {
			return fmt.Errorf("%w: %s", fault.ErrNotFoundAsset, a.symbol)
		}
		*a.target = asset.Id
	}

	if _, err := db.Global.Create(func(id ObjectId) GlobalProperties {
		return global
	}); nil != err {
		return err
	}

	maintenance := int64(g.Parameters.MaintenanceInterval)
	next := g.Time
	if maintenance > 0 {
		next = (g.Time/maintenance + 1) * maintenance
	}
	_, err = db.Dynamic.Create(func(id ObjectId) DynamicGlobalProperties {
		return DynamicGlobalProperties{
			Id:                  id,
			Time:                g.Time,
			NextMaintenanceTime: next,
			Frequency:           g.Frequency,
			LastFrequencyUpdate: g.Time,
		}
	})
	return err
}

func (db *Database) lookupName(name string) (ObjectId, error) {
	if "" == name {
		return protocol.CommitteeAccount, nil
	}
	a, ok := db.FindAccountByName(name)
	if !ok {
		return ObjectId{}, fmt.Errorf("%w: %s", fault.ErrNotFoundAccount, name)
	}
	return a.Id, nil
}

func (db *Database) createGenesisAccount(a GenesisAccount, registrar ObjectId) error {
	_, err := db.Accounts.Create(func(id ObjectId) Account {
		return Account{
			Id:        id,
			Name:      a.Name,
			Kind:      a.Kind,
			Registrar: registrar,
			ActiveKey: a.Key,
		}
	})
	return err
}

func (db *Database) createGenesisAsset(a GenesisAsset, issuer ObjectId, supply int64) (Asset, error) {
	dynamic, err := db.DynamicData.Create(func(id ObjectId) AssetDynamicData {
		return AssetDynamicData{
			Id:            id,
			CurrentSupply: supply,
		}
	})
	if nil != err {
		return Asset{}, err
	}
	return db.Assets.Create(func(id ObjectId) Asset {
		return Asset{
			Id:        id,
			Symbol:    a.Symbol,
			Precision: a.Precision,
			Issuer:    issuer,
			Options: protocol.AssetOptions{
				MaxSupply:         a.MaxSupply,
				IssuerPermissions: a.Permissions,
				Flags:             a.Flags,
				CoreExchangeRate:  protocol.NewPrice(protocol.NewAmount(1, id), protocol.NewAmount(1, protocol.CoreAsset)),
				Description:       a.Description,
			},
			DynamicAssetDataId: dynamic.Id,
		}
	})
}
