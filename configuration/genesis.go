// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// ParametersType - chain parameters, zero values keep the default
type ParametersType struct {
	BlockInterval              uint32           `gluamapper:"block_interval" json:"block_interval"`
	MaintenanceInterval        uint32           `gluamapper:"maintenance_interval" json:"maintenance_interval"`
	MaximumTimeUntilExpiration uint32           `gluamapper:"maximum_time_until_expiration" json:"maximum_time_until_expiration"`
	MaximumTransactionSize     uint32           `gluamapper:"maximum_transaction_size" json:"maximum_transaction_size"`
	MaximumWhitelist           uint8            `gluamapper:"maximum_asset_whitelist_authorities" json:"maximum_asset_whitelist_authorities"`
	MaximumFeedPublishers      uint8            `gluamapper:"maximum_asset_feed_publishers" json:"maximum_asset_feed_publishers"`
	HardforkPermissions        int64            `gluamapper:"hardfork_permissions" json:"hardfork_permissions"`
	HardforkFeedCoreRate       int64            `gluamapper:"hardfork_feed_core_rate" json:"hardfork_feed_core_rate"`
	VaultSpendingLimit         int64            `gluamapper:"vault_spending_limit" json:"vault_spending_limit"`
	DefaultFee                 int64            `gluamapper:"default_fee" json:"default_fee"`
	Fees                       map[string]int64 `gluamapper:"fees" json:"fees"`
}

// CoreType - the core asset
type CoreType struct {
	Symbol    string `gluamapper:"symbol" json:"symbol"`
	Precision uint8  `gluamapper:"precision" json:"precision"`
	MaxSupply int64  `gluamapper:"max_supply" json:"max_supply"`
}

// AccountType - an account created at chain start
type AccountType struct {
	Name    string `gluamapper:"name" json:"name"`
	Kind    string `gluamapper:"kind" json:"kind"`
	Key     string `gluamapper:"key" json:"key"`
	Balance int64  `gluamapper:"balance" json:"balance"`
}

// AssetType - a user issued asset created at chain start
type AssetType struct {
	Symbol      string `gluamapper:"symbol" json:"symbol"`
	Issuer      string `gluamapper:"issuer" json:"issuer"`
	Precision   uint8  `gluamapper:"precision" json:"precision"`
	MaxSupply   int64  `gluamapper:"max_supply" json:"max_supply"`
	Permissions uint16 `gluamapper:"permissions" json:"permissions"`
	Flags       uint16 `gluamapper:"flags" json:"flags"`
	Description string `gluamapper:"description" json:"description"`
}

// AuthoritiesType - account names of the chain roles
type AuthoritiesType struct {
	WebassetIssuer   string `gluamapper:"webasset_issuer" json:"webasset_issuer"`
	LicenseAuthority string `gluamapper:"license_authority" json:"license_authority"`
	LicenseIssuer    string `gluamapper:"license_issuer" json:"license_issuer"`
	CycleIssuer      string `gluamapper:"cycle_issuer" json:"cycle_issuer"`
	WireOutHandler   string `gluamapper:"wire_out_handler" json:"wire_out_handler"`
}

// GenesisType - the initial chain state
type GenesisType struct {
	Time         int64           `gluamapper:"time" json:"time"`
	Core         CoreType        `gluamapper:"core" json:"core"`
	Accounts     []AccountType   `gluamapper:"accounts" json:"accounts"`
	Assets       []AssetType     `gluamapper:"assets" json:"assets"`
	WebAsset     string          `gluamapper:"web_asset" json:"web_asset"`
	CycleAsset   string          `gluamapper:"cycle_asset" json:"cycle_asset"`
	DascoinAsset string          `gluamapper:"dascoin_asset" json:"dascoin_asset"`
	Authorities  AuthoritiesType `gluamapper:"authorities" json:"authorities"`
	Witnesses    []string        `gluamapper:"witnesses" json:"witnesses"`
	Committee    []string        `gluamapper:"committee" json:"committee"`
	Frequency    uint32          `gluamapper:"frequency" json:"frequency"`
}

// Apply - overlay the configured values on a set of parameters
func (p ParametersType) Apply(base state.ChainParameters) state.ChainParameters {
	result := base.Clone()

	set32 := func(target *uint32, value uint32) {
		if 0 != value {
			*target = value
		}
	}
	set8 := func(target *uint8, value uint8) {
		if 0 != value {
			*target = value
		}
	}
	set64 := func(target *int64, value int64) {
		if 0 != value {
			*target = value
		}
	}

	set32(&result.BlockInterval, p.BlockInterval)
	set32(&result.MaintenanceInterval, p.MaintenanceInterval)
	set32(&result.MaximumTimeUntilExpiration, p.MaximumTimeUntilExpiration)
	set32(&result.MaximumTransactionSize, p.MaximumTransactionSize)
	set8(&result.MaximumAssetWhitelistAuthorities, p.MaximumWhitelist)
	set8(&result.MaximumAssetFeedPublishers, p.MaximumFeedPublishers)
	set64(&result.HardforkPermissions, p.HardforkPermissions)
	set64(&result.HardforkFeedCoreRate, p.HardforkFeedCoreRate)
	set64(&result.VaultSpendingLimit, p.VaultSpendingLimit)
	set64(&result.DefaultFee, p.DefaultFee)
	for tag, fee := range p.Fees {
		result.Fees[tag] = fee
	}
	return result
}

// State - the genesis description used to initialise a database
func (g GenesisType) State(chainId merkle.Digest, parameters state.ChainParameters) (state.Genesis, error) {
	if "" == g.Core.Symbol {
		return state.Genesis{}, fmt.Errorf("%w: core symbol", fault.ErrMissingParameters)
	}
	if 0 == len(g.Accounts) {
		return state.Genesis{}, fmt.Errorf("%w: accounts", fault.ErrMissingParameters)
	}

	maxSupply := g.Core.MaxSupply
	if 0 == maxSupply {
		maxSupply = protocol.MaxShareSupply
	}

	result := state.Genesis{
		ChainId:       chainId,
		Time:          g.Time,
		Parameters:    parameters.Clone(),
		CoreSymbol:    g.Core.Symbol,
		CorePrecision: g.Core.Precision,
		CoreMaxSupply: maxSupply,
		Accounts:      make([]state.GenesisAccount, 0, len(g.Accounts)),
		Assets:        make([]state.GenesisAsset, 0, len(g.Assets)),
		WebAsset:      g.WebAsset,
		CycleAsset:    g.CycleAsset,
		DascoinAsset:  g.DascoinAsset,
		Authorities: state.GenesisAuthorities{
			WebassetIssuer:   g.Authorities.WebassetIssuer,
			LicenseAuthority: g.Authorities.LicenseAuthority,
			LicenseIssuer:    g.Authorities.LicenseIssuer,
			CycleIssuer:      g.Authorities.CycleIssuer,
			WireOutHandler:   g.Authorities.WireOutHandler,
		},
		Witnesses: g.Witnesses,
		Committee: g.Committee,
		Frequency: g.Frequency,
	}

	for _, a := range g.Accounts {
		kind, err := protocol.ParseAccountKind(a.Kind)
		if nil != err {
			return state.Genesis{}, fmt.Errorf("account: %q  kind: %q  %w", a.Name, a.Kind, err)
		}
		key, err := account.PublicKeyFromBase58(a.Key)
		if nil != err {
			return state.Genesis{}, fmt.Errorf("account: %q  key: %w", a.Name, err)
		}
		result.Accounts = append(result.Accounts, state.GenesisAccount{
			Name:    a.Name,
			Kind:    kind,
			Key:     key,
			Balance: a.Balance,
		})
	}

	for _, a := range g.Assets {
		maxSupply := a.MaxSupply
		if 0 == maxSupply {
			maxSupply = protocol.MaxShareSupply
		}
		result.Assets = append(result.Assets, state.GenesisAsset{
			Symbol:      a.Symbol,
			Issuer:      a.Issuer,
			Precision:   a.Precision,
			MaxSupply:   maxSupply,
			Permissions: protocol.AssetFlags(a.Permissions),
			Flags:       protocol.AssetFlags(a.Flags),
			Description: a.Description,
		})
	}

	return result, nil
}
