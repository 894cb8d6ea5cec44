// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// Reader - the read only view given to evaluators
//
// values returned share maps and slices with the stored objects and
// must not be modified
type Reader interface {
	GlobalProperties() GlobalProperties
	DynamicProperties() DynamicGlobalProperties
	Parameters() ChainParameters
	HeadTime() int64
	ChainId() merkle.Digest
	Exists(id ObjectId) bool

	GetAccount(id ObjectId) (Account, error)
	FindAccountByName(name string) (Account, bool)
	GetAsset(id ObjectId) (Asset, error)
	FindAssetBySymbol(symbol string) (Asset, bool)
	GetDynamicData(asset Asset) (AssetDynamicData, error)
	GetBitasset(asset Asset) (BitassetData, error)
	GetBalance(owner ObjectId, asset ObjectId) int64
	FindBalance(owner ObjectId, asset ObjectId) (AccountBalance, bool)
	IsAuthorizedAsset(account Account, asset Asset) bool

	FindCallOrder(borrower ObjectId, debtAsset ObjectId) (CallOrder, bool)
	LeastCollateralised(debtAsset ObjectId) (CallOrder, bool)
	CallOrdersFor(debtAsset ObjectId) []CallOrder
	SettlementsFor(asset ObjectId) []ForceSettlement

	FindIssuedAsset(uniqueId string, asset ObjectId) (IssuedAssetRecord, bool)
	GetWireOutHolder(id ObjectId) (WireOutHolder, error)

	GetLicenseType(id ObjectId) (LicenseType, error)
	FindLicenseTypeByName(name string) (LicenseType, bool)
	FindLicenseInformation(account ObjectId) (LicenseInformation, bool)
	EachLicenseInformation(f func(LicenseInformation) bool)
	GetCycleBalance(account ObjectId) int64

	FindTransaction(txId merkle.Digest) bool
}

// check the interface is satisfied
var _ Reader = (*Database)(nil)

// GetAccount - account by id
func (db *Database) GetAccount(id ObjectId) (Account, error) {
	a, ok := db.Accounts.Find(id)
	if !ok {
		return a, fmt.Errorf("%w: %s", fault.ErrNotFoundAccount, id)
	}
	return a, nil
}

// FindAccountByName - account by its unique name
func (db *Database) FindAccountByName(name string) (Account, bool) {
	return db.AccountsByName.Find(objectstore.StringKey(name))
}

// GetAsset - asset by id
func (db *Database) GetAsset(id ObjectId) (Asset, error) {
	a, ok := db.Assets.Find(id)
	if !ok {
		return a, fmt.Errorf("%w: %s", fault.ErrNotFoundAsset, id)
	}
	return a, nil
}

// FindAssetBySymbol - asset by its unique symbol
func (db *Database) FindAssetBySymbol(symbol string) (Asset, bool) {
	return db.AssetsBySymbol.Find(objectstore.StringKey(symbol))
}

// GetDynamicData - supply and fee figures of an asset
func (db *Database) GetDynamicData(asset Asset) (AssetDynamicData, error) {
	return db.DynamicData.Get(asset.DynamicAssetDataId)
}

// GetBitasset - market state of a market issued asset
func (db *Database) GetBitasset(asset Asset) (BitassetData, error) {
	if !asset.IsMarketIssued() {
		return BitassetData{}, fault.ErrAssetNotMarketIssued
	}
	b, ok := db.Bitassets.Find(asset.BitassetDataId)
	if !ok {
		return b, fmt.Errorf("%w: %s", fault.ErrNotFoundBitasset, asset.BitassetDataId)
	}
	return b, nil
}

// FindBalance - the balance object of owner for asset
func (db *Database) FindBalance(owner ObjectId, asset ObjectId) (AccountBalance, bool) {
	return db.BalancesByOwner.Find(objectstore.Composite{owner, asset})
}

// GetBalance - spendable balance, zero if never held
func (db *Database) GetBalance(owner ObjectId, asset ObjectId) int64 {
	b, ok := db.FindBalance(owner, asset)
	if !ok {
		return 0
	}
	return b.Balance
}

// IsAuthorizedAsset - account may hold and receive the asset
//
// any blacklisting authority of the asset that lists the account
// refuses it; with the white list flag the account must be listed by
// one of the whitelisting authorities
func (db *Database) IsAuthorizedAsset(account Account, asset Asset) bool {
	for _, authority := range asset.Options.BlacklistAuthorities {
		if containsId(account.BlacklistingAccounts, authority) {
			return false
		}
	}
	if !asset.Options.Flags.Has(protocol.WhiteList) {
		return true
	}
	for _, authority := range asset.Options.WhitelistAuthorities {
		if containsId(account.WhitelistingAccounts, authority) {
			return true
		}
	}
	return false
}

// FindCallOrder - a borrower's position in one market issued asset
func (db *Database) FindCallOrder(borrower ObjectId, debtAsset ObjectId) (CallOrder, bool) {
	return db.CallOrdersByBorrower.Find(objectstore.Composite{borrower, debtAsset})
}

// LeastCollateralised - the position with the least collateral per
// unit of debt
func (db *Database) LeastCollateralised(debtAsset ObjectId) (CallOrder, bool) {
	var result CallOrder
	found := false
	db.CallOrdersByCollateral.Prefix(objectstore.Composite{debtAsset}, func(c CallOrder) bool {
		result = c
		found = true
		return false
	})
	return result, found
}

// CallOrdersFor - every position in one asset, least collateralised
// first
func (db *Database) CallOrdersFor(debtAsset ObjectId) []CallOrder {
	result := []CallOrder{}
	db.CallOrdersByCollateral.Prefix(objectstore.Composite{debtAsset}, func(c CallOrder) bool {
		result = append(result, c)
		return true
	})
	return result
}

// SettlementsFor - pending force settlements of an asset, earliest
// first
func (db *Database) SettlementsFor(asset ObjectId) []ForceSettlement {
	result := []ForceSettlement{}
	db.SettlementsByExpiration.Prefix(objectstore.Composite{asset}, func(f ForceSettlement) bool {
		result = append(result, f)
		return true
	})
	return result
}

// FindIssuedAsset - issuance by external id
func (db *Database) FindIssuedAsset(uniqueId string, asset ObjectId) (IssuedAssetRecord, bool) {
	return db.IssuedAssetsByUniqueId.Find(objectstore.Composite{objectstore.StringKey(uniqueId), asset})
}

// GetWireOutHolder - pending wire out by id
func (db *Database) GetWireOutHolder(id ObjectId) (WireOutHolder, error) {
	h, ok := db.WireOutHolders.Find(id)
	if !ok {
		return h, fmt.Errorf("%w: %s", fault.ErrNotFoundWireOutHolder, id)
	}
	return h, nil
}

// GetLicenseType - license type by id
func (db *Database) GetLicenseType(id ObjectId) (LicenseType, error) {
	l, ok := db.LicenseTypes.Find(id)
	if !ok {
		return l, fmt.Errorf("%w: %s", fault.ErrNotFoundLicense, id)
	}
	return l, nil
}

// FindLicenseTypeByName - license type by its unique name
func (db *Database) FindLicenseTypeByName(name string) (LicenseType, bool) {
	return db.LicenseTypesByName.Find(objectstore.StringKey(name))
}

// FindLicenseInformation - licenses held by an account
func (db *Database) FindLicenseInformation(account ObjectId) (LicenseInformation, bool) {
	return db.LicenseInformationByAccount.Find(account)
}

// EachLicenseInformation - visit license holders in id order until f
// returns false
func (db *Database) EachLicenseInformation(f func(LicenseInformation) bool) {
	db.LicenseInformation.Each(f)
}

// GetCycleBalance - free cycles, zero if never credited
func (db *Database) GetCycleBalance(account ObjectId) int64 {
	c, ok := db.CycleBalancesByAccount.Find(account)
	if !ok {
		return 0
	}
	return c.Balance
}

// FindTransaction - true if the transaction was applied and has not
// yet expired
func (db *Database) FindTransaction(txId merkle.Digest) bool {
	_, ok := db.TransactionsById.Find(DigestKey(txId))
	return ok
}
