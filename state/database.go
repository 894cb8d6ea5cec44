// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/avl"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// the singleton property objects
var (
	GlobalPropertiesId        = objectstore.NewObjectId(protocol.ImplementationSpace, protocol.GlobalPropertyType, 0)
	DynamicGlobalPropertiesId = objectstore.NewObjectId(protocol.ImplementationSpace, protocol.DynamicGlobalPropertyType, 0)
)

// Database - every index of the ledger with its secondary orderings
type Database struct {
	store   *objectstore.Database
	virtual []transactionrecord.Operation

	Global             *objectstore.Index[GlobalProperties]
	Dynamic            *objectstore.Index[DynamicGlobalProperties]
	Accounts           *objectstore.Index[Account]
	Assets             *objectstore.Index[Asset]
	DynamicData        *objectstore.Index[AssetDynamicData]
	Bitassets          *objectstore.Index[BitassetData]
	Balances           *objectstore.Index[AccountBalance]
	ForceSettlements   *objectstore.Index[ForceSettlement]
	CallOrders         *objectstore.Index[CallOrder]
	IssuedAssets       *objectstore.Index[IssuedAssetRecord]
	WireOutHolders     *objectstore.Index[WireOutHolder]
	LicenseTypes       *objectstore.Index[LicenseType]
	LicenseInformation *objectstore.Index[LicenseInformation]
	RewardQueue        *objectstore.Index[RewardQueueEntry]
	CycleBalances      *objectstore.Index[CycleBalance]
	FrequencyHistory   *objectstore.Index[FrequencyHistoryRecord]
	Transactions       *objectstore.Index[TransactionRecord]

	AccountsByName              *objectstore.Ordering[Account]
	AssetsBySymbol              *objectstore.Ordering[Asset]
	BalancesByOwner             *objectstore.Ordering[AccountBalance]
	SettlementsByExpiration     *objectstore.Ordering[ForceSettlement]
	CallOrdersByCollateral      *objectstore.Ordering[CallOrder]
	CallOrdersByBorrower        *objectstore.Ordering[CallOrder]
	IssuedAssetsByUniqueId      *objectstore.Ordering[IssuedAssetRecord]
	WireOutHoldersByAccount     *objectstore.Ordering[WireOutHolder]
	LicenseTypesByName          *objectstore.Ordering[LicenseType]
	LicenseTypesByKind          *objectstore.Ordering[LicenseType]
	LicenseInformationByAccount *objectstore.Ordering[LicenseInformation]
	RewardQueueByTime           *objectstore.Ordering[RewardQueueEntry]
	RewardQueueByAccount        *objectstore.Ordering[RewardQueueEntry]
	CycleBalancesByAccount      *objectstore.Ordering[CycleBalance]
	FrequencyHistoryByTime      *objectstore.Ordering[FrequencyHistoryRecord]
	TransactionsById            *objectstore.Ordering[TransactionRecord]
	TransactionsByExpiration    *objectstore.Ordering[TransactionRecord]
}

// New - an empty database with every index registered
func New() *Database {
	store := objectstore.New()
	impl := protocol.ImplementationSpace
	proto := protocol.ProtocolSpace

	db := &Database{
		store:              store,
		Global:             objectstore.NewIndex[GlobalProperties](store, "global_properties", impl, protocol.GlobalPropertyType),
		Dynamic:            objectstore.NewIndex[DynamicGlobalProperties](store, "dynamic_global_properties", impl, protocol.DynamicGlobalPropertyType),
		Accounts:           objectstore.NewIndex[Account](store, "accounts", proto, protocol.AccountType),
		Assets:             objectstore.NewIndex[Asset](store, "assets", proto, protocol.AssetType),
		DynamicData:        objectstore.NewIndex[AssetDynamicData](store, "asset_dynamic_data", impl, protocol.AssetDynamicDataType),
		Bitassets:          objectstore.NewIndex[BitassetData](store, "bitasset_data", impl, protocol.BitassetDataType),
		Balances:           objectstore.NewIndex[AccountBalance](store, "account_balances", impl, protocol.AccountBalanceType),
		ForceSettlements:   objectstore.NewIndex[ForceSettlement](store, "force_settlements", proto, protocol.ForceSettlementType),
		CallOrders:         objectstore.NewIndex[CallOrder](store, "call_orders", proto, protocol.CallOrderType),
		IssuedAssets:       objectstore.NewIndex[IssuedAssetRecord](store, "issued_assets", proto, protocol.IssuedAssetType),
		WireOutHolders:     objectstore.NewIndex[WireOutHolder](store, "wire_out_holders", proto, protocol.WireOutHolderType),
		LicenseTypes:       objectstore.NewIndex[LicenseType](store, "license_types", proto, protocol.LicenseTypeType),
		LicenseInformation: objectstore.NewIndex[LicenseInformation](store, "license_information", impl, protocol.LicenseInformationType),
		RewardQueue:        objectstore.NewIndex[RewardQueueEntry](store, "reward_queue", impl, protocol.RewardQueueType),
		CycleBalances:      objectstore.NewIndex[CycleBalance](store, "cycle_balances", impl, protocol.CycleBalanceType),
		FrequencyHistory:   objectstore.NewIndex[FrequencyHistoryRecord](store, "frequency_history", impl, protocol.FrequencyHistoryType),
		Transactions:       objectstore.NewIndex[TransactionRecord](store, "transactions", impl, protocol.TransactionType),
	}

	db.AccountsByName = db.Accounts.AddOrdering("by_name", true, func(a Account) avl.Item {
		return objectstore.StringKey(a.Name)
	})
	db.AssetsBySymbol = db.Assets.AddOrdering("by_symbol", true, func(a Asset) avl.Item {
		return objectstore.StringKey(a.Symbol)
	})
	db.BalancesByOwner = db.Balances.AddOrdering("by_owner_asset", true, func(b AccountBalance) avl.Item {
		return objectstore.Composite{b.Owner, b.Asset}
	})
	db.SettlementsByExpiration = db.ForceSettlements.AddOrdering("by_expiration", false, func(f ForceSettlement) avl.Item {
		return objectstore.Composite{f.Balance.AssetId, objectstore.Int64Key(f.SettlementDate)}
	})
	db.CallOrdersByCollateral = db.CallOrders.AddOrdering("by_collateral", false, func(c CallOrder) avl.Item {
		return objectstore.Composite{c.DebtAsset, c.CollateralisationPrice()}
	})
	db.CallOrdersByBorrower = db.CallOrders.AddOrdering("by_borrower", true, func(c CallOrder) avl.Item {
		return objectstore.Composite{c.Borrower, c.DebtAsset}
	})
	db.IssuedAssetsByUniqueId = db.IssuedAssets.AddOrdering("by_unique_id_asset", true, func(r IssuedAssetRecord) avl.Item {
		return objectstore.Composite{objectstore.StringKey(r.UniqueId), r.Asset}
	})
	db.WireOutHoldersByAccount = db.WireOutHolders.AddOrdering("by_account", false, func(h WireOutHolder) avl.Item {
		return objectstore.Composite{h.Account}
	})
	db.LicenseTypesByName = db.LicenseTypes.AddOrdering("by_name", true, func(l LicenseType) avl.Item {
		return objectstore.StringKey(l.Name)
	})
	db.LicenseTypesByKind = db.LicenseTypes.AddOrdering("by_kind", false, func(l LicenseType) avl.Item {
		return objectstore.Composite{objectstore.Uint64Key(l.Kind), objectstore.StringKey(l.Name)}
	})
	db.LicenseInformationByAccount = db.LicenseInformation.AddOrdering("by_account", true, func(l LicenseInformation) avl.Item {
		return l.Account
	})
	db.RewardQueueByTime = db.RewardQueue.AddOrdering("by_time", false, func(r RewardQueueEntry) avl.Item {
		return objectstore.Int64Key(r.Time)
	})
	db.RewardQueueByAccount = db.RewardQueue.AddOrdering("by_account", false, func(r RewardQueueEntry) avl.Item {
		return objectstore.Composite{r.Account, objectstore.Int64Key(r.Time)}
	})
	db.CycleBalancesByAccount = db.CycleBalances.AddOrdering("by_account", true, func(c CycleBalance) avl.Item {
		return c.Account
	})
	db.FrequencyHistoryByTime = db.FrequencyHistory.AddOrdering("by_time", false, func(f FrequencyHistoryRecord) avl.Item {
		return objectstore.Int64Key(f.Time)
	})
	db.TransactionsById = db.Transactions.AddOrdering("by_trx_id", true, func(t TransactionRecord) avl.Item {
		return DigestKey(t.TxId)
	})
	db.TransactionsByExpiration = db.Transactions.AddOrdering("by_expiration", false, func(t TransactionRecord) avl.Item {
		return objectstore.Int64Key(t.Expiration)
	})

	return db
}

// Store - the underlying object store, for undo sessions and
// checkpoints
func (db *Database) Store() *objectstore.Database {
	return db.store
}

// StartUndoSession - begin recording mutations
func (db *Database) StartUndoSession() *objectstore.Session {
	return db.store.StartUndoSession()
}

// Exists - any live object with this id
func (db *Database) Exists(id ObjectId) bool {
	return db.store.Exists(id)
}

// GlobalProperties - chain configuration
func (db *Database) GlobalProperties() GlobalProperties {
	g, err := db.Global.Get(GlobalPropertiesId)
	fault.PanicIfError("state: global properties", err)
	return g
}

// DynamicProperties - per block chain state
func (db *Database) DynamicProperties() DynamicGlobalProperties {
	d, err := db.Dynamic.Get(DynamicGlobalPropertiesId)
	fault.PanicIfError("state: dynamic global properties", err)
	return d
}

// Parameters - chain parameters
func (db *Database) Parameters() ChainParameters {
	return db.GlobalProperties().Parameters
}

// HeadTime - time of the head block
func (db *Database) HeadTime() int64 {
	return db.DynamicProperties().Time
}

// ChainId - the chain all signatures are bound to
func (db *Database) ChainId() merkle.Digest {
	return db.GlobalProperties().ChainId
}

// ModifyDynamic - change the per block chain state
func (db *Database) ModifyDynamic(mutator func(*DynamicGlobalProperties)) error {
	return db.Dynamic.Modify(DynamicGlobalPropertiesId, mutator)
}

// ModifyGlobal - change the chain configuration
func (db *Database) ModifyGlobal(mutator func(*GlobalProperties)) error {
	return db.Global.Modify(GlobalPropertiesId, mutator)
}
