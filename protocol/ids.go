// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/bitmark-inc/ledgerd/objectstore"
)

// ObjectId - shorthand used throughout the ledger
type ObjectId = objectstore.ObjectId

// id spaces
const (
	ProtocolSpace       uint8 = 1
	ImplementationSpace uint8 = 2
)

// protocol space types - objects referenced by operations
const (
	AccountType         uint8 = 2
	AssetType           uint8 = 3
	ForceSettlementType uint8 = 4
	CallOrderType       uint8 = 8
	LicenseTypeType     uint8 = 16
	IssuedAssetType     uint8 = 17
	WireOutHolderType   uint8 = 18
)

// implementation space types - internal bookkeeping objects
const (
	GlobalPropertyType        uint8 = 0
	DynamicGlobalPropertyType uint8 = 1
	AssetDynamicDataType      uint8 = 3
	BitassetDataType          uint8 = 4
	AccountBalanceType        uint8 = 5
	TransactionType           uint8 = 7
	LicenseInformationType    uint8 = 16
	RewardQueueType           uint8 = 17
	CycleBalanceType          uint8 = 18
	FrequencyHistoryType      uint8 = 19
)

// AccountId - id of the n-th account
func AccountId(n uint64) ObjectId {
	return objectstore.NewObjectId(ProtocolSpace, AccountType, n)
}

// AssetId - id of the n-th asset
func AssetId(n uint64) ObjectId {
	return objectstore.NewObjectId(ProtocolSpace, AssetType, n)
}

// LicenseTypeId - id of the n-th license type
func LicenseTypeId(n uint64) ObjectId {
	return objectstore.NewObjectId(ProtocolSpace, LicenseTypeType, n)
}

// IsAccount - true for account ids
func IsAccount(id ObjectId) bool {
	return id.Is(ProtocolSpace, AccountType)
}

// IsAsset - true for asset ids
func IsAsset(id ObjectId) bool {
	return id.Is(ProtocolSpace, AssetType)
}

// well known objects
var (
	CommitteeAccount = AccountId(0)
	WitnessAccount   = AccountId(1)
	CoreAsset        = AssetId(0)
)
