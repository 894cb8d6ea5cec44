// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/protocol"
)

// Asset - a user issued or market issued asset
type Asset struct {
	Id                 ObjectId              `json:"id"`
	Symbol             string                `json:"symbol"`
	Precision          uint8                 `json:"precision"`
	Issuer             ObjectId              `json:"issuer"`
	Options            protocol.AssetOptions `json:"options"`
	DynamicAssetDataId ObjectId              `json:"dynamic_asset_data_id"`
	BitassetDataId     ObjectId              `json:"bitasset_data_id"`
}

// ObjectID - index identity
func (a Asset) ObjectID() ObjectId { return a.Id }

// Clone - deep copy
func (a Asset) Clone() Asset {
	a.Options = a.Options.Clone()
	return a
}

// IsMarketIssued - backed by collateral and priced by feeds
func (a Asset) IsMarketIssued() bool {
	return !a.BitassetDataId.IsNull()
}

// CanForceSettle - holders may redeem for the backing asset
func (a Asset) CanForceSettle() bool {
	return !a.Options.Flags.Has(protocol.DisableForceSettle)
}

// CanGlobalSettle - issuer may settle every position
func (a Asset) CanGlobalSettle() bool {
	return a.Options.IssuerPermissions.Has(protocol.GlobalSettle)
}

// IsWitnessFed - feeds come from the active witnesses
func (a Asset) IsWitnessFed() bool {
	return a.Options.Flags.Has(protocol.WitnessFedAsset)
}

// IsCommitteeFed - feeds come from the active committee
func (a Asset) IsCommitteeFed() bool {
	return a.Options.Flags.Has(protocol.CommitteeFedAsset)
}

// Amount - n units of this asset
func (a Asset) Amount(n int64) protocol.Amount {
	return protocol.NewAmount(n, a.Id)
}

// AssetDynamicData - frequently changing asset figures
type AssetDynamicData struct {
	Id              ObjectId `json:"id"`
	CurrentSupply   int64    `json:"current_supply"`
	AccumulatedFees int64    `json:"accumulated_fees"`
	FeePool         int64    `json:"fee_pool"`
}

// ObjectID - index identity
func (d AssetDynamicData) ObjectID() ObjectId { return d.Id }

// Clone - no reference fields
func (d AssetDynamicData) Clone() AssetDynamicData { return d }

// IssuedAssetRecord - one idempotent issuance
type IssuedAssetRecord struct {
	Id       ObjectId `json:"id"`
	UniqueId string   `json:"unique_id"`
	Asset    ObjectId `json:"asset_type"`
	Receiver ObjectId `json:"receiver"`
	Amount   int64    `json:"amount"`
	Reserved int64    `json:"reserved"`
	Comment  string   `json:"comment"`
	Time     int64    `json:"time"`
}

// ObjectID - index identity
func (r IssuedAssetRecord) ObjectID() ObjectId { return r.Id }

// Clone - no reference fields
func (r IssuedAssetRecord) Clone() IssuedAssetRecord { return r }

// WireOutHolder - web asset taken from an account pending payout
type WireOutHolder struct {
	Id        ObjectId        `json:"id"`
	Account   ObjectId        `json:"account"`
	Asset     protocol.Amount `json:"asset"`
	Memo      string          `json:"memo"`
	Timestamp int64           `json:"timestamp"`
}

// ObjectID - index identity
func (h WireOutHolder) ObjectID() ObjectId { return h.Id }

// Clone - no reference fields
func (h WireOutHolder) Clone() WireOutHolder { return h }
