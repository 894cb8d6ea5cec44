// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// percentages are in hundredths of a percent
const (
	OneHundredPercent = 10000
	OnePercent        = 100
)

// AssetFlags - issuer permissions and enabled flags share one bitmap
type AssetFlags uint16

// asset flag bits
const (
	ChargeMarketFee     AssetFlags = 0x01
	WhiteList           AssetFlags = 0x02
	OverrideAuthority   AssetFlags = 0x04
	TransferRestricted  AssetFlags = 0x08
	DisableForceSettle  AssetFlags = 0x10
	GlobalSettle        AssetFlags = 0x20
	DisableConfidential AssetFlags = 0x40
	WitnessFedAsset     AssetFlags = 0x80
	CommitteeFedAsset   AssetFlags = 0x100

	AssetIssuerPermissionMask AssetFlags = 0x1ff

	// permissions meaningful for user issued assets
	UserIssuedPermissionMask = ChargeMarketFee | WhiteList | OverrideAuthority | TransferRestricted | DisableConfidential
)

// Has - all bits of f are set
func (a AssetFlags) Has(f AssetFlags) bool {
	return a&f == f
}

// AssetOptions - the issuer controlled settings of an asset
type AssetOptions struct {
	MaxSupply            int64      `json:"max_supply"`
	MarketFeePercent     uint16     `json:"market_fee_percent"`
	MaxMarketFee         int64      `json:"max_market_fee"`
	IssuerPermissions    AssetFlags `json:"issuer_permissions"`
	Flags                AssetFlags `json:"flags"`
	CoreExchangeRate     Price      `json:"core_exchange_rate"`
	WhitelistAuthorities []ObjectId `json:"whitelist_authorities"`
	BlacklistAuthorities []ObjectId `json:"blacklist_authorities"`
	Description          string     `json:"description"`
}

// Clone - deep copy
func (o AssetOptions) Clone() AssetOptions {
	o.WhitelistAuthorities = append([]ObjectId(nil), o.WhitelistAuthorities...)
	o.BlacklistAuthorities = append([]ObjectId(nil), o.BlacklistAuthorities...)
	return o
}

// Validate - structural validity, independent of ledger state
func (o AssetOptions) Validate() error {
	if o.MaxSupply <= 0 || o.MaxSupply > MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	if o.MarketFeePercent > OneHundredPercent {
		return fault.ErrInvalidAmount
	}
	if o.MaxMarketFee < 0 || o.MaxMarketFee > MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	if 0 != o.IssuerPermissions&^AssetIssuerPermissionMask {
		return fault.ErrInvalidFlags
	}
	if 0 != o.Flags&^AssetIssuerPermissionMask {
		return fault.ErrInvalidFlags
	}
	if o.Flags.Has(WitnessFedAsset) && o.Flags.Has(CommitteeFedAsset) {
		return fault.ErrInvalidFlags
	}
	if err := o.CoreExchangeRate.Validate(); nil != err {
		return err
	}
	if 0 != o.CoreExchangeRate.Base.AssetId.Instance && 0 != o.CoreExchangeRate.Quote.AssetId.Instance {
		return fault.ErrFeedWrongCoreRate
	}
	if hasDuplicate(o.WhitelistAuthorities) || hasDuplicate(o.BlacklistAuthorities) {
		return fault.ErrInvalidFlags
	}
	return nil
}

// BitassetOptions - settings of a market issued asset
type BitassetOptions struct {
	FeedLifetimeSec              uint32   `json:"feed_lifetime_sec"`
	MinimumFeeds                 uint8    `json:"minimum_feeds"`
	ForceSettlementDelaySec      uint32   `json:"force_settlement_delay_sec"`
	ForceSettlementOffsetPercent uint16   `json:"force_settlement_offset_percent"`
	MaximumForceSettlementVolume uint16   `json:"maximum_force_settlement_volume"`
	ShortBackingAsset            ObjectId `json:"short_backing_asset"`
}

// DefaultBitassetOptions - one day feeds, one day settlement delay
func DefaultBitassetOptions(backing ObjectId) BitassetOptions {
	return BitassetOptions{
		FeedLifetimeSec:              24 * 60 * 60,
		MinimumFeeds:                 1,
		ForceSettlementDelaySec:      24 * 60 * 60,
		ForceSettlementOffsetPercent: 0,
		MaximumForceSettlementVolume: 20 * OnePercent,
		ShortBackingAsset:            backing,
	}
}

// Validate - structural validity
func (o BitassetOptions) Validate() error {
	if 0 == o.MinimumFeeds {
		return fault.ErrInsufficientFeeds
	}
	if o.ForceSettlementOffsetPercent > OneHundredPercent {
		return fault.ErrInvalidAmount
	}
	if o.MaximumForceSettlementVolume > OneHundredPercent {
		return fault.ErrInvalidAmount
	}
	if !IsAsset(o.ShortBackingAsset) {
		return fault.ErrInvalidAsset
	}
	return nil
}

func hasDuplicate(ids []ObjectId) bool {
	seen := make(map[ObjectId]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
