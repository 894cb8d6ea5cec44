// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"sort"

	"github.com/bitmark-inc/ledgerd/fault"
)

// collateral ratios are in thousandths
const (
	CollateralRatioDenominator        = 1000
	MinimumCollateralRatio            = 1001
	MaximumCollateralRatio            = 32000
	DefaultMaintenanceCollateralRatio = 1750
	DefaultMaximumShortSqueezeRatio   = 1500
)

// PriceFeed - one publisher's view of a market issued asset
//
// the settlement price has the market issued asset as base and the
// backing asset as quote
type PriceFeed struct {
	SettlementPrice            Price  `json:"settlement_price"`
	MaintenanceCollateralRatio uint16 `json:"maintenance_collateral_ratio"`
	MaximumShortSqueezeRatio   uint16 `json:"maximum_short_squeeze_ratio"`
	CoreExchangeRate           Price  `json:"core_exchange_rate"`
}

// NewPriceFeed - a feed with default ratios
func NewPriceFeed(settlement Price, coreExchangeRate Price) PriceFeed {
	return PriceFeed{
		SettlementPrice:            settlement,
		MaintenanceCollateralRatio: DefaultMaintenanceCollateralRatio,
		MaximumShortSqueezeRatio:   DefaultMaximumShortSqueezeRatio,
		CoreExchangeRate:           coreExchangeRate,
	}
}

// IsNull - a feed without a settlement price
func (f PriceFeed) IsNull() bool {
	return f.SettlementPrice.IsNull()
}

// Validate - structural validity of the feed
func (f PriceFeed) Validate() error {
	if !f.SettlementPrice.IsNull() {
		if err := f.SettlementPrice.Validate(); nil != err {
			return err
		}
	}
	if !f.CoreExchangeRate.IsNull() {
		if err := f.CoreExchangeRate.Validate(); nil != err {
			return err
		}
	}
	for _, ratio := range []uint16{f.MaintenanceCollateralRatio, f.MaximumShortSqueezeRatio} {
		if ratio < MinimumCollateralRatio || ratio > MaximumCollateralRatio {
			return fault.ErrInvalidPrice
		}
	}
	return nil
}

// IsFor - the feed prices the given asset
func (f PriceFeed) IsFor(asset ObjectId) bool {
	if !f.SettlementPrice.IsNull() && f.SettlementPrice.Base.AssetId != asset {
		return false
	}
	if !f.CoreExchangeRate.IsNull() && f.CoreExchangeRate.Base.AssetId != asset {
		return false
	}
	return true
}

// MedianFeed - field by field median of a set of feeds
//
// each field is ranked on its own and the element at index n/2 of the
// ascending order is chosen; for an even count this is the upper of
// the two middle elements
func MedianFeed(feeds []PriceFeed) PriceFeed {
	n := len(feeds)
	switch n {
	case 0:
		return PriceFeed{}
	case 1:
		return feeds[0]
	}
	middle := n / 2
	work := make([]PriceFeed, n)

	copy(work, feeds)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].SettlementPrice.Less(work[j].SettlementPrice)
	})
	median := PriceFeed{
		SettlementPrice: work[middle].SettlementPrice,
	}

	copy(work, feeds)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].MaintenanceCollateralRatio < work[j].MaintenanceCollateralRatio
	})
	median.MaintenanceCollateralRatio = work[middle].MaintenanceCollateralRatio

	copy(work, feeds)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].MaximumShortSqueezeRatio < work[j].MaximumShortSqueezeRatio
	})
	median.MaximumShortSqueezeRatio = work[middle].MaximumShortSqueezeRatio

	copy(work, feeds)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].CoreExchangeRate.Less(work[j].CoreExchangeRate)
	})
	median.CoreExchangeRate = work[middle].CoreExchangeRate

	return median
}
