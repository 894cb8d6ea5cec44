// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"math/big"
	"sort"

	"github.com/bitmark-inc/ledgerd/protocol"
)

// FeedEntry - a publisher's latest feed and when it arrived
//
// a zero time means the publisher has never published
type FeedEntry struct {
	Time int64              `json:"time"`
	Feed protocol.PriceFeed `json:"feed"`
}

// BitassetData - market state of a market issued asset
type BitassetData struct {
	Id                         ObjectId                 `json:"id"`
	AssetId                    ObjectId                 `json:"asset_id"`
	Options                    protocol.BitassetOptions `json:"options"`
	Feeds                      map[ObjectId]FeedEntry   `json:"feeds"`
	CurrentFeed                protocol.PriceFeed       `json:"current_feed"`
	CurrentFeedPublicationTime int64                    `json:"current_feed_publication_time"`
	IsPredictionMarket         bool                     `json:"is_prediction_market"`
	SettlementPrice            protocol.Price           `json:"settlement_price"`
	SettlementFund             int64                    `json:"settlement_fund"`
	ForceSettledVolume         int64                    `json:"force_settled_volume"`
}

// ObjectID - index identity
func (b BitassetData) ObjectID() ObjectId { return b.Id }

// Clone - deep copy
func (b BitassetData) Clone() BitassetData {
	feeds := make(map[ObjectId]FeedEntry, len(b.Feeds))
	for k, v := range b.Feeds {
		feeds[k] = v
	}
	b.Feeds = feeds
	return b
}

// HasSettlement - asset has been globally settled
func (b BitassetData) HasSettlement() bool {
	return !b.SettlementPrice.IsNull()
}

// FeedIsExpired - no current feed or it is older than the lifetime
func (b BitassetData) FeedIsExpired(now int64) bool {
	return b.CurrentFeed.IsNull() || b.CurrentFeedPublicationTime+int64(b.Options.FeedLifetimeSec) < now
}

// UpdateMedianFeeds - recompute the current feed from the valid
// published feeds
//
// feeds older than the lifetime or never published are ignored; with
// fewer than the minimum number the current feed becomes null
func (b *BitassetData) UpdateMedianFeeds(now int64) {
	b.CurrentFeedPublicationTime = now

	// publisher order keeps the result independent of map iteration
	publishers := make([]ObjectId, 0, len(b.Feeds))
	for publisher := range b.Feeds {
		publishers = append(publishers, publisher)
	}
	sort.Slice(publishers, func(i, j int) bool {
		return publishers[i].Compare(publishers[j]) < 0
	})

	valid := make([]protocol.PriceFeed, 0, len(b.Feeds))
	for _, publisher := range publishers {
		entry := b.Feeds[publisher]
		if 0 == entry.Time || entry.Feed.IsNull() {
			continue
		}
		if now-entry.Time >= int64(b.Options.FeedLifetimeSec) {
			continue
		}
		valid = append(valid, entry.Feed)
		if entry.Time < b.CurrentFeedPublicationTime {
			b.CurrentFeedPublicationTime = entry.Time
		}
	}

	if len(valid) < int(b.Options.MinimumFeeds) || 0 == len(valid) {
		b.CurrentFeedPublicationTime = now
		b.CurrentFeed = protocol.PriceFeed{}
		return
	}
	b.CurrentFeed = protocol.MedianFeed(valid)
}

// MaxForceSettlementVolume - force settlement allowed per interval
func (b BitassetData) MaxForceSettlementVolume(supply int64) int64 {
	if 0 == b.Options.MaximumForceSettlementVolume {
		return 0
	}
	if protocol.OneHundredPercent == b.Options.MaximumForceSettlementVolume {
		return supply + b.ForceSettledVolume
	}
	v := new(big.Int).Mul(big.NewInt(supply), big.NewInt(int64(b.Options.MaximumForceSettlementVolume)))
	v.Quo(v, big.NewInt(protocol.OneHundredPercent))
	return v.Int64()
}

// ForceSettlement - a pending redemption of a market issued asset
type ForceSettlement struct {
	Id             ObjectId        `json:"id"`
	Owner          ObjectId        `json:"owner"`
	Balance        protocol.Amount `json:"balance"`
	SettlementDate int64           `json:"settlement_date"`
}

// ObjectID - index identity
func (f ForceSettlement) ObjectID() ObjectId { return f.Id }

// Clone - no reference fields
func (f ForceSettlement) Clone() ForceSettlement { return f }

// CallOrder - a margin position: debt in the market issued asset
// secured by collateral in its backing asset
type CallOrder struct {
	Id              ObjectId `json:"id"`
	Borrower        ObjectId `json:"borrower"`
	Collateral      int64    `json:"collateral"`
	CollateralAsset ObjectId `json:"collateral_asset"`
	Debt            int64    `json:"debt"`
	DebtAsset       ObjectId `json:"debt_asset"`
}

// ObjectID - index identity
func (c CallOrder) ObjectID() ObjectId { return c.Id }

// Clone - no reference fields
func (c CallOrder) Clone() CallOrder { return c }

// CollateralAmount - collateral as an amount
func (c CallOrder) CollateralAmount() protocol.Amount {
	return protocol.NewAmount(c.Collateral, c.CollateralAsset)
}

// DebtAmount - debt as an amount
func (c CallOrder) DebtAmount() protocol.Amount {
	return protocol.NewAmount(c.Debt, c.DebtAsset)
}

// CollateralisationPrice - collateral per unit of debt, the sort key
// placing the least collateralised position first
func (c CallOrder) CollateralisationPrice() protocol.Price {
	return protocol.NewPrice(c.CollateralAmount(), c.DebtAmount())
}
