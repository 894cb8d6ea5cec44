// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func TestPublishFeedQuotes(t *testing.T) {
	db, r := setup()
	a := createBitasset(t, db, r, protocol.OneHundredPercent, "feeder-three")
	web := fixtures.Asset(db, "WEB")

	settlement := protocol.NewPrice(a.Amount(1), protocol.NewAmount(10, protocol.CoreAsset))
	coreRate := protocol.NewPrice(a.Amount(1), protocol.NewAmount(12, protocol.CoreAsset))
	webRate := protocol.NewPrice(a.Amount(1), protocol.NewAmount(3, web.Id))
	null := protocol.Price{}

	tests := []struct {
		name       string
		before     bool
		settlement protocol.Price
		core       protocol.Price
		err        error
	}{
		{"core rate", false, settlement, coreRate, nil},
		{"null core rate", false, settlement, null, nil},
		{"null settlement", false, null, coreRate, nil},
		{"core rate in another asset", false, settlement, webRate, fault.ErrFeedWrongCoreRate},
		{"null settlement and core rate in another asset", false, null, webRate, fault.ErrFeedWrongCoreRate},
		{"before fork: core rate", true, settlement, coreRate, nil},
		{"before fork: null core rate", true, settlement, null, nil},
		{"before fork: quotes differ", true, settlement, webRate, fault.ErrFeedWrongCoreRate},
		{"before fork: null settlement", true, null, webRate, nil},
	}

	for _, item := range tests {
		fork := int64(0)
		if item.before {
			fork = db.HeadTime() + 1000
		}
		require.NoError(t, db.ModifyGlobal(func(g *state.GlobalProperties) {
			g.Parameters.HardforkFeedCoreRate = fork
		}), "%s: fork time", item.name)

		feed := protocol.NewPriceFeed(item.settlement, item.core)
		_, err := fixtures.Execute(db, r, &transactionrecord.AssetPublishFeed{
			Publisher: fixtures.Id(db, "feeder-three"),
			AssetId:   a.Id,
			Feed:      feed,
		})
		if nil == item.err {
			assert.NoError(t, err, "%s", item.name)
			b := bitasset(t, db, a)
			assert.Equal(t, feed, b.Feeds[fixtures.Id(db, "feeder-three")].Feed, "%s: stored", item.name)
		} else {
			assert.Equal(t, item.err, err, "%s", item.name)
		}
	}
}

func TestPublishFeedSettlementAsset(t *testing.T) {
	db, r := setup()
	a := createBitasset(t, db, r, protocol.OneHundredPercent, "feeder-three")
	web := fixtures.Asset(db, "WEB")

	wrong := protocol.NewPrice(a.Amount(1), protocol.NewAmount(10, web.Id))
	_, err := fixtures.Execute(db, r, &transactionrecord.AssetPublishFeed{
		Publisher: fixtures.Id(db, "feeder-three"),
		AssetId:   a.Id,
		Feed:      protocol.NewPriceFeed(wrong, protocol.Price{}),
	})
	assert.Equal(t, fault.ErrFeedWrongAsset, err, "settlement not in the backing asset")
}
