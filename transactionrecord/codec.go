// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"math"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/util"
)

// limits applied while unpacking
const (
	maxStringLength = 4096
	maxListLength   = 1024
)

// a codec either appends fields to buffer or reads them from it, so a
// single serialise method per operation defines both directions
//
// the first error stops all further processing
type codec struct {
	reading bool
	buffer  []byte
	offset  int
	err     error
}

func newWriter() *codec {
	return &codec{
		buffer: make([]byte, 0, 256),
	}
}

func newReader(buffer []byte) *codec {
	return &codec{
		reading: true,
		buffer:  buffer,
	}
}

func (c *codec) uvarint(v *uint64) {
	if nil != c.err {
		return
	}
	if !c.reading {
		c.buffer = util.AppendVarint64(c.buffer, *v)
		return
	}
	value, n := util.FromVarint64(c.buffer[c.offset:])
	if 0 == n {
		c.err = fault.ErrNotEnoughData
		return
	}
	c.offset += n
	*v = value
}

func (c *codec) unsigned(v *uint64, maximum uint64) {
	c.uvarint(v)
	if nil == c.err && *v > maximum {
		c.err = fault.ErrCountOutOfRange
	}
}

func (c *codec) int64(v *int64) {
	u := util.ToZigzag64(*v)
	c.uvarint(&u)
	if c.reading && nil == c.err {
		*v = util.FromZigzag64(u)
	}
}

func (c *codec) int16(v *int16) {
	n := int64(*v)
	c.int64(&n)
	if c.reading && nil == c.err {
		if n < math.MinInt16 || n > math.MaxInt16 {
			c.err = fault.ErrCountOutOfRange
			return
		}
		*v = int16(n)
	}
}

func (c *codec) uint32(v *uint32) {
	u := uint64(*v)
	c.unsigned(&u, math.MaxUint32)
	if c.reading && nil == c.err {
		*v = uint32(u)
	}
}

func (c *codec) uint16(v *uint16) {
	u := uint64(*v)
	c.unsigned(&u, math.MaxUint16)
	if c.reading && nil == c.err {
		*v = uint16(u)
	}
}

func (c *codec) uint8(v *uint8) {
	u := uint64(*v)
	c.unsigned(&u, math.MaxUint8)
	if c.reading && nil == c.err {
		*v = uint8(u)
	}
}

func (c *codec) bool(v *bool) {
	u := uint64(0)
	if *v {
		u = 1
	}
	c.unsigned(&u, 1)
	if c.reading && nil == c.err {
		*v = 1 == u
	}
}

func (c *codec) bytes(v *[]byte) {
	length := uint64(len(*v))
	c.unsigned(&length, maxStringLength)
	if nil != c.err {
		return
	}
	if !c.reading {
		c.buffer = append(c.buffer, *v...)
		return
	}
	end := c.offset + int(length)
	if end > len(c.buffer) {
		c.err = fault.ErrNotEnoughData
		return
	}
	*v = append([]byte(nil), c.buffer[c.offset:end]...)
	c.offset = end
}

func (c *codec) string(v *string) {
	b := []byte(*v)
	c.bytes(&b)
	if c.reading && nil == c.err {
		*v = string(b)
	}
}

func (c *codec) id(v *protocol.ObjectId) {
	c.uint8(&v.Space)
	c.uint8(&v.Type)
	c.uvarint(&v.Instance)
}

func (c *codec) ids(v *[]protocol.ObjectId) {
	count := uint64(len(*v))
	c.unsigned(&count, maxListLength)
	if nil != c.err {
		return
	}
	if c.reading {
		*v = make([]protocol.ObjectId, count)
	}
	for i := range *v {
		c.id(&(*v)[i])
	}
}

func (c *codec) uint32s(v *[]uint32) {
	count := uint64(len(*v))
	c.unsigned(&count, maxListLength)
	if nil != c.err {
		return
	}
	if c.reading {
		*v = make([]uint32, count)
	}
	for i := range *v {
		c.uint32(&(*v)[i])
	}
}

func (c *codec) amount(v *protocol.Amount) {
	c.int64(&v.Amount)
	c.id(&v.AssetId)
}

func (c *codec) price(v *protocol.Price) {
	c.amount(&v.Base)
	c.amount(&v.Quote)
}

func (c *codec) feed(v *protocol.PriceFeed) {
	c.price(&v.SettlementPrice)
	c.uint16(&v.MaintenanceCollateralRatio)
	c.uint16(&v.MaximumShortSqueezeRatio)
	c.price(&v.CoreExchangeRate)
}

func (c *codec) flags(v *protocol.AssetFlags) {
	u := uint16(*v)
	c.uint16(&u)
	*v = protocol.AssetFlags(u)
}

func (c *codec) assetOptions(v *protocol.AssetOptions) {
	c.int64(&v.MaxSupply)
	c.uint16(&v.MarketFeePercent)
	c.int64(&v.MaxMarketFee)
	c.flags(&v.IssuerPermissions)
	c.flags(&v.Flags)
	c.price(&v.CoreExchangeRate)
	c.ids(&v.WhitelistAuthorities)
	c.ids(&v.BlacklistAuthorities)
	c.string(&v.Description)
}

func (c *codec) bitassetOptions(v *protocol.BitassetOptions) {
	c.uint32(&v.FeedLifetimeSec)
	c.uint8(&v.MinimumFeeds)
	c.uint32(&v.ForceSettlementDelaySec)
	c.uint16(&v.ForceSettlementOffsetPercent)
	c.uint16(&v.MaximumForceSettlementVolume)
	c.id(&v.ShortBackingAsset)
}

func (c *codec) publicKey(v *account.PublicKey) {
	b := []byte(*v)
	c.bytes(&b)
	if c.reading && nil == c.err {
		*v = account.PublicKey(b)
	}
}

func (c *codec) signature(v *account.Signature) {
	b := []byte(*v)
	c.bytes(&b)
	if c.reading && nil == c.err {
		*v = account.Signature(b)
	}
}

func (c *codec) accountKind(v *protocol.AccountKind) {
	u := uint8(*v)
	c.uint8(&u)
	*v = protocol.AccountKind(u)
}

func (c *codec) licenseKind(v *protocol.LicenseKind) {
	u := uint8(*v)
	c.uint8(&u)
	*v = protocol.LicenseKind(u)
}

func (c *codec) upgradePolicy(v *protocol.UpgradePolicy) {
	u := uint8(*v)
	c.uint8(&u)
	*v = protocol.UpgradePolicy(u)
}

// an optional value is a presence flag followed by the value
func (c *codec) optional(present *bool, value func()) {
	c.bool(present)
	if nil == c.err && *present {
		value()
	}
}
