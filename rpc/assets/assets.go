// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/state"
)

const (
	maximumAssets   = access.MaximumPageSize
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// Query - the asset part of the access layer
type Query interface {
	LookupAsset(symbolOrId string) *state.Asset
	LookupAssets(symbolsOrIds []string) []*state.Asset
	ListAssets(lowerBound string, limit int) ([]state.Asset, error)
	AssetDynamicData(id protocol.ObjectId) *state.AssetDynamicData
	BitassetData(id protocol.ObjectId) *state.BitassetData
	SettleOrders(id protocol.ObjectId, limit int) ([]state.ForceSettlement, error)
	CallOrders(id protocol.ObjectId, limit int) ([]state.CallOrder, error)
	IssuedAsset(uniqueId string, asset protocol.ObjectId) *state.IssuedAssetRecord
	CheckIssuedWebeur(uniqueId string) bool
	WireOutHolders(account protocol.ObjectId, assets []protocol.ObjectId) []state.WireOutHolder
}

// Assets - type for the RPC
type Assets struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Query   Query
}

// New - create the Assets service
func New(log *logger.L, query Query) *Assets {
	return &Assets{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		Query:   query,
	}
}

// LookupArguments - asset symbols or ids
type LookupArguments struct {
	Assets []string `json:"assets"`
}

// AssetsReply - one entry per request, nil where unknown
type AssetsReply struct {
	Assets []*state.Asset `json:"assets"`
}

// Lookup - assets by symbol or id
func (assets *Assets) Lookup(arguments *LookupArguments, reply *AssetsReply) error {
	if err := ratelimit.LimitN(assets.Limiter, len(arguments.Assets), maximumAssets); nil != err {
		return err
	}
	reply.Assets = assets.Query.LookupAssets(arguments.Assets)
	return nil
}

// ListArguments - a page of assets in symbol order
type ListArguments struct {
	LowerBound string `json:"lower_bound"`
	Limit      int    `json:"limit"`
}

// ListReply - a page of assets
type ListReply struct {
	Assets []state.Asset `json:"assets"`
}

// List - assets in symbol order from the lower bound
func (assets *Assets) List(arguments *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	list, err := assets.Query.ListAssets(arguments.LowerBound, arguments.Limit)
	if nil != err {
		return err
	}
	reply.Assets = list
	return nil
}

// IdsArguments - a list of asset ids
type IdsArguments struct {
	Ids []protocol.ObjectId `json:"ids"`
}

// DynamicReply - supply and fee data per asset
type DynamicReply struct {
	Data []*state.AssetDynamicData `json:"data"`
}

// Dynamic - current supply and fees of each asset
func (assets *Assets) Dynamic(arguments *IdsArguments, reply *DynamicReply) error {
	if err := ratelimit.LimitN(assets.Limiter, len(arguments.Ids), maximumAssets); nil != err {
		return err
	}
	reply.Data = make([]*state.AssetDynamicData, len(arguments.Ids))
	for i, id := range arguments.Ids {
		reply.Data[i] = assets.Query.AssetDynamicData(id)
	}
	return nil
}

// BitassetReply - market data per asset
type BitassetReply struct {
	Data []*state.BitassetData `json:"data"`
}

// Bitasset - feeds and settlement data of each market issued asset,
// nil for other assets
func (assets *Assets) Bitasset(arguments *IdsArguments, reply *BitassetReply) error {
	if err := ratelimit.LimitN(assets.Limiter, len(arguments.Ids), maximumAssets); nil != err {
		return err
	}
	reply.Data = make([]*state.BitassetData, len(arguments.Ids))
	for i, id := range arguments.Ids {
		reply.Data[i] = assets.Query.BitassetData(id)
	}
	return nil
}

// OrdersArguments - orders against one asset
type OrdersArguments struct {
	Asset protocol.ObjectId `json:"asset"`
	Limit int               `json:"limit"`
}

// SettleOrdersReply - pending force settlements
type SettleOrdersReply struct {
	Orders []state.ForceSettlement `json:"orders"`
}

// SettleOrders - pending force settlements of an asset
func (assets *Assets) SettleOrders(arguments *OrdersArguments, reply *SettleOrdersReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	orders, err := assets.Query.SettleOrders(arguments.Asset, arguments.Limit)
	if nil != err {
		return err
	}
	reply.Orders = orders
	return nil
}

// CallOrdersReply - open call orders
type CallOrdersReply struct {
	Orders []state.CallOrder `json:"orders"`
}

// CallOrders - open call orders of an asset
func (assets *Assets) CallOrders(arguments *OrdersArguments, reply *CallOrdersReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	orders, err := assets.Query.CallOrders(arguments.Asset, arguments.Limit)
	if nil != err {
		return err
	}
	reply.Orders = orders
	return nil
}

// IssuedArguments - an external issue; an empty asset means the web
// asset
type IssuedArguments struct {
	UniqueId string `json:"unique_id"`
	Asset    string `json:"asset"`
}

// IssuedReply - whether the issue was recorded and the record
type IssuedReply struct {
	Issued bool                     `json:"issued"`
	Record *state.IssuedAssetRecord `json:"record,omitempty"`
}

// Issued - check for an external issue by unique id
func (assets *Assets) Issued(arguments *IssuedArguments, reply *IssuedReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}

	if "" == arguments.Asset {
		reply.Issued = assets.Query.CheckIssuedWebeur(arguments.UniqueId)
		return nil
	}

	asset := assets.Query.LookupAsset(arguments.Asset)
	if nil == asset {
		reply.Issued = false
		return nil
	}
	reply.Record = assets.Query.IssuedAsset(arguments.UniqueId, asset.Id)
	reply.Issued = nil != reply.Record
	return nil
}

// WireOutArguments - wire out requests of an account
type WireOutArguments struct {
	Account protocol.ObjectId   `json:"account"`
	Assets  []protocol.ObjectId `json:"assets"`
}

// WireOutReply - pending wire out requests
type WireOutReply struct {
	Holders []state.WireOutHolder `json:"holders"`
}

// WireOut - pending wire out requests of an account
func (assets *Assets) WireOut(arguments *WireOutArguments, reply *WireOutReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	reply.Holders = assets.Query.WireOutHolders(arguments.Account, arguments.Assets)
	return nil
}
