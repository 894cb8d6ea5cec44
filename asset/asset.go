// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// globals
type globalDataType struct {
	sync.Mutex
	log *logger.L
}

// gobal storage
var globalData globalDataType

// Initialise - create the logging channel used for market events
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return fault.ErrAlreadyInitialised
	}
	globalData.log = logger.New("asset")
	globalData.log.Info("starting…")
	return nil
}

// Finalise - stop logging
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		globalData.log.Info("finished")
		globalData.log.Flush()
		globalData.log = nil
	}
}

// market events are rare and significant so they are logged when a
// channel exists, tests run without one
func infof(format string, arguments ...interface{}) {
	globalData.Lock()
	log := globalData.log
	globalData.Unlock()
	if nil != log {
		log.Infof(format, arguments...)
	}
}

// Register - add every asset evaluator to a registry
func Register(r *evaluator.Registry) {
	r.Register(transactionrecord.AssetCreateTag, evaluator.New(evaluateCreate, applyCreate))
	r.Register(transactionrecord.AssetIssueTag, evaluator.New(evaluateIssue, applyIssue))
	r.Register(transactionrecord.AssetReserveTag, evaluator.New(evaluateReserve, applyReserve))
	r.Register(transactionrecord.AssetFundFeePoolTag, evaluator.New(evaluateFundFeePool, applyFundFeePool))
	r.Register(transactionrecord.AssetClaimFeesTag, evaluator.New(evaluateClaimFees, applyClaimFees))
	r.Register(transactionrecord.AssetCreateIssueRequestTag, evaluator.New(evaluateIssueRequest, applyIssueRequest))
	r.Register(transactionrecord.AssetUpdateTag, evaluator.New(evaluateUpdate, applyUpdate))
	r.Register(transactionrecord.AssetUpdateBitassetTag, evaluator.New(evaluateUpdateBitasset, applyUpdateBitasset))
	r.Register(transactionrecord.AssetUpdateFeedProducersTag, evaluator.New(evaluateUpdateFeedProducers, applyUpdateFeedProducers))
	r.Register(transactionrecord.AssetPublishFeedTag, evaluator.New(evaluatePublishFeed, applyPublishFeed))
	r.Register(transactionrecord.AssetGlobalSettleTag, evaluator.New(evaluateGlobalSettle, applyGlobalSettle))
	r.Register(transactionrecord.AssetSettleTag, evaluator.New(evaluateSettle, applySettle))
	r.Register(transactionrecord.CallOrderUpdateTag, evaluator.New(evaluateCallOrderUpdate, applyCallOrderUpdate))
}

// fetch an asset that must be market issued along with its market
// state
func getMarket(db state.Reader, id protocol.ObjectId) (state.Asset, state.BitassetData, error) {
	a, err := db.GetAsset(id)
	if nil != err {
		return a, state.BitassetData{}, err
	}
	if !a.IsMarketIssued() {
		return a, state.BitassetData{}, fault.ErrAssetNotMarketIssued
	}
	bitasset, err := db.GetBitasset(a)
	return a, bitasset, err
}

// check that every account in a list exists
func accountsExist(db state.Reader, ids []protocol.ObjectId) error {
	for _, id := range ids {
		if _, err := db.GetAccount(id); nil != err {
			return err
		}
	}
	return nil
}

// check the authority lists of a set of asset options
func checkAuthorities(db state.Reader, options protocol.AssetOptions) error {
	limit := int(db.Parameters().MaximumAssetWhitelistAuthorities)
	if len(options.WhitelistAuthorities) > limit || len(options.BlacklistAuthorities) > limit {
		return fault.ErrTooManyWhitelistAuthorities
	}
	if err := accountsExist(db, options.WhitelistAuthorities); nil != err {
		return err
	}
	return accountsExist(db, options.BlacklistAuthorities)
}

// check a backing asset: it may be market issued only if its own
// backing is not, and committee assets must reach the core asset
func checkBacking(db state.Reader, issuer protocol.ObjectId, backingId protocol.ObjectId) (state.Asset, error) {
	backing, err := db.GetAsset(backingId)
	if nil != err {
		return backing, err
	}
	if !backing.IsMarketIssued() {
		if protocol.CommitteeAccount == issuer && protocol.CoreAsset != backing.Id {
			return backing, fault.ErrBackingAssetNotCore
		}
		return backing, nil
	}

	backingBitasset, err := db.GetBitasset(backing)
	if nil != err {
		return backing, err
	}
	next, err := db.GetAsset(backingBitasset.Options.ShortBackingAsset)
	if nil != err {
		return backing, err
	}
	if next.IsMarketIssued() {
		return backing, fault.ErrBackingAssetDepth
	}
	if protocol.CommitteeAccount == issuer && protocol.CoreAsset != next.Id {
		return backing, fault.ErrBackingAssetNotCore
	}
	return backing, nil
}

// check the market timing options against the block interval
func checkBitassetTiming(db state.Reader, options protocol.BitassetOptions) error {
	interval := db.Parameters().BlockInterval
	if options.FeedLifetimeSec <= interval {
		return fault.ErrFeedLifetimeTooShort
	}
	if options.ForceSettlementDelaySec <= interval {
		return fault.ErrForceSettlementDelayTooShort
	}
	return nil
}
