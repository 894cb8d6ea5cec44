// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// MaxUniqueIdLength - limit on external issue request identifiers
const MaxUniqueIdLength = 64

// CallOrderUpdate - open, adjust or close a margin position
//
// deltas are signed: positive collateral is added to the position,
// positive debt is borrowed
type CallOrderUpdate struct {
	FeeHeader
	FundingAccount  protocol.ObjectId `json:"funding_account"`
	DeltaCollateral protocol.Amount   `json:"delta_collateral"`
	DeltaDebt       protocol.Amount   `json:"delta_debt"`
}

// AssetCreate - create a user issued or market issued asset
type AssetCreate struct {
	FeeHeader
	Issuer             protocol.ObjectId         `json:"issuer"`
	Symbol             string                    `json:"symbol"`
	Precision          uint8                     `json:"precision"`
	CommonOptions      protocol.AssetOptions     `json:"common_options"`
	BitassetOptions    *protocol.BitassetOptions `json:"bitasset_opts,omitempty"`
	IsPredictionMarket bool                      `json:"is_prediction_market"`
}

// AssetUpdate - change the options or the issuer of an asset
type AssetUpdate struct {
	FeeHeader
	Issuer        protocol.ObjectId     `json:"issuer"`
	AssetToUpdate protocol.ObjectId     `json:"asset_to_update"`
	NewIssuer     *protocol.ObjectId    `json:"new_issuer,omitempty"`
	NewOptions    protocol.AssetOptions `json:"new_options"`
}

// AssetUpdateBitasset - change the market options of an asset
type AssetUpdateBitasset struct {
	FeeHeader
	Issuer        protocol.ObjectId        `json:"issuer"`
	AssetToUpdate protocol.ObjectId        `json:"asset_to_update"`
	NewOptions    protocol.BitassetOptions `json:"new_options"`
}

// AssetUpdateFeedProducers - replace the set of feed publishers
type AssetUpdateFeedProducers struct {
	FeeHeader
	Issuer           protocol.ObjectId   `json:"issuer"`
	AssetToUpdate    protocol.ObjectId   `json:"asset_to_update"`
	NewFeedProducers []protocol.ObjectId `json:"new_feed_producers"`
}

// AssetIssue - issuer creates new supply for an account
type AssetIssue struct {
	FeeHeader
	Issuer         protocol.ObjectId `json:"issuer"`
	AssetToIssue   protocol.Amount   `json:"asset_to_issue"`
	IssueToAccount protocol.ObjectId `json:"issue_to_account"`
	Memo           string            `json:"memo"`
}

// AssetReserve - holder destroys supply
type AssetReserve struct {
	FeeHeader
	Payer           protocol.ObjectId `json:"payer"`
	AmountToReserve protocol.Amount   `json:"amount_to_reserve"`
}

// AssetFundFeePool - add core to an asset's fee pool
type AssetFundFeePool struct {
	FeeHeader
	FromAccount protocol.ObjectId `json:"from_account"`
	AssetId     protocol.ObjectId `json:"asset_id"`
	Amount      int64             `json:"amount"`
}

// AssetSettle - redeem a market issued asset for its backing
type AssetSettle struct {
	FeeHeader
	Account protocol.ObjectId `json:"account"`
	Amount  protocol.Amount   `json:"amount"`
}

// AssetGlobalSettle - issuer closes every position at a fixed price
type AssetGlobalSettle struct {
	FeeHeader
	Issuer        protocol.ObjectId `json:"issuer"`
	AssetToSettle protocol.ObjectId `json:"asset_to_settle"`
	SettlePrice   protocol.Price    `json:"settle_price"`
}

// AssetPublishFeed - a publisher's current price view
type AssetPublishFeed struct {
	FeeHeader
	Publisher protocol.ObjectId  `json:"publisher"`
	AssetId   protocol.ObjectId  `json:"asset_id"`
	Feed      protocol.PriceFeed `json:"feed"`
}

// AssetClaimFees - issuer withdraws accumulated fees
type AssetClaimFees struct {
	FeeHeader
	Issuer        protocol.ObjectId `json:"issuer"`
	AmountToClaim protocol.Amount   `json:"amount_to_claim"`
}

// AssetCreateIssueRequest - idempotent issuance keyed by an external
// unique id, credits cash and reserved balances
type AssetCreateIssueRequest struct {
	FeeHeader
	Issuer   protocol.ObjectId `json:"issuer"`
	Receiver protocol.ObjectId `json:"receiver"`
	Amount   int64             `json:"amount"`
	Asset    protocol.ObjectId `json:"asset_id"`
	Reserved int64             `json:"reserved_amount"`
	UniqueId string            `json:"unique_id"`
	Comment  string            `json:"comment"`
}

// Tag - operation type
func (op *CallOrderUpdate) Tag() TagType { return CallOrderUpdateTag }

// FeePayer - the borrower
func (op *CallOrderUpdate) FeePayer() protocol.ObjectId { return op.FundingAccount }

// RequiredAuthorities - the borrower
func (op *CallOrderUpdate) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.FundingAccount}
}

// Validate - stateless checks
func (op *CallOrderUpdate) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.FundingAccount) {
		return fault.ErrInvalidObjectId
	}
	if !protocol.IsAsset(op.DeltaCollateral.AssetId) || !protocol.IsAsset(op.DeltaDebt.AssetId) {
		return fault.ErrInvalidAsset
	}
	if op.DeltaCollateral.AssetId == op.DeltaDebt.AssetId {
		return fault.ErrInvalidAsset
	}
	if 0 == op.DeltaCollateral.Amount && 0 == op.DeltaDebt.Amount {
		return fault.ErrZeroAmount
	}
	for _, n := range []int64{op.DeltaCollateral.Amount, op.DeltaDebt.Amount} {
		if n > protocol.MaxShareSupply || n < -protocol.MaxShareSupply {
			return fault.ErrInvalidAmount
		}
	}
	return nil
}

func (op *CallOrderUpdate) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.FundingAccount)
	c.amount(&op.DeltaCollateral)
	c.amount(&op.DeltaDebt)
}

// Tag - operation type
func (op *AssetCreate) Tag() TagType { return AssetCreateTag }

// FeePayer - the issuer
func (op *AssetCreate) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetCreate) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetCreate) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) {
		return fault.ErrInvalidObjectId
	}
	if !protocol.IsValidSymbol(op.Symbol) {
		return fault.ErrInvalidSymbol
	}
	if op.Precision > protocol.MaximumPrecision {
		return fault.ErrInvalidPrecision
	}
	if err := op.CommonOptions.Validate(); nil != err {
		return err
	}
	if nil != op.BitassetOptions {
		if err := op.BitassetOptions.Validate(); nil != err {
			return err
		}
	} else {
		if op.IsPredictionMarket {
			return fault.ErrAssetNotMarketIssued
		}
		if 0 != op.CommonOptions.IssuerPermissions&^protocol.UserIssuedPermissionMask ||
			0 != op.CommonOptions.Flags&^protocol.UserIssuedPermissionMask {
			return fault.ErrInvalidFlags
		}
	}
	return nil
}

func (op *AssetCreate) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.string(&op.Symbol)
	c.uint8(&op.Precision)
	c.assetOptions(&op.CommonOptions)
	present := nil != op.BitassetOptions
	c.optional(&present, func() {
		if c.reading {
			op.BitassetOptions = &protocol.BitassetOptions{}
		}
		c.bitassetOptions(op.BitassetOptions)
	})
	c.bool(&op.IsPredictionMarket)
}

// Tag - operation type
func (op *AssetUpdate) Tag() TagType { return AssetUpdateTag }

// FeePayer - the issuer
func (op *AssetUpdate) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetUpdate) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetUpdate) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAsset(op.AssetToUpdate) {
		return fault.ErrInvalidObjectId
	}
	if nil != op.NewIssuer {
		if *op.NewIssuer == op.Issuer {
			return fault.ErrSameIssuer
		}
		if !protocol.IsAccount(*op.NewIssuer) {
			return fault.ErrInvalidObjectId
		}
	}
	return op.NewOptions.Validate()
}

func (op *AssetUpdate) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.AssetToUpdate)
	present := nil != op.NewIssuer
	c.optional(&present, func() {
		if c.reading {
			op.NewIssuer = &protocol.ObjectId{}
		}
		c.id(op.NewIssuer)
	})
	c.assetOptions(&op.NewOptions)
}

// Tag - operation type
func (op *AssetUpdateBitasset) Tag() TagType { return AssetUpdateBitassetTag }

// FeePayer - the issuer
func (op *AssetUpdateBitasset) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetUpdateBitasset) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetUpdateBitasset) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAsset(op.AssetToUpdate) {
		return fault.ErrInvalidObjectId
	}
	return op.NewOptions.Validate()
}

func (op *AssetUpdateBitasset) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.AssetToUpdate)
	c.bitassetOptions(&op.NewOptions)
}

// Tag - operation type
func (op *AssetUpdateFeedProducers) Tag() TagType { return AssetUpdateFeedProducersTag }

// FeePayer - the issuer
func (op *AssetUpdateFeedProducers) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetUpdateFeedProducers) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetUpdateFeedProducers) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAsset(op.AssetToUpdate) {
		return fault.ErrInvalidObjectId
	}
	seen := make(map[protocol.ObjectId]struct{}, len(op.NewFeedProducers))
	for _, producer := range op.NewFeedProducers {
		if !protocol.IsAccount(producer) {
			return fault.ErrInvalidObjectId
		}
		if _, ok := seen[producer]; ok {
			return fault.ErrDuplicateKey
		}
		seen[producer] = struct{}{}
	}
	return nil
}

func (op *AssetUpdateFeedProducers) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.AssetToUpdate)
	c.ids(&op.NewFeedProducers)
}

// Tag - operation type
func (op *AssetIssue) Tag() TagType { return AssetIssueTag }

// FeePayer - the issuer
func (op *AssetIssue) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetIssue) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetIssue) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAccount(op.IssueToAccount) {
		return fault.ErrInvalidObjectId
	}
	if len(op.Memo) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return op.AssetToIssue.ValidatePositive()
}

func (op *AssetIssue) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.amount(&op.AssetToIssue)
	c.id(&op.IssueToAccount)
	c.string(&op.Memo)
}

// Tag - operation type
func (op *AssetReserve) Tag() TagType { return AssetReserveTag }

// FeePayer - the holder
func (op *AssetReserve) FeePayer() protocol.ObjectId { return op.Payer }

// RequiredAuthorities - the holder
func (op *AssetReserve) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Payer}
}

// Validate - stateless checks
func (op *AssetReserve) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Payer) {
		return fault.ErrInvalidObjectId
	}
	return op.AmountToReserve.ValidatePositive()
}

func (op *AssetReserve) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Payer)
	c.amount(&op.AmountToReserve)
}

// Tag - operation type
func (op *AssetFundFeePool) Tag() TagType { return AssetFundFeePoolTag }

// FeePayer - the funding account
func (op *AssetFundFeePool) FeePayer() protocol.ObjectId { return op.FromAccount }

// RequiredAuthorities - the funding account
func (op *AssetFundFeePool) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.FromAccount}
}

// Validate - stateless checks
func (op *AssetFundFeePool) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.FromAccount) || !protocol.IsAsset(op.AssetId) {
		return fault.ErrInvalidObjectId
	}
	return protocol.NewAmount(op.Amount, protocol.CoreAsset).ValidatePositive()
}

func (op *AssetFundFeePool) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.FromAccount)
	c.id(&op.AssetId)
	c.int64(&op.Amount)
}

// Tag - operation type
func (op *AssetSettle) Tag() TagType { return AssetSettleTag }

// FeePayer - the holder
func (op *AssetSettle) FeePayer() protocol.ObjectId { return op.Account }

// RequiredAuthorities - the holder
func (op *AssetSettle) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Account}
}

// Validate - stateless checks
func (op *AssetSettle) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	return op.Amount.ValidatePositive()
}

func (op *AssetSettle) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Account)
	c.amount(&op.Amount)
}

// Tag - operation type
func (op *AssetGlobalSettle) Tag() TagType { return AssetGlobalSettleTag }

// FeePayer - the issuer
func (op *AssetGlobalSettle) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetGlobalSettle) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetGlobalSettle) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAsset(op.AssetToSettle) {
		return fault.ErrInvalidObjectId
	}
	if err := op.SettlePrice.Validate(); nil != err {
		return err
	}
	if op.SettlePrice.Base.AssetId != op.AssetToSettle {
		return fault.ErrInvalidPrice
	}
	return nil
}

func (op *AssetGlobalSettle) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.AssetToSettle)
	c.price(&op.SettlePrice)
}

// Tag - operation type
func (op *AssetPublishFeed) Tag() TagType { return AssetPublishFeedTag }

// FeePayer - the publisher
func (op *AssetPublishFeed) FeePayer() protocol.ObjectId { return op.Publisher }

// RequiredAuthorities - the publisher
func (op *AssetPublishFeed) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Publisher}
}

// Validate - stateless checks
func (op *AssetPublishFeed) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Publisher) || !protocol.IsAsset(op.AssetId) {
		return fault.ErrInvalidObjectId
	}
	if err := op.Feed.Validate(); nil != err {
		return err
	}
	if !op.Feed.IsFor(op.AssetId) {
		return fault.ErrFeedWrongAsset
	}
	return nil
}

func (op *AssetPublishFeed) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Publisher)
	c.id(&op.AssetId)
	c.feed(&op.Feed)
}

// Tag - operation type
func (op *AssetClaimFees) Tag() TagType { return AssetClaimFeesTag }

// FeePayer - the issuer
func (op *AssetClaimFees) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuer
func (op *AssetClaimFees) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetClaimFees) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) {
		return fault.ErrInvalidObjectId
	}
	return op.AmountToClaim.ValidatePositive()
}

func (op *AssetClaimFees) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.amount(&op.AmountToClaim)
}

// Tag - operation type
func (op *AssetCreateIssueRequest) Tag() TagType { return AssetCreateIssueRequestTag }

// FeePayer - the issuing authority
func (op *AssetCreateIssueRequest) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the issuing authority
func (op *AssetCreateIssueRequest) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *AssetCreateIssueRequest) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAccount(op.Receiver) || !protocol.IsAsset(op.Asset) {
		return fault.ErrInvalidObjectId
	}
	if op.Amount < 0 || op.Reserved < 0 {
		return fault.ErrInvalidAmount
	}
	if op.Amount > protocol.MaxShareSupply || op.Reserved > protocol.MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	if 0 == op.Amount && 0 == op.Reserved {
		return fault.ErrZeroAmount
	}
	if "" == op.UniqueId || len(op.UniqueId) > MaxUniqueIdLength {
		return fault.ErrInvalidUniqueId
	}
	if len(op.Comment) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return nil
}

func (op *AssetCreateIssueRequest) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.Receiver)
	c.int64(&op.Amount)
	c.id(&op.Asset)
	c.int64(&op.Reserved)
	c.string(&op.UniqueId)
	c.string(&op.Comment)
}
