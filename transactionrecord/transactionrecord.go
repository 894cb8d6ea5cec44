// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// TagType - type code for operations
type TagType uint64

// enumerate the possible operation types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// client operations
	TransferTag                 = TagType(iota)
	AccountCreateTag            = TagType(iota)
	TetherAccountsTag           = TagType(iota)
	TransferVaultToWalletTag    = TagType(iota)
	TransferWalletToVaultTag    = TagType(iota)
	CallOrderUpdateTag          = TagType(iota)
	AssetCreateTag              = TagType(iota)
	AssetUpdateTag              = TagType(iota)
	AssetUpdateBitassetTag      = TagType(iota)
	AssetUpdateFeedProducersTag = TagType(iota)
	AssetIssueTag               = TagType(iota)
	AssetReserveTag             = TagType(iota)
	AssetFundFeePoolTag         = TagType(iota)
	AssetSettleTag              = TagType(iota)
	AssetGlobalSettleTag        = TagType(iota)
	AssetPublishFeedTag         = TagType(iota)
	AssetClaimFeesTag           = TagType(iota)
	AssetCreateIssueRequestTag  = TagType(iota)
	WireOutTag                  = TagType(iota)
	WireOutCompleteTag          = TagType(iota)
	WireOutRejectTag            = TagType(iota)
	CreateLicenseTypeTag        = TagType(iota)
	IssueLicenseTag             = TagType(iota)
	UpgradeLicensesTag          = TagType(iota)
	SubmitLicenseCyclesTag      = TagType(iota)
	SubmitReserveCyclesTag      = TagType(iota)
	IssueFreeCyclesTag          = TagType(iota)
	UpdateGlobalFrequencyTag    = TagType(iota)

	// virtual operations
	AssetSettleCancelTag  = TagType(iota)
	AssetSettleFillTag    = TagType(iota)
	AssetGlobalSettledTag = TagType(iota)
	WireOutResultTag      = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)

	// start of the virtual range
	FirstVirtualTag = AssetSettleCancelTag
)

// IsVirtual - true for tags that only the ledger may produce
func IsVirtual(tag TagType) bool {
	return tag >= FirstVirtualTag && tag < InvalidTag
}

// IsValid - a known tag
func (tag TagType) IsValid() bool {
	return tag > NullTag && tag < InvalidTag
}

// Operation - one variant of the operation union
type Operation interface {
	Tag() TagType

	// account charged with the fee
	FeePayer() protocol.ObjectId

	// fee offered for this operation
	GetFee() protocol.Amount

	// accounts whose active keys must sign
	RequiredAuthorities() []protocol.ObjectId

	// checks that need no ledger state
	Validate() error

	serialise(c *codec)
}

// Packed - packed records are just a byte slice
type Packed []byte

// FeeHeader - common fee field of client operations
type FeeHeader struct {
	Fee protocol.Amount `json:"fee"`
}

// GetFee - the offered fee
func (h FeeHeader) GetFee() protocol.Amount {
	return h.Fee
}

func (h FeeHeader) validateFee() error {
	if h.Fee.Amount < 0 || h.Fee.Amount > protocol.MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	if 0 != h.Fee.Amount && !protocol.IsAsset(h.Fee.AssetId) {
		return fault.ErrInvalidAsset
	}
	return nil
}

// no fee on virtual operations
type virtualHeader struct{}

func (virtualHeader) GetFee() protocol.Amount                  { return protocol.Amount{} }
func (virtualHeader) RequiredAuthorities() []protocol.ObjectId { return nil }
func (virtualHeader) Validate() error                          { return fault.ErrVirtualOperation }

// names as used in JSON and logs
var tagNames = map[TagType]string{
	TransferTag:                 "transfer",
	AccountCreateTag:            "account_create",
	TetherAccountsTag:           "tether_accounts",
	TransferVaultToWalletTag:    "transfer_vault_to_wallet",
	TransferWalletToVaultTag:    "transfer_wallet_to_vault",
	CallOrderUpdateTag:          "call_order_update",
	AssetCreateTag:              "asset_create",
	AssetUpdateTag:              "asset_update",
	AssetUpdateBitassetTag:      "asset_update_bitasset",
	AssetUpdateFeedProducersTag: "asset_update_feed_producers",
	AssetIssueTag:               "asset_issue",
	AssetReserveTag:             "asset_reserve",
	AssetFundFeePoolTag:         "asset_fund_fee_pool",
	AssetSettleTag:              "asset_settle",
	AssetGlobalSettleTag:        "asset_global_settle",
	AssetPublishFeedTag:         "asset_publish_feed",
	AssetClaimFeesTag:           "asset_claim_fees",
	AssetCreateIssueRequestTag:  "asset_create_issue_request",
	WireOutTag:                  "wire_out",
	WireOutCompleteTag:          "wire_out_complete",
	WireOutRejectTag:            "wire_out_reject",
	CreateLicenseTypeTag:        "create_license_type",
	IssueLicenseTag:             "issue_license",
	UpgradeLicensesTag:          "upgrade_licenses",
	SubmitLicenseCyclesTag:      "submit_license_cycles",
	SubmitReserveCyclesTag:      "submit_reserve_cycles",
	IssueFreeCyclesTag:          "issue_free_cycles",
	UpdateGlobalFrequencyTag:    "update_global_frequency",
	AssetSettleCancelTag:        "asset_settle_cancel",
	AssetSettleFillTag:          "asset_settle_fill",
	AssetGlobalSettledTag:       "asset_global_settled",
	WireOutResultTag:            "wire_out_result",
}

// String - name of the tag
func (tag TagType) String() string {
	if name, ok := tagNames[tag]; ok {
		return name
	}
	return "unknown"
}

// TagFromName - reverse of String
func TagFromName(name string) (TagType, bool) {
	for tag, n := range tagNames {
		if n == name {
			return tag, true
		}
	}
	return NullTag, false
}

// RecordName - returns the name of an operation
func RecordName(op Operation) string {
	return op.Tag().String()
}

// New - an empty operation of the given type
func New(tag TagType) (Operation, error) {
	switch tag {
	case TransferTag:
		return &Transfer{}, nil
	case AccountCreateTag:
		return &AccountCreate{}, nil
	case TetherAccountsTag:
		return &TetherAccounts{}, nil
	case TransferVaultToWalletTag:
		return &TransferVaultToWallet{}, nil
	case TransferWalletToVaultTag:
		return &TransferWalletToVault{}, nil
	case CallOrderUpdateTag:
		return &CallOrderUpdate{}, nil
	case AssetCreateTag:
		return &AssetCreate{}, nil
	case AssetUpdateTag:
		return &AssetUpdate{}, nil
	case AssetUpdateBitassetTag:
		return &AssetUpdateBitasset{}, nil
	case AssetUpdateFeedProducersTag:
		return &AssetUpdateFeedProducers{}, nil
	case AssetIssueTag:
		return &AssetIssue{}, nil
	case AssetReserveTag:
		return &AssetReserve{}, nil
	case AssetFundFeePoolTag:
		return &AssetFundFeePool{}, nil
	case AssetSettleTag:
		return &AssetSettle{}, nil
	case AssetGlobalSettleTag:
		return &AssetGlobalSettle{}, nil
	case AssetPublishFeedTag:
		return &AssetPublishFeed{}, nil
	case AssetClaimFeesTag:
		return &AssetClaimFees{}, nil
	case AssetCreateIssueRequestTag:
		return &AssetCreateIssueRequest{}, nil
	case WireOutTag:
		return &WireOut{}, nil
	case WireOutCompleteTag:
		return &WireOutComplete{}, nil
	case WireOutRejectTag:
		return &WireOutReject{}, nil
	case CreateLicenseTypeTag:
		return &CreateLicenseType{}, nil
	case IssueLicenseTag:
		return &IssueLicense{}, nil
	case UpgradeLicensesTag:
		return &UpgradeLicenses{}, nil
	case SubmitLicenseCyclesTag:
		return &SubmitLicenseCycles{}, nil
	case SubmitReserveCyclesTag:
		return &SubmitReserveCycles{}, nil
	case IssueFreeCyclesTag:
		return &IssueFreeCycles{}, nil
	case UpdateGlobalFrequencyTag:
		return &UpdateGlobalFrequency{}, nil
	case AssetSettleCancelTag:
		return &AssetSettleCancel{}, nil
	case AssetSettleFillTag:
		return &AssetSettleFill{}, nil
	case AssetGlobalSettledTag:
		return &AssetGlobalSettled{}, nil
	case WireOutResultTag:
		return &WireOutResult{}, nil
	default:
		return nil, fault.ErrUnknownOperation
	}
}
