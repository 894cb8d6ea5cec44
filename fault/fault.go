// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FatalError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountAlreadyTethered       = ExistsError("account already tethered")
	ErrAccountKindMismatch          = InvalidError("account kind mismatch")
	ErrAccountNameExists            = ExistsError("account name already exists")
	ErrAccountNotAuthorised         = InvalidError("account is not authorised for asset")
	ErrAccountNotTethered           = InvalidError("accounts are not tethered")
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrApplyFailed                  = FatalError("apply failed after successful evaluate")
	ErrAssetAlreadySettled          = InvalidError("asset has already been globally settled")
	ErrAssetCannotForceSettle       = InvalidError("asset cannot be force settled")
	ErrAssetCannotGlobalSettle      = InvalidError("asset cannot be globally settled")
	ErrAssetHasNoSupply             = InvalidError("asset has no supply")
	ErrAssetIsMarketIssued          = InvalidError("operation not allowed on a market issued asset")
	ErrAssetNotMarketIssued         = InvalidError("asset is not market issued")
	ErrAssetNotSettled              = InvalidError("asset has not been globally settled")
	ErrAssetSymbolExists            = ExistsError("asset symbol already exists")
	ErrBackingAssetChange           = InvalidError("backing asset cannot change while supply is outstanding")
	ErrBackingAssetDepth            = InvalidError("backing asset may not itself be backed by a market issued asset")
	ErrBackingAssetNotCore          = InvalidError("committee market asset must be backed by the core asset")
	ErrBatchInUse                   = ProcessError("storage batch already in use")
	ErrBatchNotInUse                = ProcessError("storage batch not started")
	ErrBlockNotFound                = NotFoundError("block not found")
	ErrBlockNumberMismatch          = RecordError("block number is not the next block")
	ErrCannotIssueSettlementCoin    = InvalidError("settlement coin cannot be issued by request")
	ErrCannotRemoveId               = RecordError("cannot remove object")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrCheckpointMismatch           = ProcessError("checkpoint does not match head block")
	ErrCollateralTooLow             = InvalidError("collateral ratio below maintenance requirement")
	ErrCountOutOfRange              = LengthError("count out of range")
	ErrCycleAssetReceiver           = InvalidError("cycle asset may only be issued to wallet or custodian")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDuplicateKey                 = RecordError("duplicate unique key")
	ErrDuplicateTransaction         = ExistsError("duplicate transaction")
	ErrEmptyTransaction             = RecordError("transaction has no operations")
	ErrFeePoolInsufficient          = InvalidError("asset fee pool is insufficient")
	ErrFeeTooLow                    = InvalidError("insufficient fee")
	ErrFeedLifetimeTooShort         = InvalidError("feed lifetime must exceed block interval")
	ErrFeedProducerCount            = LengthError("too many feed producers")
	ErrFeedWrongAsset               = InvalidError("feed must quote the backing asset")
	ErrFeedWrongCoreRate            = InvalidError("core exchange rate must quote the core asset")
	ErrForceSettlementDelayTooShort = InvalidError("force settlement delay must exceed block interval")
	ErrFrequencyZero                = InvalidError("frequency must be positive")
	ErrIdChanged                    = RecordError("object id changed by modify")
	ErrIdentifierMismatch           = RecordError("identifier does not match index")
	ErrIncompatibleDatabase         = ProcessError("incompatible database version")
	ErrInsufficientBalance          = InvalidError("insufficient balance")
	ErrInsufficientCycles           = InvalidError("insufficient license cycles")
	ErrInsufficientFeeds            = InvalidError("asset has no valid price feed")
	ErrInsufficientFees             = InvalidError("accumulated fees are insufficient")
	ErrInsufficientFund             = InvalidError("settlement fund is insufficient")
	ErrInvalidAmount                = InvalidError("invalid amount")
	ErrInvalidAsset                 = InvalidError("invalid asset")
	ErrInvalidBackingAsset          = InvalidError("collateral must be the backing asset")
	ErrInvalidBalanceUpgrade        = InvalidError("invalid balance upgrade")
	ErrInvalidBlockHeaderSize       = RecordError("invalid block header size")
	ErrInvalidBlockHeaderVersion    = RecordError("invalid block header version")
	ErrInvalidBlockTime             = RecordError("block time is before head time")
	ErrInvalidChain                 = InvalidError("invalid chain name")
	ErrInvalidCount                 = LengthError("invalid count")
	ErrInvalidCursor                = ProcessError("invalid cursor")
	ErrInvalidFlags                 = InvalidError("invalid flags")
	ErrInvalidHex                   = RecordError("invalid hex data")
	ErrInvalidIpAddress             = InvalidError("invalid IP address")
	ErrInvalidKey                   = InvalidError("invalid key")
	ErrInvalidKeyChecksum           = InvalidError("invalid key checksum")
	ErrInvalidLicenseKind           = InvalidError("invalid license kind")
	ErrInvalidLoggerChannel         = InvalidError("invalid logger channel")
	ErrInvalidName                  = InvalidError("invalid name")
	ErrInvalidObjectId              = InvalidError("invalid object id")
	ErrInvalidPath                  = InvalidError("invalid path")
	ErrInvalidPosition              = InvalidError("a position without debt must not hold collateral")
	ErrInvalidPrecision             = InvalidError("invalid precision")
	ErrInvalidPrice                 = InvalidError("invalid price")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrInvalidSymbol                = InvalidError("invalid asset symbol")
	ErrInvalidTransaction           = RecordError("invalid transaction")
	ErrInvalidUniqueId              = InvalidError("invalid unique id")
	ErrIssuedAssetRecordExists      = ExistsError("asset already issued for unique id")
	ErrIssuerMismatch               = InvalidError("account is not the asset issuer")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrLicenseAlreadyIssued         = ExistsError("license already issued to account")
	ErrLicenseNameExists            = ExistsError("license name already exists")
	ErrMerkleRootMismatch           = RecordError("merkle root does not match transactions")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrMissingSignature             = InvalidError("missing required signature")
	ErrNegativePosition             = InvalidError("position would become negative")
	ErrNotEnoughData                = RecordError("not enough data")
	ErrNotFound                     = NotFoundError("not found")
	ErrNotFoundAccount              = NotFoundError("account not found")
	ErrNotFoundCheckpoint           = NotFoundError("checkpoint not found")
	ErrNotFoundAsset                = NotFoundError("asset not found")
	ErrNotFoundBitasset             = NotFoundError("bitasset data not found")
	ErrNotFoundCallOrder            = NotFoundError("call order not found")
	ErrNotFoundId                   = RecordError("object id not found")
	ErrNotFoundLicense              = NotFoundError("license not found")
	ErrNotFoundLicenseRecord        = NotFoundError("license record not found")
	ErrNotFoundPrefixAsset          = NotFoundError("asset symbol prefix not found")
	ErrNotFoundTransaction          = NotFoundError("transaction not found")
	ErrNotFoundWireOutHolder        = NotFoundError("wire out holder not found")
	ErrNotInitialised               = ProcessError("not initialised")
	ErrNotWitnessOrCommitteeFed     = InvalidError("feed producers cannot be set on witness or committee fed assets")
	ErrNullPrice                    = InvalidError("price is null")
	ErrOperationCountExceeded       = LengthError("too many operations")
	ErrOperationNotRegistered       = RecordError("no evaluator registered for operation")
	ErrOutOfRange                   = LengthError("out of range")
	ErrOverflow                     = InvalidError("arithmetic overflow")
	ErrPageSizeExceeded             = LengthError("page size exceeded")
	ErrPermissionNotHeld            = InvalidError("flag change requires issuer permission")
	ErrPermissionReinstated         = InvalidError("cannot reinstate previously revoked permissions")
	ErrPredictionMarketCollateral   = InvalidError("prediction market collateral must equal debt")
	ErrPredictionMarketNotSettled   = InvalidError("prediction market must be globally settled before force settlement")
	ErrPredictionMarketPrecision    = InvalidError("prediction market precision must match backing asset")
	ErrPrefixIssuerMismatch         = InvalidError("asset symbol prefix is owned by another issuer")
	ErrPreviousBlockMismatch        = RecordError("previous block digest does not match head")
	ErrRateLimiting                 = InvalidError("rate limit exceeded")
	ErrSameIssuer                   = InvalidError("new issuer is the current issuer")
	ErrSelfTransfer                 = InvalidError("cannot transfer to self")
	ErrSettlementCannotCover        = InvalidError("least collateralized position cannot cover settlement")
	ErrSupplyExceedsMaximum         = InvalidError("supply exceeds maximum")
	ErrSupplyNegative               = InvalidError("supply would become negative")
	ErrTooManyWhitelistAuthorities  = LengthError("too many whitelist authorities")
	ErrTransactionCountOutOfRange   = LengthError("transaction count out of range")
	ErrTransactionExpirationTooFar  = InvalidError("transaction expiration too far in the future")
	ErrTransactionExpired           = InvalidError("transaction expired")
	ErrTransactionTooLarge          = LengthError("transaction too large")
	ErrTransferRestricted           = InvalidError("asset may only be transferred to or from its issuer")
	ErrUnauthorisedAuthority        = InvalidError("account is not the required chain authority")
	ErrUnauthorisedPublisher        = InvalidError("account is not an authorised feed publisher")
	ErrUnknownOperation             = RecordError("unknown operation")
	ErrVaultLimitExceeded           = InvalidError("vault spending limit exceeded")
	ErrVirtualOperation             = RecordError("virtual operation cannot be submitted")
	ErrWrongObjectType              = RecordError("object id has wrong type")
	ErrWrongWebAsset                = InvalidError("asset is not the web asset")
	ErrZeroAmount                   = InvalidError("amount must be positive")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e FatalError) Error() string    { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrFatal(e error) bool    { var t FatalError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool   { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }

// IsValidation - business rule failure detected by an evaluator
func IsValidation(e error) bool {
	return IsErrInvalid(e) || IsErrExists(e) || IsErrNotFound(e) || IsErrLength(e)
}
