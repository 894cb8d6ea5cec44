// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// limits on license definitions
const (
	MaxLicenseNameLength = 64
	MinBonusPercent      = -100
	MaxBonusPercent      = 1000
)

// CreateLicenseType - define a new kind of license
type CreateLicenseType struct {
	FeeHeader
	Authority          protocol.ObjectId      `json:"authority"`
	Name               string                 `json:"name"`
	Amount             int64                  `json:"amount"`
	Kind               protocol.LicenseKind   `json:"kind"`
	Policy             protocol.UpgradePolicy `json:"upgrade_policy"`
	BalanceMultipliers []uint32               `json:"balance_multipliers"`
	EurLimit           int64                  `json:"eur_limit"`
}

// IssueLicense - grant a license to a vault
type IssueLicense struct {
	FeeHeader
	Issuer        protocol.ObjectId `json:"issuer"`
	Account       protocol.ObjectId `json:"account"`
	License       protocol.ObjectId `json:"license"`
	BonusPercent  int16             `json:"bonus_percent"`
	FrequencyLock uint32            `json:"frequency_lock"`
	ActivatedAt   int64             `json:"activated_at"`
}

// UpgradeLicenses - run one balance upgrade step on every license
// that has upgrades left
type UpgradeLicenses struct {
	FeeHeader
	Authority protocol.ObjectId `json:"authority"`
	Comment   string            `json:"comment"`
}

// SubmitLicenseCycles - vault submits the cycles of a manually
// submitted license to the reward queue
type SubmitLicenseCycles struct {
	FeeHeader
	Account protocol.ObjectId `json:"account"`
	License protocol.ObjectId `json:"license"`
	Amount  int64             `json:"amount"`
}

// SubmitReserveCycles - queue cycles that do not come from a license
type SubmitReserveCycles struct {
	FeeHeader
	Issuer        protocol.ObjectId `json:"issuer"`
	Account       protocol.ObjectId `json:"account"`
	Amount        int64             `json:"amount"`
	FrequencyLock uint32            `json:"frequency_lock"`
	Comment       string            `json:"comment"`
}

// IssueFreeCycles - credit cycles directly to an account
type IssueFreeCycles struct {
	FeeHeader
	Authority protocol.ObjectId `json:"authority"`
	Account   protocol.ObjectId `json:"account"`
	Amount    int64             `json:"amount"`
	Comment   string            `json:"comment"`
}

// UpdateGlobalFrequency - set the frequency applied to new queue entries
type UpdateGlobalFrequency struct {
	FeeHeader
	Authority protocol.ObjectId `json:"authority"`
	Frequency uint32            `json:"frequency"`
	Comment   string            `json:"comment"`
}

// Tag - operation type
func (op *CreateLicenseType) Tag() TagType { return CreateLicenseTypeTag }

// FeePayer - the license authority
func (op *CreateLicenseType) FeePayer() protocol.ObjectId { return op.Authority }

// RequiredAuthorities - the license authority
func (op *CreateLicenseType) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Authority}
}

// Validate - stateless checks
func (op *CreateLicenseType) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Authority) {
		return fault.ErrInvalidObjectId
	}
	if "" == op.Name || len(op.Name) > MaxLicenseNameLength {
		return fault.ErrInvalidName
	}
	if !op.Kind.IsValid() {
		return fault.ErrInvalidLicenseKind
	}
	if op.Amount <= 0 || op.Amount > protocol.MaxShareSupply || op.EurLimit < 0 {
		return fault.ErrInvalidAmount
	}
	return nil
}

func (op *CreateLicenseType) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Authority)
	c.string(&op.Name)
	c.int64(&op.Amount)
	c.licenseKind(&op.Kind)
	c.upgradePolicy(&op.Policy)
	c.uint32s(&op.BalanceMultipliers)
	c.int64(&op.EurLimit)
}

// Tag - operation type
func (op *IssueLicense) Tag() TagType { return IssueLicenseTag }

// FeePayer - the license issuer
func (op *IssueLicense) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the license issuer
func (op *IssueLicense) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *IssueLicense) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	if !op.License.Is(protocol.ProtocolSpace, protocol.LicenseTypeType) {
		return fault.ErrWrongObjectType
	}
	if op.BonusPercent < MinBonusPercent || op.BonusPercent > MaxBonusPercent {
		return fault.ErrInvalidAmount
	}
	if 0 == op.FrequencyLock {
		return fault.ErrFrequencyZero
	}
	return nil
}

func (op *IssueLicense) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.Account)
	c.id(&op.License)
	c.int16(&op.BonusPercent)
	c.uint32(&op.FrequencyLock)
	c.int64(&op.ActivatedAt)
}

// Tag - operation type
func (op *UpgradeLicenses) Tag() TagType { return UpgradeLicensesTag }

// FeePayer - the license authority
func (op *UpgradeLicenses) FeePayer() protocol.ObjectId { return op.Authority }

// RequiredAuthorities - the license authority
func (op *UpgradeLicenses) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Authority}
}

// Validate - stateless checks
func (op *UpgradeLicenses) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Authority) {
		return fault.ErrInvalidObjectId
	}
	if len(op.Comment) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return nil
}

func (op *UpgradeLicenses) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Authority)
	c.string(&op.Comment)
}

// Tag - operation type
func (op *SubmitLicenseCycles) Tag() TagType { return SubmitLicenseCyclesTag }

// FeePayer - the vault
func (op *SubmitLicenseCycles) FeePayer() protocol.ObjectId { return op.Account }

// RequiredAuthorities - the vault
func (op *SubmitLicenseCycles) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Account}
}

// Validate - stateless checks
func (op *SubmitLicenseCycles) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	if !op.License.Is(protocol.ProtocolSpace, protocol.LicenseTypeType) {
		return fault.ErrWrongObjectType
	}
	return validateCycles(op.Amount)
}

func (op *SubmitLicenseCycles) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Account)
	c.id(&op.License)
	c.int64(&op.Amount)
}

// Tag - operation type
func (op *SubmitReserveCycles) Tag() TagType { return SubmitReserveCyclesTag }

// FeePayer - the cycle issuer
func (op *SubmitReserveCycles) FeePayer() protocol.ObjectId { return op.Issuer }

// RequiredAuthorities - the cycle issuer
func (op *SubmitReserveCycles) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Issuer}
}

// Validate - stateless checks
func (op *SubmitReserveCycles) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Issuer) || !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	if 0 == op.FrequencyLock {
		return fault.ErrFrequencyZero
	}
	if len(op.Comment) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return validateCycles(op.Amount)
}

func (op *SubmitReserveCycles) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Issuer)
	c.id(&op.Account)
	c.int64(&op.Amount)
	c.uint32(&op.FrequencyLock)
	c.string(&op.Comment)
}

// Tag - operation type
func (op *IssueFreeCycles) Tag() TagType { return IssueFreeCyclesTag }

// FeePayer - the cycle issuer
func (op *IssueFreeCycles) FeePayer() protocol.ObjectId { return op.Authority }

// RequiredAuthorities - the cycle issuer
func (op *IssueFreeCycles) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Authority}
}

// Validate - stateless checks
func (op *IssueFreeCycles) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Authority) || !protocol.IsAccount(op.Account) {
		return fault.ErrInvalidObjectId
	}
	if len(op.Comment) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return validateCycles(op.Amount)
}

func (op *IssueFreeCycles) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Authority)
	c.id(&op.Account)
	c.int64(&op.Amount)
	c.string(&op.Comment)
}

// Tag - operation type
func (op *UpdateGlobalFrequency) Tag() TagType { return UpdateGlobalFrequencyTag }

// FeePayer - the license authority
func (op *UpdateGlobalFrequency) FeePayer() protocol.ObjectId { return op.Authority }

// RequiredAuthorities - the license authority
func (op *UpdateGlobalFrequency) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Authority}
}

// Validate - stateless checks
func (op *UpdateGlobalFrequency) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Authority) {
		return fault.ErrInvalidObjectId
	}
	if 0 == op.Frequency {
		return fault.ErrFrequencyZero
	}
	if len(op.Comment) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return nil
}

func (op *UpdateGlobalFrequency) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Authority)
	c.uint32(&op.Frequency)
	c.string(&op.Comment)
}

func validateCycles(amount int64) error {
	if amount <= 0 || amount > protocol.MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	return nil
}
