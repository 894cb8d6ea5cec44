// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// MaxMemoLength - longest memo or comment accepted
const MaxMemoLength = 256

// Transfer - move an amount between two wallets
type Transfer struct {
	FeeHeader
	From   protocol.ObjectId `json:"from"`
	To     protocol.ObjectId `json:"to"`
	Amount protocol.Amount   `json:"amount"`
	Memo   string            `json:"memo"`
}

// AccountCreate - register a new account
type AccountCreate struct {
	FeeHeader
	Registrar protocol.ObjectId    `json:"registrar"`
	Name      string               `json:"name"`
	Kind      protocol.AccountKind `json:"kind"`
	ActiveKey account.PublicKey    `json:"active_key"`
}

// TetherAccounts - bind a vault to the wallet it pays out to
type TetherAccounts struct {
	FeeHeader
	Wallet protocol.ObjectId `json:"wallet"`
	Vault  protocol.ObjectId `json:"vault"`
}

// TransferVaultToWallet - move funds out of a vault, subject to its
// spending limit
type TransferVaultToWallet struct {
	FeeHeader
	From   protocol.ObjectId `json:"from_vault"`
	To     protocol.ObjectId `json:"to_wallet"`
	Amount protocol.Amount   `json:"amount"`
}

// TransferWalletToVault - move funds into a tethered vault
type TransferWalletToVault struct {
	FeeHeader
	From   protocol.ObjectId `json:"from_wallet"`
	To     protocol.ObjectId `json:"to_vault"`
	Amount protocol.Amount   `json:"amount"`
}

// Tag - operation type
func (op *Transfer) Tag() TagType { return TransferTag }

// FeePayer - sender pays
func (op *Transfer) FeePayer() protocol.ObjectId { return op.From }

// RequiredAuthorities - the sender
func (op *Transfer) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.From}
}

// Validate - stateless checks
func (op *Transfer) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if err := validateTransfer(op.From, op.To, op.Amount); nil != err {
		return err
	}
	if len(op.Memo) > MaxMemoLength {
		return fault.ErrTransactionTooLarge
	}
	return nil
}

func (op *Transfer) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.From)
	c.id(&op.To)
	c.amount(&op.Amount)
	c.string(&op.Memo)
}

// Tag - operation type
func (op *AccountCreate) Tag() TagType { return AccountCreateTag }

// FeePayer - registrar pays
func (op *AccountCreate) FeePayer() protocol.ObjectId { return op.Registrar }

// RequiredAuthorities - the registrar
func (op *AccountCreate) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Registrar}
}

// Validate - stateless checks
func (op *AccountCreate) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Registrar) {
		return fault.ErrInvalidObjectId
	}
	if !protocol.IsValidAccountName(op.Name) {
		return fault.ErrInvalidName
	}
	if op.Kind > protocol.Custodian {
		return fault.ErrAccountKindMismatch
	}
	if !op.ActiveKey.IsValid() {
		return fault.ErrInvalidKey
	}
	return nil
}

func (op *AccountCreate) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Registrar)
	c.string(&op.Name)
	c.accountKind(&op.Kind)
	c.publicKey(&op.ActiveKey)
}

// Tag - operation type
func (op *TetherAccounts) Tag() TagType { return TetherAccountsTag }

// FeePayer - wallet pays
func (op *TetherAccounts) FeePayer() protocol.ObjectId { return op.Wallet }

// RequiredAuthorities - both sides agree
func (op *TetherAccounts) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.Wallet, op.Vault}
}

// Validate - stateless checks
func (op *TetherAccounts) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	if !protocol.IsAccount(op.Wallet) || !protocol.IsAccount(op.Vault) {
		return fault.ErrInvalidObjectId
	}
	if op.Wallet == op.Vault {
		return fault.ErrSelfTransfer
	}
	return nil
}

func (op *TetherAccounts) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.Wallet)
	c.id(&op.Vault)
}

// Tag - operation type
func (op *TransferVaultToWallet) Tag() TagType { return TransferVaultToWalletTag }

// FeePayer - vault pays
func (op *TransferVaultToWallet) FeePayer() protocol.ObjectId { return op.From }

// RequiredAuthorities - the vault
func (op *TransferVaultToWallet) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.From}
}

// Validate - stateless checks
func (op *TransferVaultToWallet) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	return validateTransfer(op.From, op.To, op.Amount)
}

func (op *TransferVaultToWallet) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.From)
	c.id(&op.To)
	c.amount(&op.Amount)
}

// Tag - operation type
func (op *TransferWalletToVault) Tag() TagType { return TransferWalletToVaultTag }

// FeePayer - wallet pays
func (op *TransferWalletToVault) FeePayer() protocol.ObjectId { return op.From }

// RequiredAuthorities - the wallet
func (op *TransferWalletToVault) RequiredAuthorities() []protocol.ObjectId {
	return []protocol.ObjectId{op.From}
}

// Validate - stateless checks
func (op *TransferWalletToVault) Validate() error {
	if err := op.validateFee(); nil != err {
		return err
	}
	return validateTransfer(op.From, op.To, op.Amount)
}

func (op *TransferWalletToVault) serialise(c *codec) {
	c.amount(&op.Fee)
	c.id(&op.From)
	c.id(&op.To)
	c.amount(&op.Amount)
}

func validateTransfer(from protocol.ObjectId, to protocol.ObjectId, amount protocol.Amount) error {
	if !protocol.IsAccount(from) || !protocol.IsAccount(to) {
		return fault.ErrInvalidObjectId
	}
	if from == to {
		return fault.ErrSelfTransfer
	}
	return amount.ValidatePositive()
}
