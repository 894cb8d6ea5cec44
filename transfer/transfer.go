// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Register - add the account and transfer evaluators to a registry
func Register(r *evaluator.Registry) {
	r.Register(transactionrecord.AccountCreateTag, evaluator.New(evaluateAccountCreate, applyAccountCreate))
	r.Register(transactionrecord.TetherAccountsTag, evaluator.New(evaluateTether, applyTether))
	r.Register(transactionrecord.TransferTag, evaluator.New(evaluateTransfer, applyTransfer))
	r.Register(transactionrecord.TransferVaultToWalletTag, evaluator.New(evaluateVaultToWallet, applyVaultToWallet))
	r.Register(transactionrecord.TransferWalletToVaultTag, evaluator.New(evaluateWalletToVault, applyWalletToVault))
}

type createContext struct{}

func evaluateAccountCreate(db state.Reader, op *transactionrecord.AccountCreate) (createContext, error) {
	if _, err := db.GetAccount(op.Registrar); nil != err {
		return createContext{}, err
	}
	if _, ok := db.FindAccountByName(op.Name); ok {
		return createContext{}, fault.ErrAccountNameExists
	}
	return createContext{}, nil
}

func applyAccountCreate(db *state.Database, op *transactionrecord.AccountCreate, ctx createContext) (evaluator.Result, error) {
	a, err := db.Accounts.Create(func(id protocol.ObjectId) state.Account {
		return state.Account{
			Id:        id,
			Name:      op.Name,
			Kind:      op.Kind,
			Registrar: op.Registrar,
			ActiveKey: op.ActiveKey,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(a.Id), nil
}

type tetherContext struct{}

func evaluateTether(db state.Reader, op *transactionrecord.TetherAccounts) (tetherContext, error) {
	wallet, err := db.GetAccount(op.Wallet)
	if nil != err {
		return tetherContext{}, err
	}
	vault, err := db.GetAccount(op.Vault)
	if nil != err {
		return tetherContext{}, err
	}
	if !wallet.IsWallet() || !vault.IsVault() {
		return tetherContext{}, fault.ErrAccountKindMismatch
	}
	if _, ok := vault.TetheredWallet(); ok {
		return tetherContext{}, fault.ErrAccountAlreadyTethered
	}
	return tetherContext{}, nil
}

func applyTether(db *state.Database, op *transactionrecord.TetherAccounts, ctx tetherContext) (evaluator.Result, error) {
	err := db.Accounts.Modify(op.Vault, func(a *state.Account) {
		a.Tethered = []protocol.ObjectId{op.Wallet}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	err = db.Accounts.Modify(op.Wallet, func(a *state.Account) {
		a.Tethered = append(a.Tethered, op.Vault)
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.VoidResult(), nil
}

type transferContext struct {
	dascoin bool
}

// checks common to every kind of transfer
func checkTransfer(db state.Reader, from state.Account, to state.Account, amount protocol.Amount) error {
	a, err := db.GetAsset(amount.AssetId)
	if nil != err {
		return err
	}
	if !db.IsAuthorizedAsset(from, a) || !db.IsAuthorizedAsset(to, a) {
		return fault.ErrAccountNotAuthorised
	}
	if a.Options.Flags.Has(protocol.TransferRestricted) && from.Id != a.Issuer && to.Id != a.Issuer {
		return fault.ErrTransferRestricted
	}
	if db.GetBalance(from.Id, amount.AssetId) < amount.Amount {
		return fault.ErrInsufficientBalance
	}
	return nil
}

// both ends of a transfer
func accounts(db state.Reader, from protocol.ObjectId, to protocol.ObjectId) (state.Account, state.Account, error) {
	sender, err := db.GetAccount(from)
	if nil != err {
		return state.Account{}, state.Account{}, err
	}
	receiver, err := db.GetAccount(to)
	if nil != err {
		return state.Account{}, state.Account{}, err
	}
	return sender, receiver, nil
}

// wallets and custodians only
func canTransfer(a state.Account) bool {
	return a.IsWallet() || a.IsCustodian()
}

func evaluateTransfer(db state.Reader, op *transactionrecord.Transfer) (transferContext, error) {
	from, to, err := accounts(db, op.From, op.To)
	if nil != err {
		return transferContext{}, err
	}
	if !canTransfer(from) || !canTransfer(to) {
		return transferContext{}, fault.ErrAccountKindMismatch
	}
	if err := checkTransfer(db, from, to, op.Amount); nil != err {
		return transferContext{}, err
	}
	return transferContext{}, nil
}

func applyTransfer(db *state.Database, op *transactionrecord.Transfer, ctx transferContext) (evaluator.Result, error) {
	return evaluator.VoidResult(), move(db, op.From, op.To, op.Amount)
}

func move(db *state.Database, from protocol.ObjectId, to protocol.ObjectId, amount protocol.Amount) error {
	if err := db.AdjustBalance(from, protocol.NewAmount(-amount.Amount, amount.AssetId)); nil != err {
		return err
	}
	return db.AdjustBalance(to, amount)
}

// SpendingLimit - the settlement coin a vault may still withdraw in
// the current maintenance interval, negative for no limit
func SpendingLimit(db state.Reader, vault protocol.ObjectId) int64 {
	dascoin := db.GlobalProperties().DascoinAsset
	b, _ := db.FindBalance(vault, dascoin)
	limit := b.Limit
	if 0 == limit {
		limit = db.Parameters().VaultSpendingLimit
	}
	if limit <= 0 {
		return -1
	}
	if b.Spent >= limit {
		return 0
	}
	return limit - b.Spent
}

func evaluateVaultToWallet(db state.Reader, op *transactionrecord.TransferVaultToWallet) (transferContext, error) {
	vault, wallet, err := accounts(db, op.From, op.To)
	if nil != err {
		return transferContext{}, err
	}
	if !vault.IsVault() || !wallet.IsWallet() {
		return transferContext{}, fault.ErrAccountKindMismatch
	}
	if !vault.IsTetheredTo(wallet.Id) {
		return transferContext{}, fault.ErrAccountNotTethered
	}
	if err := checkTransfer(db, vault, wallet, op.Amount); nil != err {
		return transferContext{}, err
	}

	ctx := transferContext{
		dascoin: op.Amount.AssetId == db.GlobalProperties().DascoinAsset,
	}
	if ctx.dascoin {
		remaining := SpendingLimit(db, vault.Id)
		if remaining >= 0 && op.Amount.Amount > remaining {
			return transferContext{}, fault.ErrVaultLimitExceeded
		}
	}
	return ctx, nil
}

func applyVaultToWallet(db *state.Database, op *transactionrecord.TransferVaultToWallet, ctx transferContext) (evaluator.Result, error) {
	if err := move(db, op.From, op.To, op.Amount); nil != err {
		return evaluator.VoidResult(), err
	}
	if ctx.dascoin {
		if err := db.AddSpent(op.From, op.Amount.AssetId, op.Amount.Amount); nil != err {
			return evaluator.VoidResult(), err
		}
	}
	return evaluator.VoidResult(), nil
}

func evaluateWalletToVault(db state.Reader, op *transactionrecord.TransferWalletToVault) (transferContext, error) {
	wallet, vault, err := accounts(db, op.From, op.To)
	if nil != err {
		return transferContext{}, err
	}
	if !wallet.IsWallet() || !vault.IsVault() {
		return transferContext{}, fault.ErrAccountKindMismatch
	}
	if !vault.IsTetheredTo(wallet.Id) {
		return transferContext{}, fault.ErrAccountNotTethered
	}
	if err := checkTransfer(db, wallet, vault, op.Amount); nil != err {
		return transferContext{}, err
	}
	return transferContext{}, nil
}

func applyWalletToVault(db *state.Database, op *transactionrecord.TransferWalletToVault, ctx transferContext) (evaluator.Result, error) {
	return evaluator.VoidResult(), move(db, op.From, op.To, op.Amount)
}
