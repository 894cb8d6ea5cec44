// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// ObjectId - shorthand
type ObjectId = protocol.ObjectId

// Account - a registered account
//
// a vault has at most one tethered wallet; a wallet lists every vault
// tethered to it
type Account struct {
	Id                   ObjectId             `json:"id"`
	Name                 string               `json:"name"`
	Kind                 protocol.AccountKind `json:"kind"`
	Registrar            ObjectId             `json:"registrar"`
	ActiveKey            account.PublicKey    `json:"active_key"`
	Tethered             []ObjectId           `json:"tethered_accounts"`
	WhitelistingAccounts []ObjectId           `json:"whitelisting_accounts"`
	BlacklistingAccounts []ObjectId           `json:"blacklisting_accounts"`
}

// ObjectID - index identity
func (a Account) ObjectID() ObjectId { return a.Id }

// Clone - deep copy
func (a Account) Clone() Account {
	a.ActiveKey = append(account.PublicKey(nil), a.ActiveKey...)
	a.Tethered = cloneIds(a.Tethered)
	a.WhitelistingAccounts = cloneIds(a.WhitelistingAccounts)
	a.BlacklistingAccounts = cloneIds(a.BlacklistingAccounts)
	return a
}

// IsVault - account kind test
func (a Account) IsVault() bool { return protocol.Vault == a.Kind }

// IsWallet - account kind test
func (a Account) IsWallet() bool { return protocol.Wallet == a.Kind }

// IsCustodian - account kind test
func (a Account) IsCustodian() bool { return protocol.Custodian == a.Kind }

// IsTetheredTo - true if other appears in the tether list
func (a Account) IsTetheredTo(other ObjectId) bool {
	return containsId(a.Tethered, other)
}

// TetheredWallet - the parent wallet of a vault
func (a Account) TetheredWallet() (ObjectId, bool) {
	if !a.IsVault() || 0 == len(a.Tethered) {
		return ObjectId{}, false
	}
	return a.Tethered[0], true
}

// AccountBalance - an account's holding of one asset
//
// reserved is held for later release and is not spendable; spent and
// limit track vault withdrawals in the current maintenance interval
type AccountBalance struct {
	Id       ObjectId `json:"id"`
	Owner    ObjectId `json:"owner"`
	Asset    ObjectId `json:"asset_type"`
	Balance  int64    `json:"balance"`
	Reserved int64    `json:"reserved"`
	Spent    int64    `json:"spent"`
	Limit    int64    `json:"limit"`
}

// ObjectID - index identity
func (b AccountBalance) ObjectID() ObjectId { return b.Id }

// Clone - no reference fields
func (b AccountBalance) Clone() AccountBalance { return b }

// Amount - the cash balance as an amount
func (b AccountBalance) Amount() protocol.Amount {
	return protocol.NewAmount(b.Balance, b.Asset)
}

// CycleBalance - free cycles held by an account
type CycleBalance struct {
	Id      ObjectId `json:"id"`
	Account ObjectId `json:"account"`
	Balance int64    `json:"balance"`
}

// ObjectID - index identity
func (c CycleBalance) ObjectID() ObjectId { return c.Id }

// Clone - no reference fields
func (c CycleBalance) Clone() CycleBalance { return c }

func cloneIds(ids []ObjectId) []ObjectId {
	if nil == ids {
		return nil
	}
	return append([]ObjectId(nil), ids...)
}

func containsId(ids []ObjectId, id ObjectId) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
