// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// GlobalProperties - chain constants and parameters
func (a *Access) GlobalProperties() state.GlobalProperties {
	var result state.GlobalProperties
	a.view(func(db *state.Database) {
		result = db.GlobalProperties().Clone()
	})
	return result
}

// DynamicProperties - head block and time
func (a *Access) DynamicProperties() state.DynamicGlobalProperties {
	var result state.DynamicGlobalProperties
	a.view(func(db *state.Database) {
		result = db.DynamicProperties()
	})
	return result
}

// Accounts - accounts by id, nil for unknown ids
func (a *Access) Accounts(ids []protocol.ObjectId) []*state.Account {
	result := make([]*state.Account, 0, len(ids))
	a.view(func(db *state.Database) {
		for _, id := range ids {
			account, ok := db.Accounts.Find(id)
			result = append(result, found(account.Clone(), ok))
		}
	})
	return result
}

// LookupAccountNames - accounts by name, nil for unknown names
func (a *Access) LookupAccountNames(names []string) []*state.Account {
	result := make([]*state.Account, 0, len(names))
	a.view(func(db *state.Database) {
		for _, name := range names {
			account, ok := db.FindAccountByName(name)
			result = append(result, found(account.Clone(), ok))
		}
	})
	return result
}

// AccountByName - a single account by name
func (a *Access) AccountByName(name string) (state.Account, bool) {
	var account state.Account
	ok := false
	a.view(func(db *state.Database) {
		account, ok = db.FindAccountByName(name)
		account = account.Clone()
	})
	return account, ok
}

// AccountCount - number of accounts
func (a *Access) AccountCount() int {
	n := 0
	a.view(func(db *state.Database) {
		n = db.Accounts.Size()
	})
	return n
}

// AccountBalances - balances of an account
//
// every non-zero balance when assets is empty, otherwise one entry
// per requested asset with zero for assets the account does not hold
func (a *Access) AccountBalances(id protocol.ObjectId, assets []protocol.ObjectId) []protocol.Amount {
	var result []protocol.Amount
	a.view(func(db *state.Database) {
		result = balances(db, id, assets)
	})
	return result
}

// AccountBalancesForAccounts - AccountBalances for several accounts,
// nil for unknown accounts
func (a *Access) AccountBalancesForAccounts(ids []protocol.ObjectId, assets []protocol.ObjectId) []Keyed[protocol.ObjectId, []protocol.Amount] {
	var result []Keyed[protocol.ObjectId, []protocol.Amount]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *[]protocol.Amount {
			if _, ok := db.Accounts.Find(id); !ok {
				return nil
			}
			b := balances(db, id, assets)
			return &b
		})
	})
	return result
}

func balances(db *state.Database, id protocol.ObjectId, assets []protocol.ObjectId) []protocol.Amount {
	result := []protocol.Amount{}
	if 0 == len(assets) {
		db.BalancesByOwner.Prefix(objectstore.Composite{id}, func(b state.AccountBalance) bool {
			if 0 != b.Balance {
				result = append(result, protocol.Amount{Amount: b.Balance, AssetId: b.Asset})
			}
			return true
		})
		return result
	}
	for _, asset := range assets {
		result = append(result, protocol.Amount{
			Amount:  db.GetBalance(id, asset),
			AssetId: asset,
		})
	}
	return result
}

// FreeCycleBalance - free cycles of an account, nil if the account
// never held any
func (a *Access) FreeCycleBalance(id protocol.ObjectId) *int64 {
	var result *int64
	a.view(func(db *state.Database) {
		result = freeCycles(db, id)
	})
	return result
}

// FreeCycleBalancesForAccounts - FreeCycleBalance for several
// accounts
func (a *Access) FreeCycleBalancesForAccounts(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, int64] {
	var result []Keyed[protocol.ObjectId, int64]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *int64 {
			return freeCycles(db, id)
		})
	})
	return result
}

func freeCycles(db *state.Database, id protocol.ObjectId) *int64 {
	c, ok := db.CycleBalancesByAccount.Find(id)
	return found(c.Balance, ok)
}

// DascoinBalance - settlement coin balance, nil if the account never
// held any
func (a *Access) DascoinBalance(id protocol.ObjectId) *int64 {
	var result *int64
	a.view(func(db *state.Database) {
		result = dascoin(db, id)
	})
	return result
}

// DascoinBalancesForAccounts - DascoinBalance for several accounts
func (a *Access) DascoinBalancesForAccounts(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, int64] {
	var result []Keyed[protocol.ObjectId, int64]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *int64 {
			return dascoin(db, id)
		})
	})
	return result
}

func dascoin(db *state.Database, id protocol.ObjectId) *int64 {
	b, ok := db.FindBalance(id, db.GlobalProperties().DascoinAsset)
	return found(b.Balance, ok)
}
