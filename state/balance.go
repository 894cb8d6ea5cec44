// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
)

// AdjustBalance - add a signed amount to an account's cash balance
//
// the balance object is created on first credit; a debit that would
// make it negative fails without change
func (db *Database) AdjustBalance(owner ObjectId, delta protocol.Amount) error {
	return db.adjust(owner, delta, func(b *AccountBalance) *int64 { return &b.Balance })
}

// AdjustReserved - add a signed amount to an account's reserved balance
func (db *Database) AdjustReserved(owner ObjectId, delta protocol.Amount) error {
	return db.adjust(owner, delta, func(b *AccountBalance) *int64 { return &b.Reserved })
}

// AddSpent - record a vault withdrawal against the interval limit
func (db *Database) AddSpent(owner ObjectId, asset ObjectId, amount int64) error {
	return db.adjust(owner, protocol.NewAmount(amount, asset), func(b *AccountBalance) *int64 { return &b.Spent })
}

func (db *Database) adjust(owner ObjectId, delta protocol.Amount, field func(*AccountBalance) *int64) error {
	if 0 == delta.Amount {
		return nil
	}
	current, ok := db.FindBalance(owner, delta.AssetId)
	if !ok {
		current = AccountBalance{
			Owner: owner,
			Asset: delta.AssetId,
		}
	}
	n, err := protocol.AddShares(*field(&current), delta.Amount)
	if nil != err {
		return err
	}
	if n < 0 {
		return fault.ErrInsufficientBalance
	}
	if n > protocol.MaxShareSupply {
		return fault.ErrSupplyExceedsMaximum
	}

	if !ok {
		_, err := db.Balances.Create(func(id ObjectId) AccountBalance {
			b := current
			b.Id = id
			*field(&b) = n
			return b
		})
		return err
	}
	return db.Balances.Modify(current.Id, func(b *AccountBalance) {
		*field(b) = n
	})
}

// AdjustCycles - add a signed amount to an account's free cycles
func (db *Database) AdjustCycles(account ObjectId, delta int64) error {
	if 0 == delta {
		return nil
	}
	current, ok := db.CycleBalancesByAccount.Find(account)
	n, err := protocol.AddShares(current.Balance, delta)
	if nil != err {
		return err
	}
	if n < 0 {
		return fault.ErrInsufficientBalance
	}
	if !ok {
		_, err := db.CycleBalances.Create(func(id ObjectId) CycleBalance {
			return CycleBalance{
				Id:      id,
				Account: account,
				Balance: n,
			}
		})
		return err
	}
	return db.CycleBalances.Modify(current.Id, func(c *CycleBalance) {
		c.Balance = n
	})
}

// AdjustSupply - change the current supply of an asset within its
// maximum
func (db *Database) AdjustSupply(asset Asset, delta int64) error {
	dynamic, err := db.GetDynamicData(asset)
	if nil != err {
		return err
	}
	n, err := protocol.AddShares(dynamic.CurrentSupply, delta)
	if nil != err {
		return err
	}
	if n < 0 {
		return fault.ErrSupplyNegative
	}
	if n > asset.Options.MaxSupply {
		return fault.ErrSupplyExceedsMaximum
	}
	return db.DynamicData.Modify(dynamic.Id, func(d *AssetDynamicData) {
		d.CurrentSupply = n
	})
}

// ResetSpent - start a new vault spending interval
func (db *Database) ResetSpent() error {
	for _, b := range db.Balances.All() {
		if 0 == b.Spent {
			continue
		}
		if err := db.Balances.Modify(b.Id, func(x *AccountBalance) { x.Spent = 0 }); nil != err {
			return err
		}
	}
	return nil
}
