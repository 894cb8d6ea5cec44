// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/asset"
	"github.com/bitmark-inc/ledgerd/state"
)

// end of block processing, runs with the head time of the new block
func (l *Ledger) maintenance() error {
	db := l.db

	err := clearExpiredTransactions(db)
	if nil != err {
		return err
	}
	err = asset.UpdateExpiredFeeds(db)
	if nil != err {
		return err
	}
	err = asset.ProcessSettlements(db)
	if nil != err {
		return err
	}

	dynamic := db.DynamicProperties()
	interval := int64(db.Parameters().MaintenanceInterval)
	if 0 == interval || dynamic.Time < dynamic.NextMaintenanceTime {
		return nil
	}

	err = db.ResetSpent()
	if nil != err {
		return err
	}
	err = asset.ResetForceSettledVolume(db)
	if nil != err {
		return err
	}

	// skip any intervals that passed without a block
	next := dynamic.NextMaintenanceTime
	next += ((dynamic.Time-next)/interval + 1) * interval

	l.log.Infof("maintenance at: %d  next: %d", dynamic.Time, next)
	return db.ModifyDynamic(func(d *state.DynamicGlobalProperties) {
		d.NextMaintenanceTime = next
	})
}

// forget applied transactions that can no longer be replayed
func clearExpiredTransactions(db *state.Database) error {
	now := db.HeadTime()

	expired := []state.TransactionRecord{}
	db.TransactionsByExpiration.Each(func(t state.TransactionRecord) bool {
		if t.Expiration >= now {
			return false
		}
		expired = append(expired, t)
		return true
	})
	for _, t := range expired {
		if err := db.Transactions.Remove(t.Id); nil != err {
			return err
		}
	}
	return nil
}
