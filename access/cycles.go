// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/bitmark-inc/ledgerd/license"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// CycleAgreement - an amount of cycles at a frequency, zero frequency
// for free cycles
type CycleAgreement struct {
	Cycles        int64  `json:"cycles"`
	FrequencyLock uint32 `json:"frequency_lock"`
}

// AllCycleBalances - free cycles first then every reward queue entry
// of the account, nil if the account is unknown
func (a *Access) AllCycleBalances(id protocol.ObjectId) *[]CycleAgreement {
	var result *[]CycleAgreement
	a.view(func(db *state.Database) {
		result = allCycles(db, id)
	})
	return result
}

// AllCycleBalancesForAccounts - AllCycleBalances for several accounts
func (a *Access) AllCycleBalancesForAccounts(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, []CycleAgreement] {
	var result []Keyed[protocol.ObjectId, []CycleAgreement]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *[]CycleAgreement {
			return allCycles(db, id)
		})
	})
	return result
}

func allCycles(db *state.Database, id protocol.ObjectId) *[]CycleAgreement {
	if _, ok := db.Accounts.Find(id); !ok {
		return nil
	}
	result := []CycleAgreement{{
		Cycles:        db.GetCycleBalance(id),
		FrequencyLock: 0,
	}}
	db.RewardQueueByAccount.Prefix(queueKey(id), func(entry state.RewardQueueEntry) bool {
		result = append(result, CycleAgreement{
			Cycles:        entry.Amount,
			FrequencyLock: entry.Frequency,
		})
		return true
	})
	return &result
}

// TotalCycles - cycles held by the manually submitted licenses of a
// vault, nil unless the account is a vault holding licenses
func (a *Access) TotalCycles(id protocol.ObjectId) *license.Cycles {
	var result *license.Cycles
	a.view(func(db *state.Database) {
		information, ok := vaultLicenses(db, id)
		if !ok {
			return
		}
		total := license.TotalCycles(information.History, lookup(db))
		result = &total
	})
	return result
}

// QueueState - projection of the reward queue contributions of a
// vault, nil unless the account is a vault holding licenses
func (a *Access) QueueState(id protocol.ObjectId) *license.QueueProjection {
	var result *license.QueueProjection
	a.view(func(db *state.Database) {
		result = queueState(db, id)
	})
	return result
}

// QueueStateForAccounts - QueueState for several accounts
func (a *Access) QueueStateForAccounts(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, license.QueueProjection] {
	var result []Keyed[protocol.ObjectId, license.QueueProjection]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *license.QueueProjection {
			return queueState(db, id)
		})
	})
	return result
}

func queueState(db *state.Database, id protocol.ObjectId) *license.QueueProjection {
	information, ok := vaultLicenses(db, id)
	if !ok {
		return nil
	}
	account, _ := db.Accounts.Find(id)
	projection := license.Project(information.History, 0 != len(account.Tethered), lookup(db))
	return &projection
}

// license records of a vault
func vaultLicenses(db *state.Database, id protocol.ObjectId) (state.LicenseInformation, bool) {
	account, ok := db.Accounts.Find(id)
	if !ok || !account.IsVault() {
		return state.LicenseInformation{}, false
	}
	return db.FindLicenseInformation(id)
}

func lookup(db *state.Database) license.Lookup {
	return db.LicenseTypes.Find
}
