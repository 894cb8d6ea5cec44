// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/protocol"
)

// LicenseType - a kind of license that can be issued to vaults
type LicenseType struct {
	Id                 ObjectId               `json:"id"`
	Name               string                 `json:"name"`
	Amount             int64                  `json:"amount"`
	Kind               protocol.LicenseKind   `json:"kind"`
	Policy             protocol.UpgradePolicy `json:"upgrade_policy"`
	BalanceMultipliers []uint32               `json:"balance_multipliers"`
	EurLimit           int64                  `json:"eur_limit"`
}

// ObjectID - index identity
func (l LicenseType) ObjectID() ObjectId { return l.Id }

// Clone - deep copy
func (l LicenseType) Clone() LicenseType {
	l.BalanceMultipliers = append([]uint32(nil), l.BalanceMultipliers...)
	return l
}

// LicenseHistoryRecord - one license held by an account
type LicenseHistoryRecord struct {
	License              ObjectId                `json:"license"`
	Amount               int64                   `json:"amount"`
	BaseAmount           int64                   `json:"base_amount"`
	BonusPercent         int16                   `json:"bonus_percent"`
	FrequencyLock        uint32                  `json:"frequency_lock"`
	IssuedAt             int64                   `json:"issued_at"`
	ActivatedAt          int64                   `json:"activated_at"`
	BalanceUpgrade       protocol.BalanceUpgrade `json:"balance_upgrade"`
	NonUpgradeableAmount int64                   `json:"non_upgradeable_amount"`
}

// Clone - deep copy
func (r LicenseHistoryRecord) Clone() LicenseHistoryRecord {
	r.BalanceUpgrade = r.BalanceUpgrade.Clone()
	return r
}

// LicenseInformation - every license an account holds
type LicenseInformation struct {
	Id      ObjectId               `json:"id"`
	Account ObjectId               `json:"account_id"`
	History []LicenseHistoryRecord `json:"history"`
}

// ObjectID - index identity
func (l LicenseInformation) ObjectID() ObjectId { return l.Id }

// Clone - deep copy
func (l LicenseInformation) Clone() LicenseInformation {
	history := make([]LicenseHistoryRecord, len(l.History))
	for i, r := range l.History {
		history[i] = r.Clone()
	}
	l.History = history
	return l
}

// Find - index of the record for a license type
func (l LicenseInformation) Find(license ObjectId) (int, bool) {
	for i, r := range l.History {
		if r.License == license {
			return i, true
		}
	}
	return -1, false
}

// reward queue origins
const (
	OriginCharterLicense = "charter_license"
	OriginUtilityLicense = "utility_license"
	OriginPackageLicense = "package_license"
	OriginUserSubmit     = "user_submit"
	OriginReserveCycles  = "reserve_cycles"
)

// RewardQueueEntry - cycles waiting to be converted to the settlement coin
type RewardQueueEntry struct {
	Id        ObjectId `json:"id"`
	Origin    string   `json:"origin"`
	License   ObjectId `json:"license"`
	Account   ObjectId `json:"account"`
	Amount    int64    `json:"amount"`
	Frequency uint32   `json:"frequency"`
	Time      int64    `json:"time"`
}

// ObjectID - index identity
func (r RewardQueueEntry) ObjectID() ObjectId { return r.Id }

// Clone - no reference fields
func (r RewardQueueEntry) Clone() RewardQueueEntry { return r }

// FrequencyHistoryRecord - a change of the global frequency
type FrequencyHistoryRecord struct {
	Id        ObjectId `json:"id"`
	Authority ObjectId `json:"authority"`
	Frequency uint32   `json:"frequency"`
	Time      int64    `json:"time"`
	Comment   string   `json:"comment"`
}

// ObjectID - index identity
func (f FrequencyHistoryRecord) ObjectID() ObjectId { return f.Id }

// Clone - no reference fields
func (f FrequencyHistoryRecord) Clone() FrequencyHistoryRecord { return f }
