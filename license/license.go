// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package license

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Register - add every license and cycle evaluator to a registry
func Register(r *evaluator.Registry) {
	r.Register(transactionrecord.CreateLicenseTypeTag, evaluator.New(evaluateCreateLicenseType, applyCreateLicenseType))
	r.Register(transactionrecord.IssueLicenseTag, evaluator.New(evaluateIssueLicense, applyIssueLicense))
	r.Register(transactionrecord.UpgradeLicensesTag, evaluator.New(evaluateUpgradeLicenses, applyUpgradeLicenses))
	r.Register(transactionrecord.SubmitLicenseCyclesTag, evaluator.New(evaluateSubmitLicenseCycles, applySubmitLicenseCycles))
	r.Register(transactionrecord.SubmitReserveCyclesTag, evaluator.New(evaluateSubmitReserveCycles, applySubmitReserveCycles))
	r.Register(transactionrecord.IssueFreeCyclesTag, evaluator.New(evaluateIssueFreeCycles, applyIssueFreeCycles))
	r.Register(transactionrecord.UpdateGlobalFrequencyTag, evaluator.New(evaluateUpdateGlobalFrequency, applyUpdateGlobalFrequency))
}

// IsManualSubmit - cycles of this kind are submitted by the holder
func IsManualSubmit(kind protocol.LicenseKind) bool {
	switch kind {
	case protocol.LockedFrequencyLicense, protocol.UtilityLicense, protocol.PackageLicense:
		return true
	default:
		return false
	}
}

// add cycles to the end of the reward queue
func enqueue(db *state.Database, entry state.RewardQueueEntry) (state.RewardQueueEntry, error) {
	entry.Time = db.HeadTime()
	return db.RewardQueue.Create(func(id protocol.ObjectId) state.RewardQueueEntry {
		e := entry
		e.Id = id
		return e
	})
}

// amount of a license after its bonus
func bonusAmount(base int64, bonusPercent int16) (int64, error) {
	bonus, err := protocol.MultiplyShares(base, int64(bonusPercent))
	if nil != err {
		return 0, err
	}
	return protocol.AddShares(base, bonus/100)
}
