// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package license

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// the outcome of one upgrade step on one record
type upgradeStep struct {
	information protocol.ObjectId
	account     protocol.ObjectId
	index       int
	amount      int64  // new record amount
	queue       int64  // cycles added to the reward queue
	origin      string // queue origin
	free        int64  // cycles credited to the free balance
}

type upgradeContext struct {
	steps []upgradeStep
}

func evaluateUpgradeLicenses(db state.Reader, op *transactionrecord.UpgradeLicenses) (upgradeContext, error) {
	if op.Authority != db.GlobalProperties().Authorities.LicenseAuthority {
		return upgradeContext{}, fault.ErrUnauthorisedAuthority
	}

	ctx := upgradeContext{}
	var err error
	db.EachLicenseInformation(func(information state.LicenseInformation) bool {
		for i, record := range information.History {
			upgrade := record.BalanceUpgrade
			if upgrade.Used >= upgrade.Max {
				continue
			}
			l, e := db.GetLicenseType(record.License)
			if nil != e {
				continue
			}
			step, e := upgradeRecord(l, record)
			if nil != e {
				err = e
				return false
			}
			step.information = information.Id
			step.account = information.Account
			step.index = i
			ctx.steps = append(ctx.steps, step)
		}
		return true
	})
	if nil != err {
		return upgradeContext{}, err
	}
	return ctx, nil
}

// compute one upgrade step according to the license kind
func upgradeRecord(l state.LicenseType, record state.LicenseHistoryRecord) (upgradeStep, error) {
	upgrade := record.BalanceUpgrade
	if int(upgrade.Used) >= len(upgrade.Multipliers) {
		return upgradeStep{}, fault.ErrInvalidBalanceUpgrade
	}
	multiplier := int64(upgrade.Multipliers[upgrade.Used])

	step := upgradeStep{
		amount: record.Amount,
	}
	var err error
	switch l.Kind {
	case protocol.CharteredLicense:
		step.origin = state.OriginCharterLicense
		step.queue, err = protocol.MultiplyShares(record.Amount, multiplier)

	case protocol.LockedFrequencyLicense:
		if protocol.PresidentPolicy == l.Policy {
			var base, extra int64
			base, err = bonusAmount(record.BaseAmount, record.BonusPercent)
			if nil == err {
				extra, err = protocol.MultiplyShares(base, multiplier)
			}
			if nil == err {
				step.amount, err = protocol.AddShares(record.Amount, extra)
			}
		} else {
			step.amount, err = protocol.MultiplyShares(record.Amount, multiplier)
		}

	case protocol.UtilityLicense:
		step.origin = state.OriginUtilityLicense
		step.queue, err = protocol.MultiplyShares(record.BaseAmount, multiplier)

	case protocol.PackageLicense:
		step.origin = state.OriginPackageLicense
		step.queue, err = protocol.MultiplyShares(record.BaseAmount, multiplier)

	case protocol.RegularLicense:
		step.free, err = protocol.MultiplyShares(record.Amount, multiplier)
	}
	if nil != err {
		return upgradeStep{}, err
	}
	return step, nil
}

func applyUpgradeLicenses(db *state.Database, op *transactionrecord.UpgradeLicenses, ctx upgradeContext) (evaluator.Result, error) {
	for _, step := range ctx.steps {
		var license protocol.ObjectId
		var frequency uint32
		err := db.LicenseInformation.Modify(step.information, func(l *state.LicenseInformation) {
			record := &l.History[step.index]
			record.Amount = step.amount
			record.BalanceUpgrade.Used += 1
			license = record.License
			frequency = record.FrequencyLock
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}

		if 0 != step.queue {
			_, err := enqueue(db, state.RewardQueueEntry{
				Origin:    step.origin,
				License:   license,
				Account:   step.account,
				Amount:    step.queue,
				Frequency: frequency,
			})
			if nil != err {
				return evaluator.VoidResult(), err
			}
		}
		if 0 != step.free {
			if err := db.AdjustCycles(step.account, step.free); nil != err {
				return evaluator.VoidResult(), err
			}
		}
	}
	return evaluator.VoidResult(), nil
}
