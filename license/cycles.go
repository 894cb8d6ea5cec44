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

type submitContext struct {
	information protocol.ObjectId
	index       int
	frequency   uint32
}

func evaluateSubmitLicenseCycles(db state.Reader, op *transactionrecord.SubmitLicenseCycles) (submitContext, error) {
	account, err := db.GetAccount(op.Account)
	if nil != err {
		return submitContext{}, err
	}
	if !account.IsVault() {
		return submitContext{}, fault.ErrAccountKindMismatch
	}
	l, err := db.GetLicenseType(op.License)
	if nil != err {
		return submitContext{}, err
	}
	if !IsManualSubmit(l.Kind) {
		return submitContext{}, fault.ErrInvalidLicenseKind
	}

	information, ok := db.FindLicenseInformation(op.Account)
	if !ok {
		return submitContext{}, fault.ErrNotFoundLicenseRecord
	}
	i, ok := information.Find(op.License)
	if !ok {
		return submitContext{}, fault.ErrNotFoundLicenseRecord
	}
	record := information.History[i]
	if op.Amount > record.Amount {
		return submitContext{}, fault.ErrInsufficientCycles
	}

	ctx := submitContext{
		information: information.Id,
		index:       i,
		frequency:   record.FrequencyLock,
	}
	return ctx, nil
}

func applySubmitLicenseCycles(db *state.Database, op *transactionrecord.SubmitLicenseCycles, ctx submitContext) (evaluator.Result, error) {
	err := db.LicenseInformation.Modify(ctx.information, func(l *state.LicenseInformation) {
		l.History[ctx.index].Amount -= op.Amount
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	entry, err := enqueue(db, state.RewardQueueEntry{
		Origin:    state.OriginUserSubmit,
		License:   op.License,
		Account:   op.Account,
		Amount:    op.Amount,
		Frequency: ctx.frequency,
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(entry.Id), nil
}

type accountContext struct{}

// an operation restricted to one chain authority that credits an
// existing account
func checkAuthority(db state.Reader, authority protocol.ObjectId, expected protocol.ObjectId, account protocol.ObjectId) (accountContext, error) {
	if authority != expected {
		return accountContext{}, fault.ErrUnauthorisedAuthority
	}
	if _, err := db.GetAccount(account); nil != err {
		return accountContext{}, err
	}
	return accountContext{}, nil
}

func evaluateSubmitReserveCycles(db state.Reader, op *transactionrecord.SubmitReserveCycles) (accountContext, error) {
	return checkAuthority(db, op.Issuer, db.GlobalProperties().Authorities.CycleIssuer, op.Account)
}

func applySubmitReserveCycles(db *state.Database, op *transactionrecord.SubmitReserveCycles, ctx accountContext) (evaluator.Result, error) {
	entry, err := enqueue(db, state.RewardQueueEntry{
		Origin:    state.OriginReserveCycles,
		Account:   op.Account,
		Amount:    op.Amount,
		Frequency: op.FrequencyLock,
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(entry.Id), nil
}

func evaluateIssueFreeCycles(db state.Reader, op *transactionrecord.IssueFreeCycles) (accountContext, error) {
	return checkAuthority(db, op.Authority, db.GlobalProperties().Authorities.CycleIssuer, op.Account)
}

func applyIssueFreeCycles(db *state.Database, op *transactionrecord.IssueFreeCycles, ctx accountContext) (evaluator.Result, error) {
	return evaluator.VoidResult(), db.AdjustCycles(op.Account, op.Amount)
}

func evaluateUpdateGlobalFrequency(db state.Reader, op *transactionrecord.UpdateGlobalFrequency) (accountContext, error) {
	if op.Authority != db.GlobalProperties().Authorities.LicenseAuthority {
		return accountContext{}, fault.ErrUnauthorisedAuthority
	}
	return accountContext{}, nil
}

func applyUpdateGlobalFrequency(db *state.Database, op *transactionrecord.UpdateGlobalFrequency, ctx accountContext) (evaluator.Result, error) {
	now := db.HeadTime()
	record, err := db.FrequencyHistory.Create(func(id protocol.ObjectId) state.FrequencyHistoryRecord {
		return state.FrequencyHistoryRecord{
			Id:        id,
			Authority: op.Authority,
			Frequency: op.Frequency,
			Time:      now,
			Comment:   op.Comment,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	err = db.ModifyDynamic(func(d *state.DynamicGlobalProperties) {
		d.Frequency = op.Frequency
		d.LastFrequencyUpdate = now
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(record.Id), nil
}
