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

type createContext struct{}

func evaluateCreateLicenseType(db state.Reader, op *transactionrecord.CreateLicenseType) (createContext, error) {
	if op.Authority != db.GlobalProperties().Authorities.LicenseAuthority {
		return createContext{}, fault.ErrUnauthorisedAuthority
	}
	if _, ok := db.FindLicenseTypeByName(op.Name); ok {
		return createContext{}, fault.ErrLicenseNameExists
	}
	return createContext{}, nil
}

func applyCreateLicenseType(db *state.Database, op *transactionrecord.CreateLicenseType, ctx createContext) (evaluator.Result, error) {
	l, err := db.LicenseTypes.Create(func(id protocol.ObjectId) state.LicenseType {
		return state.LicenseType{
			Id:                 id,
			Name:               op.Name,
			Amount:             op.Amount,
			Kind:               op.Kind,
			Policy:             op.Policy,
			BalanceMultipliers: append([]uint32(nil), op.BalanceMultipliers...),
			EurLimit:           op.EurLimit,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(l.Id), nil
}

type issueContext struct {
	license     state.LicenseType
	information state.LicenseInformation
	exists      bool
	amount      int64
}

func evaluateIssueLicense(db state.Reader, op *transactionrecord.IssueLicense) (issueContext, error) {
	if op.Issuer != db.GlobalProperties().Authorities.LicenseIssuer {
		return issueContext{}, fault.ErrUnauthorisedAuthority
	}
	account, err := db.GetAccount(op.Account)
	if nil != err {
		return issueContext{}, err
	}
	if !account.IsVault() {
		return issueContext{}, fault.ErrAccountKindMismatch
	}
	l, err := db.GetLicenseType(op.License)
	if nil != err {
		return issueContext{}, err
	}

	ctx := issueContext{
		license: l,
	}
	ctx.information, ctx.exists = db.FindLicenseInformation(op.Account)
	if ctx.exists {
		if _, found := ctx.information.Find(op.License); found {
			return issueContext{}, fault.ErrLicenseAlreadyIssued
		}
	}

	ctx.amount, err = bonusAmount(l.Amount, op.BonusPercent)
	if nil != err {
		return issueContext{}, err
	}
	return ctx, nil
}

func applyIssueLicense(db *state.Database, op *transactionrecord.IssueLicense, ctx issueContext) (evaluator.Result, error) {
	now := db.HeadTime()
	record := state.LicenseHistoryRecord{
		License:        op.License,
		Amount:         ctx.amount,
		BaseAmount:     ctx.license.Amount,
		BonusPercent:   op.BonusPercent,
		FrequencyLock:  op.FrequencyLock,
		IssuedAt:       now,
		ActivatedAt:    op.ActivatedAt,
		BalanceUpgrade: protocol.NewBalanceUpgrade(ctx.license.BalanceMultipliers),
	}

	id := ctx.information.Id
	if ctx.exists {
		err := db.LicenseInformation.Modify(id, func(l *state.LicenseInformation) {
			l.History = append(l.History, record)
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
	} else {
		information, err := db.LicenseInformation.Create(func(id protocol.ObjectId) state.LicenseInformation {
			return state.LicenseInformation{
				Id:      id,
				Account: op.Account,
				History: []state.LicenseHistoryRecord{record},
			}
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
		id = information.Id
	}

	switch ctx.license.Kind {
	case protocol.CharteredLicense:
		_, err := enqueue(db, state.RewardQueueEntry{
			Origin:    state.OriginCharterLicense,
			License:   op.License,
			Account:   op.Account,
			Amount:    ctx.amount,
			Frequency: op.FrequencyLock,
		})
		if nil != err {
			return evaluator.VoidResult(), err
		}
	case protocol.RegularLicense:
		if err := db.AdjustCycles(op.Account, ctx.amount); nil != err {
			return evaluator.VoidResult(), err
		}
	}
	return evaluator.ObjectResult(id), nil
}
