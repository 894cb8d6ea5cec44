// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - paying web asset out of the chain
//
// a wire out moves the funds into a holder object; the handler then
// either completes it, burning the supply, or rejects it, returning the
// funds to the account
package wire

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Register - add the wire out evaluators to a registry
func Register(r *evaluator.Registry) {
	r.Register(transactionrecord.WireOutTag, evaluator.New(evaluateWireOut, applyWireOut))
	r.Register(transactionrecord.WireOutCompleteTag, evaluator.New(evaluateComplete, applyComplete))
	r.Register(transactionrecord.WireOutRejectTag, evaluator.New(evaluateReject, applyReject))
}

type wireOutContext struct{}

func evaluateWireOut(db state.Reader, op *transactionrecord.WireOut) (wireOutContext, error) {
	if op.Asset.AssetId != db.GlobalProperties().WebAsset {
		return wireOutContext{}, fault.ErrWrongWebAsset
	}
	if _, err := db.GetAccount(op.Account); nil != err {
		return wireOutContext{}, err
	}
	if db.GetBalance(op.Account, op.Asset.AssetId) < op.Asset.Amount {
		return wireOutContext{}, fault.ErrInsufficientBalance
	}
	return wireOutContext{}, nil
}

func applyWireOut(db *state.Database, op *transactionrecord.WireOut, ctx wireOutContext) (evaluator.Result, error) {
	debit := protocol.NewAmount(-op.Asset.Amount, op.Asset.AssetId)
	if err := db.AdjustBalance(op.Account, debit); nil != err {
		return evaluator.VoidResult(), err
	}
	now := db.HeadTime()
	holder, err := db.WireOutHolders.Create(func(id protocol.ObjectId) state.WireOutHolder {
		return state.WireOutHolder{
			Id:        id,
			Account:   op.Account,
			Asset:     op.Asset,
			Memo:      op.Memo,
			Timestamp: now,
		}
	})
	if nil != err {
		return evaluator.VoidResult(), err
	}
	return evaluator.ObjectResult(holder.Id), nil
}

type holderContext struct {
	holder state.WireOutHolder
	asset  state.Asset
}

// handler authority and an existing holder
func checkHolder(db state.Reader, handler protocol.ObjectId, id protocol.ObjectId) (holderContext, error) {
	if handler != db.GlobalProperties().Authorities.WireOutHandler {
		return holderContext{}, fault.ErrUnauthorisedAuthority
	}
	holder, err := db.GetWireOutHolder(id)
	if nil != err {
		return holderContext{}, err
	}
	a, err := db.GetAsset(holder.Asset.AssetId)
	if nil != err {
		return holderContext{}, err
	}
	return holderContext{holder: holder, asset: a}, nil
}

func evaluateComplete(db state.Reader, op *transactionrecord.WireOutComplete) (holderContext, error) {
	return checkHolder(db, op.WireOutHandler, op.Holder)
}

func applyComplete(db *state.Database, op *transactionrecord.WireOutComplete, ctx holderContext) (evaluator.Result, error) {
	if err := db.AdjustSupply(ctx.asset, -ctx.holder.Asset.Amount); nil != err {
		return evaluator.VoidResult(), err
	}
	return finish(db, ctx.holder, true)
}

func evaluateReject(db state.Reader, op *transactionrecord.WireOutReject) (holderContext, error) {
	return checkHolder(db, op.WireOutHandler, op.Holder)
}

func applyReject(db *state.Database, op *transactionrecord.WireOutReject, ctx holderContext) (evaluator.Result, error) {
	if err := db.AdjustBalance(ctx.holder.Account, ctx.holder.Asset); nil != err {
		return evaluator.VoidResult(), err
	}
	return finish(db, ctx.holder, false)
}

// remove the holder and report the outcome
func finish(db *state.Database, holder state.WireOutHolder, completed bool) (evaluator.Result, error) {
	if err := db.WireOutHolders.Remove(holder.Id); nil != err {
		return evaluator.VoidResult(), err
	}
	db.Emit(&transactionrecord.WireOutResult{
		Account:   holder.Account,
		Amount:    holder.Asset,
		Completed: completed,
		Memo:      holder.Memo,
	})
	return evaluator.VoidResult(), nil
}
