// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Execute - validate, evaluate and apply a single operation inside an
// undo session, leaving the database unchanged on any failure
func Execute(db *state.Database, r *evaluator.Registry, op transactionrecord.Operation) (evaluator.Result, error) {
	if err := op.Validate(); nil != err {
		return evaluator.VoidResult(), err
	}

	session := db.StartUndoSession()
	mark := db.VirtualMark()

	ctx, err := r.Evaluate(db, op)
	if nil != err {
		session.Undo()
		return evaluator.VoidResult(), err
	}
	result, err := r.Apply(db, op, ctx)
	if nil != err {
		session.Undo()
		db.RollbackVirtual(mark)
		return evaluator.VoidResult(), err
	}
	session.Commit()
	return result, nil
}

// ExecuteAll - run operations in order as one transaction, each
// evaluated against the state the previous ones left
func ExecuteAll(db *state.Database, r *evaluator.Registry, operations ...transactionrecord.Operation) ([]evaluator.Result, error) {
	for _, op := range operations {
		if err := op.Validate(); nil != err {
			return nil, err
		}
	}

	session := db.StartUndoSession()
	mark := db.VirtualMark()

	results := make([]evaluator.Result, 0, len(operations))
	for _, op := range operations {
		result, err := r.Process(db, op)
		if nil != err {
			session.Undo()
			db.RollbackVirtual(mark)
			return nil, err
		}
		results = append(results, result)
	}
	session.Commit()
	return results, nil
}

// SetTime - move the head block time
func SetTime(db *state.Database, now int64) {
	err := db.ModifyDynamic(func(d *state.DynamicGlobalProperties) {
		d.Time = now
	})
	fault.PanicIfError("fixtures: set time", err)
}
