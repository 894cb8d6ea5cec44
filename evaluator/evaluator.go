// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package evaluator - the two phase protocol every operation follows
//
// Evaluate checks an operation against a read only view and returns
// whatever it looked up; Apply then mutates the database using that
// context and must not fail for any reason Evaluate could have
// detected. A context is only valid against the state it was
// evaluated on, so each operation is applied before the next one is
// evaluated.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Context - data passed from Evaluate to Apply
type Context interface{}

// Evaluator - the protocol for one operation type
type Evaluator interface {
	Evaluate(db state.Reader, op transactionrecord.Operation) (Context, error)
	Apply(db *state.Database, op transactionrecord.Operation, ctx Context) (Result, error)
}

// Typed - an evaluator built from two functions over the concrete
// operation and context types
type Typed[O transactionrecord.Operation, C any] struct {
	evaluate func(state.Reader, O) (C, error)
	apply    func(*state.Database, O, C) (Result, error)
}

// New - wrap a pair of typed functions as an Evaluator
func New[O transactionrecord.Operation, C any](
	evaluate func(state.Reader, O) (C, error),
	apply func(*state.Database, O, C) (Result, error),
) *Typed[O, C] {
	return &Typed[O, C]{
		evaluate: evaluate,
		apply:    apply,
	}
}

// Evaluate - check the operation
func (t *Typed[O, C]) Evaluate(db state.Reader, op transactionrecord.Operation) (Context, error) {
	o, ok := op.(O)
	if !ok {
		return nil, fmt.Errorf("%w: %s", fault.ErrUnknownOperation, transactionrecord.RecordName(op))
	}
	return t.evaluate(db, o)
}

// Apply - mutate the database
func (t *Typed[O, C]) Apply(db *state.Database, op transactionrecord.Operation, ctx Context) (Result, error) {
	o, ok := op.(O)
	if !ok {
		return VoidResult(), fmt.Errorf("%w: %s", fault.ErrUnknownOperation, transactionrecord.RecordName(op))
	}
	c, ok := ctx.(C)
	if !ok {
		return VoidResult(), fmt.Errorf("%w: context for %s", fault.ErrApplyFailed, transactionrecord.RecordName(op))
	}
	return t.apply(db, o, c)
}

// Registry - evaluators keyed by operation tag
type Registry struct {
	evaluators map[transactionrecord.TagType]Evaluator
}

// NewRegistry - an empty registry
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[transactionrecord.TagType]Evaluator),
	}
}

// Register - attach the evaluator for a tag
func (r *Registry) Register(tag transactionrecord.TagType, e Evaluator) {
	if transactionrecord.IsVirtual(tag) || !tag.IsValid() {
		fault.Panicf("evaluator: cannot register: %s", tag)
	}
	if _, ok := r.evaluators[tag]; ok {
		fault.Panicf("evaluator: duplicate registration: %s", tag)
	}
	r.evaluators[tag] = e
}

// Lookup - the evaluator for a tag
func (r *Registry) Lookup(tag transactionrecord.TagType) (Evaluator, error) {
	e, ok := r.evaluators[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", fault.ErrOperationNotRegistered, tag)
	}
	return e, nil
}

// Registered - number of registered operation types
func (r *Registry) Registered() int {
	return len(r.evaluators)
}

// Evaluate - dispatch to the registered evaluator
func (r *Registry) Evaluate(db state.Reader, op transactionrecord.Operation) (Context, error) {
	e, err := r.Lookup(op.Tag())
	if nil != err {
		return nil, err
	}
	return e.Evaluate(db, op)
}

// Apply - dispatch to the registered evaluator
func (r *Registry) Apply(db *state.Database, op transactionrecord.Operation, ctx Context) (Result, error) {
	e, err := r.Lookup(op.Tag())
	if nil != err {
		return VoidResult(), err
	}
	return e.Apply(db, op, ctx)
}

// Process - evaluate op against the current state and apply it
//
// an apply failure wraps fault.ErrApplyFailed, the caller must undo
// its session
func (r *Registry) Process(db *state.Database, op transactionrecord.Operation) (Result, error) {
	e, err := r.Lookup(op.Tag())
	if nil != err {
		return VoidResult(), err
	}
	ctx, err := e.Evaluate(db, op)
	if nil != err {
		return VoidResult(), err
	}
	result, err := e.Apply(db, op, ctx)
	if nil != err {
		if errors.Is(err, fault.ErrApplyFailed) {
			return VoidResult(), err
		}
		return VoidResult(), fmt.Errorf("%w: %s", fault.ErrApplyFailed, err)
	}
	return result, nil
}
