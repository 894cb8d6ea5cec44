// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/asset"
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/license"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
	"github.com/bitmark-inc/ledgerd/transfer"
	"github.com/bitmark-inc/ledgerd/wire"
)

// Options - processing switches
type Options struct {
	// accept transactions without checking signatures, for replay of
	// an already validated chain
	SkipSignatures bool
}

// Ledger - the object database and everything that writes to it
type Ledger struct {
	sync.RWMutex

	db       *state.Database
	registry *evaluator.Registry
	store    *storage.Store
	options  Options
	log      *logger.L

	// applied but not yet in a block
	pendingSession      *objectstore.Session
	pendingTransactions []*transactionrecord.SignedTransaction
	pendingOperations   []AppliedOperation
}

// NewRegistry - a registry holding every client operation
func NewRegistry() *evaluator.Registry {
	r := evaluator.NewRegistry()
	transfer.Register(r)
	asset.Register(r)
	license.Register(r)
	wire.Register(r)
	return r
}

// New - a ledger over an initialised database
//
// store may be nil, then blocks are not kept
func New(db *state.Database, store *storage.Store, options Options) *Ledger {
	return &Ledger{
		db:       db,
		registry: NewRegistry(),
		store:    store,
		options:  options,
		log:      logger.New("ledger"),
	}
}

// Open - restore the ledger from its last checkpoint, or create it
// from genesis if the store is empty
func Open(store *storage.Store, genesis state.Genesis, options Options) (*Ledger, error) {
	log := logger.New("ledger")

	db := state.New()
	head, found, err := restore(store, db)
	if nil != err {
		log.Criticalf("restore failed: %s", err)
		return nil, err
	}

	l := &Ledger{
		db:       db,
		registry: NewRegistry(),
		store:    store,
		options:  options,
		log:      log,
	}

	if found {
		log.Infof("restored at block: %d", head)
		return l, nil
	}

	err = db.Initialise(genesis)
	if nil != err {
		log.Criticalf("genesis failed: %s", err)
		return nil, err
	}
	err = l.persist(nil, nil)
	if nil != err {
		return nil, err
	}
	log.Info("created from genesis")
	return l, nil
}

// Restore - open a ledger from the last checkpoint of an existing
// store, never creating one
func Restore(store *storage.Store, options Options) (*Ledger, error) {
	db := state.New()
	head, found, err := restore(store, db)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrNotFoundCheckpoint
	}
	l := New(db, store, options)
	l.log.Infof("restored at block: %d", head)
	return l, nil
}

// View - run a function with read access to the database
//
// the function must not modify the database or keep references to it
func (l *Ledger) View(f func(db *state.Database)) {
	l.RLock()
	defer l.RUnlock()
	f(l.db)
}

// Head - number and digest of the last block
func (l *Ledger) Head() (uint64, merkle.Digest) {
	l.RLock()
	defer l.RUnlock()
	d := l.db.DynamicProperties()
	return d.HeadBlockNumber, d.HeadBlockId
}

// PendingCount - transactions waiting for the next block
func (l *Ledger) PendingCount() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.pendingTransactions)
}

// IsPending - true if a transaction is waiting for the next block
func (l *Ledger) IsPending(txId merkle.Digest) bool {
	l.RLock()
	defer l.RUnlock()
	for _, stx := range l.pendingTransactions {
		id, err := stx.Id()
		if nil == err && id == txId {
			return true
		}
	}
	return false
}
