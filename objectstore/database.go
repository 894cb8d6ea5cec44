// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// Object - anything stored in an index
type Object interface {
	ObjectID() ObjectId
}

// Record - an object that can produce an independent copy of itself
//
// the copy must not share maps or slices with the original
type Record[T any] interface {
	Object
	Clone() T
}

// Persistent - the type erased view of an index used for generic
// lookups and for checkpointing to storage
type Persistent interface {
	Name() string
	Space() uint8
	Type() uint8
	Size() int
	NextInstance() uint64
	FindObject(instance uint64) (Object, bool)
	Marshal(instance uint64) ([]byte, bool, error)
	Load(next uint64, records [][]byte) error
	Dirty() []uint64
	ClearDirty()
}

// Database - the set of registered indices and the undo stack
type Database struct {
	indices  map[uint16]Persistent
	order    []Persistent
	sessions []*Session
}

// New - create an empty database
func New() *Database {
	return &Database{
		indices: make(map[uint16]Persistent),
	}
}

// Indices - all registered indices in registration order
func (db *Database) Indices() []Persistent {
	return db.order
}

// FindObject - look up an object of any registered type
func (db *Database) FindObject(id ObjectId) (Object, bool) {
	index, ok := db.indices[id.typeKey()]
	if !ok {
		return nil, false
	}
	return index.FindObject(id.Instance)
}

// Exists - true if the id refers to a live object
func (db *Database) Exists(id ObjectId) bool {
	_, ok := db.FindObject(id)
	return ok
}

func (db *Database) register(index Persistent) {
	key := uint16(index.Space())<<8 | uint16(index.Type())
	if _, ok := db.indices[key]; ok {
		fault.Panicf("objectstore: duplicate index: %s  %d.%d", index.Name(), index.Space(), index.Type())
	}
	db.indices[key] = index
	db.order = append(db.order, index)
}

// record an undo action in the innermost open session
func (db *Database) onUndo(action func()) {
	if n := len(db.sessions); n > 0 {
		s := db.sessions[n-1]
		s.actions = append(s.actions, action)
	}
}

// Session - a group of mutations that can be rolled back
type Session struct {
	db      *Database
	actions []func()
	done    bool
}

// StartUndoSession - begin recording mutations
//
// sessions nest: committing an inner session hands its undo records
// to the enclosing one
func (db *Database) StartUndoSession() *Session {
	s := &Session{
		db: db,
	}
	db.sessions = append(db.sessions, s)
	return s
}

// Depth - number of open sessions
func (db *Database) Depth() int {
	return len(db.sessions)
}

// Undo - revert every mutation recorded by this session
func (s *Session) Undo() {
	s.close()
	for i := len(s.actions) - 1; i >= 0; i -= 1 {
		s.actions[i]()
	}
	s.actions = nil
}

// Commit - keep the mutations
func (s *Session) Commit() {
	s.close()
	if n := len(s.db.sessions); n > 0 {
		parent := s.db.sessions[n-1]
		parent.actions = append(parent.actions, s.actions...)
	}
	s.actions = nil
}

func (s *Session) close() {
	if s.done {
		fault.Panicf("objectstore: session already closed")
	}
	n := len(s.db.sessions)
	if 0 == n || s.db.sessions[n-1] != s {
		fault.Panicf("objectstore: session closed out of order, depth: %d", n)
	}
	s.db.sessions = s.db.sessions[:n-1]
	s.done = true
}
