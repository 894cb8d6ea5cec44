// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bitmark-inc/ledgerd/avl"
	"github.com/bitmark-inc/ledgerd/fault"
)

// Index - the authoritative collection of one object type
type Index[T Record[T]] struct {
	name      string
	space     uint8
	kind      uint8
	next      uint64
	objects   map[uint64]T
	byId      *avl.Tree
	orderings []*Ordering[T]
	db        *Database
	dirty     map[uint64]struct{}
}

// NewIndex - create and register an index for one object type
func NewIndex[T Record[T]](db *Database, name string, space uint8, kind uint8) *Index[T] {
	index := &Index[T]{
		name:    name,
		space:   space,
		kind:    kind,
		objects: make(map[uint64]T),
		byId:    avl.New(),
		db:      db,
		dirty:   make(map[uint64]struct{}),
	}
	db.register(index)
	return index
}

// Name - index name
func (index *Index[T]) Name() string { return index.name }

// Space - id space of this index
func (index *Index[T]) Space() uint8 { return index.space }

// Type - id type of this index
func (index *Index[T]) Type() uint8 { return index.kind }

// Size - number of live objects
func (index *Index[T]) Size() int { return len(index.objects) }

// NextInstance - the instance number the next create will use
func (index *Index[T]) NextInstance() uint64 { return index.next }

// NextId - the id the next create will use
func (index *Index[T]) NextId() ObjectId {
	return NewObjectId(index.space, index.kind, index.next)
}

// Create - allocate the next id and insert the object built by init
func (index *Index[T]) Create(init func(id ObjectId) T) (T, error) {
	id := index.NextId()
	obj := init(id)
	if obj.ObjectID() != id {
		var zero T
		return zero, fault.ErrIdentifierMismatch
	}
	if _, ok := index.objects[id.Instance]; ok {
		var zero T
		return zero, fault.ErrDuplicateKey
	}
	if err := index.checkUnique(obj); nil != err {
		var zero T
		return zero, err
	}

	previous := index.next
	index.next += 1
	index.insert(obj)

	index.db.onUndo(func() {
		index.erase(obj)
		index.next = previous
	})
	return obj, nil
}

// Get - the object with id, failing if absent
func (index *Index[T]) Get(id ObjectId) (T, error) {
	if !id.Is(index.space, index.kind) {
		var zero T
		return zero, fmt.Errorf("%w: %s in %s", fault.ErrWrongObjectType, id, index.name)
	}
	obj, ok := index.objects[id.Instance]
	if !ok {
		return obj, fmt.Errorf("%w: %s", fault.ErrNotFoundId, id)
	}
	return obj, nil
}

// Find - the object with id if present
func (index *Index[T]) Find(id ObjectId) (T, bool) {
	if !id.Is(index.space, index.kind) {
		var zero T
		return zero, false
	}
	obj, ok := index.objects[id.Instance]
	return obj, ok
}

// FindObject - type erased Find
func (index *Index[T]) FindObject(instance uint64) (Object, bool) {
	obj, ok := index.objects[instance]
	if !ok {
		return nil, false
	}
	return obj, true
}

// Modify - apply mutator to a copy of the object and store the
// result, keeping every ordering in step
func (index *Index[T]) Modify(id ObjectId, mutator func(*T)) error {
	current, err := index.Get(id)
	if nil != err {
		return err
	}

	updated := current.Clone()
	mutator(&updated)
	if updated.ObjectID() != id {
		return fault.ErrIdChanged
	}

	index.erase(current)
	if err := index.checkUnique(updated); nil != err {
		index.insert(current)
		return err
	}
	index.insert(updated)

	index.db.onUndo(func() {
		index.erase(updated)
		index.insert(current)
	})
	return nil
}

// Remove - delete the object from every ordering
func (index *Index[T]) Remove(id ObjectId) error {
	current, err := index.Get(id)
	if nil != err {
		return err
	}
	index.erase(current)
	index.db.onUndo(func() {
		index.insert(current)
	})
	return nil
}

// Each - visit objects in id order until f returns false
func (index *Index[T]) Each(f func(T) bool) {
	index.byId.Walk(0, func(_ int, node *avl.Node) bool {
		return f(index.objects[uint64(node.Key().(Uint64Key))])
	})
}

// All - every object in id order
func (index *Index[T]) All() []T {
	result := make([]T, 0, len(index.objects))
	index.Each(func(obj T) bool {
		result = append(result, obj)
		return true
	})
	return result
}

func (index *Index[T]) insert(obj T) {
	instance := obj.ObjectID().Instance
	index.objects[instance] = obj
	index.byId.Insert(Uint64Key(instance), nil)
	for _, o := range index.orderings {
		o.add(obj)
	}
	index.dirty[instance] = struct{}{}
}

func (index *Index[T]) erase(obj T) {
	instance := obj.ObjectID().Instance
	for _, o := range index.orderings {
		o.remove(obj)
	}
	index.byId.Delete(Uint64Key(instance))
	delete(index.objects, instance)
	index.dirty[instance] = struct{}{}
}

func (index *Index[T]) checkUnique(obj T) error {
	for _, o := range index.orderings {
		if o.unique && o.conflicts(obj) {
			return fmt.Errorf("%w: %s in %s", fault.ErrDuplicateKey, o.name, index.name)
		}
	}
	return nil
}

// Marshal - JSON form of one object, false if it no longer exists
func (index *Index[T]) Marshal(instance uint64) ([]byte, bool, error) {
	obj, ok := index.objects[instance]
	if !ok {
		return nil, false, nil
	}
	data, err := json.Marshal(obj)
	return data, true, err
}

// Load - replace the contents with previously marshalled objects
//
// used when restoring a checkpoint, so nothing is recorded for undo
func (index *Index[T]) Load(next uint64, records [][]byte) error {
	index.objects = make(map[uint64]T)
	index.byId = avl.New()
	for _, o := range index.orderings {
		o.tree = avl.New()
	}
	for _, data := range records {
		var obj T
		if err := json.Unmarshal(data, &obj); nil != err {
			return err
		}
		id := obj.ObjectID()
		if !id.Is(index.space, index.kind) || id.Instance >= next {
			return fmt.Errorf("%w: %s in %s", fault.ErrIdentifierMismatch, id, index.name)
		}
		index.insert(obj)
	}
	index.next = next
	index.dirty = make(map[uint64]struct{})
	return nil
}

// Dirty - instances changed since the last ClearDirty, ascending
func (index *Index[T]) Dirty() []uint64 {
	result := make([]uint64, 0, len(index.dirty))
	for instance := range index.dirty {
		result = append(result, instance)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ClearDirty - forget change tracking after a checkpoint
func (index *Index[T]) ClearDirty() {
	index.dirty = make(map[uint64]struct{})
}
