// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectstore

import (
	"github.com/bitmark-inc/ledgerd/avl"
)

// Ordering - a secondary ordering of an index
type Ordering[T Record[T]] struct {
	name   string
	unique bool
	key    func(T) avl.Item
	tree   *avl.Tree
	index  *Index[T]
}

// tree key: the ordering key with the instance as tie-breaker
type entry struct {
	key      avl.Item
	instance uint64
}

func (e entry) Compare(x interface{}) int {
	other := x.(entry)
	if r := e.key.Compare(other.key); 0 != r {
		return r
	}
	return compareUint64(e.instance, other.instance)
}

// AddOrdering - attach a secondary ordering, must be called before
// any object is created
func (index *Index[T]) AddOrdering(name string, unique bool, key func(T) avl.Item) *Ordering[T] {
	o := &Ordering[T]{
		name:   name,
		unique: unique,
		key:    key,
		tree:   avl.New(),
		index:  index,
	}
	for _, obj := range index.objects {
		o.add(obj)
	}
	index.orderings = append(index.orderings, o)
	return o
}

func (o *Ordering[T]) add(obj T) {
	o.tree.Insert(entry{key: o.key(obj), instance: obj.ObjectID().Instance}, nil)
}

func (o *Ordering[T]) remove(obj T) {
	o.tree.Delete(entry{key: o.key(obj), instance: obj.ObjectID().Instance})
}

// true if another object already holds obj's key
func (o *Ordering[T]) conflicts(obj T) bool {
	k := o.key(obj)
	node, _ := o.tree.LowerBound(entry{key: k})
	if nil == node {
		return false
	}
	e := node.Key().(entry)
	return 0 == e.key.Compare(k) && e.instance != obj.ObjectID().Instance
}

func (o *Ordering[T]) object(node *avl.Node) T {
	return o.index.objects[node.Key().(entry).instance]
}

// Name - ordering name
func (o *Ordering[T]) Name() string {
	return o.name
}

// Count - number of entries, same as the index size
func (o *Ordering[T]) Count() int {
	return o.tree.Count()
}

// Find - first object with exactly this key
func (o *Ordering[T]) Find(key avl.Item) (T, bool) {
	node, _ := o.tree.LowerBound(entry{key: key})
	if nil == node || 0 != node.Key().(entry).key.Compare(key) {
		var zero T
		return zero, false
	}
	return o.object(node), true
}

// EqualRange - every object with exactly this key, in instance order
func (o *Ordering[T]) EqualRange(key avl.Item) []T {
	result := []T{}
	o.From(key, func(obj T) bool {
		if 0 != o.key(obj).Compare(key) {
			return false
		}
		result = append(result, obj)
		return true
	})
	return result
}

// Prefix - every object whose composite key starts with prefix
func (o *Ordering[T]) Prefix(prefix Composite, f func(T) bool) {
	o.From(prefix, func(obj T) bool {
		k, ok := o.key(obj).(Composite)
		if !ok || !k.HasPrefix(prefix) {
			return false
		}
		return f(obj)
	})
}

// From - visit objects in key order starting at the lower bound of
// key until f returns false
func (o *Ordering[T]) From(key avl.Item, f func(T) bool) {
	_, index := o.tree.LowerBound(entry{key: key})
	o.tree.Walk(index, func(_ int, node *avl.Node) bool {
		return f(o.object(node))
	})
}

// Each - visit objects in key order until f returns false
func (o *Ordering[T]) Each(f func(T) bool) {
	o.tree.Walk(0, func(_ int, node *avl.Node) bool {
		return f(o.object(node))
	})
}

// First - lowest object in this ordering
func (o *Ordering[T]) First() (T, bool) {
	node := o.tree.First()
	if nil == node {
		var zero T
		return zero, false
	}
	return o.object(node), true
}

// At - the object at a zero based rank
func (o *Ordering[T]) At(rank int) (T, bool) {
	node := o.tree.Get(rank)
	if nil == node {
		var zero T
		return zero, false
	}
	return o.object(node), true
}

// Slice - count objects starting at rank from
func (o *Ordering[T]) Slice(from int, count int) []T {
	result := make([]T, 0, count)
	o.tree.Walk(from, func(_ int, node *avl.Node) bool {
		if len(result) >= count {
			return false
		}
		result = append(result, o.object(node))
		return true
	})
	return result
}

// Position - rank of an object within this ordering
func (o *Ordering[T]) Position(id ObjectId) (int, bool) {
	obj, ok := o.index.Find(id)
	if !ok {
		return -1, false
	}
	_, rank := o.tree.Search(entry{key: o.key(obj), instance: id.Instance})
	return rank, rank >= 0
}
