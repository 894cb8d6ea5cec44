// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Insert - insert a new node into the tree, or overwrite the value
// of an existing key
//
// returns true if a node was added
func (tree *Tree) Insert(key Item, value interface{}) bool {
	added := false
	tree.root, added = insert(key, value, tree.root)
	return added
}

// internal routine for insert
func insert(key Item, value interface{}, p *Node) (*Node, bool) {
	if nil == p {
		return &Node{
			key:    key,
			value:  value,
			height: 1,
			size:   1,
		}, true
	}

	added := false
	switch p.key.Compare(key) {
	case +1: // p.key > key
		p.left, added = insert(key, value, p.left)
	case -1: // p.key < key
		p.right, added = insert(key, value, p.right)
	default:
		p.value = value
		return p, false
	}
	return rebalance(p), added
}
