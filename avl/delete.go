// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Delete - removes a specific item from the tree
//
// returns the value that was stored with the key, nil if the key was
// not present
func (tree *Tree) Delete(key Item) interface{} {
	var removed *Node
	tree.root, removed = remove(key, tree.root)
	if nil == removed {
		return nil
	}
	return removed.value
}

// internal delete routine
func remove(key Item, p *Node) (*Node, *Node) {
	if nil == p { // key not in tree
		return nil, nil
	}

	var removed *Node
	switch p.key.Compare(key) {
	case +1: // p.key > key
		p.left, removed = remove(key, p.left)
	case -1: // p.key < key
		p.right, removed = remove(key, p.right)
	default:
		removed = p
		if nil == p.left {
			return p.right, removed
		}
		if nil == p.right {
			return p.left, removed
		}

		// replace by the in-order successor
		right, successor := removeFirst(p.right)
		successor.left = p.left
		successor.right = right
		p = successor
	}
	if nil == removed {
		return p, nil
	}
	return rebalance(p), removed
}

// detach the lowest node of a sub-tree
func removeFirst(p *Node) (*Node, *Node) {
	if nil == p.left {
		return p.right, p
	}
	var first *Node
	p.left, first = removeFirst(p.left)
	return rebalance(p), first
}
