// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Search - find a specific item
//
// returns the node and its zero based rank, or nil and -1
func (tree *Tree) Search(key Item) (*Node, int) {
	index := 0
	for p := tree.root; nil != p; {
		switch p.key.Compare(key) {
		case +1: // p.key > key
			p = p.left
		case -1: // p.key < key
			index += p.left.count() + 1
			p = p.right
		default:
			return p, index + p.left.count()
		}
	}
	return nil, -1
}

// LowerBound - find the first node whose key is not less than key
//
// returns the node and its rank; if every key is smaller the result
// is nil and Count()
func (tree *Tree) LowerBound(key Item) (*Node, int) {
	var found *Node
	foundIndex := tree.Count()
	index := 0
	for p := tree.root; nil != p; {
		if p.key.Compare(key) >= 0 { // p.key >= key
			found = p
			foundIndex = index + p.left.count()
			p = p.left
		} else {
			index += p.left.count() + 1
			p = p.right
		}
	}
	return found, foundIndex
}

// UpperBound - find the first node whose key is greater than key
func (tree *Tree) UpperBound(key Item) (*Node, int) {
	var found *Node
	foundIndex := tree.Count()
	index := 0
	for p := tree.root; nil != p; {
		if p.key.Compare(key) > 0 { // p.key > key
			found = p
			foundIndex = index + p.left.count()
			p = p.left
		} else {
			index += p.left.count() + 1
			p = p.right
		}
	}
	return found, foundIndex
}

// Get - node at a specific rank, nil if out of range
func (tree *Tree) Get(index int) *Node {
	if index < 0 || index >= tree.Count() {
		return nil
	}
	p := tree.root
	for nil != p {
		nl := p.left.count()
		switch {
		case index < nl:
			p = p.left
		case index > nl:
			// subtract left nodes + 1 (for this node)
			index -= nl + 1
			p = p.right
		default:
			return p
		}
	}
	return nil
}
