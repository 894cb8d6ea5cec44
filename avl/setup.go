// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Item - a key item must implement the Compare function
type Item interface {
	Compare(interface{}) int // for left/right ordering of items
}

// Node - a node in the tree
type Node struct {
	left   *Node       // left sub-tree
	right  *Node       // right sub-tree
	key    Item        // key part for ordering
	value  interface{} // value part for data storage
	height int         // height of this sub-tree, leaf is 1
	size   int         // nodes in this sub-tree including this one
}

// Tree - type to hold the root node of a tree
type Tree struct {
	root *Node
}

// New - create an initially empty tree
func New() *Tree {
	return &Tree{}
}

// IsEmpty - true if tree contains no data
func (tree *Tree) IsEmpty() bool {
	return nil == tree.root
}

// Count - number of nodes currently in the tree
func (tree *Tree) Count() int {
	return tree.root.count()
}

// Key - read the key from a node item
func (p *Node) Key() Item {
	return p.key
}

// Value - read the value from a node item
func (p *Node) Value() interface{} {
	return p.value
}

func (p *Node) count() int {
	if nil == p {
		return 0
	}
	return p.size
}

func (p *Node) depth() int {
	if nil == p {
		return 0
	}
	return p.height
}

// recompute the cached height and size after a child changed
func (p *Node) fix() {
	l, r := p.left.depth(), p.right.depth()
	if l > r {
		p.height = l + 1
	} else {
		p.height = r + 1
	}
	p.size = 1 + p.left.count() + p.right.count()
}

func (p *Node) skew() int {
	return p.right.depth() - p.left.depth()
}
