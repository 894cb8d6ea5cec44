// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// First - return the node with the lowest key value
func (tree *Tree) First() *Node {
	p := tree.root
	if nil == p {
		return nil
	}
	for nil != p.left {
		p = p.left
	}
	return p
}

// Last - return the node with the highest key value
func (tree *Tree) Last() *Node {
	p := tree.root
	if nil == p {
		return nil
	}
	for nil != p.right {
		p = p.right
	}
	return p
}

// Walk - visit nodes in ascending order starting at rank from, until
// the callback returns false
func (tree *Tree) Walk(from int, f func(index int, node *Node) bool) {
	if from < 0 {
		from = 0
	}

	// stack of ancestors whose left sub-tree is being visited
	stack := make([]*Node, 0, tree.root.depth())
	p := tree.root
	index := from
	for nil != p {
		nl := p.left.count()
		if index < nl {
			stack = append(stack, p)
			p = p.left
		} else if index > nl {
			index -= nl + 1
			p = p.right
		} else {
			stack = append(stack, p)
			break
		}
	}

	for rank := from; 0 != len(stack); rank += 1 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(rank, n) {
			return
		}
		for q := n.right; nil != q; q = q.left {
			stack = append(stack, q)
		}
	}
}
