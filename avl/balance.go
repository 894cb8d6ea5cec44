// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

//	   p                q
//	  / \              / \
//	 q   c    ==>     a   p
//	/ \                  / \
//
// a   b                b   c
func rotateRight(p *Node) *Node {
	q := p.left
	p.left = q.right
	q.right = p
	p.fix()
	q.fix()
	return q
}

//	 p                  q
//	/ \                / \
//
// a   q      ==>     p   c
//
//	 / \            / \
//	b   c          a   b
func rotateLeft(p *Node) *Node {
	q := p.right
	p.right = q.left
	q.left = p
	p.fix()
	q.fix()
	return q
}

// restore the AVL condition at p, returns the new sub-tree root
func rebalance(p *Node) *Node {
	p.fix()
	switch p.skew() {
	case -2: // left heavy
		if p.left.skew() > 0 {
			p.left = rotateLeft(p.left) // LR case
		}
		return rotateRight(p)
	case +2: // right heavy
		if p.right.skew() < 0 {
			p.right = rotateRight(p.right) // RL case
		}
		return rotateLeft(p)
	}
	return p
}
