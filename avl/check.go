// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl

// Check - verify ordering, balance and cached sizes of the whole tree
func (tree *Tree) Check() bool {
	_, _, ok := check(tree.root, nil, nil)
	return ok
}

// internal: returns height, size and consistency of a sub-tree
func check(p *Node, low Item, high Item) (int, int, bool) {
	if nil == p {
		return 0, 0, true
	}
	if nil != low && p.key.Compare(low) <= 0 {
		return 0, 0, false
	}
	if nil != high && p.key.Compare(high) >= 0 {
		return 0, 0, false
	}
	lh, ls, lok := check(p.left, low, p.key)
	rh, rs, rok := check(p.right, p.key, high)
	if !lok || !rok {
		return 0, 0, false
	}
	h := lh
	if rh > h {
		h = rh
	}
	h += 1
	if rh-lh > 1 || lh-rh > 1 || p.height != h || p.size != 1+ls+rs {
		return 0, 0, false
	}
	return h, p.size, true
}
