// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package avl_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/avl"
)

type stringItem struct {
	s string
}

func (s stringItem) String() string {
	return s.s
}

func (s stringItem) Compare(x interface{}) int {
	return strings.Compare(s.s, x.(stringItem).s)
}

type intItem int

func (i intItem) Compare(x interface{}) int {
	j := x.(intItem)
	switch {
	case i < j:
		return -1
	case i > j:
		return 1
	}
	return 0
}

func TestListDuplicates(t *testing.T) {
	addList := []stringItem{
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1247"},
		{"1250"}, {"1264"}, {"1258"}, {"1255"}, {"2247"},
		{"1720"}, {"0506"}, {"8382"}, {"6774"}, {"1042"},
		{"1042"}, {"1042"}, {"1042"}, {"1042"}, {"1042"},
	}

	tree := avl.New()
	unique := map[string]struct{}{}
	for i, item := range addList {
		_, seen := unique[item.s]
		added := tree.Insert(item, i)
		assert.Equal(t, !seen, added, "added flag for: %s", item.s)
		unique[item.s] = struct{}{}
		assert.True(t, tree.Check(), "tree corrupt after insert: %s", item.s)
	}
	assert.Equal(t, len(unique), tree.Count(), "count")

	// overwritten value is the last one inserted
	node, _ := tree.Search(stringItem{"1042"})
	assert.Equal(t, 19, node.Value(), "overwritten value")
}

func TestRankAndGet(t *testing.T) {
	tree := avl.New()
	keys := rand.New(rand.NewSource(42)).Perm(500)
	for _, k := range keys {
		tree.Insert(intItem(k*2), k)
	}
	assert.True(t, tree.Check(), "tree corrupt")
	assert.Equal(t, 500, tree.Count(), "count")

	for i := 0; i < 500; i += 1 {
		node := tree.Get(i)
		if assert.NotNil(t, node, "get: %d", i) {
			assert.Equal(t, intItem(i*2), node.Key(), "key at rank: %d", i)
		}
		_, index := tree.Search(intItem(i * 2))
		assert.Equal(t, i, index, "rank of: %d", i*2)
	}

	assert.Nil(t, tree.Get(-1), "negative rank")
	assert.Nil(t, tree.Get(500), "rank past end")

	node, index := tree.Search(intItem(3))
	assert.Nil(t, node, "odd key should be absent")
	assert.Equal(t, -1, index, "absent rank")
}

func TestBounds(t *testing.T) {
	tree := avl.New()
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(intItem(k), nil)
	}

	tests := []struct {
		key        int
		lower      int
		lowerIndex int
		upper      int
		upperIndex int
	}{
		{5, 10, 0, 10, 0},
		{10, 10, 0, 20, 1},
		{25, 30, 2, 30, 2},
		{40, 40, 3, -1, 4},
		{45, -1, 4, -1, 4},
	}

	for i, item := range tests {
		node, index := tree.LowerBound(intItem(item.key))
		assert.Equal(t, item.lowerIndex, index, "%d: lower index", i)
		if item.lower < 0 {
			assert.Nil(t, node, "%d: lower node", i)
		} else {
			assert.Equal(t, intItem(item.lower), node.Key(), "%d: lower key", i)
		}

		node, index = tree.UpperBound(intItem(item.key))
		assert.Equal(t, item.upperIndex, index, "%d: upper index", i)
		if item.upper < 0 {
			assert.Nil(t, node, "%d: upper node", i)
		} else {
			assert.Equal(t, intItem(item.upper), node.Key(), "%d: upper key", i)
		}
	}
}

func TestRandomInsertDelete(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	tree := avl.New()
	present := map[int]bool{}

	for i := 0; i < 2000; i += 1 {
		k := r.Intn(300)
		if r.Intn(3) == 0 {
			v := tree.Delete(intItem(k))
			if present[k] {
				assert.Equal(t, k, v, "deleted value")
			} else {
				assert.Nil(t, v, "delete of absent key")
			}
			delete(present, k)
		} else {
			tree.Insert(intItem(k), k)
			present[k] = true
		}
		if !tree.Check() {
			t.Fatalf("tree corrupt after step: %d", i)
		}
	}

	expected := make([]int, 0, len(present))
	for k := range present {
		expected = append(expected, k)
	}
	sort.Ints(expected)

	actual := []int{}
	tree.Walk(0, func(index int, node *avl.Node) bool {
		assert.Equal(t, len(actual), index, "walk index")
		actual = append(actual, int(node.Key().(intItem)))
		return true
	})
	assert.Equal(t, expected, actual, "in order walk")

	if len(expected) > 0 {
		assert.Equal(t, intItem(expected[0]), tree.First().Key(), "first")
		assert.Equal(t, intItem(expected[len(expected)-1]), tree.Last().Key(), "last")
	}
}

func TestWalkFromMiddle(t *testing.T) {
	tree := avl.New()
	for k := 0; k < 50; k += 1 {
		tree.Insert(intItem(k), nil)
	}

	seen := []int{}
	tree.Walk(45, func(index int, node *avl.Node) bool {
		seen = append(seen, int(node.Key().(intItem)))
		return true
	})
	assert.Equal(t, []int{45, 46, 47, 48, 49}, seen, "tail walk")

	seen = seen[:0]
	tree.Walk(10, func(index int, node *avl.Node) bool {
		seen = append(seen, index)
		return len(seen) < 3
	})
	assert.Equal(t, []int{10, 11, 12}, seen, "stopped walk")

	count := 0
	tree.Walk(50, func(int, *avl.Node) bool {
		count += 1
		return true
	})
	assert.Equal(t, 0, count, "walk past end")
}

func TestEmptyTree(t *testing.T) {
	tree := avl.New()
	assert.True(t, tree.IsEmpty(), "empty")
	assert.Nil(t, tree.First(), "first")
	assert.Nil(t, tree.Last(), "last")
	assert.Nil(t, tree.Delete(intItem(1)), "delete")
	assert.True(t, tree.Check(), "check")
}
