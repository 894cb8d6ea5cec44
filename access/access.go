// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// page size limits
const (
	MaximumPageSize      = 100
	MaximumOrderPageSize = 300
)

// Viewer - runs a function with a stable view of the state
type Viewer interface {
	View(f func(db *state.Database))
}

// Access - the query layer
type Access struct {
	viewer Viewer
	log    *logger.L
}

// Keyed - a result for one requested key, Value is nil if the key
// is unknown
type Keyed[K any, V any] struct {
	Key   K  `json:"id"`
	Value *V `json:"result"`
}

// New - create a query layer over a viewer
func New(viewer Viewer) *Access {
	return &Access{
		viewer: viewer,
		log:    logger.New("access"),
	}
}

// run f under the viewer lock
func (a *Access) view(f func(db *state.Database)) {
	a.viewer.View(f)
}

// check a page request against the size of a collection
func checkPage(size int, from int, amount int, maximum int) error {
	if amount < 0 || amount > maximum {
		return errPageSize(amount)
	}
	if from < 0 || from >= size || from+amount > size {
		return fault.ErrOutOfRange
	}
	return nil
}

func errPageSize(amount int) error {
	return fmt.Errorf("%w: %d", fault.ErrPageSizeExceeded, amount)
}

// one query per id, preserving order
func forAccounts[V any](ids []protocol.ObjectId, f func(id protocol.ObjectId) *V) []Keyed[protocol.ObjectId, V] {
	result := make([]Keyed[protocol.ObjectId, V], 0, len(ids))
	for _, id := range ids {
		result = append(result, Keyed[protocol.ObjectId, V]{
			Key:   id,
			Value: f(id),
		})
	}
	return result
}

// pointer to a found value, nil otherwise
func found[V any](v V, ok bool) *V {
	if !ok {
		return nil
	}
	return &v
}
