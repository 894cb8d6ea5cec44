// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
)

func TestPanicIfError(t *testing.T) {
	assert.NotPanics(t, func() { fault.PanicIfError("nothing", nil) })
	assert.PanicsWithValue(t, "store failed with error: disk full", func() {
		fault.PanicIfError("store", errors.New("disk full"))
	})
}

func TestPanicf(t *testing.T) {
	assert.PanicsWithValue(t, "bad index: 7", func() {
		fault.Panicf("bad index: %d", 7)
	})
}

func TestFinaliseWithoutInitialise(t *testing.T) {
	assert.NotPanics(t, fault.Finalise)
}
