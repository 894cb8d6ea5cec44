// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - a gauge shared between goroutines
package counter

import (
	"sync/atomic"
)

// Counter - number of things currently in use, such as open
// connections
type Counter uint64

// Increment - add one, returns the new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract one, returns the new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Acquire - increment unless that would pass maximum
func (c *Counter) Acquire(maximum uint64) bool {
	for {
		n := atomic.LoadUint64((*uint64)(c))
		if n >= maximum {
			return false
		}
		if atomic.CompareAndSwapUint64((*uint64)(c), n, n+1) {
			return true
		}
	}
}

// Uint64 - current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// IsZero - nothing in use
func (c *Counter) IsZero() bool {
	return 0 == c.Uint64()
}
