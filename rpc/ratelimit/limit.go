// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Limit - delay a single request until the limiter allows it
func Limit(limiter *rate.Limiter) error {
	return wait(limiter, 1)
}

// LimitN - delay a request for count items
//
// an out of range count is charged as a single request and rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count > 0 && count <= maximumCount {
		return wait(limiter, count)
	}
	if err := wait(limiter, 1); nil != err {
		return err
	}
	return fault.ErrInvalidCount
}

func wait(limiter *rate.Limiter, n int) error {
	reservation := limiter.ReserveN(time.Now(), n)
	if !reservation.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(reservation.Delay())
	return nil
}
