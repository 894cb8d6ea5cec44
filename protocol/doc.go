// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package protocol - value types shared by operations and ledger
// objects: identifiers, amounts, prices, feeds and options
//
// All monetary arithmetic is integer; conversions through a price use
// exact rational arithmetic.
package protocol
