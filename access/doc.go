// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - read only queries over the ledger state
//
// every query runs under the ledger read lock and never changes
// state. Unknown ids are absent results rather than errors so that
// the batch queries, the ForAccounts variants in particular, return
// one entry per requested id in request order.
//
// paged queries check:
//
//	amount ≤ maximum page size
//	from < size
//	from + amount ≤ size
//
// and fail with fault.ErrOutOfRange or fault.ErrPageSizeExceeded.
package access
