// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the transaction driver and block processor
//
// A Ledger owns the object database and is its single writer. A
// pushed transaction passes these steps before it is kept:
//
//	structural checks  expiration, size, operation count, no virtual
//	                   operations, not already applied
//	authority          every required account signed the chain id
//	                   followed by the packed transaction
//	fees               charged from the fee payer in core or through
//	                   the fee pool of the paying asset
//	evaluate           every operation, against unchanged state
//	apply              every operation, collecting results and the
//	                   virtual operations they emit
//
// A failure at any step leaves the database exactly as it was. A
// failure in apply after a successful evaluate is a fatal error.
//
// Accepted transactions stay pending until SealBlock closes them into
// a block. ApplyBlock processes a block from elsewhere, replaying any
// pending transactions on top of it. Both run the end of block
// maintenance and then write the block, its operation history and the
// changed objects to storage in one batch.
package ledger
