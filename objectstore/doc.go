// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package objectstore - typed in-memory indices of ledger objects
//
// Each index owns the objects of one type.  Objects are identified by
// an ObjectId whose instance number is allocated monotonically and is
// never reused after removal.  An index may carry any number of
// secondary orderings which are kept consistent on every create,
// modify and remove.
//
// All mutations made while an undo session is open are recorded so
// the session can be rolled back to the exact prior state.
package objectstore
