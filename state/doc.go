// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package state - the ledger objects and the database holding them
//
// Evaluators see the database through Reader during evaluation and
// receive the mutable *Database only when applying.
package state
