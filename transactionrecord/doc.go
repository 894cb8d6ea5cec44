// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - the operations that change ledger
// state and the transactions that carry them
//
// Every operation is one variant of a tagged union.  The binary form
// of an operation is its tag as a Varint64 followed by its fields;
// this form is hashed for transaction ids and signed by account keys.
//
// Tags at or above FirstVirtualTag are virtual operations: they are
// produced by the ledger to record side effects and are never
// accepted in a submitted transaction.
package transactionrecord
