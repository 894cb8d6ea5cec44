// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. block number = big endian uint64 (8 bytes)
// 4. txId         = transaction digest as 32 byte SHA3-256(data)
// 5. index        = object space ++ object type (2 bytes)
// 6. instance     = object instance as big endian uint64 (8 bytes)
//
// Blocks:
//
//	B ++ block number          - block store
//	                             data: packed header ++ (concat packed signed transactions)
//	V ++ block number          - operations applied by the block including virtual ones
//	                             data: JSON array of applied operation records
//
// Transactions:
//
//	T ++ txId                  - confirmed transactions
//	                             data: block number
//
// Objects:
//
//	O ++ index ++ instance     - checkpoint of one ledger object
//	                             data: JSON object
//	N ++ index                 - next instance to allocate in the index
//	                             data: count
//
// Properties:
//
//	P ++ name                  - chain properties, e.g. "head"
//	                             data: various
//
// Testing:
//
//	Z ++ key                   - testing data
package storage
