// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 keys controlling ledger accounts
//
// A public key is written as base58 of a key variant, the raw key and
// a four byte SHA3 checksum.
package account
