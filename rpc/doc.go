// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - sets up the JSON-RPC listeners that serve client
// requests against the ledger
//
// standard golang net/rpc clients with the jsonrpc codec can be used
// to call these services: Node, Blocks, Transaction, Accounts, Assets,
// Licenses and Queue
package rpc
