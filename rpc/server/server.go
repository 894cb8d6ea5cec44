// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/rpc/accounts"
	"github.com/bitmark-inc/ledgerd/rpc/assets"
	"github.com/bitmark-inc/ledgerd/rpc/blocks"
	"github.com/bitmark-inc/ledgerd/rpc/licenses"
	"github.com/bitmark-inc/ledgerd/rpc/node"
	"github.com/bitmark-inc/ledgerd/rpc/queue"
	"github.com/bitmark-inc/ledgerd/rpc/transaction"
)

// Create - a server with every service registered
func Create(log *logger.L, version string, chain string, l *ledger.Ledger, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()
	query := access.New(l)

	server := rpc.NewServer()

	_ = server.Register(node.New(log, l, chain, start, version, rpcCount))
	_ = server.Register(blocks.New(log, l))
	_ = server.Register(transaction.New(log, l))
	_ = server.Register(accounts.New(log, query))
	_ = server.Register(assets.New(log, query))
	_ = server.Register(licenses.New(log, query))
	_ = server.Register(queue.New(log, query))

	return server
}
