// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/rpc/accounts"
	"github.com/bitmark-inc/ledgerd/rpc/assets"
	"github.com/bitmark-inc/ledgerd/rpc/blocks"
	"github.com/bitmark-inc/ledgerd/rpc/licenses"
	"github.com/bitmark-inc/ledgerd/rpc/node"
	"github.com/bitmark-inc/ledgerd/rpc/queue"
	"github.com/bitmark-inc/ledgerd/rpc/server"
	"github.com/bitmark-inc/ledgerd/rpc/transaction"
)

var address string

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()

	c := counter.Counter(0)
	l := ledger.New(fixtures.Database(), nil, ledger.Options{})
	r := server.Create(logger.New(fixtures.LogCategory), "1.0", chain.Testing, l, &c)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if nil != err {
		panic(err)
	}
	address = listener.Addr().String()
	go func() {
		for {
			conn, err := listener.Accept()
			if nil != err {
				return
			}
			go r.ServeCodec(jsonrpc.NewServerCodec(conn))
		}
	}()

	rc := m.Run()

	_ = listener.Close()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func client(t *testing.T) *rpc.Client {
	conn, err := net.Dial("tcp", address)
	require.Nil(t, err, "dial")
	c := jsonrpc.NewClient(conn)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// each call only checks the service and method are registered and
// that arguments and replies survive the JSON codec

func TestNodeInfo(t *testing.T) {
	var reply node.InfoReply
	err := client(t).Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
}

func TestBlocksGet(t *testing.T) {
	var reply blocks.GetReply
	err := client(t).Call("Blocks.Get", &blocks.GetArguments{Start: 1, Count: 1}, &reply)
	require.NotNil(t, err, "blocks without a store")
	assert.Equal(t, fault.ErrDatabaseIsNotSet.Error(), err.Error(), "wrong error")
}

func TestTransactionStatus(t *testing.T) {
	var reply transaction.StatusReply
	err := client(t).Call("Transaction.Status", &transaction.StatusArguments{TxId: merkle.NewDigest([]byte("none"))}, &reply)
	require.NotNil(t, err, "status without a store")
	assert.Equal(t, fault.ErrDatabaseIsNotSet.Error(), err.Error(), "wrong error")
}

func TestAccountsCount(t *testing.T) {
	var reply accounts.CountReply
	err := client(t).Call("Accounts.Count", &accounts.CountArguments{}, &reply)
	assert.Nil(t, err, "wrong Accounts.Count")
	assert.Equal(t, len(fixtures.Names)+2, reply.Count, "wrong count")
}

func TestAccountsLookup(t *testing.T) {
	var reply accounts.AccountsReply
	err := client(t).Call("Accounts.Lookup", &accounts.NamesArguments{Names: []string{"alice"}}, &reply)
	assert.Nil(t, err, "wrong Accounts.Lookup")
	require.Equal(t, 1, len(reply.Accounts), "wrong result count")
	require.NotNil(t, reply.Accounts[0], "alice missing")
	assert.Equal(t, "alice", reply.Accounts[0].Name, "wrong name")
}

func TestAssetsList(t *testing.T) {
	var reply assets.ListReply
	err := client(t).Call("Assets.List", &assets.ListArguments{Limit: 10}, &reply)
	assert.Nil(t, err, "wrong Assets.List")
	assert.Equal(t, 4, len(reply.Assets), "wrong asset count")
}

func TestLicensesAll(t *testing.T) {
	var reply licenses.AllReply
	err := client(t).Call("Licenses.All", &licenses.AllArguments{}, &reply)
	assert.Nil(t, err, "wrong Licenses.All")
	assert.Equal(t, 0, len(reply.Types), "unexpected license types")
}

func TestQueueSize(t *testing.T) {
	var reply queue.SizeReply
	err := client(t).Call("Queue.Size", &queue.SizeArguments{}, &reply)
	assert.Nil(t, err, "wrong Queue.Size")
	assert.Equal(t, 0, reply.Size, "unexpected entries")
}
