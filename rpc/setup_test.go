// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"net"
	"net/rpc/jsonrpc"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/rpc"
	"github.com/bitmark-inc/ledgerd/rpc/listeners"
	"github.com/bitmark-inc/ledgerd/rpc/node"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestInitialiseAndFinalise(t *testing.T) {
	l := ledger.New(fixtures.Database(), nil, ledger.Options{})
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
	}

	err := rpc.Initialise(&configuration, "1.0", chain.Local, l)
	require.Nil(t, err, "wrong Initialise")

	err = rpc.Initialise(&configuration, "1.0", chain.Local, l)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second Initialise")

	addresses := rpc.Addresses()
	require.Equal(t, 1, len(addresses), "wrong address count")

	conn, err := net.Dial("tcp", addresses[0])
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	var reply node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Node.Info")
	assert.Equal(t, chain.Local, reply.Chain, "wrong chain")

	assert.Nil(t, rpc.Finalise(), "wrong Finalise")
	assert.Equal(t, fault.ErrNotInitialised, rpc.Finalise(), "second Finalise")
	assert.Nil(t, rpc.Addresses(), "addresses after Finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	l := ledger.New(fixtures.Database(), nil, ledger.Options{})
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 10,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        "absent.crt",
		PrivateKey:         "absent.key",
	}

	err := rpc.Initialise(&configuration, "1.0", chain.Local, l)
	assert.NotNil(t, err, "accepted missing certificate")
	assert.Equal(t, fault.ErrNotInitialised, rpc.Finalise(), "initialised after failure")
}
