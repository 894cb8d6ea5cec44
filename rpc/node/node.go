// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

//go:generate mockgen -source=node.go -destination=../mocks/node.go -package=mocks

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/counter"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Head - the chain position of the node
type Head interface {
	Head() (uint64, merkle.Digest)
	PendingCount() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Head    Head
	Chain   string
	Start   time.Time
	Version string
	counter *counter.Counter
}

// New - create the Node service
func New(log *logger.L, head Head, chain string, start time.Time, version string, counter *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Head:    head,
		Chain:   chain,
		Start:   start,
		Version: version,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain        string    `json:"chain"`
	Block        BlockInfo `json:"block"`
	Pending      int       `json:"pending"`
	RPCs         uint64    `json:"rpcs"`
	Version      string    `json:"version"`
	Uptime       string    `json:"uptime"`
	TimeReceived int64     `json:"time_received,string"`
}

// BlockInfo - the highest block held by the node
type BlockInfo struct {
	Height uint64        `json:"height,string"`
	Hash   merkle.Digest `json:"hash"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	height, digest := node.Head.Head()

	reply.Chain = node.Chain
	reply.Block = BlockInfo{
		Height: height,
		Hash:   digest,
	}
	reply.Pending = node.Head.PendingCount()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.TimeReceived = time.Now().Unix()
	return nil
}
