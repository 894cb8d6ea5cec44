// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks

//go:generate mockgen -source=blocks.go -destination=../mocks/blocks.go -package=mocks

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

const (
	rateLimitBlocks = 200
	rateBurstBlocks = 100
)

// Reader - access to stored blocks
type Reader interface {
	GetBlocks(start uint64, count int) ([]*blockrecord.Block, error)
	GetBlocksWithVirtualOperations(start uint64, count int, tags []transactionrecord.TagType) ([]ledger.BlockOperations, error)
	GetOperationHistory(number uint64) ([]ledger.AppliedOperation, error)
}

// Blocks - type for the RPC
type Blocks struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Reader  Reader
}

// New - create the Blocks service
func New(log *logger.L, reader Reader) *Blocks {
	return &Blocks{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitBlocks, rateBurstBlocks),
		Reader:  reader,
	}
}

// GetArguments - arguments for Get and VirtualOperations
type GetArguments struct {
	Start      uint64   `json:"start,string"`
	Count      int      `json:"count"`
	Operations []string `json:"operations"`
}

// GetReply - results from Get
type GetReply struct {
	Blocks []*blockrecord.Block `json:"blocks"`
}

// Get - a run of consecutive blocks
func (b *Blocks) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.LimitN(b.Limiter, arguments.Count, ledger.MaximumBlockCount); nil != err {
		return err
	}

	b.Log.Debugf("Blocks.Get: %+v", arguments)

	blocks, err := b.Reader.GetBlocks(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	reply.Blocks = blocks
	return nil
}

// VirtualOperationsReply - results from VirtualOperations
type VirtualOperationsReply struct {
	Blocks []ledger.BlockOperations `json:"blocks"`
}

// VirtualOperations - the virtual operations of a run of blocks,
// restricted to the named operations unless none are given
func (b *Blocks) VirtualOperations(arguments *GetArguments, reply *VirtualOperationsReply) error {
	if err := ratelimit.LimitN(b.Limiter, arguments.Count, ledger.MaximumBlockCount); nil != err {
		return err
	}

	tags := make([]transactionrecord.TagType, 0, len(arguments.Operations))
	for _, name := range arguments.Operations {
		tag, ok := transactionrecord.TagFromName(name)
		if !ok || !transactionrecord.IsVirtual(tag) {
			return fault.ErrInvalidName
		}
		tags = append(tags, tag)
	}

	b.Log.Debugf("Blocks.VirtualOperations: %+v", arguments)

	blocks, err := b.Reader.GetBlocksWithVirtualOperations(arguments.Start, arguments.Count, tags)
	if nil != err {
		return err
	}
	reply.Blocks = blocks
	return nil
}

// HistoryArguments - arguments for History
type HistoryArguments struct {
	Number uint64 `json:"number,string"`
}

// HistoryReply - results from History
type HistoryReply struct {
	Operations []ledger.AppliedOperation `json:"operations"`
}

// History - every operation applied by one block
func (b *Blocks) History(arguments *HistoryArguments, reply *HistoryReply) error {
	if err := ratelimit.Limit(b.Limiter); nil != err {
		return err
	}

	operations, err := b.Reader.GetOperationHistory(arguments.Number)
	if nil != err {
		return err
	}
	reply.Operations = operations
	return nil
}
