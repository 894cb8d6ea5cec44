// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocks_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/rpc/blocks"
	"github.com/bitmark-inc/ledgerd/rpc/mocks"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestBlocksGet(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReader(ctl)
	b := blocks.New(logger.New(fixtures.LogCategory), r)

	block, err := blockrecord.New(2, merkle.NewDigest([]byte("one")), 1600000010, nil)
	assert.Nil(t, err, "wrong block")

	r.EXPECT().GetBlocks(uint64(2), 5).Return([]*blockrecord.Block{block}, nil).Times(1)

	var reply blocks.GetReply
	err = b.Get(&blocks.GetArguments{Start: 2, Count: 5}, &reply)
	assert.Nil(t, err, "wrong get")
	assert.Equal(t, 1, len(reply.Blocks), "wrong block count")
	assert.Equal(t, block.Digest, reply.Blocks[0].Digest, "wrong digest")
}

func TestBlocksGetErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReader(ctl)
	b := blocks.New(logger.New(fixtures.LogCategory), r)

	var reply blocks.GetReply
	err := b.Get(&blocks.GetArguments{Start: 1, Count: 0}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted zero count")

	err = b.Get(&blocks.GetArguments{Start: 1, Count: ledger.MaximumBlockCount + 1}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted large count")

	r.EXPECT().GetBlocks(uint64(9), 1).Return(nil, fault.ErrOutOfRange).Times(1)
	err = b.Get(&blocks.GetArguments{Start: 9, Count: 1}, &reply)
	assert.Equal(t, fault.ErrOutOfRange, err, "wrong error")
}

func TestBlocksVirtualOperations(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReader(ctl)
	b := blocks.New(logger.New(fixtures.LogCategory), r)

	result := []ledger.BlockOperations{
		{Number: 3, Operations: []ledger.AppliedOperation{}},
	}
	tags := []transactionrecord.TagType{transactionrecord.AssetSettleFillTag}
	r.EXPECT().GetBlocksWithVirtualOperations(uint64(3), 1, tags).Return(result, nil).Times(1)

	var reply blocks.VirtualOperationsReply
	err := b.VirtualOperations(&blocks.GetArguments{
		Start:      3,
		Count:      1,
		Operations: []string{"asset_settle_fill"},
	}, &reply)
	assert.Nil(t, err, "wrong virtual operations")
	assert.Equal(t, result, reply.Blocks, "wrong blocks")
}

func TestBlocksVirtualOperationsInvalidName(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReader(ctl)
	b := blocks.New(logger.New(fixtures.LogCategory), r)

	var reply blocks.VirtualOperationsReply
	for _, name := range []string{"no_such_operation", "transfer"} {
		err := b.VirtualOperations(&blocks.GetArguments{
			Start:      1,
			Count:      1,
			Operations: []string{name},
		}, &reply)
		assert.Equal(t, fault.ErrInvalidName, err, "accepted: %s", name)
	}
}

func TestBlocksHistory(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	r := mocks.NewMockReader(ctl)
	b := blocks.New(logger.New(fixtures.LogCategory), r)

	operations := []ledger.AppliedOperation{
		{Block: 4, TrxInBlock: 0, OpInTrx: 0},
		{Block: 4, TrxInBlock: 1, OpInTrx: 0},
	}
	r.EXPECT().GetOperationHistory(uint64(4)).Return(operations, nil).Times(1)

	var reply blocks.HistoryReply
	err := b.History(&blocks.HistoryArguments{Number: 4}, &reply)
	assert.Nil(t, err, "wrong history")
	assert.Equal(t, operations, reply.Operations, "wrong operations")
}
