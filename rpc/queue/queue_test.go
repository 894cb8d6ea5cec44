// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/license"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/queue"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func setup(t *testing.T) (*state.Database, *queue.Queue) {
	r := evaluator.NewRegistry()
	license.Register(r)
	db := fixtures.Database()

	for i, name := range []string{"bob", "vault-one", "bob"} {
		fixtures.SetTime(db, fixtures.GenesisTime+int64(i+1)*10)
		_, err := fixtures.Execute(db, r, &transactionrecord.SubmitReserveCycles{
			Issuer:        fixtures.Id(db, "cycle-issuer"),
			Account:       fixtures.Id(db, name),
			Amount:        int64(i+1) * 10,
			FrequencyLock: 200,
		})
		require.NoError(t, err, "reserve cycles: %s", name)
	}
	for i, f := range []uint32{250, 300} {
		fixtures.SetTime(db, fixtures.GenesisTime+int64(i+1)*100)
		_, err := fixtures.Execute(db, r, &transactionrecord.UpdateGlobalFrequency{
			Authority: fixtures.Id(db, "license-authority"),
			Frequency: f,
			Comment:   "step",
		})
		require.NoError(t, err, "frequency: %d", f)
	}

	return db, queue.New(logger.New(fixtures.LogCategory), access.New(fixtures.Viewer{DB: db}))
}

func TestQueueSizeAndPage(t *testing.T) {
	_, q := setup(t)

	var size queue.SizeReply
	err := q.Size(&queue.SizeArguments{}, &size)
	assert.Nil(t, err, "wrong size")
	assert.Equal(t, 3, size.Size, "wrong queue size")

	var page queue.PageReply
	err = q.Page(&queue.PageArguments{From: 1, Amount: 2}, &page)
	assert.Nil(t, err, "wrong page")
	require.Equal(t, 2, len(page.Entries), "wrong page size")
	assert.Equal(t, int64(20), page.Entries[0].Amount, "wrong first entry")
	assert.Equal(t, int64(30), page.Entries[1].Amount, "wrong second entry")

	err = q.Page(&queue.PageArguments{From: 3, Amount: 1}, &page)
	assert.Equal(t, fault.ErrOutOfRange, err, "accepted page past the end")
}

func TestQueueSubmissions(t *testing.T) {
	db, q := setup(t)
	bob := fixtures.Id(db, "bob")

	var reply queue.SubmissionsReply
	err := q.Submissions(&queue.SubmissionsArguments{Ids: []protocol.ObjectId{bob, protocol.AccountId(999)}}, &reply)
	assert.Nil(t, err, "wrong submissions")
	require.Equal(t, 2, len(reply.Submissions), "wrong result count")
	require.NotNil(t, reply.Submissions[0].Value, "bob missing")

	positions := []int{}
	for _, s := range *reply.Submissions[0].Value {
		positions = append(positions, s.Position)
	}
	assert.Equal(t, []int{0, 2}, positions, "wrong positions")
	assert.Nil(t, reply.Submissions[1].Value, "unknown account found")

	err = q.Submissions(&queue.SubmissionsArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted empty ids")
}

func TestQueueFrequencyHistory(t *testing.T) {
	_, q := setup(t)

	var reply queue.FrequencyHistoryReply
	err := q.FrequencyHistory(&queue.PageArguments{From: 0, Amount: 2}, &reply)
	assert.Nil(t, err, "wrong history")
	require.Equal(t, 2, len(reply.History), "wrong history size")
	assert.Equal(t, uint32(250), reply.History[0].Frequency, "wrong first")
	assert.Equal(t, uint32(300), reply.History[1].Frequency, "wrong second")

	err = q.FrequencyHistory(&queue.PageArguments{From: 0, Amount: access.MaximumPageSize + 1}, &reply)
	assert.True(t, fault.IsErrLength(err), "accepted large page")
}
