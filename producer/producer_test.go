// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package producer_test

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/producer"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func TestNewErrors(t *testing.T) {
	log := logger.New(fixtures.LogCategory)
	l := ledger.New(fixtures.Database(), nil, ledger.Options{})

	_, err := producer.New(nil, l, time.Second, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "nil log")
	_, err = producer.New(log, nil, time.Second, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "nil sealer")
	_, err = producer.New(log, l, 0, nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "zero interval")
}

func TestProduceBlocks(t *testing.T) {
	log := logger.New(fixtures.LogCategory)
	l := ledger.New(fixtures.Database(), nil, ledger.Options{})

	now := fixtures.GenesisTime
	clock := func() int64 {
		return atomic.AddInt64(&now, 5)
	}

	p, err := producer.New(log, l, 5*time.Millisecond, clock)
	require.Nil(t, err, "wrong New")

	processes := background.Start(background.Processes{p}, nil)
	time.Sleep(100 * time.Millisecond)
	processes.Stop()

	sealed := p.Sealed()
	assert.NotZero(t, sealed, "no blocks sealed")
	assert.Zero(t, p.Failed(), "failures")

	number, _ := l.Head()
	assert.Equal(t, sealed, number, "head does not match sealed count")
}

type rejecting struct{}

func (rejecting) SealBlock(timestamp int64) (*blockrecord.Block, error) {
	return nil, fault.ErrInvalidBlockTime
}

func TestProduceFailures(t *testing.T) {
	log := logger.New(fixtures.LogCategory)

	p, err := producer.New(log, rejecting{}, 5*time.Millisecond, nil)
	require.Nil(t, err, "wrong New")

	processes := background.Start(background.Processes{p}, nil)
	time.Sleep(50 * time.Millisecond)
	processes.Stop()

	assert.Zero(t, p.Sealed(), "sealed")
	assert.NotZero(t, p.Failed(), "no failures counted")
}
