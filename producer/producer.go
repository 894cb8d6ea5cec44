// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package producer - seal pending transactions into a block at a
// fixed interval
package producer

import (
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/blockrecord"
	"github.com/bitmark-inc/ledgerd/fault"
)

// Sealer - closes the pending transactions into the next block
type Sealer interface {
	SealBlock(timestamp int64) (*blockrecord.Block, error)
}

// Clock - seconds since the epoch
type Clock func() int64

// Producer - background process sealing one block per interval
type Producer struct {
	log      *logger.L
	sealer   Sealer
	interval time.Duration
	clock    Clock

	sealed uint64
	failed uint64
}

// New - create a producer, clock defaults to the system time
func New(log *logger.L, sealer Sealer, interval time.Duration, clock Clock) (*Producer, error) {
	if nil == log || nil == sealer || interval <= 0 {
		return nil, fault.ErrMissingParameters
	}
	if nil == clock {
		clock = func() int64 {
			return time.Now().Unix()
		}
	}
	return &Producer{
		log:      log,
		sealer:   sealer,
		interval: interval,
		clock:    clock,
	}, nil
}

// Run - seal blocks until shutdown
func (p *Producer) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log
	log.Infof("starting… interval: %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			p.seal()
		}
	}

	log.Infof("stopped  sealed: %d  failed: %d", p.Sealed(), p.Failed())
}

func (p *Producer) seal() {
	block, err := p.sealer.SealBlock(p.clock())
	if nil != err {
		atomic.AddUint64(&p.failed, 1)
		p.log.Errorf("seal error: %s", err)
		return
	}
	atomic.AddUint64(&p.sealed, 1)
	p.log.Debugf("block: %d  transactions: %d", block.Header.Number, len(block.Transactions))
}

// Sealed - number of blocks produced
func (p *Producer) Sealed() uint64 {
	return atomic.LoadUint64(&p.sealed)
}

// Failed - number of intervals where sealing failed
func (p *Producer) Failed() uint64 {
	return atomic.LoadUint64(&p.failed)
}
