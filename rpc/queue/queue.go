// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/state"
)

const (
	maximumAccounts = access.MaximumPageSize
	rateLimitQueue  = 200
	rateBurstQueue  = 100
)

// Query - the reward queue part of the access layer
type Query interface {
	RewardQueueSize() int
	RewardQueueByPage(from int, amount int) ([]state.RewardQueueEntry, error)
	QueueSubmissionsForAccounts(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, []access.Submission]
	FrequencyHistoryByPage(from int, amount int) ([]state.FrequencyHistoryRecord, error)
}

// Queue - type for the RPC
type Queue struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Query   Query
}

// New - create the Queue service
func New(log *logger.L, query Query) *Queue {
	return &Queue{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitQueue, rateBurstQueue),
		Query:   query,
	}
}

// SizeArguments - empty arguments
type SizeArguments struct{}

// SizeReply - entries waiting in the reward queue
type SizeReply struct {
	Size int `json:"size"`
}

// Size - number of reward queue entries
func (q *Queue) Size(_ *SizeArguments, reply *SizeReply) error {
	if err := ratelimit.Limit(q.Limiter); nil != err {
		return err
	}
	reply.Size = q.Query.RewardQueueSize()
	return nil
}

// PageArguments - a zero based page
type PageArguments struct {
	From   int `json:"from"`
	Amount int `json:"amount"`
}

// PageReply - a page of the reward queue, oldest first
type PageReply struct {
	Entries []state.RewardQueueEntry `json:"entries"`
}

// Page - part of the reward queue in submission order
func (q *Queue) Page(arguments *PageArguments, reply *PageReply) error {
	if err := ratelimit.Limit(q.Limiter); nil != err {
		return err
	}
	entries, err := q.Query.RewardQueueByPage(arguments.From, arguments.Amount)
	if nil != err {
		return err
	}
	reply.Entries = entries
	return nil
}

// SubmissionsArguments - a list of accounts
type SubmissionsArguments struct {
	Ids []protocol.ObjectId `json:"ids"`
}

// SubmissionsReply - queue entries with their positions per account
type SubmissionsReply struct {
	Submissions []access.Keyed[protocol.ObjectId, []access.Submission] `json:"submissions"`
}

// Submissions - where each account's entries sit in the queue
func (q *Queue) Submissions(arguments *SubmissionsArguments, reply *SubmissionsReply) error {
	if err := ratelimit.LimitN(q.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Submissions = q.Query.QueueSubmissionsForAccounts(arguments.Ids)
	return nil
}

// FrequencyHistoryReply - a page of global frequency changes
type FrequencyHistoryReply struct {
	History []state.FrequencyHistoryRecord `json:"history"`
}

// FrequencyHistory - global frequency changes, oldest first
func (q *Queue) FrequencyHistory(arguments *PageArguments, reply *FrequencyHistoryReply) error {
	if err := ratelimit.Limit(q.Limiter); nil != err {
		return err
	}
	history, err := q.Query.FrequencyHistoryByPage(arguments.From, arguments.Amount)
	if nil != err {
		return err
	}
	reply.History = history
	return nil
}
