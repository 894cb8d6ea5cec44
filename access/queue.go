// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/bitmark-inc/ledgerd/objectstore"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// Submission - a reward queue entry with its zero based position in
// the queue
type Submission struct {
	Position   int                    `json:"position"`
	Submission state.RewardQueueEntry `json:"submission"`
}

func queueKey(account protocol.ObjectId) objectstore.Composite {
	return objectstore.Composite{account}
}

// RewardQueueSize - number of entries waiting in the reward queue
func (a *Access) RewardQueueSize() int {
	n := 0
	a.view(func(db *state.Database) {
		n = db.RewardQueue.Size()
	})
	return n
}

// RewardQueue - the whole queue in submission order
func (a *Access) RewardQueue() []state.RewardQueueEntry {
	result := []state.RewardQueueEntry{}
	a.view(func(db *state.Database) {
		db.RewardQueueByTime.Each(func(entry state.RewardQueueEntry) bool {
			result = append(result, entry)
			return true
		})
	})
	return result
}

// RewardQueueByPage - amount entries starting at position from
func (a *Access) RewardQueueByPage(from int, amount int) ([]state.RewardQueueEntry, error) {
	var result []state.RewardQueueEntry
	var err error
	a.view(func(db *state.Database) {
		err = checkPage(db.RewardQueue.Size(), from, amount, MaximumPageSize)
		if nil == err {
			result = db.RewardQueueByTime.Slice(from, amount)
		}
	})
	if nil != err {
		a.log.Debugf("reward queue page from: %d  amount: %d  error: %s", from, amount, err)
	}
	return result, err
}

// QueueSubmissions - reward queue entries of an account with their
// queue positions, nil if the account is unknown
func (a *Access) QueueSubmissions(id protocol.ObjectId) *[]Submission {
	var result *[]Submission
	a.view(func(db *state.Database) {
		result = submissions(db, id)
	})
	return result
}

// QueueSubmissionsForAccounts - QueueSubmissions for several accounts
func (a *Access) QueueSubmissionsForAccounts(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, []Submission] {
	var result []Keyed[protocol.ObjectId, []Submission]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *[]Submission {
			return submissions(db, id)
		})
	})
	return result
}

func submissions(db *state.Database, id protocol.ObjectId) *[]Submission {
	if _, ok := db.Accounts.Find(id); !ok {
		return nil
	}
	result := []Submission{}
	db.RewardQueueByAccount.Prefix(queueKey(id), func(entry state.RewardQueueEntry) bool {
		position, _ := db.RewardQueueByTime.Position(entry.Id)
		result = append(result, Submission{
			Position:   position,
			Submission: entry,
		})
		return true
	})
	return &result
}

// FrequencyHistory - every global frequency change in time order
func (a *Access) FrequencyHistory() []state.FrequencyHistoryRecord {
	result := []state.FrequencyHistoryRecord{}
	a.view(func(db *state.Database) {
		db.FrequencyHistoryByTime.Each(func(r state.FrequencyHistoryRecord) bool {
			result = append(result, r)
			return true
		})
	})
	return result
}

// FrequencyHistoryByPage - amount records starting at position from
func (a *Access) FrequencyHistoryByPage(from int, amount int) ([]state.FrequencyHistoryRecord, error) {
	var result []state.FrequencyHistoryRecord
	var err error
	a.view(func(db *state.Database) {
		err = checkPage(db.FrequencyHistory.Size(), from, amount, MaximumPageSize)
		if nil == err {
			result = db.FrequencyHistoryByTime.Slice(from, amount)
		}
	})
	return result, err
}
