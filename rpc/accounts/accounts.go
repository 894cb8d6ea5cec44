// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package accounts

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/license"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/state"
)

const (
	maximumAccounts   = access.MaximumPageSize
	rateLimitAccounts = 200
	rateBurstAccounts = 100
)

// Query - the account part of the access layer
type Query interface {
	AccountCount() int
	Accounts(ids []protocol.ObjectId) []*state.Account
	LookupAccountNames(names []string) []*state.Account
	AccountBalancesForAccounts(ids []protocol.ObjectId, assets []protocol.ObjectId) []access.Keyed[protocol.ObjectId, []protocol.Amount]
	FreeCycleBalancesForAccounts(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, int64]
	DascoinBalancesForAccounts(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, int64]
	AllCycleBalancesForAccounts(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, []access.CycleAgreement]
	TotalCycles(id protocol.ObjectId) *license.Cycles
	QueueStateForAccounts(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, license.QueueProjection]
	VaultsInfo(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, access.VaultInfo]
}

// Accounts - type for the RPC
type Accounts struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Query   Query
}

// New - create the Accounts service
func New(log *logger.L, query Query) *Accounts {
	return &Accounts{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAccounts, rateBurstAccounts),
		Query:   query,
	}
}

// IdsArguments - a list of accounts and optionally of assets
type IdsArguments struct {
	Ids    []protocol.ObjectId `json:"ids"`
	Assets []protocol.ObjectId `json:"assets"`
}

// NamesArguments - a list of account names
type NamesArguments struct {
	Names []string `json:"names"`
}

// AccountsReply - one entry per request, nil where unknown
type AccountsReply struct {
	Accounts []*state.Account `json:"accounts"`
}

// CountArguments - empty arguments
type CountArguments struct{}

// CountReply - number of accounts
type CountReply struct {
	Count int `json:"count"`
}

// Count - the number of accounts
func (a *Accounts) Count(_ *CountArguments, reply *CountReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	reply.Count = a.Query.AccountCount()
	return nil
}

// Get - accounts by id
func (a *Accounts) Get(arguments *IdsArguments, reply *AccountsReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Accounts = a.Query.Accounts(arguments.Ids)
	return nil
}

// Lookup - accounts by name
func (a *Accounts) Lookup(arguments *NamesArguments, reply *AccountsReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Names), maximumAccounts); nil != err {
		return err
	}
	reply.Accounts = a.Query.LookupAccountNames(arguments.Names)
	return nil
}

// BalancesReply - balances per account
type BalancesReply struct {
	Balances []access.Keyed[protocol.ObjectId, []protocol.Amount] `json:"balances"`
}

// Balances - the balances of each account, all non-zero balances if
// no assets are given
func (a *Accounts) Balances(arguments *IdsArguments, reply *BalancesReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	if len(arguments.Assets) > maximumAccounts {
		return fault.ErrInvalidCount
	}
	reply.Balances = a.Query.AccountBalancesForAccounts(arguments.Ids, arguments.Assets)
	return nil
}

// AmountsReply - one amount per account
type AmountsReply struct {
	Balances []access.Keyed[protocol.ObjectId, int64] `json:"balances"`
}

// FreeCycles - free cycle balance of each account
func (a *Accounts) FreeCycles(arguments *IdsArguments, reply *AmountsReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Balances = a.Query.FreeCycleBalancesForAccounts(arguments.Ids)
	return nil
}

// Dascoin - DASC balance of each account
func (a *Accounts) Dascoin(arguments *IdsArguments, reply *AmountsReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Balances = a.Query.DascoinBalancesForAccounts(arguments.Ids)
	return nil
}

// CycleBalancesReply - free and queued cycles per account
type CycleBalancesReply struct {
	Balances []access.Keyed[protocol.ObjectId, []access.CycleAgreement] `json:"balances"`
}

// CycleBalances - free cycles followed by every queued submission
func (a *Accounts) CycleBalances(arguments *IdsArguments, reply *CycleBalancesReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Balances = a.Query.AllCycleBalancesForAccounts(arguments.Ids)
	return nil
}

// IdArguments - a single account
type IdArguments struct {
	Id protocol.ObjectId `json:"id"`
}

// TotalCyclesReply - cycles across a vault's licenses
type TotalCyclesReply struct {
	Total *license.Cycles `json:"total"`
}

// TotalCycles - cycles across every license of a vault
func (a *Accounts) TotalCycles(arguments *IdArguments, reply *TotalCyclesReply) error {
	if err := ratelimit.Limit(a.Limiter); nil != err {
		return err
	}
	reply.Total = a.Query.TotalCycles(arguments.Id)
	return nil
}

// QueueStateReply - projected queue contributions per vault
type QueueStateReply struct {
	Projections []access.Keyed[protocol.ObjectId, license.QueueProjection] `json:"projections"`
}

// QueueState - what each vault's licenses would contribute to the
// reward queue
func (a *Accounts) QueueState(arguments *IdsArguments, reply *QueueStateReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Projections = a.Query.QueueStateForAccounts(arguments.Ids)
	return nil
}

// VaultsReply - vault summaries
type VaultsReply struct {
	Vaults []access.Keyed[protocol.ObjectId, access.VaultInfo] `json:"vaults"`
}

// Vaults - balances and limits of each vault
func (a *Accounts) Vaults(arguments *IdsArguments, reply *VaultsReply) error {
	if err := ratelimit.LimitN(a.Limiter, len(arguments.Ids), maximumAccounts); nil != err {
		return err
	}
	reply.Vaults = a.Query.VaultsInfo(arguments.Ids)
	return nil
}
