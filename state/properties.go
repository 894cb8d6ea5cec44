// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"bytes"

	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// ChainAuthorities - accounts holding chain wide roles
type ChainAuthorities struct {
	WebassetIssuer   ObjectId `json:"webasset_issuer"`
	LicenseAuthority ObjectId `json:"license_authority"`
	LicenseIssuer    ObjectId `json:"license_issuer"`
	CycleIssuer      ObjectId `json:"cycle_issuer"`
	WireOutHandler   ObjectId `json:"wire_out_handler"`
}

// ChainParameters - limits and fees
//
// times are unix seconds, intervals are seconds
type ChainParameters struct {
	BlockInterval                    uint32           `json:"block_interval"`
	MaintenanceInterval              uint32           `json:"maintenance_interval"`
	MaximumTimeUntilExpiration       uint32           `json:"maximum_time_until_expiration"`
	MaximumTransactionSize           uint32           `json:"maximum_transaction_size"`
	MaximumAssetWhitelistAuthorities uint8            `json:"maximum_asset_whitelist_authorities"`
	MaximumAssetFeedPublishers       uint8            `json:"maximum_asset_feed_publishers"`
	HardforkPermissions              int64            `json:"hardfork_permissions"`
	HardforkFeedCoreRate             int64            `json:"hardfork_feed_core_rate"`
	VaultSpendingLimit               int64            `json:"vault_spending_limit"`
	DefaultFee                       int64            `json:"default_fee"`
	Fees                             map[string]int64 `json:"fees"`
}

// DefaultChainParameters - values used when nothing is configured
func DefaultChainParameters() ChainParameters {
	return ChainParameters{
		BlockInterval:                    5,
		MaintenanceInterval:              24 * 60 * 60,
		MaximumTimeUntilExpiration:       24 * 60 * 60,
		MaximumTransactionSize:           2048,
		MaximumAssetWhitelistAuthorities: 10,
		MaximumAssetFeedPublishers:       10,
		HardforkPermissions:              0,
		HardforkFeedCoreRate:             0,
		VaultSpendingLimit:               0,
		DefaultFee:                       0,
		Fees:                             map[string]int64{},
	}
}

// FeeFor - core fee charged for an operation type
func (p ChainParameters) FeeFor(tag transactionrecord.TagType) int64 {
	if fee, ok := p.Fees[tag.String()]; ok {
		return fee
	}
	return p.DefaultFee
}

// Clone - deep copy
func (p ChainParameters) Clone() ChainParameters {
	fees := make(map[string]int64, len(p.Fees))
	for k, v := range p.Fees {
		fees[k] = v
	}
	p.Fees = fees
	return p
}

// GlobalProperties - chain configuration, changes rarely
type GlobalProperties struct {
	Id              ObjectId         `json:"id"`
	ChainId         merkle.Digest    `json:"chain_id"`
	Parameters      ChainParameters  `json:"parameters"`
	Authorities     ChainAuthorities `json:"authorities"`
	ActiveWitnesses []ObjectId       `json:"active_witnesses"`
	ActiveCommittee []ObjectId       `json:"active_committee_members"`
	WebAsset        ObjectId         `json:"web_asset"`
	CycleAsset      ObjectId         `json:"cycle_asset"`
	DascoinAsset    ObjectId         `json:"dascoin_asset"`
}

// ObjectID - index identity
func (g GlobalProperties) ObjectID() ObjectId { return g.Id }

// Clone - deep copy
func (g GlobalProperties) Clone() GlobalProperties {
	g.Parameters = g.Parameters.Clone()
	g.ActiveWitnesses = cloneIds(g.ActiveWitnesses)
	g.ActiveCommittee = cloneIds(g.ActiveCommittee)
	return g
}

// IsWitness - member of the active witness set
func (g GlobalProperties) IsWitness(id ObjectId) bool {
	return containsId(g.ActiveWitnesses, id)
}

// IsCommitteeMember - member of the active committee
func (g GlobalProperties) IsCommitteeMember(id ObjectId) bool {
	return containsId(g.ActiveCommittee, id)
}

// DynamicGlobalProperties - chain state that changes every block
type DynamicGlobalProperties struct {
	Id                  ObjectId      `json:"id"`
	HeadBlockNumber     uint64        `json:"head_block_number"`
	HeadBlockId         merkle.Digest `json:"head_block_id"`
	Time                int64         `json:"time"`
	NextMaintenanceTime int64         `json:"next_maintenance_time"`
	Frequency           uint32        `json:"frequency"`
	LastFrequencyUpdate int64         `json:"last_frequency_update"`
}

// ObjectID - index identity
func (d DynamicGlobalProperties) ObjectID() ObjectId { return d.Id }

// Clone - no reference fields
func (d DynamicGlobalProperties) Clone() DynamicGlobalProperties { return d }

// TransactionRecord - an applied transaction kept until it expires
// so that a replay is rejected
type TransactionRecord struct {
	Id         ObjectId      `json:"id"`
	TxId       merkle.Digest `json:"trx_id"`
	Expiration int64         `json:"expiration"`
}

// ObjectID - index identity
func (t TransactionRecord) ObjectID() ObjectId { return t.Id }

// Clone - no reference fields
func (t TransactionRecord) Clone() TransactionRecord { return t }

// DigestKey - ordering key on a digest
type DigestKey merkle.Digest

// Compare - byte order
func (d DigestKey) Compare(x interface{}) int {
	other := x.(DigestKey)
	return bytes.Compare(d[:], other[:])
}
