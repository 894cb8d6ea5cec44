// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package licenses

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/access"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/rpc/ratelimit"
	"github.com/bitmark-inc/ledgerd/state"
)

const (
	maximumLicenses   = access.MaximumPageSize
	rateLimitLicenses = 200
	rateBurstLicenses = 100
)

// Query - the license part of the access layer
type Query interface {
	LicenseTypes(ids []protocol.ObjectId) []*state.LicenseType
	LicenseTypeByName(name string) *state.LicenseType
	AllLicenseTypes() []state.LicenseType
	LicenseTypeNames() []access.LicenseName
	LicenseTypeNamesByKind() []access.LicenseKindGroup
	LicenseTypesByKind() []access.LicenseTypeGroup
	LicenseInformation(ids []protocol.ObjectId) []access.Keyed[protocol.ObjectId, state.LicenseInformation]
}

// Licenses - type for the RPC
type Licenses struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Query   Query
}

// New - create the Licenses service
func New(log *logger.L, query Query) *Licenses {
	return &Licenses{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLicenses, rateBurstLicenses),
		Query:   query,
	}
}

// IdsArguments - license type or account ids
type IdsArguments struct {
	Ids []protocol.ObjectId `json:"ids"`
}

// TypesReply - one entry per request, nil where unknown
type TypesReply struct {
	Types []*state.LicenseType `json:"types"`
}

// Get - license types by id
func (l *Licenses) Get(arguments *IdsArguments, reply *TypesReply) error {
	if err := ratelimit.LimitN(l.Limiter, len(arguments.Ids), maximumLicenses); nil != err {
		return err
	}
	reply.Types = l.Query.LicenseTypes(arguments.Ids)
	return nil
}

// NameArguments - a license type name
type NameArguments struct {
	Name string `json:"name"`
}

// TypeReply - a single license type, nil if unknown
type TypeReply struct {
	Type *state.LicenseType `json:"type"`
}

// ByName - a license type by its unique name
func (l *Licenses) ByName(arguments *NameArguments, reply *TypeReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	reply.Type = l.Query.LicenseTypeByName(arguments.Name)
	return nil
}

// AllArguments - empty arguments
type AllArguments struct{}

// AllReply - every license type in id order
type AllReply struct {
	Types []state.LicenseType `json:"types"`
}

// All - every license type
func (l *Licenses) All(_ *AllArguments, reply *AllReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	reply.Types = l.Query.AllLicenseTypes()
	return nil
}

// NamesReply - names and ids in id order
type NamesReply struct {
	Names []access.LicenseName `json:"names"`
}

// Names - name and id of every license type
func (l *Licenses) Names(_ *AllArguments, reply *NamesReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	reply.Names = l.Query.LicenseTypeNames()
	return nil
}

// NamesByKindReply - names grouped by license kind
type NamesByKindReply struct {
	Groups []access.LicenseKindGroup `json:"groups"`
}

// NamesByKind - names and ids grouped by kind, each group in name order
func (l *Licenses) NamesByKind(_ *AllArguments, reply *NamesByKindReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	reply.Groups = l.Query.LicenseTypeNamesByKind()
	return nil
}

// ByKindReply - license types grouped by kind
type ByKindReply struct {
	Groups []access.LicenseTypeGroup `json:"groups"`
}

// ByKind - license types grouped by kind, each group in name order
func (l *Licenses) ByKind(_ *AllArguments, reply *ByKindReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	reply.Groups = l.Query.LicenseTypesByKind()
	return nil
}

// InformationReply - license records per account
type InformationReply struct {
	Information []access.Keyed[protocol.ObjectId, state.LicenseInformation] `json:"information"`
}

// Information - the licenses held by each account
func (l *Licenses) Information(arguments *IdsArguments, reply *InformationReply) error {
	if err := ratelimit.LimitN(l.Limiter, len(arguments.Ids), maximumLicenses); nil != err {
		return err
	}
	reply.Information = l.Query.LicenseInformation(arguments.Ids)
	return nil
}
