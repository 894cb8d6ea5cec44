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

// LicenseName - name and id of a license type
type LicenseName struct {
	Name string            `json:"name"`
	Id   protocol.ObjectId `json:"id"`
}

// LicenseKindGroup - license type names of one kind
type LicenseKindGroup struct {
	Kind     protocol.LicenseKind `json:"kind"`
	Licenses []LicenseName        `json:"licenses"`
}

// LicenseTypeGroup - license types of one kind
type LicenseTypeGroup struct {
	Kind     protocol.LicenseKind `json:"kind"`
	Licenses []state.LicenseType  `json:"licenses"`
}

// LicenseTypes - license types by id, nil for unknown ids
func (a *Access) LicenseTypes(ids []protocol.ObjectId) []*state.LicenseType {
	result := make([]*state.LicenseType, 0, len(ids))
	a.view(func(db *state.Database) {
		for _, id := range ids {
			l, ok := db.LicenseTypes.Find(id)
			result = append(result, found(l.Clone(), ok))
		}
	})
	return result
}

// LicenseTypeByName - a license type by its unique name
func (a *Access) LicenseTypeByName(name string) *state.LicenseType {
	var result *state.LicenseType
	a.view(func(db *state.Database) {
		l, ok := db.FindLicenseTypeByName(name)
		result = found(l.Clone(), ok)
	})
	return result
}

// AllLicenseTypes - every license type in id order
func (a *Access) AllLicenseTypes() []state.LicenseType {
	result := []state.LicenseType{}
	a.view(func(db *state.Database) {
		db.LicenseTypes.Each(func(l state.LicenseType) bool {
			result = append(result, l.Clone())
			return true
		})
	})
	return result
}

// LicenseTypeNames - names and ids of every license type in id order
func (a *Access) LicenseTypeNames() []LicenseName {
	result := []LicenseName{}
	a.view(func(db *state.Database) {
		db.LicenseTypes.Each(func(l state.LicenseType) bool {
			result = append(result, LicenseName{Name: l.Name, Id: l.Id})
			return true
		})
	})
	return result
}

// LicenseTypeNamesByKind - license names grouped by kind, kinds with
// no license types are omitted
func (a *Access) LicenseTypeNamesByKind() []LicenseKindGroup {
	result := []LicenseKindGroup{}
	a.view(func(db *state.Database) {
		for _, kind := range protocol.LicenseKinds() {
			group := LicenseKindGroup{Kind: kind}
			eachOfKind(db, kind, func(l state.LicenseType) {
				group.Licenses = append(group.Licenses, LicenseName{Name: l.Name, Id: l.Id})
			})
			if 0 != len(group.Licenses) {
				result = append(result, group)
			}
		}
	})
	return result
}

// LicenseTypesByKind - license types grouped by kind, kinds with no
// license types are omitted
func (a *Access) LicenseTypesByKind() []LicenseTypeGroup {
	result := []LicenseTypeGroup{}
	a.view(func(db *state.Database) {
		for _, kind := range protocol.LicenseKinds() {
			group := LicenseTypeGroup{Kind: kind}
			eachOfKind(db, kind, func(l state.LicenseType) {
				group.Licenses = append(group.Licenses, l.Clone())
			})
			if 0 != len(group.Licenses) {
				result = append(result, group)
			}
		}
	})
	return result
}

// in name order
func eachOfKind(db *state.Database, kind protocol.LicenseKind, f func(state.LicenseType)) {
	prefix := objectstore.Composite{objectstore.Uint64Key(kind)}
	db.LicenseTypesByKind.Prefix(prefix, func(l state.LicenseType) bool {
		f(l)
		return true
	})
}

// LicenseInformation - license records of accounts, nil for accounts
// holding no licenses
func (a *Access) LicenseInformation(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, state.LicenseInformation] {
	var result []Keyed[protocol.ObjectId, state.LicenseInformation]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *state.LicenseInformation {
			information, ok := db.FindLicenseInformation(id)
			return found(information.Clone(), ok)
		})
	})
	return result
}
