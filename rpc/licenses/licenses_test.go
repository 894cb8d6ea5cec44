// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package licenses_test

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
	"github.com/bitmark-inc/ledgerd/rpc/licenses"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

type chain struct {
	db      *state.Database
	charter protocol.ObjectId
	locked  protocol.ObjectId
	service *licenses.Licenses
}

func setup(t *testing.T) chain {
	r := evaluator.NewRegistry()
	license.Register(r)
	db := fixtures.Database()

	create := func(name string, kind protocol.LicenseKind) protocol.ObjectId {
		result, err := fixtures.Execute(db, r, &transactionrecord.CreateLicenseType{
			Authority:          fixtures.Id(db, "license-authority"),
			Name:               name,
			Amount:             100,
			Kind:               kind,
			Policy:             protocol.StandardPolicy,
			BalanceMultipliers: []uint32{2, 3},
		})
		require.NoError(t, err, "create: %s", name)
		return result.Id
	}

	c := chain{
		db:      db,
		charter: create("charter", protocol.CharteredLicense),
		locked:  create("locked", protocol.LockedFrequencyLicense),
	}

	_, err := fixtures.Execute(db, r, &transactionrecord.IssueLicense{
		Issuer:        fixtures.Id(db, "license-issuer"),
		Account:       fixtures.Id(db, "vault-one"),
		License:       c.charter,
		FrequencyLock: 300,
	})
	require.NoError(t, err, "issue")

	c.service = licenses.New(logger.New(fixtures.LogCategory), access.New(fixtures.Viewer{DB: db}))
	return c
}

func TestLicensesGet(t *testing.T) {
	c := setup(t)

	var reply licenses.TypesReply
	err := c.service.Get(&licenses.IdsArguments{Ids: []protocol.ObjectId{c.locked, protocol.LicenseTypeId(99)}}, &reply)
	assert.Nil(t, err, "wrong get")
	require.Equal(t, 2, len(reply.Types), "wrong result count")
	require.NotNil(t, reply.Types[0], "locked missing")
	assert.Equal(t, "locked", reply.Types[0].Name, "wrong name")
	assert.Nil(t, reply.Types[1], "unknown license found")

	err = c.service.Get(&licenses.IdsArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "accepted empty ids")

	var byName licenses.TypeReply
	err = c.service.ByName(&licenses.NameArguments{Name: "charter"}, &byName)
	assert.Nil(t, err, "wrong by name")
	require.NotNil(t, byName.Type, "charter missing")
	assert.Equal(t, c.charter, byName.Type.Id, "wrong id")
}

func TestLicensesLists(t *testing.T) {
	c := setup(t)

	var all licenses.AllReply
	err := c.service.All(&licenses.AllArguments{}, &all)
	assert.Nil(t, err, "wrong all")
	assert.Equal(t, 2, len(all.Types), "wrong type count")

	var names licenses.NamesReply
	err = c.service.Names(&licenses.AllArguments{}, &names)
	assert.Nil(t, err, "wrong names")
	assert.Equal(t, []access.LicenseName{
		{Name: "charter", Id: c.charter},
		{Name: "locked", Id: c.locked},
	}, names.Names, "wrong names")

	var grouped licenses.NamesByKindReply
	err = c.service.NamesByKind(&licenses.AllArguments{}, &grouped)
	assert.Nil(t, err, "wrong names by kind")
	require.Equal(t, 2, len(grouped.Groups), "wrong group count")
	assert.Equal(t, protocol.CharteredLicense, grouped.Groups[0].Kind, "wrong first kind")

	var byKind licenses.ByKindReply
	err = c.service.ByKind(&licenses.AllArguments{}, &byKind)
	assert.Nil(t, err, "wrong by kind")
	require.Equal(t, 2, len(byKind.Groups), "wrong group count")
	assert.Equal(t, "locked", byKind.Groups[1].Licenses[0].Name, "wrong locked group")
}

func TestLicensesInformation(t *testing.T) {
	c := setup(t)
	vault := fixtures.Id(c.db, "vault-one")

	var reply licenses.InformationReply
	err := c.service.Information(&licenses.IdsArguments{Ids: []protocol.ObjectId{vault, fixtures.Id(c.db, "alice")}}, &reply)
	assert.Nil(t, err, "wrong information")
	require.Equal(t, 2, len(reply.Information), "wrong result count")
	require.NotNil(t, reply.Information[0].Value, "vault missing")
	assert.Equal(t, 1, len(reply.Information[0].Value.History), "wrong record count")
	assert.Nil(t, reply.Information[1].Value, "wallet has licenses")
}
