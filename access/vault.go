// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access

import (
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// VaultInfo - the balances and limits of a vault
type VaultInfo struct {
	CashBalance        int64                     `json:"cash_balance"`
	ReservedBalance    int64                     `json:"reserved_balance"`
	DascoinBalance     int64                     `json:"dascoin_balance"`
	FreeCycleBalance   int64                     `json:"free_cycle_balance"`
	DascoinLimit       int64                     `json:"dascoin_limit"`
	EurLimit           int64                     `json:"eur_limit"`
	Spent              int64                     `json:"spent"`
	IsTethered         bool                      `json:"is_tethered"`
	LicenseInformation *state.LicenseInformation `json:"license_information,omitempty"`
}

// VaultInfo - nil unless the account is a vault
func (a *Access) VaultInfo(id protocol.ObjectId) *VaultInfo {
	var result *VaultInfo
	a.view(func(db *state.Database) {
		result = vaultInfo(db, id)
	})
	return result
}

// VaultsInfo - VaultInfo for several accounts
func (a *Access) VaultsInfo(ids []protocol.ObjectId) []Keyed[protocol.ObjectId, VaultInfo] {
	var result []Keyed[protocol.ObjectId, VaultInfo]
	a.view(func(db *state.Database) {
		result = forAccounts(ids, func(id protocol.ObjectId) *VaultInfo {
			return vaultInfo(db, id)
		})
	})
	return result
}

func vaultInfo(db *state.Database, id protocol.ObjectId) *VaultInfo {
	account, ok := db.Accounts.Find(id)
	if !ok || !account.IsVault() {
		return nil
	}
	global := db.GlobalProperties()
	web, _ := db.FindBalance(id, global.WebAsset)
	dasc, _ := db.FindBalance(id, global.DascoinAsset)

	info := &VaultInfo{
		CashBalance:      web.Balance,
		ReservedBalance:  web.Reserved,
		DascoinBalance:   dasc.Balance,
		FreeCycleBalance: db.GetCycleBalance(id),
		DascoinLimit:     dasc.Limit,
		Spent:            dasc.Spent,
		IsTethered:       0 != len(account.Tethered),
	}

	if information, ok := db.FindLicenseInformation(id); ok {
		information = information.Clone()
		info.LicenseInformation = &information
		info.EurLimit = eurLimit(db, information)
	}
	return info
}

// highest limit of any license held
func eurLimit(db *state.Database, information state.LicenseInformation) int64 {
	limit := int64(0)
	for _, record := range information.History {
		l, ok := db.LicenseTypes.Find(record.License)
		if ok && l.EurLimit > limit {
			limit = l.EurLimit
		}
	}
	return limit
}
