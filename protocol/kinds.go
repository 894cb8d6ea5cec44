// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"encoding/json"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// AccountKind - determines which operations an account may use
type AccountKind uint8

// account kinds
const (
	Wallet AccountKind = iota
	Vault
	Custodian
)

var accountKindNames = []string{"wallet", "vault", "custodian"}

// String - name of the kind
func (k AccountKind) String() string {
	if int(k) < len(accountKindNames) {
		return accountKindNames[k]
	}
	return "unknown"
}

// MarshalJSON - kind as text
func (k AccountKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON - kind from text
func (k *AccountKind) UnmarshalJSON(data []byte) error {
	n, err := unmarshalName(data, accountKindNames)
	if nil != err {
		return err
	}
	*k = AccountKind(n)
	return nil
}

// LicenseKind - how a license's cycles are granted
type LicenseKind uint8

// license kinds
const (
	RegularLicense LicenseKind = iota
	CharteredLicense
	LockedFrequencyLicense
	UtilityLicense
	PackageLicense
)

var licenseKindNames = []string{"regular", "chartered", "locked_frequency", "utility", "package"}

// String - name of the kind
func (k LicenseKind) String() string {
	if int(k) < len(licenseKindNames) {
		return licenseKindNames[k]
	}
	return "unknown"
}

// IsValid - a known kind
func (k LicenseKind) IsValid() bool {
	return int(k) < len(licenseKindNames)
}

// MarshalJSON - kind as text
func (k LicenseKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON - kind from text
func (k *LicenseKind) UnmarshalJSON(data []byte) error {
	n, err := unmarshalName(data, licenseKindNames)
	if nil != err {
		return err
	}
	*k = LicenseKind(n)
	return nil
}

// LicenseKinds - every kind in declaration order
func LicenseKinds() []LicenseKind {
	return []LicenseKind{RegularLicense, CharteredLicense, LockedFrequencyLicense, UtilityLicense, PackageLicense}
}

// UpgradePolicy - accumulation rule applied on upgrades
type UpgradePolicy uint8

// upgrade policies
const (
	StandardPolicy UpgradePolicy = iota
	PresidentPolicy
	CharterPolicy
)

var upgradePolicyNames = []string{"standard", "president", "charter"}

// String - name of the policy
func (p UpgradePolicy) String() string {
	if int(p) < len(upgradePolicyNames) {
		return upgradePolicyNames[p]
	}
	return "unknown"
}

// MarshalJSON - policy as text
func (p UpgradePolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON - policy from text
func (p *UpgradePolicy) UnmarshalJSON(data []byte) error {
	n, err := unmarshalName(data, upgradePolicyNames)
	if nil != err {
		return err
	}
	*p = UpgradePolicy(n)
	return nil
}

// BalanceUpgrade - progress through a multiplier table
type BalanceUpgrade struct {
	Used        uint32   `json:"used"`
	Max         uint32   `json:"max"`
	Multipliers []uint32 `json:"multipliers"`
}

// NewBalanceUpgrade - no upgrade used yet
func NewBalanceUpgrade(multipliers []uint32) BalanceUpgrade {
	return BalanceUpgrade{
		Used:        0,
		Max:         uint32(len(multipliers)),
		Multipliers: append([]uint32(nil), multipliers...),
	}
}

// Clone - deep copy
func (b BalanceUpgrade) Clone() BalanceUpgrade {
	b.Multipliers = append([]uint32(nil), b.Multipliers...)
	return b
}

// Validate - used within max and a multiplier for every tier
func (b BalanceUpgrade) Validate() error {
	if b.Used > b.Max || uint32(len(b.Multipliers)) < b.Max {
		return fault.ErrInvalidBalanceUpgrade
	}
	return nil
}

// ParseAccountKind - kind from its name, an empty name is a wallet
func ParseAccountKind(s string) (AccountKind, error) {
	if "" == s {
		return Wallet, nil
	}
	n, err := findName(s, accountKindNames)
	return AccountKind(n), err
}

func unmarshalName(data []byte, names []string) (int, error) {
	var s string
	if err := json.Unmarshal(data, &s); nil != err {
		return 0, err
	}
	return findName(s, names)
}

func findName(s string, names []string) (int, error) {
	for i, name := range names {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	return 0, fault.ErrInvalidName
}
