// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package license

import (
	"math"
	"math/big"

	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
)

// conversion of cycles to the settlement coin at a frequency
const (
	dascoinPrecision = 100000
	frequencyDivisor = 100
)

// CyclesToDascoin - settlement coin for an amount of cycles at a
// frequency lock, zero when there is no lock
//
// a result beyond the int64 range saturates
func CyclesToDascoin(cycles int64, frequency uint32) int64 {
	if 0 == frequency {
		return 0
	}
	n := new(big.Int).Mul(big.NewInt(cycles), big.NewInt(dascoinPrecision*frequencyDivisor))
	n.Quo(n, big.NewInt(int64(frequency)))
	switch {
	case n.IsInt64():
		return n.Int64()
	case n.Sign() > 0:
		return math.MaxInt64
	default:
		return math.MinInt64
	}
}

// Cycles - an amount of cycles with its settlement coin value
type Cycles struct {
	Cycles  int64 `json:"cycles"`
	Dascoin int64 `json:"dascoin"`
}

// at a frequency lock
func cyclesAt(cycles int64, frequency uint32) Cycles {
	return Cycles{
		Cycles:  cycles,
		Dascoin: CyclesToDascoin(cycles, frequency),
	}
}

// Add - sum of two amounts
func (c Cycles) Add(other Cycles) Cycles {
	return Cycles{
		Cycles:  c.Cycles + other.Cycles,
		Dascoin: c.Dascoin + other.Dascoin,
	}
}

// Partition - cycles split by whether the vault is tethered
type Partition struct {
	Tethered   Cycles `json:"tethered"`
	Untethered Cycles `json:"untethered"`
}

func (p *Partition) add(tethered bool, c Cycles) {
	if tethered {
		p.Tethered = p.Tethered.Add(c)
	} else {
		p.Untethered = p.Untethered.Add(c)
	}
}

// Add - sum of two partitions
func (p Partition) Add(other Partition) Partition {
	return Partition{
		Tethered:   p.Tethered.Add(other.Tethered),
		Untethered: p.Untethered.Add(other.Untethered),
	}
}

// AutoSubmit - cycles that enter the queue without the holder acting
type AutoSubmit struct {
	Charter          Cycles `json:"charter"`
	Utility          Cycles `json:"utility"`
	Package          Cycles `json:"package"`
	AfterAllUpgrades Cycles `json:"after_all_upgrades"`
}

// Add - sum of two auto submissions
func (a AutoSubmit) Add(other AutoSubmit) AutoSubmit {
	return AutoSubmit{
		Charter:          a.Charter.Add(other.Charter),
		Utility:          a.Utility.Add(other.Utility),
		Package:          a.Package.Add(other.Package),
		AfterAllUpgrades: a.AfterAllUpgrades.Add(other.AfterAllUpgrades),
	}
}

// QueueProjection - what a vault's licenses will contribute to the
// reward queue now and after their remaining upgrades
type QueueProjection struct {
	AutoSubmit                        AutoSubmit `json:"auto_submit"`
	TotalLockedManualSubmit           Partition  `json:"total_locked_manual_submit"`
	NextUpgradeLastLockedManualSubmit Partition  `json:"next_upgrade_last_locked_manual_submit"`
	UtilityManualSubmit               Partition  `json:"utility_manual_submit"`
	PackageManualSubmit               Partition  `json:"package_manual_submit"`
	AfterAllUpgradesManualSubmit      Cycles     `json:"after_all_upgrades_manual_submit"`
}

// Add - sum of two projections
//
// projecting a history equals the sum of projecting any split of it
func (q QueueProjection) Add(other QueueProjection) QueueProjection {
	return QueueProjection{
		AutoSubmit:                        q.AutoSubmit.Add(other.AutoSubmit),
		TotalLockedManualSubmit:           q.TotalLockedManualSubmit.Add(other.TotalLockedManualSubmit),
		NextUpgradeLastLockedManualSubmit: q.NextUpgradeLastLockedManualSubmit.Add(other.NextUpgradeLastLockedManualSubmit),
		UtilityManualSubmit:               q.UtilityManualSubmit.Add(other.UtilityManualSubmit),
		PackageManualSubmit:               q.PackageManualSubmit.Add(other.PackageManualSubmit),
		AfterAllUpgradesManualSubmit:      q.AfterAllUpgradesManualSubmit.Add(other.AfterAllUpgradesManualSubmit),
	}
}

// Lookup - find a license type, false if unknown
type Lookup func(id protocol.ObjectId) (state.LicenseType, bool)

// Project - the queue projection of a license history
//
// records of unknown license types are skipped
func Project(history []state.LicenseHistoryRecord, tethered bool, lookup Lookup) QueueProjection {
	result := QueueProjection{}
	for _, record := range history {
		l, ok := lookup(record.License)
		if !ok {
			continue
		}
		switch l.Kind {
		case protocol.CharteredLicense:
			projectCharter(&result, record)
		case protocol.LockedFrequencyLicense:
			projectLocked(&result, record, l.Policy, tethered)
		case protocol.UtilityLicense:
			result.AutoSubmit.Utility = result.AutoSubmit.Utility.Add(projectAuto(&result, record))
			c := cyclesAt(record.Amount, record.FrequencyLock)
			result.UtilityManualSubmit.add(tethered, c)
			result.AfterAllUpgradesManualSubmit = result.AfterAllUpgradesManualSubmit.Add(c)
		case protocol.PackageLicense:
			result.AutoSubmit.Package = result.AutoSubmit.Package.Add(projectAuto(&result, record))
			c := cyclesAt(record.Amount, record.FrequencyLock)
			result.PackageManualSubmit.add(tethered, c)
			result.AfterAllUpgradesManualSubmit = result.AfterAllUpgradesManualSubmit.Add(c)
		}
	}
	return result
}

// multipliers of the upgrades still to come
func remaining(upgrade protocol.BalanceUpgrade) []uint32 {
	if nil != upgrade.Validate() || upgrade.Used >= upgrade.Max {
		return nil
	}
	return upgrade.Multipliers[upgrade.Used:upgrade.Max]
}

// chartered licenses submit the amount times the next multiplier
func projectCharter(result *QueueProjection, record state.LicenseHistoryRecord) {
	upgrade := record.BalanceUpgrade
	if nil != upgrade.Validate() || upgrade.Used >= upgrade.Max {
		return
	}
	next := record.Amount * int64(upgrade.Multipliers[upgrade.Used])
	result.AutoSubmit.Charter = result.AutoSubmit.Charter.Add(cyclesAt(next, record.FrequencyLock))

	total := int64(0)
	for _, m := range remaining(upgrade) {
		total += record.Amount * int64(m)
	}
	result.AutoSubmit.AfterAllUpgrades = result.AutoSubmit.AfterAllUpgrades.Add(cyclesAt(total, record.FrequencyLock))
}

// utility and package licenses submit the base amount times the next
// multiplier, returning that figure
func projectAuto(result *QueueProjection, record state.LicenseHistoryRecord) Cycles {
	upgrade := record.BalanceUpgrade
	if nil != upgrade.Validate() || upgrade.Used >= upgrade.Max {
		return Cycles{}
	}
	next := cyclesAt(record.BaseAmount*int64(upgrade.Multipliers[upgrade.Used]), record.FrequencyLock)

	total := int64(0)
	for _, m := range remaining(upgrade) {
		total += record.BaseAmount * int64(m)
	}
	result.AutoSubmit.AfterAllUpgrades = result.AutoSubmit.AfterAllUpgrades.Add(cyclesAt(total, record.FrequencyLock))
	return next
}

// locked frequency licenses wait for the holder; the president policy
// adds the bonus adjusted base on each upgrade instead of multiplying
func projectLocked(result *QueueProjection, record state.LicenseHistoryRecord, policy protocol.UpgradePolicy, tethered bool) {
	upgrade := record.BalanceUpgrade
	lock := record.FrequencyLock
	president := protocol.PresidentPolicy == policy
	base := record.BaseAmount + record.BaseAmount*int64(record.BonusPercent)/100

	current := cyclesAt(record.Amount, lock)
	fixed := cyclesAt(record.NonUpgradeableAmount, lock)

	result.TotalLockedManualSubmit.add(tethered, current.Add(fixed))

	if upgrade.Max > upgrade.Used && 1 == upgrade.Max-upgrade.Used {
		var next Cycles
		if president {
			next = cyclesAt(record.Amount+2*base, lock)
		} else {
			next = current.Add(current)
		}
		result.NextUpgradeLastLockedManualSubmit.add(tethered, next.Add(fixed))
	}

	if upgrade.Max <= upgrade.Used {
		result.AfterAllUpgradesManualSubmit = result.AfterAllUpgradesManualSubmit.Add(current.Add(fixed))
		return
	}

	amount := record.Amount
	for _, m := range remaining(upgrade) {
		multiplier := int64(m)
		if president {
			amount += base * multiplier
		} else {
			amount *= multiplier
		}
	}
	result.AfterAllUpgradesManualSubmit = result.AfterAllUpgradesManualSubmit.Add(cyclesAt(amount, lock).Add(fixed))
}

// TotalCycles - cycles held by manually submitted licenses
//
// a record whose license type is unknown is counted
func TotalCycles(history []state.LicenseHistoryRecord, lookup Lookup) Cycles {
	total := Cycles{}
	for _, record := range history {
		if l, ok := lookup(record.License); ok && !IsManualSubmit(l.Kind) {
			continue
		}
		cycles := record.Amount + record.NonUpgradeableAmount
		total = total.Add(cyclesAt(cycles, record.FrequencyLock))
	}
	return total
}
