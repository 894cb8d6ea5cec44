// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"
	"math"
	"math/big"

	"github.com/bitmark-inc/ledgerd/fault"
)

// MaxShareSupply - upper bound of any amount or supply
const MaxShareSupply int64 = 1000000000000000

// Amount - a quantity of one asset in its smallest unit
type Amount struct {
	Amount  int64    `json:"amount"`
	AssetId ObjectId `json:"asset_id"`
}

// NewAmount - construct an amount
func NewAmount(amount int64, asset ObjectId) Amount {
	return Amount{
		Amount:  amount,
		AssetId: asset,
	}
}

// String - human readable form
func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Amount, a.AssetId)
}

// Add - sum of two amounts of the same asset
func (a Amount) Add(b Amount) (Amount, error) {
	if a.AssetId != b.AssetId {
		return Amount{}, fault.ErrInvalidAsset
	}
	n, err := AddShares(a.Amount, b.Amount)
	if nil != err {
		return Amount{}, err
	}
	return NewAmount(n, a.AssetId), nil
}

// AddShares - overflow checked addition
func AddShares(a int64, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, fault.ErrOverflow
	}
	return a + b, nil
}

// MultiplyShares - overflow checked multiplication
func MultiplyShares(a int64, b int64) (int64, error) {
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	if !r.IsInt64() {
		return 0, fault.ErrOverflow
	}
	return r.Int64(), nil
}

// Validate - amount is within the share range
func (a Amount) Validate() error {
	if a.Amount < 0 || a.Amount > MaxShareSupply {
		return fault.ErrInvalidAmount
	}
	if !IsAsset(a.AssetId) {
		return fault.ErrInvalidAsset
	}
	return nil
}

// ValidatePositive - amount is strictly positive
func (a Amount) ValidatePositive() error {
	if err := a.Validate(); nil != err {
		return err
	}
	if 0 == a.Amount {
		return fault.ErrZeroAmount
	}
	return nil
}
