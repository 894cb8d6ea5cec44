// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package protocol

import (
	"fmt"
	"math/big"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Price - the exchange ratio base : quote as a pair of amounts
type Price struct {
	Base  Amount `json:"base"`
	Quote Amount `json:"quote"`
}

// NewPrice - construct a price
func NewPrice(base Amount, quote Amount) Price {
	return Price{
		Base:  base,
		Quote: quote,
	}
}

// MinPrice - the lowest price of a market
func MinPrice(base ObjectId, quote ObjectId) Price {
	return NewPrice(NewAmount(1, base), NewAmount(MaxShareSupply, quote))
}

// MaxPrice - the highest price of a market
func MaxPrice(base ObjectId, quote ObjectId) Price {
	return NewPrice(NewAmount(MaxShareSupply, base), NewAmount(1, quote))
}

// String - human readable form
func (p Price) String() string {
	return fmt.Sprintf("%s/%s", p.Base, p.Quote)
}

// IsNull - an unset price
func (p Price) IsNull() bool {
	return 0 == p.Base.Amount && 0 == p.Quote.Amount
}

// Validate - both sides positive and of different assets
func (p Price) Validate() error {
	if p.Base.Amount <= 0 || p.Quote.Amount <= 0 {
		return fault.ErrInvalidPrice
	}
	if p.Base.AssetId == p.Quote.AssetId {
		return fault.ErrInvalidPrice
	}
	return nil
}

// Invert - swap base and quote
func (p Price) Invert() Price {
	return NewPrice(p.Quote, p.Base)
}

// Compare - order prices of the same market
//
// prices are ordered first by market then by base/quote ratio, so a
// price offering more base per unit of quote is the greater one
func (p Price) Compare(x interface{}) int {
	other := x.(Price)
	if r := p.Base.AssetId.Compare(other.Base.AssetId); 0 != r {
		return r
	}
	if r := p.Quote.AssetId.Compare(other.Quote.AssetId); 0 != r {
		return r
	}
	left := new(big.Int).Mul(big.NewInt(p.Base.Amount), big.NewInt(other.Quote.Amount))
	right := new(big.Int).Mul(big.NewInt(other.Base.Amount), big.NewInt(p.Quote.Amount))
	return left.Cmp(right)
}

// Less - strict ordering
func (p Price) Less(other Price) bool {
	return p.Compare(other) < 0
}

// Multiply - convert an amount through the price, rounding down
func (p Price) Multiply(a Amount) (Amount, error) {
	return p.multiply(a, false)
}

// MultiplyRoundUp - convert an amount through the price, rounding up
func (p Price) MultiplyRoundUp(a Amount) (Amount, error) {
	return p.multiply(a, true)
}

func (p Price) multiply(a Amount, roundUp bool) (Amount, error) {
	var numerator, denominator int64
	var result ObjectId
	switch a.AssetId {
	case p.Base.AssetId:
		numerator, denominator, result = p.Quote.Amount, p.Base.Amount, p.Quote.AssetId
	case p.Quote.AssetId:
		numerator, denominator, result = p.Base.Amount, p.Quote.Amount, p.Base.AssetId
	default:
		return Amount{}, fault.ErrInvalidAsset
	}
	if 0 == denominator {
		return Amount{}, fault.ErrNullPrice
	}

	r := new(big.Int).Mul(big.NewInt(a.Amount), big.NewInt(numerator))
	d := big.NewInt(denominator)
	q, m := new(big.Int).QuoRem(r, d, new(big.Int))
	if roundUp && 0 != m.Sign() {
		q.Add(q, big.NewInt(1))
	}
	if !q.IsInt64() || q.Int64() > MaxShareSupply {
		return Amount{}, fault.ErrOverflow
	}
	return NewAmount(q.Int64(), result), nil
}

// Ratio - the amounts as a rational quote/base
func (p Price) Ratio() *big.Rat {
	if 0 == p.Base.Amount {
		return new(big.Rat)
	}
	return big.NewRat(p.Quote.Amount, p.Base.Amount)
}
