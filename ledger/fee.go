// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/protocol"
	"github.com/bitmark-inc/ledgerd/state"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// charge the offered fee of one operation
//
// a fee in core is paid directly; a fee in another asset is converted
// by the asset's core exchange rate and the core equivalent is taken
// from that asset's fee pool
func payFee(db *state.Database, op transactionrecord.Operation) error {
	required := db.Parameters().FeeFor(op.Tag())
	fee := op.GetFee()

	if 0 == fee.Amount {
		if required > 0 {
			return fault.ErrFeeTooLow
		}
		return nil
	}

	core, err := db.GetAsset(protocol.CoreAsset)
	if nil != err {
		return err
	}

	coreFee := fee
	if protocol.CoreAsset != fee.AssetId {
		a, err := db.GetAsset(fee.AssetId)
		if nil != err {
			return err
		}
		coreFee, err = a.Options.CoreExchangeRate.Multiply(fee)
		if nil != err {
			return err
		}
		if protocol.CoreAsset != coreFee.AssetId {
			return fault.ErrInvalidAsset
		}
		if coreFee.Amount < required {
			return fault.ErrFeeTooLow
		}

		dynamic, err := db.GetDynamicData(a)
		if nil != err {
			return err
		}
		if dynamic.FeePool < coreFee.Amount {
			return fault.ErrFeePoolInsufficient
		}
		fees, err := protocol.AddShares(dynamic.AccumulatedFees, fee.Amount)
		if nil != err {
			return err
		}
		err = db.AdjustBalance(op.FeePayer(), protocol.NewAmount(-fee.Amount, fee.AssetId))
		if nil != err {
			return err
		}
		err = db.DynamicData.Modify(dynamic.Id, func(d *state.AssetDynamicData) {
			d.AccumulatedFees = fees
			d.FeePool -= coreFee.Amount
		})
		if nil != err {
			return err
		}
	} else {
		if fee.Amount < required {
			return fault.ErrFeeTooLow
		}
		err = db.AdjustBalance(op.FeePayer(), protocol.NewAmount(-fee.Amount, fee.AssetId))
		if nil != err {
			return err
		}
	}

	dynamic, err := db.GetDynamicData(core)
	if nil != err {
		return err
	}
	fees, err := protocol.AddShares(dynamic.AccumulatedFees, coreFee.Amount)
	if nil != err {
		return err
	}
	return db.DynamicData.Modify(dynamic.Id, func(d *state.AssetDynamicData) {
		d.AccumulatedFees = fees
	})
}
