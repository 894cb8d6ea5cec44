// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgerd/evaluator"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// AppliedOperation - one entry of the operation history of a block
//
// client operations carry their result; virtual operations follow the
// operation that emitted them and are numbered by VirtualOp
type AppliedOperation struct {
	Block      uint64                     `json:"block"`
	TrxInBlock uint16                     `json:"trx_in_block"`
	OpInTrx    uint16                     `json:"op_in_trx"`
	VirtualOp  uint32                     `json:"virtual_op"`
	TxId       merkle.Digest              `json:"trx_id"`
	Operation  transactionrecord.Envelope `json:"op"`
	Result     evaluator.Result           `json:"result"`
}

// IsVirtual - produced by the ledger rather than submitted
func (a AppliedOperation) IsVirtual() bool {
	return nil != a.Operation.Operation && transactionrecord.IsVirtual(a.Operation.Operation.Tag())
}

// ProcessedTransaction - an accepted transaction and what it did
type ProcessedTransaction struct {
	Id          merkle.Digest                        `json:"id"`
	Transaction *transactionrecord.SignedTransaction `json:"transaction"`
	Results     []evaluator.Result                   `json:"operation_results"`
	Operations  []AppliedOperation                   `json:"operations"`
}

// BlockOperations - the selected operations of one block
type BlockOperations struct {
	Number     uint64             `json:"block_num"`
	Operations []AppliedOperation `json:"operations"`
}
