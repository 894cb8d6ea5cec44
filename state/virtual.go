// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package state

import (
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Emit - record a virtual operation produced while applying
func (db *Database) Emit(op transactionrecord.Operation) {
	db.virtual = append(db.virtual, op)
}

// VirtualMark - current length of the virtual operation list
func (db *Database) VirtualMark() int {
	return len(db.virtual)
}

// RollbackVirtual - drop virtual operations emitted after mark
func (db *Database) RollbackVirtual(mark int) {
	if mark < len(db.virtual) {
		db.virtual = db.virtual[:mark]
	}
}

// TakeVirtual - the virtual operations emitted since the last take
func (db *Database) TakeVirtual() []transactionrecord.Operation {
	ops := db.virtual
	db.virtual = nil
	return ops
}
