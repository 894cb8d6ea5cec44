// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package evaluator

import (
	"encoding/json"

	"github.com/bitmark-inc/ledgerd/protocol"
)

// ResultKind - which field of a Result is meaningful
type ResultKind uint8

// result kinds
const (
	Void ResultKind = iota
	Object
	Asset
)

// Result - the outcome of applying one operation
type Result struct {
	Kind   ResultKind
	Id     protocol.ObjectId
	Amount protocol.Amount
}

// VoidResult - nothing to report
func VoidResult() Result {
	return Result{Kind: Void}
}

// ObjectResult - id of the object created
func ObjectResult(id protocol.ObjectId) Result {
	return Result{
		Kind: Object,
		Id:   id,
	}
}

// AssetResult - amount produced
func AssetResult(amount protocol.Amount) Result {
	return Result{
		Kind:   Asset,
		Amount: amount,
	}
}

// MarshalJSON - only the meaningful field
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case Object:
		return json.Marshal(struct {
			Object protocol.ObjectId `json:"object_id"`
		}{r.Id})
	case Asset:
		return json.Marshal(struct {
			Asset protocol.Amount `json:"asset"`
		}{r.Amount})
	default:
		return []byte("{}"), nil
	}
}

// UnmarshalJSON - kind from whichever field is present
func (r *Result) UnmarshalJSON(data []byte) error {
	var j struct {
		Object *protocol.ObjectId `json:"object_id"`
		Asset  *protocol.Amount   `json:"asset"`
	}
	if err := json.Unmarshal(data, &j); nil != err {
		return err
	}
	switch {
	case nil != j.Object:
		*r = ObjectResult(*j.Object)
	case nil != j.Asset:
		*r = AssetResult(*j.Asset)
	default:
		*r = VoidResult()
	}
	return nil
}
