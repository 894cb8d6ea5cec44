// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"fmt"
)

// Signature - raw ed25519 signature bytes, hex in text and JSON
type Signature []byte

func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

func (signature Signature) GoString() string {
	return fmt.Sprintf("<signature:%x>", []byte(signature))
}

// MarshalText - lower case hex
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(signature)), nil
}

// UnmarshalText - hex of any case, an odd length is an error
func (signature *Signature) UnmarshalText(s []byte) error {
	b, err := hex.DecodeString(string(s))
	if nil != err {
		return err
	}
	*signature = b
	return nil
}
