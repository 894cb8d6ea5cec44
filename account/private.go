// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// PrivateKey - signing half of a key pair
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - random key pair
func NewPrivateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed - deterministic key pair from a seed of any length
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if 0 == len(seed) {
		return nil, fault.ErrInvalidKey
	}
	digest := sha3.Sum256(seed)
	return &PrivateKey{key: ed25519.NewKeyFromSeed(digest[:])}, nil
}

// PublicKey - the verifying half
func (p *PrivateKey) PublicKey() PublicKey {
	return PublicKey(p.key.Public().(ed25519.PublicKey))
}

// Sign - sign a message
func (p *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(p.key, message))
}
