// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// enumeration of supported key algorithms
const (
	ED25519 = 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// the single byte in front of every encoded key
const keyVariant = byte(ED25519<<algorithmShift) | publicKeyCode

// PublicKey - an account's active key
type PublicKey []byte

// PublicKeyFromBase58 - decode and checksum a textual key
func PublicKeyFromBase58(s string) (PublicKey, error) {
	decoded, err := base58.Decode(s)
	if nil != err || len(decoded) != 1+ed25519.PublicKeySize+checksumLength {
		return nil, fault.ErrInvalidKey
	}
	if keyVariant != decoded[0] {
		return nil, fault.ErrInvalidKey
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrInvalidKeyChecksum
	}
	return PublicKey(decoded[1:checksumStart]), nil
}

// IsValid - key has the right length
func (key PublicKey) IsValid() bool {
	return ed25519.PublicKeySize == len(key)
}

// Bytes - key variant followed by the key
func (key PublicKey) Bytes() []byte {
	return append([]byte{keyVariant}, key...)
}

// String - base58 encoding of the key with checksum
func (key PublicKey) String() string {
	buffer := key.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - convert a key to its base58 JSON form
func (key PublicKey) MarshalText() ([]byte, error) {
	return []byte(key.String()), nil
}

// UnmarshalText - convert base58 JSON text to a key
func (key *PublicKey) UnmarshalText(s []byte) error {
	k, err := PublicKeyFromBase58(string(s))
	if nil != err {
		return err
	}
	*key = k
	return nil
}

// CheckSignature - verify the signature of a message
func (key PublicKey) CheckSignature(message []byte, signature Signature) error {
	if !key.IsValid() || ed25519.SignatureSize != len(signature) {
		return fault.ErrMissingSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(key), message, signature) {
		return fault.ErrMissingSignature
	}
	return nil
}

// Equal - same key bytes
func (key PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(key, other)
}
