// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
)

func TestKeyText(t *testing.T) {
	p, err := account.PrivateKeyFromSeed([]byte("alice"))
	assert.NoError(t, err, "seed")

	key := p.PublicKey()
	assert.True(t, key.IsValid(), "valid length")

	decoded, err := account.PublicKeyFromBase58(key.String())
	assert.NoError(t, err, "decode")
	assert.True(t, key.Equal(decoded), "round trip")

	again, _ := account.PrivateKeyFromSeed([]byte("alice"))
	assert.True(t, key.Equal(again.PublicKey()), "deterministic seed")
}

func TestKeyChecksum(t *testing.T) {
	p, _ := account.PrivateKeyFromSeed([]byte("bob"))
	s := []byte(p.PublicKey().String())

	// alter one character in the middle of the text
	if '2' == s[10] {
		s[10] = '3'
	} else {
		s[10] = '2'
	}
	_, err := account.PublicKeyFromBase58(string(s))
	assert.Error(t, err, "corrupted key accepted")

	_, err = account.PublicKeyFromBase58("0OIl")
	assert.Equal(t, fault.ErrInvalidKey, err, "not base58")
}

func TestSignature(t *testing.T) {
	p, _ := account.PrivateKeyFromSeed([]byte("carol"))
	other, _ := account.PrivateKeyFromSeed([]byte("dave"))
	message := []byte("transfer 10 to dave")

	signature := p.Sign(message)
	assert.NoError(t, p.PublicKey().CheckSignature(message, signature), "valid signature")
	assert.Equal(t, fault.ErrMissingSignature, other.PublicKey().CheckSignature(message, signature), "other key")
	assert.Equal(t, fault.ErrMissingSignature, p.PublicKey().CheckSignature([]byte("changed"), signature), "other message")
}

func TestKeyJSON(t *testing.T) {
	p, _ := account.PrivateKeyFromSeed([]byte("erin"))
	s := struct {
		Key       account.PublicKey `json:"key"`
		Signature account.Signature `json:"signature"`
	}{
		Key:       p.PublicKey(),
		Signature: p.Sign([]byte("x")),
	}
	data, err := json.Marshal(s)
	assert.NoError(t, err, "marshal")

	var r struct {
		Key       account.PublicKey `json:"key"`
		Signature account.Signature `json:"signature"`
	}
	assert.NoError(t, json.Unmarshal(data, &r), "unmarshal")
	assert.True(t, s.Key.Equal(r.Key), "key")
	assert.Equal(t, s.Signature, r.Signature, "signature")
}
