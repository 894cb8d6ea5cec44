// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// Fingerprint - SHA3-256 of the DER form of a certificate
type Fingerprint [32]byte

// Get - validate a PEM certificate and key pair and return a server
// configuration for it
func Get(log *logger.L, name string, certificate string, key string) (*tls.Config, Fingerprint, error) {
	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, Fingerprint{}, err
	}
	return configure(keyPair), fingerprint(keyPair.Certificate[0]), nil
}

// Load - as Get for a certificate and key held in files
func Load(log *logger.L, name string, certificateFile string, keyFile string) (*tls.Config, Fingerprint, error) {
	keyPair, err := tls.LoadX509KeyPair(certificateFile, keyFile)
	if nil != err {
		log.Errorf("%s failed to load keypair from: %q  error: %s", name, certificateFile, err)
		return nil, Fingerprint{}, err
	}
	return configure(keyPair), fingerprint(keyPair.Certificate[0]), nil
}

func configure(keyPair tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{keyPair},
		MinVersion:   tls.VersionTLS12,
	}
}

// openssl x509 -outform DER -in ledgerd-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) Fingerprint {
	return sha3.Sum256(certificate)
}
