// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/util"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	accountSeedFilename = "account.seed"

	seedLength = 32
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "gen-account-key", "key":
		seedFilename := getFilenameWithDirectory(arguments, accountSeedFilename)
		publicKey, err := makeAccountSeed(seedFilename)
		if nil != err {
			fmt.Printf("generate account seed: %q error: %s\n", seedFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated account seed: %q\n", seedFilename)
		fmt.Printf("public key: %s\n", publicKey)

	case "start", "run":
		return false // continue processing

	case "head", "block", "b", "history", "h":
		return false // defer processing until ledger is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (?)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-account-key [DIR]      (key)    - create an account seed in: %q\n", "DIR/"+accountSeedFilename)
		fmt.Printf("                                        and print its public key for the genesis accounts\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  head                                - display the head block number and digest\n")
		fmt.Printf("\n")

		fmt.Printf("  block S [COUNT]            (b)      - dump block(s) as JSON structures to stdout\n")
		fmt.Printf("\n")

		fmt.Printf("  history N                  (h)      - dump the applied operations of a block\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		if _, err := options.genesis(); nil != err {
			exitwithstatus.Message("genesis error: %s", err)
		}
		printJSON(options)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the ledger is open so these commands can read its blocks
func processDataCommand(log *logger.L, arguments []string, l *ledger.Ledger) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "head":
		number, digest := l.Head()
		printJSON(struct {
			Number  uint64 `json:"number"`
			Digest  string `json:"digest"`
			Pending int    `json:"pending"`
		}{
			Number:  number,
			Digest:  digest.String(),
			Pending: l.PendingCount(),
		})

	case "block", "b":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}
		start, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}
		count := 1
		if len(arguments) > 1 {
			count, err = strconv.Atoi(arguments[1])
			if nil != err {
				exitwithstatus.Message("error in block count: %s", err)
			}
		}
		blocks, err := l.GetBlocks(start, count)
		if nil != err {
			log.Errorf("get blocks: %d  count: %d  error: %s", start, count, err)
			exitwithstatus.Message("get blocks error: %s", err)
		}
		printJSON(blocks)

	case "history", "h":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing block number argument")
		}
		number, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in block number: %s", err)
		}
		operations, err := l.GetOperationHistory(number)
		if nil != err {
			log.Errorf("history: %d  error: %s", number, err)
			exitwithstatus.Message("history error: %s", err)
		}
		printJSON(operations)

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, override bool, extraHosts []string) error {

	if util.EnsureFileExists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}

	if util.EnsureFileExists(privateKeyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	org := "ledgerd self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, override, extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

// write a random hex seed, returns the base58 public key
func makeAccountSeed(fileName string) (string, error) {
	if util.EnsureFileExists(fileName) {
		return "", fault.ErrKeyFileAlreadyExists
	}

	seed := make([]byte, seedLength)
	if _, err := rand.Read(seed); nil != err {
		return "", err
	}
	privateKey, err := account.PrivateKeyFromSeed(seed)
	if nil != err {
		return "", err
	}

	data := "SEED:" + hex.EncodeToString(seed) + "\n"
	if err := ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
		return "", fmt.Errorf("error writing seed file error: %w", err)
	}
	return privateKey.PublicKey().String(), nil
}

func printJSON(item interface{}) {
	b, err := json.Marshal(item)
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	json.Indent(&out, b, "", "  ")
	out.WriteTo(os.Stdout)
	os.Stdout.WriteString("\n")
}
