// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

type headReply struct {
	Number uint64 `json:"number"`
	Digest string `json:"digest"`
}

// open the database read only and restore its last checkpoint
func openLedger(m *metadata) (*ledger.Ledger, func(), error) {
	if m.verbose {
		fmt.Fprintf(m.e, "database: %q\n", m.file)
	}
	store, err := storage.Open(m.file, true)
	if nil != err {
		return nil, nil, err
	}
	l, err := ledger.Restore(store, ledger.Options{})
	if nil != err {
		store.Close()
		return nil, nil, err
	}
	return l, store.Close, nil
}

func runHead(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	l, done, err := openLedger(m)
	if nil != err {
		return err
	}
	defer done()

	number, digest := l.Head()
	return printJson(m.w, headReply{
		Number: number,
		Digest: digest.String(),
	})
}

func runBlocks(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	l, done, err := openLedger(m)
	if nil != err {
		return err
	}
	defer done()

	blocks, err := l.GetBlocks(c.Uint64("start"), c.Int("count"))
	if nil != err {
		return err
	}
	return printJson(m.w, blocks)
}

func runVirtual(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	tags := []transactionrecord.TagType{}
	for _, name := range c.StringSlice("operation") {
		tag, ok := transactionrecord.TagFromName(name)
		if !ok || !transactionrecord.IsVirtual(tag) {
			return fmt.Errorf("operation: %q  %w", name, fault.ErrInvalidName)
		}
		tags = append(tags, tag)
	}

	l, done, err := openLedger(m)
	if nil != err {
		return err
	}
	defer done()

	blocks, err := l.GetBlocksWithVirtualOperations(c.Uint64("start"), c.Int("count"), tags)
	if nil != err {
		return err
	}
	return printJson(m.w, blocks)
}

func runHistory(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	number := c.Uint64("block")
	if 0 == number {
		return fmt.Errorf("block number is required")
	}

	l, done, err := openLedger(m)
	if nil != err {
		return err
	}
	defer done()

	operations, err := l.GetOperationHistory(number)
	if nil != err {
		return err
	}
	return printJson(m.w, operations)
}

func printJson(w io.Writer, item interface{}) error {
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		return err
	}
	fmt.Fprintf(w, "%s\n", b)
	return nil
}
