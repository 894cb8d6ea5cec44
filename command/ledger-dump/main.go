// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

type metadata struct {
	file    string
	verbose bool
	e       io.Writer
	w       io.Writer
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp(os.Stdout, os.Stderr, startLogging)
	app.After = func(c *cli.Context) error {
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}

// create the command set, before runs ahead of any command
func newApp(w io.Writer, e io.Writer, before func(c *cli.Context) error) *cli.App {

	app := cli.NewApp()
	app.Name = "ledger-dump"
	app.Usage = "offline inspection of a ledger database"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: "*leveldb database `DIRECTORY`",
		},
		cli.StringFlag{
			Name:  "log-directory, l",
			Value: os.TempDir(),
			Usage: " write the log file to `DIRECTORY`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "head",
			Usage:     "display the head block",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runHead,
		},
		{
			Name:      "blocks",
			Usage:     "dump a range of blocks with their transactions",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first block `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 10,
					Usage: " number of blocks `COUNT`",
				},
			},
			Action: runBlocks,
		},
		{
			Name:      "virtual",
			Usage:     "dump the virtual operations of a range of blocks",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 1,
					Usage: " first block `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 10,
					Usage: " number of blocks `COUNT`",
				},
				cli.StringSliceFlag{
					Name:  "operation, o",
					Usage: " only this virtual operation `NAME` (may be repeated)",
				},
			},
			Action: runVirtual,
		},
		{
			Name:      "history",
			Usage:     "dump every applied operation of one block",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "block, b",
					Value: 0,
					Usage: "*block `NUMBER`",
				},
			},
			Action: runHistory,
		},
	}

	app.Before = func(c *cli.Context) error {
		file := c.GlobalString("file")
		if 0 == c.NArg() || "help" == c.Args().First() || "h" == c.Args().First() {
			return nil
		}
		if "" == file {
			return fmt.Errorf("database file is required")
		}

		c.App.Metadata = map[string]interface{}{
			"config": &metadata{
				file:    file,
				verbose: c.GlobalBool("verbose"),
				e:       e,
				w:       w,
			},
		}

		if nil != before {
			return before(c)
		}
		return nil
	}
	return app
}

func startLogging(c *cli.Context) error {
	logging := logger.Configuration{
		Directory: c.GlobalString("log-directory"),
		File:      "ledger-dump.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	return logger.Initialise(logging)
}
