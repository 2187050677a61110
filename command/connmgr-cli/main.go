// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/connmgr/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	timeout time.Duration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "connmgr-cli"
	app.Usage = "inspect and change connections between test nodes"
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
			Name:  "config, c",
			Value: "connmgr.conf",
			Usage: " configuration `FILE`",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: 30 * time.Second,
			Usage: " give up on node RPC after `DURATION`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "write a configuration file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "node, n",
					Usage: "*node `NAME,RPC,P2P-ADDRESS` (repeat for each node)",
				},
				cli.StringFlag{
					Name:  "listen, l",
					Value: "",
					Usage: " panel listen `HOST:PORT`",
				},
				cli.BoolFlag{
					Name:  "force, f",
					Usage: " overwrite an existing file",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "status",
			Usage:     "poll every node pair once and show the matrix",
			ArgsUsage: " ",
			Action:    runStatus,
		},
		{
			Name:      "connect",
			Usage:     "connect one node to an earlier node",
			ArgsUsage: "FROM TO",
			Action:    runConnect,
		},
		{
			Name:      "disconnect",
			Usage:     "disconnect one node from an earlier node",
			ArgsUsage: "FROM TO",
			Action:    runDisconnect,
		},
		{
			Name:      "topology",
			Usage:     "apply a bulk topology",
			ArgsUsage: "[none|all|star|chain]",
			Action:    runTopology,
		},
		{
			Name:      "version",
			Usage:     "display version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	// read the configuration, except for commands that create it
	app.Before = func(c *cli.Context) error {
		file := c.GlobalString("config")
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			file:    file,
			timeout: c.GlobalDuration("timeout"),
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		command := c.Args().First()
		if "setup" == command || "version" == command || "help" == command || "h" == command || "" == command {
			return nil
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Get(file)
		if nil != err {
			return err
		}
		m.config = config
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	fmt.Fprintf(m.w, "%s\n", version)
	return nil
}
