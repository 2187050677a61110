// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/connmgr/configuration"
)

// setup command handler
//
// commands that create files or do not need the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "gen-panel-cert", "panel":
		certificateFilename := getFilenameWithDirectory(arguments, panelCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, panelPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("panel", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate panel key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated panel key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)
		return true

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  gen-panel-cert [DIR [HOST...]]  (panel) - create a self-signed panel TLS certificate: %q\n", "DIR/"+panelCertificateFilename)
		fmt.Printf("                                        and private key: %q\n", "DIR/"+panelPrivateKeyFilename)
		fmt.Printf("                                        HOST adds extra IP addresses or host names\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// fail-safe return, but should never be reached
	return true
}

// configuration command handler
//
// commands that need the configuration file but no connections
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "config-test", "cfg":
		b, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			exitwithstatus.Message("configuration marshal error: %s", err)
		}
		fmt.Printf("configuration: %s\n", b)
		fmt.Printf("nodes:\n")
		for _, n := range options.Nodes {
			fmt.Printf("  %-16s %s  %s\n", n.Name, n.ID().Pretty(), n.RPC)
		}
		return true

	default:
		return false
	}
}
