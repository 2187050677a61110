// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/connmgr/configuration"
)

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	specs := c.StringSlice("node")
	if 0 == len(specs) {
		return fmt.Errorf("at least one --node is required")
	}

	config := configuration.Default()
	if listen := c.String("listen"); "" != listen {
		config.Panel.Listen = listen
	}

	for _, spec := range specs {
		n, err := parseNode(spec)
		if nil != err {
			return err
		}
		config.Nodes = append(config.Nodes, n)
	}

	if _, err := os.Stat(m.file); nil == err && !c.Bool("force") {
		return fmt.Errorf("file: %q already exists", m.file)
	}

	var buffer bytes.Buffer
	err := configuration.Write(&buffer, config)
	if nil != err {
		return err
	}

	err = os.MkdirAll(filepath.Dir(m.file), 0o750)
	if nil != err {
		return err
	}
	err = ioutil.WriteFile(m.file, buffer.Bytes(), 0o600)
	if nil != err {
		return err
	}

	// read back so a bad node is reported now rather than at start up
	_, err = configuration.Get(m.file)
	if nil != err {
		_ = os.Remove(m.file)
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "wrote: %s\n", m.file)
	}
	return nil
}

// NAME,RPC,P2P-ADDRESS
func parseNode(spec string) (configuration.NodeConfiguration, error) {
	parts := strings.Split(spec, ",")
	if 3 != len(parts) {
		return configuration.NodeConfiguration{}, fmt.Errorf("node: %q is not NAME,RPC,P2P-ADDRESS", spec)
	}
	return configuration.NodeConfiguration{
		Name:       strings.TrimSpace(parts[0]),
		RPC:        strings.TrimSpace(parts[1]),
		P2PAddress: strings.TrimSpace(parts[2]),
	}, nil
}
