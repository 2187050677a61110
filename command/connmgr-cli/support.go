// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/web"
)

const cliLogFile = "connmgr-cli.log"

// the result printed by every command that talks to nodes
type statusReply struct {
	Nodes  []string        `json:"nodes"`
	Conns  map[string]bool `json:"conns"`
	Matrix []string        `json:"matrix"`
	Error  string          `json:"error,omitempty"`
}

// dial every configured node
//
// the returned function closes the connections and stops logging
func open(m *metadata) (context.Context, *connmgr.Manager, func(), error) {
	logging := m.config.Logging
	logging.File = cliLogFile
	logging.Console = false

	if err := os.MkdirAll(logging.Directory, 0o700); nil != err {
		return nil, nil, nil, err
	}
	if err := logger.Initialise(logging); nil != err {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)

	if m.verbose {
		fmt.Fprintf(m.e, "dialling %d nodes\n", len(m.config.Nodes))
	}

	nodes, closer, err := node.Dial(ctx, logger.New("dial"), m.config.Nodes, api.NewNetRPC)
	if nil != err {
		cancel()
		logger.Finalise()
		return nil, nil, nil, err
	}

	manager := connmgr.New(logger.New("connmgr"), nodes, connmgr.Options{
		AddrTTL:  m.config.AddrTTL(),
		Parallel: m.config.ParallelPoll,
	})

	done := func() {
		closer()
		cancel()
		logger.Finalise()
	}
	return ctx, manager, done, nil
}

func report(m *metadata, manager *connmgr.Manager) error {
	s := manager.State().Snapshot()
	return printJson(m.w, statusReply{
		Nodes:  manager.Nodes().Names(),
		Conns:  s.Conns,
		Matrix: matrixLines(web.Render(manager.Nodes(), s)),
		Error:  s.Error,
	})
}

// text form of the panel matrix, one line per row
func matrixLines(matrix web.Matrix) []string {
	lines := make([]string, 0, len(matrix.Rows))
	for _, row := range matrix.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			mark := " "
			if c.Checked {
				mark = "x"
			}
			cells = append(cells, fmt.Sprintf("%s[%s]", c.To, mark))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", row.Name, strings.Join(cells, " ")))
	}
	return lines
}
