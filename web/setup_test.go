// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/connmgr/api/mocks"
	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/fixtures"
	"github.com/bitmark-inc/connmgr/node"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeNodes(ctl *gomock.Controller, names ...string) (node.List, []*mocks.MockNet) {
	nodes := make(node.List, len(names))
	nets := make([]*mocks.MockNet, len(names))
	for i, name := range names {
		nets[i] = mocks.NewMockNet(ctl)
		nodes[i] = &node.Node{
			Name:   name,
			PeerID: fixtures.PeerID(i),
			API:    nets[i],
		}
	}
	return nodes, nets
}

func newManager(nodes node.List, metrics *connmgr.Metrics) *connmgr.Manager {
	return connmgr.New(logger.New(fixtures.LogCategory), nodes, connmgr.Options{Metrics: metrics})
}
