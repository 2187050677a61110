// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"

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

type harness struct {
	ctl   *gomock.Controller
	mocks []*mocks.MockNet
	nodes node.List
	infos []peer.AddrInfo
}

func newHarness(t *testing.T, names ...string) *harness {
	h := &harness{
		ctl:   gomock.NewController(t),
		mocks: make([]*mocks.MockNet, len(names)),
		nodes: make(node.List, len(names)),
		infos: make([]peer.AddrInfo, len(names)),
	}

	for i, name := range names {
		addr, err := ma.NewMultiaddr(fmt.Sprintf("/ip4/127.0.0.1/tcp/%d", 4000+i))
		if nil != err {
			t.Fatalf("multiaddr: %s", err)
		}
		h.mocks[i] = mocks.NewMockNet(h.ctl)
		h.nodes[i] = &node.Node{
			Name:   name,
			PeerID: fixtures.PeerID(i),
			API:    h.mocks[i],
		}
		h.infos[i] = peer.AddrInfo{
			ID:    fixtures.PeerID(i),
			Addrs: []ma.Multiaddr{addr},
		}
	}
	return h
}

func (h *harness) manager(options connmgr.Options) *connmgr.Manager {
	return connmgr.New(logger.New(fixtures.LogCategory), h.nodes, options)
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}
