// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package simnode_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p-core/network"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/fixtures"
	"github.com/bitmark-inc/connmgr/simnode"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}

func startNodes(t *testing.T, names ...string) []*simnode.Node {
	nodes := make([]*simnode.Node, 0, len(names))
	for _, name := range names {
		n, err := simnode.New(context.Background(), name, simnode.Config{})
		if nil != err {
			for _, started := range nodes {
				_ = started.Close()
			}
			t.Fatalf("start %s error: %s", name, err)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func closeNodes(nodes []*simnode.Node) {
	for _, n := range nodes {
		_ = n.Close()
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key, err := simnode.MakeEd25519Key()
	assert.Nil(t, err, "generate")

	text, err := simnode.EncodePrivKeyToHex(key)
	assert.Nil(t, err, "encode")

	decoded, err := simnode.DecodePrivKeyFromHex("   \t" + text + "  \n")
	assert.Nil(t, err, "decode")
	assert.True(t, key.Equals(decoded), "keys differ")

	_, err = simnode.DecodePrivKeyFromHex("not hex")
	assert.NotNil(t, err, "bad hex accepted")
}

func TestFixedIdentity(t *testing.T) {
	key, err := simnode.MakeEd25519Key()
	assert.Nil(t, err, "generate")

	n, err := simnode.New(context.Background(), "fixed", simnode.Config{PrivateKey: key})
	if nil != err {
		t.Fatalf("start error: %s", err)
	}
	defer n.Close()

	info, err := n.NetAddrsListen(context.Background())
	assert.Nil(t, err, "NetAddrsListen")
	assert.Equal(t, n.ID(), info.ID, "wrong id")
	assert.NotEqual(t, 0, len(info.Addrs), "no listen addresses")
	assert.Contains(t, n.P2PAddress(), n.ID().Pretty(), "p2p address without id")
}

func TestConnectDisconnect(t *testing.T) {
	nodes := startNodes(t, "a", "b")
	defer closeNodes(nodes)

	a, b := nodes[0], nodes[1]
	ctx := context.Background()

	c, err := b.NetConnectedness(ctx, a.ID())
	assert.Nil(t, err, "connectedness")
	assert.NotEqual(t, network.Connected, c, "connected before connect")

	info, err := a.NetAddrsListen(ctx)
	assert.Nil(t, err, "NetAddrsListen")

	err = b.NetConnect(ctx, info)
	assert.Nil(t, err, "NetConnect")

	c, err = b.NetConnectedness(ctx, a.ID())
	assert.Nil(t, err, "connectedness")
	assert.Equal(t, network.Connected, c, "not connected")

	waitFor(t, 5*time.Second, func() bool {
		return 1 == a.ConnCount() && 1 == b.ConnCount()
	})

	err = b.NetDisconnect(ctx, a.ID())
	assert.Nil(t, err, "NetDisconnect")

	c, err = b.NetConnectedness(ctx, a.ID())
	assert.Nil(t, err, "connectedness")
	assert.NotEqual(t, network.Connected, c, "still connected")

	waitFor(t, 5*time.Second, func() bool {
		return 0 == a.ConnCount()
	})
}
