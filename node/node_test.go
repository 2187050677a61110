// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/api/mocks"
	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/fault"
	"github.com/bitmark-inc/connmgr/fixtures"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/topology"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeList(names ...string) node.List {
	l := make(node.List, len(names))
	for i, name := range names {
		l[i] = &node.Node{
			Name:   name,
			PeerID: fixtures.PeerID(i),
		}
	}
	return l
}

func TestNames(t *testing.T) {
	l := makeList("X", "Y", "Z")
	assert.Equal(t, []string{"X", "Y", "Z"}, l.Names(), "wrong names")

	i, ok := l.Index("Z")
	assert.True(t, ok, "Z not found")
	assert.Equal(t, 2, i, "wrong index")

	_, ok = l.Index("W")
	assert.False(t, ok, "W found")
}

func TestPair(t *testing.T) {
	l := makeList("X", "Y", "Z")

	p, err := l.Pair("Z", "Y")
	assert.Nil(t, err, "Z,Y")
	assert.Equal(t, "Z,Y", p.Key(), "wrong key")
	assert.Equal(t, l[2], p.From, "wrong from")
	assert.Equal(t, l[1], p.To, "wrong to")

	_, err = l.Pair("Y", "Z")
	assert.Equal(t, fault.InvalidPair, err, "upper triangle accepted")

	_, err = l.Pair("Y", "Y")
	assert.Equal(t, fault.InvalidPair, err, "self pair accepted")

	_, err = l.Pair("W", "X")
	assert.Equal(t, fault.UnknownNode, err, "unknown from accepted")

	_, err = l.Pair("Y", "W")
	assert.Equal(t, fault.UnknownNode, err, "unknown to accepted")
}

func TestPairs(t *testing.T) {
	l := makeList("X", "Y", "Z")

	keys := func(kind topology.Kind) []string {
		pairs, err := l.Pairs(kind)
		assert.Nil(t, err, "pairs: %s", kind)
		k := make([]string, len(pairs))
		for i, p := range pairs {
			k[i] = p.Key()
		}
		return k
	}

	assert.Equal(t, []string{"Y,X", "Z,X", "Z,Y"}, keys(topology.All), "wrong all")
	assert.Equal(t, []string{"Y,X", "Z,X", "Z,Y"}, keys(topology.None), "wrong none")
	assert.Equal(t, []string{"Y,X", "Z,X"}, keys(topology.Star), "wrong star")
	assert.Equal(t, []string{"Y,X", "Z,Y"}, keys(topology.Chain), "wrong chain")

	_, err := l.Pairs(topology.Kind("ring"))
	assert.Equal(t, fault.UnknownTopology, err, "wrong error")
}

func readNodes(t *testing.T, count int) []configuration.NodeConfiguration {
	body := "return { nodes = {\n"
	for i := 0; i < count; i += 1 {
		body += fmt.Sprintf(`{ name = "n%d", rpc = "ws://127.0.0.1:%d/rpc/v0", peer_id = "%s", token = "t%d" },`+"\n", i, 1234+i, fixtures.PeerIDs[i], i)
	}
	body += "} }\n"

	fileName, cleanup, err := fixtures.WriteConfiguration(body)
	if nil != err {
		t.Fatalf("write configuration: %s", err)
	}
	defer cleanup()

	c, err := configuration.Get(fileName)
	if nil != err {
		t.Fatalf("read configuration: %s", err)
	}
	return c.Nodes
}

func TestDial(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	nodes := readNodes(t, 3)

	closed := 0
	dialled := []string{}
	dial := func(_ context.Context, addr string, token string) (api.Net, api.Closer, error) {
		dialled = append(dialled, addr+" "+token)
		return mocks.NewMockNet(ctl), func() { closed += 1 }, nil
	}

	l, closer, err := node.Dial(context.Background(), logger.New(fixtures.LogCategory), nodes, dial)
	assert.Nil(t, err, "wrong Dial")
	assert.Equal(t, []string{"n0", "n1", "n2"}, l.Names(), "wrong names")
	assert.Equal(t, []string{
		"ws://127.0.0.1:1234/rpc/v0 t0",
		"ws://127.0.0.1:1235/rpc/v0 t1",
		"ws://127.0.0.1:1236/rpc/v0 t2",
	}, dialled, "wrong dial arguments")
	for i, n := range l {
		assert.Equal(t, fixtures.PeerID(i), n.PeerID, "wrong peer id")
		assert.NotNil(t, n.API, "missing api")
	}

	closer()
	assert.Equal(t, 3, closed, "not all closed")
}

func TestDialFailureClosesEarlier(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	nodes := readNodes(t, 3)

	closed := 0
	count := 0
	dial := func(_ context.Context, addr string, token string) (api.Net, api.Closer, error) {
		count += 1
		if 3 == count {
			return nil, nil, errors.New("refused")
		}
		return mocks.NewMockNet(ctl), func() { closed += 1 }, nil
	}

	l, closer, err := node.Dial(context.Background(), logger.New(fixtures.LogCategory), nodes, dial)
	assert.NotNil(t, err, "dial should fail")
	assert.Nil(t, l, "list returned")
	assert.Nil(t, closer, "closer returned")
	assert.Equal(t, 2, closed, "earlier connections not closed")
}
