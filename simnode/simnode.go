// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package simnode runs a bare libp2p host that answers the node
// networking RPC, so a connection manager can be exercised without a
// full blockchain node
package simnode

import (
	"context"
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
	libp2p "github.com/libp2p/go-libp2p"
	lpconnmgr "github.com/libp2p/go-libp2p-connmgr"
	crypto "github.com/libp2p/go-libp2p-core/crypto"
	"github.com/libp2p/go-libp2p-core/host"
	"github.com/libp2p/go-libp2p-core/network"
	"github.com/libp2p/go-libp2p-core/peer"
	tls "github.com/libp2p/go-libp2p-tls"
	ma "github.com/multiformats/go-multiaddr"

	"github.com/bitmark-inc/connmgr/counter"
)

const (
	defaultListen = "/ip4/127.0.0.1/tcp/0"

	lowConn       = 16
	maxConn       = 64
	connGraceTime = 30 * time.Second
)

var nodeProtocol = ma.ProtocolWithCode(ma.P_P2P).Name

// Config - settings for one simulated node
type Config struct {
	Listen     []string       // multiaddrs, default: loopback with a random port
	PrivateKey crypto.PrivKey // default: a fresh ED25519 key
}

// Node - a libp2p host serving NetConnectedness, NetAddrsListen,
// NetConnect and NetDisconnect
type Node struct {
	log       *logger.L
	name      string
	host      host.Host
	connCount counter.Counter
}

// New - start a host
func New(ctx context.Context, name string, config Config) (*Node, error) {
	prvKey := config.PrivateKey
	if nil == prvKey {
		k, err := MakeEd25519Key()
		if nil != err {
			return nil, err
		}
		prvKey = k
	}

	listen := config.Listen
	if 0 == len(listen) {
		listen = []string{defaultListen}
	}

	cm := lpconnmgr.NewConnManager(lowConn, maxConn, connGraceTime)
	options := []libp2p.Option{
		libp2p.Identity(prvKey),
		libp2p.Security(tls.ID, tls.New),
		libp2p.ListenAddrStrings(listen...),
		libp2p.ConnectionManager(cm),
	}

	h, err := libp2p.New(ctx, options...)
	if nil != err {
		return nil, err
	}

	n := &Node{
		log:  logger.New("sim-" + name),
		name: name,
		host: h,
	}
	n.monitor()

	for _, a := range h.Addrs() {
		n.log.Infof("host address: %s/%s/%s", a, nodeProtocol, h.ID())
	}
	return n, nil
}

func (n *Node) monitor() {
	n.host.Network().Notify(&network.NotifyBundle{
		ConnectedF: func(_ network.Network, conn network.Conn) {
			count := n.connCount.Increment()
			n.log.Infof("connected: %s  count: %d", conn.RemotePeer(), count)
		},
		DisconnectedF: func(_ network.Network, conn network.Conn) {
			count := n.connCount.Decrement()
			n.log.Infof("disconnected: %s  count: %d", conn.RemotePeer(), count)
		},
	})
}

// Name - label used in logs and configuration
func (n *Node) Name() string {
	return n.name
}

// ID - the host peer identity
func (n *Node) ID() peer.ID {
	return n.host.ID()
}

// P2PAddress - first listen address with the /p2p/ component
func (n *Node) P2PAddress() string {
	addrs := n.host.Addrs()
	if 0 == len(addrs) {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", addrs[0], nodeProtocol, n.host.ID())
}

// ConnCount - open connections as seen by the notifier
func (n *Node) ConnCount() uint64 {
	return n.connCount.Uint64()
}

// Close - stop the host
func (n *Node) Close() error {
	return n.host.Close()
}

// NetConnectedness - state of this host's link to a peer
func (n *Node) NetConnectedness(_ context.Context, id peer.ID) (network.Connectedness, error) {
	return n.host.Network().Connectedness(id), nil
}

// NetAddrsListen - identity and listen addresses of this host
func (n *Node) NetAddrsListen(_ context.Context) (peer.AddrInfo, error) {
	return peer.AddrInfo{
		ID:    n.host.ID(),
		Addrs: n.host.Addrs(),
	}, nil
}

// NetConnect - dial a peer
func (n *Node) NetConnect(ctx context.Context, info peer.AddrInfo) error {
	n.log.Debugf("connect: %s", info.ID)
	return n.host.Connect(ctx, info)
}

// NetDisconnect - close all connections to a peer
func (n *Node) NetDisconnect(_ context.Context, id peer.ID) error {
	n.log.Debugf("disconnect: %s", id)
	return n.host.Network().ClosePeer(id)
}
