// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package api - the subset of a managed node's RPC interface used to
// inspect and change its peer connections
package api

import (
	"context"

	"github.com/libp2p/go-libp2p-core/network"
	"github.com/libp2p/go-libp2p-core/peer"
)

//go:generate mockgen -destination=mocks/net.go -package=mocks github.com/bitmark-inc/connmgr/api Net

// Namespace - JSON-RPC method prefix of the managed nodes
const Namespace = "Filecoin"

// remote method names, as they appear on the wire
const (
	MethodConnectedness = Namespace + ".NetConnectedness"
	MethodAddrsListen   = Namespace + ".NetAddrsListen"
	MethodConnect       = Namespace + ".NetConnect"
	MethodDisconnect    = Namespace + ".NetDisconnect"
)

// Net - peer connection control of a single node
type Net interface {
	NetConnectedness(context.Context, peer.ID) (network.Connectedness, error)
	NetAddrsListen(context.Context) (peer.AddrInfo, error)
	NetConnect(context.Context, peer.AddrInfo) error
	NetDisconnect(context.Context, peer.ID) error
}

// NetStruct - Net implemented by function fields that the JSON-RPC
// client fills in
type NetStruct struct {
	Internal struct {
		NetConnectedness func(context.Context, peer.ID) (network.Connectedness, error)
		NetAddrsListen   func(context.Context) (peer.AddrInfo, error)
		NetConnect       func(context.Context, peer.AddrInfo) error
		NetDisconnect    func(context.Context, peer.ID) error
	}
}

var _ Net = &NetStruct{}

func (s *NetStruct) NetConnectedness(ctx context.Context, id peer.ID) (network.Connectedness, error) {
	return s.Internal.NetConnectedness(ctx, id)
}

func (s *NetStruct) NetAddrsListen(ctx context.Context) (peer.AddrInfo, error) {
	return s.Internal.NetAddrsListen(ctx)
}

func (s *NetStruct) NetConnect(ctx context.Context, info peer.AddrInfo) error {
	return s.Internal.NetConnect(ctx, info)
}

func (s *NetStruct) NetDisconnect(ctx context.Context, id peer.ID) error {
	return s.Internal.NetDisconnect(ctx, id)
}
