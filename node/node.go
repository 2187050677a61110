// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package node - descriptors of the managed nodes
package node

import (
	"github.com/libp2p/go-libp2p-core/peer"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/fault"
	"github.com/bitmark-inc/connmgr/topology"
)

// Node - a managed node, read only once constructed
type Node struct {
	Name   string
	PeerID peer.ID
	API    api.Net
}

// List - managed nodes in display order
type List []*Node

// Pair - a directed pair of nodes, From always follows To in the list
type Pair struct {
	From *Node
	To   *Node
}

// Key - state map key of the pair
func (p Pair) Key() string {
	return topology.Key(p.From.Name, p.To.Name)
}

// Names - node names in list order
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, n := range l {
		names[i] = n.Name
	}
	return names
}

// Index - position of a named node
func (l List) Index(name string) (int, bool) {
	for i, n := range l {
		if name == n.Name {
			return i, true
		}
	}
	return -1, false
}

// Pair - look up a pair by name
//
// the source must come later in the list than the target so only the
// lower triangle of the connection matrix can be addressed
func (l List) Pair(from string, to string) (Pair, error) {
	i, ok := l.Index(from)
	if !ok {
		return Pair{}, fault.UnknownNode
	}
	j, ok := l.Index(to)
	if !ok {
		return Pair{}, fault.UnknownNode
	}
	if i <= j {
		return Pair{}, fault.InvalidPair
	}
	return Pair{From: l[i], To: l[j]}, nil
}

// Pairs - the node pairs addressed by a topology
func (l List) Pairs(kind topology.Kind) ([]Pair, error) {
	indices, err := topology.Pairs(kind, len(l))
	if nil != err {
		return nil, err
	}
	pairs := make([]Pair, len(indices))
	for k, p := range indices {
		pairs[k] = Pair{From: l[p.From], To: l[p.To]}
	}
	return pairs, nil
}
