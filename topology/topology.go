// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package topology - index pair generation for a fixed list of nodes
//
// All generated pairs satisfy From > To, so only the lower triangle
// of the connection matrix is ever addressed and the first node is
// never a source.
package topology

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/connmgr/fault"
)

// Pair - indices into a node list
type Pair struct {
	From int
	To   int
}

// Kind - a bulk topology
type Kind string

// the bulk topologies
const (
	None  Kind = "none"
	All   Kind = "all"
	Star  Kind = "star"
	Chain Kind = "chain"
)

// Kinds - all topologies in display order
var Kinds = []Kind{None, All, Star, Chain}

// Triangular - every pair (i, j) with 0 <= j < i < n
//
// ordered by source then target, giving n*(n-1)/2 pairs
func Triangular(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n*(n-1)/2)
	for i := 1; i < n; i += 1 {
		for j := 0; j < i; j += 1 {
			pairs = append(pairs, Pair{From: i, To: j})
		}
	}
	return pairs
}

// StarPairs - every node except the first paired with the first
func StarPairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n-1)
	for i := 1; i < n; i += 1 {
		pairs = append(pairs, Pair{From: i, To: 0})
	}
	return pairs
}

// ChainPairs - every node except the first paired with its predecessor
func ChainPairs(n int) []Pair {
	if n < 2 {
		return nil
	}
	pairs := make([]Pair, 0, n-1)
	for i := 1; i < n; i += 1 {
		pairs = append(pairs, Pair{From: i, To: i - 1})
	}
	return pairs
}

// Pairs - the pairs a topology addresses
//
// None and All both address the full triangle; they differ only in
// the action applied
func Pairs(kind Kind, n int) ([]Pair, error) {
	switch kind {
	case None, All:
		return Triangular(n), nil
	case Star:
		return StarPairs(n), nil
	case Chain:
		return ChainPairs(n), nil
	default:
		return nil, fault.UnknownTopology
	}
}

// Connect - true if the topology connects its pairs
func (kind Kind) Connect() bool {
	return None != kind
}

// ParseKind - case insensitive topology name
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, kind := range Kinds {
		if kind == k {
			return k, nil
		}
	}
	return "", fault.UnknownTopology
}

// Key - state map key for a named pair
func Key(from string, to string) string {
	return fmt.Sprintf("%s,%s", from, to)
}
