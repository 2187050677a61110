// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web

import (
	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/topology"
)

const (
	panelTitle    = "Connection Manager"
	syncingSuffix = " (syncing)"
)

// Cell - one checkbox, present only below the diagonal
type Cell struct {
	From     string
	To       string
	Key      string
	Checked  bool
	Disabled bool
}

// Row - one source node and its cells for every earlier node
type Row struct {
	Name  string
	Cells []Cell
}

// Button - a bulk topology action
type Button struct {
	Label string
	Kind  topology.Kind
}

// Matrix - everything the panel template needs
type Matrix struct {
	Title   string
	Header  []string
	Rows    []Row
	Buttons []Button
	Locked  bool
	Error   string
	Version uint64
}

var buttons = []Button{
	{Label: "DisconnAll", Kind: topology.None},
	{Label: "ConnAll", Kind: topology.All},
	{Label: "Conn1", Kind: topology.Star},
	{Label: "ConnChain", Kind: topology.Chain},
}

// Render - lay out the triangular matrix for a snapshot
//
// header: every node except the last; rows: every node except the
// first, row i holding cells for columns 0..i-1
func Render(nodes node.List, s connmgr.Snapshot) Matrix {
	title := panelTitle
	if s.Lock {
		title += syncingSuffix
	}

	m := Matrix{
		Title:   title,
		Header:  []string{},
		Rows:    []Row{},
		Buttons: append([]Button(nil), buttons...),
		Locked:  s.Lock,
		Error:   s.Error,
		Version: s.Version,
	}

	if len(nodes) < 2 {
		return m
	}

	for _, n := range nodes[:len(nodes)-1] {
		m.Header = append(m.Header, n.Name)
	}

	for i := 1; i < len(nodes); i += 1 {
		row := Row{
			Name:  nodes[i].Name,
			Cells: make([]Cell, i),
		}
		for j := 0; j < i; j += 1 {
			key := topology.Key(nodes[i].Name, nodes[j].Name)
			row.Cells[j] = Cell{
				From:     nodes[i].Name,
				To:       nodes[j].Name,
				Key:      key,
				Checked:  s.Connected(key),
				Disabled: s.Lock,
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}
