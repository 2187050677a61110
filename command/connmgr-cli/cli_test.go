// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	ma "github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/fixtures"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/web"
)

func p2pAddress(i int) string {
	return fmt.Sprintf("/ip4/127.0.0.1/tcp/400%d/%s/%s", i, ma.ProtocolWithCode(ma.P_P2P).Name, fixtures.PeerIDs[i])
}

func TestSetup(t *testing.T) {
	dir, err := ioutil.TempDir("", "connmgr-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "sub", "connmgr.conf")

	var w, e bytes.Buffer
	app := newApp(&w, &e)

	args := []string{
		"connmgr-cli", "-c", file, "setup",
		"--listen", "127.0.0.1:2121",
		"-n", "A,ws://127.0.0.1:1234/rpc/v0," + p2pAddress(0),
		"-n", "B,ws://127.0.0.1:1235/rpc/v0," + p2pAddress(1),
	}
	err = app.Run(args)
	assert.Nil(t, err, "setup: %s", e.String())

	c, err := configuration.Get(file)
	if !assert.Nil(t, err, "read back") {
		return
	}
	assert.Equal(t, "127.0.0.1:2121", c.Panel.Listen, "wrong listen")
	assert.Equal(t, []string{"A", "B"}, []string{c.Nodes[0].Name, c.Nodes[1].Name}, "wrong nodes")
	assert.Equal(t, fixtures.PeerID(1), c.Nodes[1].ID(), "wrong peer id")

	// no overwrite without --force
	err = newApp(&w, &e).Run(args)
	assert.NotNil(t, err, "existing file overwritten")

	force := append(args[:4:4], append([]string{"--force"}, args[4:]...)...)
	err = newApp(&w, &e).Run(force)
	assert.Nil(t, err, "forced overwrite")
}

func TestSetupBadNode(t *testing.T) {
	dir, err := ioutil.TempDir("", "connmgr-cli")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "connmgr.conf")

	var w, e bytes.Buffer
	err = newApp(&w, &e).Run([]string{"connmgr-cli", "-c", file, "setup", "-n", "A,ws://h:1"})
	assert.NotNil(t, err, "short node spec accepted")

	err = newApp(&w, &e).Run([]string{"connmgr-cli", "-c", file, "setup", "-n", "A,ws://h:1,/ip4/127.0.0.1/tcp/1"})
	assert.NotNil(t, err, "address without peer id accepted")

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err), "invalid file left behind")
}

func TestStatusMissingConfiguration(t *testing.T) {
	var w, e bytes.Buffer
	err := newApp(&w, &e).Run([]string{"connmgr-cli", "-c", "/nonexistent/connmgr.conf", "status"})
	assert.NotNil(t, err, "missing configuration accepted")
}

func TestMatrixLines(t *testing.T) {
	nodes := node.List{
		{Name: "X"},
		{Name: "Y"},
		{Name: "Z"},
	}
	s := connmgr.Snapshot{
		Conns: map[string]bool{"Z,Y": true},
	}

	lines := matrixLines(web.Render(nodes, s))
	assert.Equal(t, []string{
		"Y: X[ ]",
		"Z: X[ ] Y[x]",
	}, lines, "wrong matrix")
}
