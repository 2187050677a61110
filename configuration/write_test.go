// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/fixtures"
)

func TestWriteRoundTrip(t *testing.T) {
	config := configuration.Default()
	config.PollInterval = "750ms"
	config.ParallelPoll = true
	config.Panel.Listen = "127.0.0.1:0"
	config.Panel.Certificate = "/etc/connmgr/panel.crt"
	config.Panel.PrivateKey = "/etc/connmgr/panel.key"
	config.Logging.Levels["web"] = "debug"
	config.Nodes = []configuration.NodeConfiguration{
		{Name: "t01000", RPC: "ws://127.0.0.1:1234/rpc/v0", Token: "tok\"en", PeerID: fixtures.PeerIDs[0]},
		{Name: "t01001", RPC: "ws://127.0.0.1:1235/rpc/v0", P2PAddress: p2pAddress(1)},
	}

	var buffer bytes.Buffer
	err := configuration.Write(&buffer, config)
	assert.Nil(t, err, "Write")

	fileName, cleanup := writeConfig(t, buffer.String())
	defer cleanup()

	c, err := configuration.Get(fileName)
	if !assert.Nil(t, err, "Get: %s", buffer.String()) {
		return
	}

	assert.Equal(t, 750*time.Millisecond, c.Poll(), "wrong poll interval")
	assert.True(t, c.ParallelPoll, "parallel poll lost")
	assert.Equal(t, "127.0.0.1:0", c.Panel.Listen, "wrong listen")
	assert.Equal(t, "/etc/connmgr/panel.crt", c.Panel.Certificate, "certificate lost")
	assert.Equal(t, "/etc/connmgr/panel.key", c.Panel.PrivateKey, "private key lost")
	assert.Equal(t, "debug", c.Logging.Levels["web"], "log level lost")
	assert.Equal(t, 2, len(c.Nodes), "wrong node count")
	assert.Equal(t, "tok\"en", c.Nodes[0].Token, "token not escaped")
	assert.Equal(t, fixtures.PeerID(0), c.Nodes[0].ID(), "wrong first id")
	assert.Equal(t, fixtures.PeerID(1), c.Nodes[1].ID(), "wrong second id")
}
