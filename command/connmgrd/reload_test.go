// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/configuration"
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

func configBody(interval string, parallel bool) string {
	return fmt.Sprintf(`return {
  poll_interval = %q,
  parallel_poll = %t,
  nodes = { { name = "A", rpc = "ws://127.0.0.1:1234/rpc/v0", peer_id = %q } },
}`, interval, parallel, fixtures.PeerIDs[0])
}

func TestReload(t *testing.T) {
	fileName, cleanup, err := fixtures.WriteConfiguration(configBody("2s", false))
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	defer cleanup()

	initial, err := configuration.Get(fileName)
	if nil != err {
		t.Fatalf("read configuration error: %s", err)
	}

	manager := connmgr.New(logger.New(fixtures.LogCategory), node.List{}, connmgr.Options{Parallel: initial.ParallelPoll})
	poller := connmgr.NewPoller(manager, initial.Poll())
	r := newReloader(fileName, initial, manager, poller)

	err = ioutil.WriteFile(fileName, []byte(configBody("250ms", true)), 0600)
	assert.Nil(t, err, "rewrite")

	r.reload()
	assert.Equal(t, 250*time.Millisecond, poller.Interval(), "interval not applied")
	assert.True(t, manager.Parallel(), "parallel not applied")

	// a broken file leaves the running settings alone
	err = ioutil.WriteFile(fileName, []byte(configBody("soon", false)), 0600)
	assert.Nil(t, err, "rewrite")

	r.reload()
	assert.Equal(t, 250*time.Millisecond, poller.Interval(), "interval changed by bad file")
	assert.True(t, manager.Parallel(), "parallel changed by bad file")
}
