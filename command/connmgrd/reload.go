// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/connmgr"
)

// re-apply the settings that can change without a restart
type reloader struct {
	sync.Mutex
	log      *logger.L
	fileName string
	initial  *configuration.Configuration
	manager  *connmgr.Manager
	poller   *connmgr.Poller
}

func newReloader(fileName string, initial *configuration.Configuration, manager *connmgr.Manager, poller *connmgr.Poller) *reloader {
	return &reloader{
		log:      logger.New("reload"),
		fileName: fileName,
		initial:  initial,
		manager:  manager,
		poller:   poller,
	}
}

// called by the configuration watcher after each write
func (r *reloader) reload() {
	r.Lock()
	defer r.Unlock()

	c, err := configuration.Get(r.fileName)
	if nil != err {
		r.log.Errorf("reload: %s  error: %s", r.fileName, err)
		return
	}

	// the node list is fixed for the process lifetime
	if !r.initial.SameNodes(c) {
		r.log.Warn("node list changed: restart to apply")
	}

	if c.Poll() != r.poller.Interval() {
		r.log.Infof("poll interval: %s -> %s", r.poller.Interval(), c.Poll())
		r.poller.SetInterval(c.Poll())
	}

	if c.ParallelPoll != r.manager.Parallel() {
		r.log.Infof("parallel poll: %t", c.ParallelPoll)
		r.manager.SetParallel(c.ParallelPoll)
	}
}
