// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/background"
)

const (
	pollerLoggerPrefix = "poller"
)

// Poller - background process running a poll cycle at start and
// then after every interval
//
// cycles never overlap; the interval is measured from the end of the
// previous cycle
type Poller struct {
	log      *logger.L
	manager  *Manager
	interval int64
	reset    chan struct{}
}

// NewPoller - create a poller for a manager
func NewPoller(manager *Manager, interval time.Duration) *Poller {
	return &Poller{
		log:      logger.New(pollerLoggerPrefix),
		manager:  manager,
		interval: int64(interval),
		reset:    make(chan struct{}, 1),
	}
}

// Interval - current poll interval
func (p *Poller) Interval() time.Duration {
	return time.Duration(atomic.LoadInt64(&p.interval))
}

// SetInterval - change the interval, the pending wait restarts
func (p *Poller) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	atomic.StoreInt64(&p.interval, int64(interval))
	select {
	case p.reset <- struct{}{}:
	default:
	}
}

// Run - background process loop
func (p *Poller) Run(args interface{}, shutdown <-chan struct{}) {
	ctx, cancel := background.Context(shutdown)
	defer cancel()

	p.log.Infof("starting, interval: %s", p.Interval())

	p.cycle(ctx)

	timer := time.NewTimer(p.Interval())
	defer timer.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-p.reset:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			p.log.Infof("interval changed to: %s", p.Interval())
			timer.Reset(p.Interval())

		case <-timer.C:
			p.cycle(ctx)
			timer.Reset(p.Interval())
		}
	}

	p.log.Info("stopped")
}

func (p *Poller) cycle(ctx context.Context) {
	start := time.Now()
	err := p.manager.Poll(ctx)
	if nil != err {
		p.log.Warnf("poll cycle error: %s", err)
		return
	}
	p.log.Debugf("poll cycle completed in: %s", time.Since(start))
}
