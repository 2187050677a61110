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
	"github.com/google/uuid"
	"github.com/libp2p/go-libp2p-core/network"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/fault"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/topology"
)

const (
	actionConnect    = "connect"
	actionDisconnect = "disconnect"
)

// Options - Manager settings
type Options struct {
	AddrTTL  time.Duration // listen address cache lifetime, zero to disable
	Parallel bool          // issue poll queries concurrently
	Metrics  *Metrics      // nil for unregistered collectors
}

// Manager - poll and change connections between managed nodes
type Manager struct {
	log      *logger.L
	nodes    node.List
	state    *State
	addrs    *addrCache
	metrics  *Metrics
	parallel int32
}

// New - create a manager for a fixed node list
func New(log *logger.L, nodes node.List, options Options) *Manager {
	metrics := options.Metrics
	if nil == metrics {
		metrics = NewMetrics(nil)
	}

	m := &Manager{
		log:     log,
		nodes:   nodes,
		state:   NewState(),
		addrs:   newAddrCache(options.AddrTTL),
		metrics: metrics,
	}
	m.SetParallel(options.Parallel)
	return m
}

// Nodes - the managed nodes
func (m *Manager) Nodes() node.List {
	return m.nodes
}

// State - the shared display state
func (m *Manager) State() *State {
	return m.state
}

// SetParallel - switch between sequential and concurrent polling
func (m *Manager) SetParallel(parallel bool) {
	v := int32(0)
	if parallel {
		v = 1
	}
	atomic.StoreInt32(&m.parallel, v)
}

// Parallel - true if poll queries are issued concurrently
func (m *Manager) Parallel() bool {
	return 1 == atomic.LoadInt32(&m.parallel)
}

// Poll - query connectedness of every pair once
//
// results are merged as they arrive; a failed query keeps the previous
// value and does not stop the cycle.  When the cycle completes the lock
// is cleared, a cancelled cycle leaves it untouched.  Returns the first
// query error.
func (m *Manager) Poll(ctx context.Context) error {
	pairs, err := m.nodes.Pairs(topology.All)
	if nil != err {
		return err
	}

	var first error
	if m.Parallel() {
		var g errgroup.Group
		for _, p := range pairs {
			p := p
			g.Go(func() error {
				return m.query(ctx, p)
			})
		}
		first = g.Wait()
	} else {
		for _, p := range pairs {
			if nil != ctx.Err() {
				break
			}
			if err := m.query(ctx, p); nil != err && nil == first {
				first = err
			}
		}
	}

	if nil != ctx.Err() {
		return ctx.Err()
	}

	m.state.unlock()
	m.metrics.PollCycles.Inc()
	m.metrics.ConnectedPairs.Set(float64(m.state.connectedCount()))
	return first
}

func (m *Manager) query(ctx context.Context, p node.Pair) error {
	m.metrics.PollQueries.Inc()

	c, err := p.From.API.NetConnectedness(ctx, p.To.PeerID)
	if nil != err {
		if nil != ctx.Err() {
			return ctx.Err()
		}
		err = errors.Wrapf(err, "%s %s -> %s", api.MethodConnectedness, p.From.Name, p.To.Name)
		m.metrics.RPCErrors.WithLabelValues(api.MethodConnectedness).Inc()
		m.log.Warnf("poll: %s", err)
		m.state.fail(err)
		return err
	}

	connected := network.Connected == c
	m.log.Debugf("poll: %s connected: %t", p.Key(), connected)
	m.state.set(p.Key(), connected)
	return nil
}

// Toggle - connect or disconnect a single pair by name
func (m *Manager) Toggle(ctx context.Context, connect bool, from string, to string) error {
	p, err := m.nodes.Pair(from, to)
	if nil != err {
		return err
	}
	return m.toggle(ctx, connect, p)
}

// ConnectAll - connect (or disconnect) every pair
func (m *Manager) ConnectAll(ctx context.Context, connect bool) error {
	kind := topology.All
	if !connect {
		kind = topology.None
	}
	return m.bulk(ctx, kind)
}

// Star - connect every node to the first
func (m *Manager) Star(ctx context.Context) error {
	return m.bulk(ctx, topology.Star)
}

// Chain - connect every node to its predecessor
func (m *Manager) Chain(ctx context.Context) error {
	return m.bulk(ctx, topology.Chain)
}

// dispatch table for named topologies
var dispatch = map[topology.Kind]func(*Manager, context.Context) error{
	topology.None: func(m *Manager, ctx context.Context) error {
		return m.ConnectAll(ctx, false)
	},
	topology.All: func(m *Manager, ctx context.Context) error {
		return m.ConnectAll(ctx, true)
	},
	topology.Star:  (*Manager).Star,
	topology.Chain: (*Manager).Chain,
}

// Apply - run a bulk topology by kind
func (m *Manager) Apply(ctx context.Context, kind topology.Kind) error {
	f, ok := dispatch[kind]
	if !ok {
		return fault.UnknownTopology
	}
	return f(m, ctx)
}

// issue one toggle per pair without ordering, wait for all to settle
//
// every pair that succeeds is applied; the first failure is returned
func (m *Manager) bulk(ctx context.Context, kind topology.Kind) error {
	pairs, err := m.nodes.Pairs(kind)
	if nil != err {
		return err
	}

	m.log.Infof("bulk: %s  pairs: %d", kind, len(pairs))

	connect := kind.Connect()
	var g errgroup.Group
	for _, p := range pairs {
		p := p
		g.Go(func() error {
			return m.toggle(ctx, connect, p)
		})
	}
	return g.Wait()
}

// one action, the map entry is set to the requested value only after
// the node accepted it
func (m *Manager) toggle(ctx context.Context, connect bool, p node.Pair) error {
	action := actionDisconnect
	if connect {
		action = actionConnect
	}

	id := uuid.New()
	m.log.Infof("%s: %s %s -> %s", id, action, p.From.Name, p.To.Name)
	m.metrics.Actions.WithLabelValues(action).Inc()

	var method string
	var err error
	if connect {
		method, err = m.connect(ctx, p)
	} else {
		method, err = m.disconnect(ctx, p)
	}

	if nil != err {
		err = errors.Wrapf(err, "%s %s -> %s", method, p.From.Name, p.To.Name)
		m.metrics.RPCErrors.WithLabelValues(method).Inc()
		m.log.Warnf("%s: failed: %s", id, err)
		m.state.fail(err)
		return err
	}

	m.state.apply(p.Key(), connect)
	m.metrics.ConnectedPairs.Set(float64(m.state.connectedCount()))
	m.log.Debugf("%s: done", id)
	return nil
}

func (m *Manager) connect(ctx context.Context, p node.Pair) (string, error) {
	info, err := m.addrs.get(ctx, p.To)
	if nil != err {
		return api.MethodAddrsListen, err
	}

	err = p.From.API.NetConnect(ctx, info)
	if nil != err {
		m.addrs.forget(p.To.Name)
	}
	return api.MethodConnect, err
}

func (m *Manager) disconnect(ctx context.Context, p node.Pair) (string, error) {
	return api.MethodDisconnect, p.From.API.NetDisconnect(ctx, p.To.PeerID)
}
