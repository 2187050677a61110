// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "connmgr"

// Metrics - counters for polls and actions
type Metrics struct {
	PollCycles     prometheus.Counter
	PollQueries    prometheus.Counter
	RPCErrors      *prometheus.CounterVec
	Actions        *prometheus.CounterVec
	ConnectedPairs prometheus.Gauge
}

// NewMetrics - create the collectors, registering them if reg is not nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "poll_cycles_total",
			Help:      "Completed poll cycles.",
		}),
		PollQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "poll_queries_total",
			Help:      "Connectedness queries issued.",
		}),
		RPCErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rpc_errors_total",
			Help:      "Failed node RPC calls by method.",
		}, []string{"method"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "Connect and disconnect actions dispatched.",
		}, []string{"action"}),
		ConnectedPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "connected_pairs",
			Help:      "Pairs currently shown as connected.",
		}),
	}

	if nil != reg {
		reg.MustRegister(
			m.PollCycles,
			m.PollQueries,
			m.RPCErrors,
			m.Actions,
			m.ConnectedPairs,
		)
	}
	return m
}
