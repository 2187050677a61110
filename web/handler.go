// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/counter"
	"github.com/bitmark-inc/connmgr/fault"
	"github.com/bitmark-inc/connmgr/templates"
	"github.com/bitmark-inc/connmgr/topology"
	"github.com/bitmark-inc/connmgr/web/ratelimit"
)

const (
	logName = "web"

	actionConnect    = "connect"
	actionDisconnect = "disconnect"

	topologyPrefix = "/topology/"

	// longest a mutating request waits for a rate limit token
	maximumLimitWait = 100 * time.Millisecond
)

// Options - panel settings
type Options struct {
	Context   context.Context // node actions run on this, nil for never cancelled
	RateLimit float64         // mutating requests per second, zero to disable
	RateBurst int
	Gatherer  prometheus.Gatherer   // serves /metrics when not nil
	Registry  prometheus.Registerer // receives the websocket client gauge when not nil
}

// Handler - the control panel endpoints
type Handler struct {
	log     *logger.L
	actions context.Context
	manager *connmgr.Manager
	limiter *rate.Limiter
	panel   *template.Template
	metrics http.Handler
	clients counter.Counter
}

// NewHandler - create the panel for a manager
func NewHandler(manager *connmgr.Manager, options Options) (*Handler, error) {
	panel, err := template.New("panel").Parse(templates.PanelTemplate)
	if nil != err {
		return nil, err
	}

	actions := options.Context
	if nil == actions {
		actions = context.Background()
	}

	h := &Handler{
		log:     logger.New(logName),
		actions: actions,
		manager: manager,
		limiter: ratelimit.New(options.RateLimit, options.RateBurst),
		panel:   panel,
	}

	if nil != options.Gatherer {
		h.metrics = promhttp.HandlerFor(options.Gatherer, promhttp.HandlerOpts{})
	}

	if nil != options.Registry {
		err := options.Registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "connmgr",
			Subsystem: "panel",
			Name:      "websocket_clients",
			Help:      "Connected websocket clients.",
		}, func() float64 {
			return float64(h.clients.Uint64())
		}))
		if nil != err {
			return nil, err
		}
	}

	return h, nil
}

// Mux - route the panel endpoints
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", h.state)
	mux.HandleFunc("/ws", h.stream)
	mux.HandleFunc("/toggle", h.toggle)
	mux.HandleFunc(topologyPrefix, h.topology)
	if nil != h.metrics {
		mux.Handle("/metrics", h.metrics)
	}
	mux.HandleFunc("/", h.root)
	return mux
}

// Clients - number of live websocket streams
func (h *Handler) Clients() uint64 {
	return h.clients.Uint64()
}

// the HTML matrix, anything else not matched is not found
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	if "/" != r.URL.Path {
		sendNotFound(w)
		return
	}
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	matrix := Render(h.manager.Nodes(), h.manager.State().Snapshot())

	var buffer bytes.Buffer
	err := h.panel.Execute(&buffer, matrix)
	if nil != err {
		h.log.Errorf("render panel error: %s", err)
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buffer.Bytes())
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	sendReply(w, h.manager.State().Snapshot())
}

// single pair: from, to, action=connect|disconnect
func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !h.admit(w, r) {
		return
	}

	from := r.FormValue("from")
	to := r.FormValue("to")

	var connect bool
	switch r.FormValue("action") {
	case actionConnect:
		connect = true
	case actionDisconnect:
		connect = false
	default:
		sendFailure(w, fault.InvalidAction)
		return
	}

	// checkboxes are disabled until the first poll completes
	if h.manager.State().Locked() {
		sendConflict(w, "syncing")
		return
	}

	h.log.Infof("toggle: %s -> %s connect: %t from: %s", from, to, connect, r.RemoteAddr)

	// a client abort must not leave the pair half done
	err := h.manager.Toggle(h.actions, connect, from, to)
	if nil != err {
		sendFailure(w, err)
		return
	}
	h.done(w, r)
}

// bulk action: /topology/{none,all,star,chain}
func (h *Handler) topology(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}
	if !h.admit(w, r) {
		return
	}

	kind, err := topology.ParseKind(strings.TrimPrefix(r.URL.Path, topologyPrefix))
	if nil != err {
		sendFailure(w, err)
		return
	}

	h.log.Infof("topology: %s from: %s", kind, r.RemoteAddr)

	err = h.manager.Apply(h.actions, kind)
	if nil != err {
		sendFailure(w, err)
		return
	}
	h.done(w, r)
}

// wait for a rate limit token, false if the request was answered
func (h *Handler) admit(w http.ResponseWriter, r *http.Request) bool {
	err := ratelimit.Limit(r.Context(), h.limiter, maximumLimitWait)
	if nil == err {
		return true
	}
	if fault.RateLimiting == err {
		sendTooManyRequests(w)
	}
	// otherwise the client has gone
	return false
}

// browser form posts go back to the panel, API clients get the state
func (h *Handler) done(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	sendReply(w, h.manager.State().Snapshot())
}
