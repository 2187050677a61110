// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// push a snapshot on connect and after every state change
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if nil != err {
		// upgrader has already replied
		h.log.Warnf("websocket upgrade from: %s error: %s", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	h.clients.Increment()
	defer h.clients.Decrement()

	changes, unsubscribe := h.manager.State().Subscribe()
	defer unsubscribe()

	// client messages are ignored, reading is only to see pongs and close
	closed := make(chan struct{})
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); nil != err {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	send := func() error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(h.manager.State().Snapshot())
	}

	if err := send(); nil != err {
		return
	}

	for {
		select {
		case <-closed:
			h.log.Debugf("websocket closed: %s", r.RemoteAddr)
			return
		case <-changes:
			if err := send(); nil != err {
				h.log.Debugf("websocket send to: %s error: %s", r.RemoteAddr, err)
				return
			}
		case <-ping.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			if nil != err {
				return
			}
		}
	}
}
