// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/fault"
)

const (
	serverLogName    = "panel"
	readWriteTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

// Server - the panel listener as a background process
type Server struct {
	log      *logger.L
	server   *http.Server
	listener net.Listener
	scheme   string
}

// NewServer - bind the listen address now so errors are reported at startup
//
// a non-nil tlsConfig serves the panel over TLS
func NewServer(listen string, handler http.Handler, tlsConfig *tls.Config) (*Server, error) {
	if "" == listen {
		return nil, fault.MissingListen
	}
	if '*' == listen[0] {
		// change "*:PORT" to "[::]:PORT"
		// on the assumption that this will listen on tcp4 and tcp6
		listen = "[::]" + ":" + strings.Split(listen, ":")[1]
	}

	ln, err := net.Listen("tcp", listen)
	if nil != err {
		return nil, err
	}

	scheme := "http"
	if nil != tlsConfig {
		ln = tls.NewListener(ln, tlsConfig)
		scheme = "https"
	}

	s := &Server{
		log: logger.New(serverLogName),
		server: &http.Server{
			Handler:        handler,
			ReadTimeout:    readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		},
		listener: ln,
		scheme:   scheme,
	}
	return s, nil
}

// URL - base address of the panel
func (s *Server) URL() string {
	return s.scheme + "://" + s.Addr()
}

// Addr - the bound address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Run - serve until shutdown
//
// no write timeout: websocket streams stay open and set their own deadlines
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("starting server on: %s", s.URL())

	done := make(chan struct{})
	go func() {
		err := s.server.Serve(s.listener)
		if nil != err && http.ErrServerClosed != err {
			s.log.Errorf("serve error: %s", err)
		}
		close(done)
	}()

	select {
	case <-shutdown:
	case <-done:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	if nil != err {
		s.log.Warnf("shutdown error: %s", err)
		_ = s.server.Close()
	}
	<-done
	s.log.Info("stopped")
}
