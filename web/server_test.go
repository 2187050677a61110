// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package web_test

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/connmgr/background"
	"github.com/bitmark-inc/connmgr/fault"
	"github.com/bitmark-inc/connmgr/web"
)

func TestServer(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	nodes, _ := makeNodes(ctl, "X", "Y")
	h, err := web.NewHandler(newManager(nodes, nil), web.Options{})
	assert.Nil(t, err, "NewHandler")

	s, err := web.NewServer("127.0.0.1:0", h.Mux(), nil)
	if nil != err {
		t.Fatalf("NewServer error: %s", err)
	}

	assert.Equal(t, "http://"+s.Addr(), s.URL(), "wrong url")

	proc := background.Start(background.Processes{s}, nil)

	resp, err := http.Get(s.URL() + "/state")
	if assert.Nil(t, err, "get") {
		assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status")
		resp.Body.Close()
	}

	proc.Stop()

	_, err = http.Get("http://" + s.Addr() + "/state")
	assert.NotNil(t, err, "still serving after stop")
}

func TestServerMissingListen(t *testing.T) {
	_, err := web.NewServer("", http.NotFoundHandler(), nil)
	assert.Equal(t, fault.MissingListen, err, "wrong error")
}

func TestServerTLS(t *testing.T) {
	cert, key, err := certgen.NewTLSCertPair("connmgr test", time.Now().Add(time.Hour), true, []string{"127.0.0.1"})
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	keyPair, err := tls.X509KeyPair(cert, key)
	if nil != err {
		t.Fatalf("key pair error: %s", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	s, err := web.NewServer("127.0.0.1:0", handler, &tls.Config{Certificates: []tls.Certificate{keyPair}})
	if nil != err {
		t.Fatalf("NewServer error: %s", err)
	}
	assert.Equal(t, "https://"+s.Addr(), s.URL(), "wrong url")

	proc := background.Start(background.Processes{s}, nil)
	defer proc.Stop()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	resp, err := client.Get(s.URL() + "/")
	if assert.Nil(t, err, "https get") {
		assert.Equal(t, http.StatusNoContent, resp.StatusCode, "wrong status")
		assert.NotNil(t, resp.TLS, "not served over TLS")
		resp.Body.Close()
	}

	// plain requests are refused by the TLS handshake
	resp, err = http.Get("http://" + s.Addr() + "/")
	if nil == err {
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "plain HTTP accepted on TLS listener")
		resp.Body.Close()
	}
}
