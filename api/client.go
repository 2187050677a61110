// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package api

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/pkg/errors"
)

// Closer - release an RPC connection
type Closer func()

// NewNetRPC - connect to a node's JSON-RPC endpoint
//
// a non-empty token is sent as a bearer authorisation header
func NewNetRPC(ctx context.Context, addr string, token string) (Net, Closer, error) {
	header := http.Header{}
	if "" != token {
		header.Set("Authorization", "Bearer "+token)
	}

	var res NetStruct
	closer, err := jsonrpc.NewMergeClient(ctx, addr, Namespace,
		[]interface{}{
			&res.Internal,
		},
		header,
	)
	if nil != err {
		return nil, nil, errors.Wrapf(err, "dial: %s", addr)
	}

	return &res, Closer(closer), nil
}

// NewNetServer - serve a Net implementation over JSON-RPC
//
// used by the simulated nodes in the tests and the simnode command
func NewNetServer(handler Net) http.Handler {
	server := jsonrpc.NewServer()
	server.Register(Namespace, handler)
	return server
}
