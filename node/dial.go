// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/configuration"
)

// Dialler - create the RPC capability for one node
type Dialler func(ctx context.Context, addr string, token string) (api.Net, api.Closer, error)

// Dial - connect to every configured node
//
// on error any connections already made are closed
func Dial(ctx context.Context, log *logger.L, nodes []configuration.NodeConfiguration, dial Dialler) (List, api.Closer, error) {
	list := make(List, 0, len(nodes))
	closers := make([]api.Closer, 0, len(nodes))

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, n := range nodes {
		log.Infof("dial node: %s  rpc: %s  peer: %s", n.Name, n.RPC, n.ID().Pretty())
		net, closer, err := dial(ctx, n.RPC, n.Token)
		if nil != err {
			log.Errorf("dial node: %s  error: %s", n.Name, err)
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, closer)
		list = append(list, &Node{
			Name:   n.Name,
			PeerID: n.ID(),
			API:    net,
		})
	}

	return list, closeAll, nil
}
