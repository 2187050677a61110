// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"context"
	"time"

	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/bitmark-inc/connmgr/node"
)

// listen addresses of connect targets, keyed by node name
//
// concurrent lookups of one node share a single RPC
type addrCache struct {
	cache  *cache.Cache
	flight singleflight.Group
}

// zero ttl disables caching but keeps the lookup sharing
func newAddrCache(ttl time.Duration) *addrCache {
	c := &addrCache{}
	if ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

func (c *addrCache) get(ctx context.Context, n *node.Node) (peer.AddrInfo, error) {
	if info, ok := c.lookup(n.Name); ok {
		return info, nil
	}

	v, err, _ := c.flight.Do(n.Name, func() (interface{}, error) {
		if info, ok := c.lookup(n.Name); ok {
			return info, nil
		}
		info, err := n.API.NetAddrsListen(ctx)
		if nil != err {
			return nil, err
		}
		if nil != c.cache {
			c.cache.Set(n.Name, info, cache.DefaultExpiration)
		}
		return info, nil
	})
	if nil != err {
		return peer.AddrInfo{}, err
	}
	return v.(peer.AddrInfo), nil
}

func (c *addrCache) lookup(name string) (peer.AddrInfo, bool) {
	if nil == c.cache {
		return peer.AddrInfo{}, false
	}
	v, ok := c.cache.Get(name)
	if !ok {
		return peer.AddrInfo{}, false
	}
	return v.(peer.AddrInfo), true
}

// drop an entry that led to a failed connect
func (c *addrCache) forget(name string) {
	if nil != c.cache {
		c.cache.Delete(name)
	}
}
