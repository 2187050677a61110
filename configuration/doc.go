// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// The file must return a table, e.g.
//
//	return {
//	  data_directory = ".",
//	  poll_interval = "2s",
//	  panel = { listen = "127.0.0.1:2020" },
//	  nodes = {
//	    { name = "t01000", rpc = "ws://127.0.0.1:1234/rpc/v0", peer_id = "Qm..." },
//	    { name = "t01001", rpc = "ws://127.0.0.1:1235/rpc/v0", p2p_address = "/ip4/127.0.0.1/tcp/4001/p2p/Qm..." },
//	  },
//	  logging = { directory = "log", file = "connmgr.log", levels = { DEFAULT = "info" } },
//	}
package configuration
