// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package connmgr - connection state of a set of managed nodes
//
// The Manager polls pairwise connectedness of the nodes into a State
// and applies single or bulk connect/disconnect actions, updating the
// State only after the node accepted the request.  Only pairs whose
// source follows the target in the node list are ever addressed.
package connmgr
