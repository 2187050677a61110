// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup
package fixtures

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p-core/peer"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// PeerIDs - valid base58 peer identities
var PeerIDs = []string{
	"QmaCpDMGvV2BGHeYERUEnRQAwe3N8SzbUtfsmvsqQLuvuJ",
	"QmNnooDu7bfjPFoTZYxMNLWUQJyrVwtbZg5gBMjTezGAJN",
	"QmbLHAnMoJPWSCR5Zhtx6BHJX9KiKNN6tpvbUcqanj75Nb",
	"QmcZf59bWwK5XFi76CZX8cbJ4BhTzzA3gU1ZjYZcYW3dwt",
}

// PeerID - decoded form of PeerIDs[i]
func PeerID(i int) peer.ID {
	id, err := peer.IDB58Decode(PeerIDs[i])
	if nil != err {
		panic(fmt.Sprintf("fixture peer id %d: %s", i, err))
	}
	return id
}

// SetupTestLogger - log to a scratch directory at critical level only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// WriteConfiguration - write a Lua configuration file into a fresh
// temporary directory, the returned function removes it
func WriteConfiguration(body string) (string, func(), error) {
	dir, err := ioutil.TempDir("", "connmgr")
	if nil != err {
		return "", nil, err
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}

	fileName := filepath.Join(dir, "connmgr.conf")
	err = ioutil.WriteFile(fileName, []byte(body), 0600)
	if nil != err {
		cleanup()
		return "", nil, err
	}
	return fileName, cleanup, nil
}
