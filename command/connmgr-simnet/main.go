// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// connmgr-simnet starts a set of bare libp2p hosts, each answering the
// node networking RPC on its own port, and writes a connmgrd
// configuration file listing them
package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/simnode"
)

const (
	defaultCount    = 4
	defaultRPCPort  = 1234
	defaultConfig   = "connmgr.conf"
	rpcPath         = "/rpc/v0"
	simLogDirectory = "log"
	simLogFile      = "connmgr-simnet.log"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
		{Long: "rpc-port", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'p'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s\n", version)
		return
	}

	if len(options["help"]) > 0 {
		fmt.Printf("usage: %s [--count=N] [--rpc-port=PORT] [--config-file=FILE]\n", program)
		fmt.Printf("  starts N simulated nodes with RPC on PORT, PORT+1, …\n")
		fmt.Printf("  and writes a configuration for them to FILE (default: %s)\n", defaultConfig)
		return
	}

	count := intOption(program, options, "count", defaultCount)
	if count < 1 {
		exitwithstatus.Message("%s: count must be positive", program)
	}
	rpcPort := intOption(program, options, "rpc-port", defaultRPCPort)

	configurationFile := defaultConfig
	if 1 == len(options["config-file"]) {
		configurationFile = options["config-file"][0]
	}

	logging := configuration.Default().Logging
	logging.Directory = filepath.Join(filepath.Dir(configurationFile), simLogDirectory)
	logging.File = simLogFile
	logging.Console = true
	if err := os.MkdirAll(logging.Directory, 0o700); nil != err {
		exitwithstatus.Message("%s: log directory error: %s", program, err)
	}
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Infof("version: %s", version)

	config := configuration.Default()

	for i := 0; i < count; i += 1 {
		name := fmt.Sprintf("t0%d", 1000+i)

		n, err := simnode.New(context.Background(), name, simnode.Config{})
		if nil != err {
			log.Criticalf("start node: %s  error: %s", name, err)
			exitwithstatus.Message("start node: %s  error: %s", name, err)
		}
		defer n.Close()

		listen := net.JoinHostPort("127.0.0.1", strconv.Itoa(rpcPort+i))
		ln, err := net.Listen("tcp", listen)
		if nil != err {
			log.Criticalf("node: %s  rpc listen error: %s", name, err)
			exitwithstatus.Message("node: %s  rpc listen error: %s", name, err)
		}

		mux := http.NewServeMux()
		mux.Handle(rpcPath, api.NewNetServer(n))
		srv := &http.Server{Handler: mux}
		go func() {
			_ = srv.Serve(ln)
		}()
		defer srv.Close()

		log.Infof("node: %s  rpc: %s  p2p: %s", name, listen, n.P2PAddress())

		config.Nodes = append(config.Nodes, configuration.NodeConfiguration{
			Name:       name,
			RPC:        "ws://" + listen + rpcPath,
			P2PAddress: n.P2PAddress(),
		})
	}

	var buffer bytes.Buffer
	err = configuration.Write(&buffer, config)
	if nil != err {
		exitwithstatus.Message("%s: configuration error: %s", program, err)
	}
	err = ioutil.WriteFile(configurationFile, buffer.Bytes(), 0o600)
	if nil != err {
		exitwithstatus.Message("%s: write: %q  error: %s", program, configurationFile, err)
	}
	fmt.Printf("wrote configuration: %s\n", configurationFile)
	fmt.Printf("Waiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	fmt.Printf("\nshutting down…\n")
}

func intOption(program string, options map[string][]string, name string, value int) int {
	if 0 == len(options[name]) {
		return value
	}
	n, err := strconv.Atoi(options[name][0])
	if nil != err {
		exitwithstatus.Message("%s: invalid %s: %q", program, name, options[name][0])
	}
	return n
}
