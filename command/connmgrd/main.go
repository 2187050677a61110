// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/connmgr/api"
	"github.com/bitmark-inc/connmgr/background"
	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/connmgr"
	"github.com/bitmark-inc/connmgr/node"
	"github.com/bitmark-inc/connmgr/web"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.Get(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// node RPC connections
	log.Infof("dial %d nodes", len(theConfiguration.Nodes))
	nodes, closer, err := node.Dial(context.Background(), logger.New("dial"), theConfiguration.Nodes, api.NewNetRPC)
	if nil != err {
		log.Criticalf("dial error: %s", err)
		exitwithstatus.Message("dial error: %s", err)
	}
	defer closer()

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())

	manager := connmgr.New(logger.New("connmgr"), nodes, connmgr.Options{
		AddrTTL:  theConfiguration.AddrTTL(),
		Parallel: theConfiguration.ParallelPoll,
		Metrics:  connmgr.NewMetrics(registry),
	})
	poller := connmgr.NewPoller(manager, theConfiguration.Poll())

	// panel actions outlive their requests, only shutdown cancels them
	actions, cancelActions := context.WithCancel(context.Background())
	defer cancelActions()

	// panel
	handler, err := web.NewHandler(manager, web.Options{
		Context:   actions,
		RateLimit: theConfiguration.Panel.RateLimit,
		RateBurst: theConfiguration.Panel.RateBurst,
		Gatherer:  registry,
		Registry:  registry,
	})
	if nil != err {
		log.Criticalf("panel setup error: %s", err)
		exitwithstatus.Message("panel setup error: %s", err)
	}
	tlsConfig, err := panelTLS(theConfiguration.Panel)
	if nil != err {
		log.Criticalf("panel certificate error: %s", err)
		exitwithstatus.Message("panel certificate error: %s", err)
	}
	server, err := web.NewServer(theConfiguration.Panel.Listen, handler.Mux(), tlsConfig)
	if nil != err {
		log.Criticalf("panel listen error: %s", err)
		exitwithstatus.Message("panel listen error: %s", err)
	}

	// runtime changes to poll settings
	r := newReloader(configurationFile, theConfiguration, manager, poller)
	watcher, err := configuration.NewWatcher(configurationFile, r.reload)
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}

	processes := background.Processes{
		poller,
		server,
		watcher,
	}

	// start background processes
	log.Info("start background")
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\npanel on: %s/\n", server.URL())
		fmt.Printf("Waiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	cancelActions()
}
