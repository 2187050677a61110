// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/libp2p/go-libp2p-core/peer"
	ma "github.com/multiformats/go-multiaddr"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/connmgr/fault"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "." // same directory as the configuration file

	defaultPollInterval = "2s"
	defaultAddrCacheTTL = "5s"

	defaultPanelListen = "127.0.0.1:2020"
	defaultRateLimit   = 10
	defaultRateBurst   = 20

	defaultLogDirectory = "log"
	defaultLogFile      = "connmgr.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// PanelConfiguration - the HTTP control panel
//
// certificate and private_key are PEM files; when both are set the
// panel is served over TLS
type PanelConfiguration struct {
	Listen      string  `gluamapper:"listen" json:"listen"`
	RateLimit   float64 `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst   int     `gluamapper:"rate_burst" json:"rate_burst"`
	Certificate string  `gluamapper:"certificate" json:"certificate,omitempty"`
	PrivateKey  string  `gluamapper:"private_key" json:"private_key,omitempty"`
}

// TLS - true if the panel is to be served over TLS
func (p PanelConfiguration) TLS() bool {
	return "" != p.Certificate && "" != p.PrivateKey
}

// NodeConfiguration - one managed node
//
// the peer identity comes from peer_id or from the /p2p/ component of
// p2p_address; when both are given they must agree
type NodeConfiguration struct {
	Name       string `gluamapper:"name" json:"name"`
	RPC        string `gluamapper:"rpc" json:"rpc"`
	Token      string `gluamapper:"token" json:"-"`
	PeerID     string `gluamapper:"peer_id" json:"peer_id"`
	P2PAddress string `gluamapper:"p2p_address" json:"p2p_address"`

	id peer.ID
}

// Configuration - the whole configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	PollInterval  string               `gluamapper:"poll_interval" json:"poll_interval"`
	ParallelPoll  bool                 `gluamapper:"parallel_poll" json:"parallel_poll"`
	AddrCacheTTL  string               `gluamapper:"addr_cache_ttl" json:"addr_cache_ttl"`
	Panel         PanelConfiguration   `gluamapper:"panel" json:"panel"`
	Nodes         []NodeConfiguration  `gluamapper:"nodes" json:"nodes"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`

	poll    time.Duration
	addrTTL time.Duration
}

// Default - a configuration holding every default value and no nodes
func Default() *Configuration {
	return &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		PollInterval:  defaultPollInterval,
		AddrCacheTTL:  defaultAddrCacheTTL,

		Panel: PanelConfiguration{
			Listen:    defaultPanelListen,
			RateLimit: defaultRateLimit,
			RateBurst: defaultRateBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: LoglevelMap{
				logger.DefaultTag: "info",
			},
		},
	}
}

// Get - read, decode and verify the configuration
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := Default()

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.InvalidDataDirectory
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.InvalidDataDirectory
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Logging.Directory,
	}
	if "" != options.PidFile {
		mustBeAbsolute = append(mustBeAbsolute, &options.PidFile)
	}
	if options.Panel.TLS() {
		mustBeAbsolute = append(mustBeAbsolute, &options.Panel.Certificate, &options.Panel.PrivateKey)
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	return options, nil
}

func (c *Configuration) validate() error {
	poll, err := time.ParseDuration(c.PollInterval)
	if nil != err || poll <= 0 {
		return errors.Wrapf(fault.InvalidDuration, "poll_interval: %q", c.PollInterval)
	}
	c.poll = poll

	ttl, err := time.ParseDuration(c.AddrCacheTTL)
	if nil != err || ttl < 0 {
		return errors.Wrapf(fault.InvalidDuration, "addr_cache_ttl: %q", c.AddrCacheTTL)
	}
	c.addrTTL = ttl

	if "" == c.Panel.Listen {
		return fault.MissingListen
	}
	if !c.Panel.TLS() && ("" != c.Panel.Certificate || "" != c.Panel.PrivateKey) {
		return fault.MissingCertificate
	}

	if 0 == len(c.Nodes) {
		return fault.MissingNodes
	}

	names := make(map[string]struct{}, len(c.Nodes))
	for i := range c.Nodes {
		n := &c.Nodes[i]
		if "" == n.Name {
			return errors.Wrapf(fault.MissingNodeName, "node[%d]", i)
		}
		if _, ok := names[n.Name]; ok {
			return errors.Wrapf(fault.DuplicateNode, "node: %q", n.Name)
		}
		names[n.Name] = struct{}{}

		if "" == n.RPC {
			return errors.Wrapf(fault.MissingRPC, "node: %q", n.Name)
		}
		if err := n.parseID(); nil != err {
			return errors.Wrapf(err, "node: %q", n.Name)
		}
	}

	return nil
}

// Poll - the validated poll interval
func (c *Configuration) Poll() time.Duration {
	return c.poll
}

// AddrTTL - the validated listen address cache lifetime, zero disables the cache
func (c *Configuration) AddrTTL() time.Duration {
	return c.addrTTL
}

// SameNodes - true if both configurations describe the same node list
func (c *Configuration) SameNodes(other *Configuration) bool {
	if len(c.Nodes) != len(other.Nodes) {
		return false
	}
	for i, n := range c.Nodes {
		o := other.Nodes[i]
		if n.Name != o.Name || n.RPC != o.RPC || n.id != o.id {
			return false
		}
	}
	return true
}

// ID - the validated peer identity
func (n NodeConfiguration) ID() peer.ID {
	return n.id
}

func (n *NodeConfiguration) parseID() error {
	if "" != n.PeerID {
		id, err := peer.IDB58Decode(n.PeerID)
		if nil != err {
			return fault.InvalidPeerID
		}
		n.id = id
	}

	if "" != n.P2PAddress {
		addr, err := ma.NewMultiaddr(n.P2PAddress)
		if nil != err {
			return err
		}
		info, err := peer.AddrInfoFromP2pAddr(addr)
		if nil != err {
			return fault.InvalidPeerID
		}
		if "" != n.id && n.id != info.ID {
			return fault.InvalidPeerID
		}
		n.id = info.ID
	}

	if "" == n.id {
		return fault.MissingPeerID
	}
	return nil
}

func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
