// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/certgen"

	"github.com/bitmark-inc/connmgr/configuration"
	"github.com/bitmark-inc/connmgr/fault"
)

const (
	panelCertificateFilename = "panel.crt"
	panelPrivateKeyFilename  = "panel.key"
)

// TLS settings for the panel, nil when it is served over plain HTTP
func panelTLS(panel configuration.PanelConfiguration) (*tls.Config, error) {
	if !panel.TLS() {
		return nil, nil
	}

	keyPair, err := tls.LoadX509KeyPair(panel.Certificate, panel.PrivateKey)
	if nil != err {
		return nil, err
	}

	return &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}, nil
}

// create a self-signed certificate
func makeSelfSignedCertificate(name string, certificateFileName string, privateKeyFileName string, extraHosts []string) error {

	if fileExists(certificateFileName) {
		return fault.CertificateFileExists
	}

	if fileExists(privateKeyFileName) {
		return fault.PrivateKeyFileExists
	}

	org := "connmgr self signed cert for: " + name
	validUntil := time.Now().Add(10 * 365 * 24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair(org, validUntil, 0 != len(extraHosts), extraHosts)
	if nil != err {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); nil != err {
		return err
	}

	if err = ioutil.WriteFile(privateKeyFileName, key, 0600); nil != err {
		os.Remove(certificateFileName)
		return err
	}

	return nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
