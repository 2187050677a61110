// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	CertificateFileExists   = ExistsError("certificate file already exists")
	DuplicateNode           = ExistsError("duplicate node name")
	InvalidAction           = InvalidError("invalid action")
	InvalidConfiguration    = InvalidError("invalid configuration")
	InvalidDataDirectory    = InvalidError("invalid data directory")
	InvalidDuration         = InvalidError("invalid duration")
	InvalidPair             = InvalidError("source node must follow target node")
	InvalidPeerID           = InvalidError("invalid peer id")
	MissingCertificate      = InvalidError("panel certificate and private key must both be set")
	MissingListen           = InvalidError("missing panel listen address")
	MissingNodeName         = InvalidError("missing node name")
	MissingNodes            = InvalidError("no nodes configured")
	MissingPeerID           = InvalidError("missing peer id or p2p address")
	MissingRPC              = InvalidError("missing node rpc address")
	PrivateKeyFileExists    = ExistsError("private key file already exists")
	RateLimiting            = LimitError("rate limiting")
	UnknownNode             = NotFoundError("unknown node")
	UnknownTopology         = NotFoundError("unknown topology")
	WatcherTargetNotPresent = NotFoundError("watched file does not exist")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LimitError) Error() string    { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLimit(e error) bool    { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
