// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package simnode

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	crypto "github.com/libp2p/go-libp2p-core/crypto"
)

// MakeEd25519Key - generate a random ED25519 identity key
func MakeEd25519Key() (crypto.PrivKey, error) {
	privKey, _, err := crypto.GenerateKeyPairWithReader(crypto.Ed25519, 0, rand.Reader)
	if nil != err {
		return nil, err
	}
	return privKey, nil
}

// DecodePrivKeyFromHex - decode a hex string to a private key object
//
// surrounding whitespace is ignored so keys can be read from files
func DecodePrivKeyFromHex(privKey string) (crypto.PrivKey, error) {
	keyBytes, err := hex.DecodeString(strings.TrimSpace(privKey))
	if nil != err {
		return nil, err
	}

	return crypto.UnmarshalPrivateKey(keyBytes)
}

// EncodePrivKeyToHex - encode a private key object to a hex string
func EncodePrivKeyToHex(privKey crypto.PrivKey) (string, error) {
	keyBytes, err := crypto.MarshalPrivateKey(privKey)
	if nil != err {
		return "", err
	}

	return hex.EncodeToString(keyBytes), nil
}
