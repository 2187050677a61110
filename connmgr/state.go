// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"sync"
	"time"

	"github.com/bitmark-inc/connmgr/counter"
)

// Snapshot - a consistent copy of the display state
type Snapshot struct {
	Conns   map[string]bool `json:"conns"`
	Lock    bool            `json:"lock"`
	Version uint64          `json:"version"`
	Error   string          `json:"error,omitempty"`
	ErrorAt *time.Time      `json:"errorAt,omitempty"`
}

// Connected - true only for a pair known to be connected
func (s Snapshot) Connected(key string) bool {
	return s.Conns[key]
}

// State - connection map and lock flag shared by the poller and the
// action dispatcher
//
// every mutation bumps the version and wakes subscribers
type State struct {
	mutex       sync.RWMutex
	conns       map[string]bool
	lock        bool
	version     counter.Counter
	lastError   string
	lastErrorAt time.Time
	subscribers map[chan struct{}]struct{}
}

// NewState - empty map, locked until the first poll completes
func NewState() *State {
	return &State{
		conns:       make(map[string]bool),
		lock:        true,
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Snapshot - copy the current state
func (s *State) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	conns := make(map[string]bool, len(s.conns))
	for k, v := range s.conns {
		conns[k] = v
	}

	snap := Snapshot{
		Conns:   conns,
		Lock:    s.lock,
		Version: s.version.Uint64(),
		Error:   s.lastError,
	}
	if "" != s.lastError {
		at := s.lastErrorAt
		snap.ErrorAt = &at
	}
	return snap
}

// Locked - true until the first poll cycle completes
func (s *State) Locked() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lock
}

// Version - current change count, readable without the lock
func (s *State) Version() uint64 {
	return s.version.Uint64()
}

// Subscribe - channel signalled after each change
//
// signals coalesce; call the returned function to unsubscribe
func (s *State) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mutex.Lock()
	s.subscribers[ch] = struct{}{}
	s.mutex.Unlock()

	return ch, func() {
		s.mutex.Lock()
		delete(s.subscribers, ch)
		s.mutex.Unlock()
	}
}

// set a single entry from a poll result
func (s *State) set(key string, connected bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if old, ok := s.conns[key]; ok && old == connected {
		return
	}
	s.conns[key] = connected
	s.changed()
}

// set a single entry after a successful action, clearing any error
func (s *State) apply(key string, connected bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.conns[key] = connected
	s.lastError = ""
	s.changed()
}

// record a failure without touching the map
func (s *State) fail(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastError = err.Error()
	s.lastErrorAt = time.Now()
	s.changed()
}

// clear the lock, only ever transitions once
func (s *State) unlock() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.lock {
		return
	}
	s.lock = false
	s.changed()
}

// count connected entries
func (s *State) connectedCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	n := 0
	for _, v := range s.conns {
		if v {
			n += 1
		}
	}
	return n
}

// must hold the write lock
func (s *State) changed() {
	s.version.Increment()
	for ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
