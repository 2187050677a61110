// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/connmgr/fault"
)

// New - a limiter for the given sustained rate and burst
//
// a non-positive rate disables limiting
func New(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Limit - limiting for a single request
//
// waits for a token when one is due within maximumWait, otherwise the
// reservation is returned and the request is refused.  A cancelled
// context also returns the reservation.
func Limit(ctx context.Context, limiter *rate.Limiter, maximumWait time.Duration) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.RateLimiting
	}

	delay := r.Delay()
	if delay > maximumWait {
		r.Cancel()
		return fault.RateLimiting
	}
	if 0 == delay {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
