// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	ctx, manager, done, err := open(m)
	if nil != err {
		return err
	}
	defer done()

	// failed queries are part of the report, not a reason to stop
	pollErr := manager.Poll(ctx)

	err = report(m, manager)
	if nil != err {
		return err
	}
	return pollErr
}
