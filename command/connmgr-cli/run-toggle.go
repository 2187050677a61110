// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runConnect(c *cli.Context) error {
	return toggle(c, true)
}

func runDisconnect(c *cli.Context) error {
	return toggle(c, false)
}

func toggle(c *cli.Context, connect bool) error {

	m := c.App.Metadata["config"].(*metadata)

	if 2 != c.NArg() {
		return fmt.Errorf("expected: FROM TO, got %d arguments", c.NArg())
	}
	from := c.Args().Get(0)
	to := c.Args().Get(1)

	ctx, manager, done, err := open(m)
	if nil != err {
		return err
	}
	defer done()

	if m.verbose {
		fmt.Fprintf(m.e, "%s -> %s connect: %t\n", from, to, connect)
	}

	err = manager.Toggle(ctx, connect, from, to)
	if nil != err {
		return err
	}

	return report(m, manager)
}
