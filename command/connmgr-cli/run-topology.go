// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/connmgr/topology"
)

func runTopology(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return fmt.Errorf("expected one of: %v", topology.Kinds)
	}

	kind, err := topology.ParseKind(c.Args().First())
	if nil != err {
		return err
	}

	ctx, manager, done, err := open(m)
	if nil != err {
		return err
	}
	defer done()

	if m.verbose {
		fmt.Fprintf(m.e, "topology: %s\n", kind)
	}

	// every pair is attempted, report what succeeded before failing
	applyErr := manager.Apply(ctx, kind)

	err = report(m, manager)
	if nil != err {
		return err
	}
	return applyErr
}
