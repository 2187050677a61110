// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"io"
	"text/template"

	"github.com/bitmark-inc/connmgr/templates"
)

// Write - output a configuration as a Lua file that Get can read back
func Write(w io.Writer, config *Configuration) error {
	t, err := template.New("config").Parse(templates.ConfigurationTemplate)
	if nil != err {
		return err
	}
	return t.Execute(w, config)
}
