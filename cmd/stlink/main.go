// Copyright 2021 juju2013@github. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package main

import "github.com/juju2013/gostlink/v2/cmd/stlink/cmd"

func main() {
	cmd.Execute()
}
