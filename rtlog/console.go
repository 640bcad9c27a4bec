// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtlog

import (
	"fmt"
	"os"
)

// Console writes log lines to stderr. A Logger writes through it only
// when it is added as one of its writers; New registers no writer.
type Console struct{}

// NewConsole creates a new Console writer.
func NewConsole() *Console {

	return &Console{}
}

// Write implements Writer.
func (c *Console) Write(line string) {

	fmt.Fprintln(os.Stderr, line)
}
