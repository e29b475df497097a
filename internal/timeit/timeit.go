// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package timeit logs how long a named block of code took.
package timeit

import (
	"fmt"

	"github.com/apex/log"
)

// Start begins timing the named block. Call Stop on the returned entry, often
// with defer, to log the elapsed time at info level:
//
//	defer timeit.Start("load").Stop(&err)
func Start(name string) *log.Entry {
	return log.WithField("block", name).Trace(fmt.Sprintf("TimeIt %q", name))
}
