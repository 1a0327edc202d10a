// Copyright (C) 2026  Nexedi SA and Contributors.
//                     Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.

// Package log provides logging with severity levels.
//
// It is a thin layer over glog: microtime values are plain data and carry
// no operational context, so unlike servers there is no task prefix to add.
// Output goes wherever glog flags (-logtostderr, -v, ...) direct it.
package log

import (
	"fmt"

	"github.com/golang/glog"
)

// Depth allows to log on behalf of callers up the stack.
//
// Depth(1).Warningf(...) logs with file:line of the caller of the function
// that called Warningf.
type Depth int

func (d Depth) Warningf(format string, argv ...interface{}) {
	glog.WarningDepth(int(d+1), fmt.Sprintf(format, argv...))
}


// Verbose is returned by V and logs only if verbosity level is enabled.
type Verbose bool

// V reports whether verbosity at level is enabled.
//
//	log.V(2).Infof("resolved %q -> %s", expr, t)
func V(level glog.Level) Verbose {
	return Verbose(glog.V(level))
}

func (v Verbose) Infof(format string, argv ...interface{}) {
	if v {
		glog.InfoDepth(1, fmt.Sprintf(format, argv...))
	}
}


func Warningf(format string, argv ...interface{}) {
	Depth(1).Warningf(format, argv...)
}
