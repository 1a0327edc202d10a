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

package microtime
// frozen "now" for tests

import (
	"time"

	"github.com/tomkirsch/microtime/internal/calendar"
	"github.com/tomkirsch/microtime/internal/log"
)

// testNow, if set, is used instead of the clock.
//
// It is test scaffolding: access is not synchronized, and it must be
// installed and cleared from the test goroutine only.
var testNow *Time

// SetTestNow installs t as current time.
//
// While installed, Parse("") and Now return t (converted to requested
// timezone, if any); relative strings ("tomorrow") and Create with
// omitted date fields are resolved against t. Passing nil is the same as
// ClearTestNow.
//
// SetTestNow is intended for tests only:
//
//	microtime.SetTestNow(&frozen)
//	defer microtime.ClearTestNow()
func SetTestNow(t *Time) {
	if t == nil {
		ClearTestNow()
		return
	}
	tcopy := *t
	testNow = &tcopy
	log.V(1).Infof("microtime: test now := %s %s", tcopy, tcopy.TimezoneName())
}

// ClearTestNow removes time installed by SetTestNow.
func ClearTestNow() {
	if testNow != nil {
		log.V(1).Infof("microtime: test now cleared")
	}
	testNow = nil
}

// HasTestNow reports whether SetTestNow is in effect.
func HasTestNow() bool {
	return testNow != nil
}

// reference returns current instant in loc: test now if installed, or the clock.
func reference(loc *time.Location) time.Time {
	if testNow != nil {
		return testNow.t.In(loc)
	}
	return calendar.Clock(loc)
}
