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
// errors

import (
	"fmt"
)

// CalendarError is returned when input does not resolve to a real calendar
// date/time, or names an unknown timezone.
type CalendarError struct {
	Input string // what was given, e.g. "2024-02-30 00:00:00.000000"
	Err   error  // underlying reason
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("microtime: %q: invalid date/time: %s", e.Input, e.Err)
}

func (e *CalendarError) Unwrap() error { return e.Err }

// SubSecondError is returned when microsecond value is outside [0, 999999].
type SubSecondError struct {
	Value int64
}

func (e *SubSecondError) Error() string {
	return fmt.Sprintf("microtime: microsecond %d out of range [0, %d]", e.Value, MaxMicrosecond)
}

// FormatError is returned when input does not match explicitly given format.
type FormatError struct {
	Format string
	Input  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("microtime: %q does not match format %q: %s", e.Input, e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func calendarErr(input string, err error) error {
	return &CalendarError{Input: input, Err: err}
}

func checkMicrosecond(usec int64) error {
	if usec < 0 || usec > MaxMicrosecond {
		return &SubSecondError{Value: usec}
	}
	return nil
}
