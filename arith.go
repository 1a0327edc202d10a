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
// arithmetic and comparison

import (
	"time"
)

// AddMicroseconds returns t shifted by n microseconds.
//
// The shift is on the instant, not on the wall clock: a carry into seconds,
// minutes and further is performed, and crossing a DST transition keeps
// elapsed time exact. n may be negative.
func (t Time) AddMicroseconds(n int64) Time {
	sec := n / 1e6
	usec := n % 1e6
	u := time.Unix(t.t.Unix()+sec, int64(t.t.Nanosecond())+usec*1000)
	return Time{t: u.In(t.t.Location()), locale: t.locale}
}

// SubMicroseconds returns t shifted by -n microseconds.
func (t Time) SubMicroseconds(n int64) Time {
	if n == -n && n != 0 { // math.MinInt64
		return t.AddMicroseconds(-(n + 1)).AddMicroseconds(1)
	}
	return t.AddMicroseconds(-n)
}

// Add returns t shifted by d truncated to microseconds.
func (t Time) Add(d time.Duration) Time {
	return t.AddMicroseconds(int64(d / time.Microsecond))
}

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool { return t.t.Equal(u.t) }

func (t Time) Before(u Time) bool { return t.t.Before(u.t) }
func (t Time) After(u Time) bool  { return t.t.After(u.t) }

// Compare returns -1, 0 or +1 depending on whether t is before, the same, or after u.
func (t Time) Compare(u Time) int { return t.t.Compare(u.t) }

// DiffMicroseconds returns t - u in microseconds.
func (t Time) DiffMicroseconds(u Time) int64 {
	return (t.t.Unix()-u.t.Unix())*1e6 + int64(t.Microsecond()-u.Microsecond())
}
