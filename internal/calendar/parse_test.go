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

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHasRelativeKeywords(t *testing.T) {
	var testv = []struct {in string; ok bool} {
		{"tomorrow", true},
		{"Next Tuesday", true},
		{"last day of february", true},
		{"3 days ago", true},
		{"+1 week", true},
		{"midnight", true},
		{"first monday of next month", true},
		{"2024-03-14", false},
		{"2024-03-14 next", false},
		{"2024-3-4T10:00:00-05:00", false},
		{"March 14, 2024", false},
		{"10:00", false},
	}

	for _, tt := range testv {
		if ok := HasRelativeKeywords(tt.in); ok != tt.ok {
			t.Errorf("hasRelativeKeywords %q: have %v  want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestParse(t *testing.T) {
	paris, err := LoadLocation("Europe/Paris")
	require.NoError(t, err)

	var testv = []struct {in, out string; offset int} {
		{"2024-03-14 10:00:00.123456", "2024-03-14 10:00:00.123456", 3600},
		{"2024-07-14 10:00:00", "2024-07-14 10:00:00.000000", 7200},
		{"2024-03-14T10:00:00.000000001", "2024-03-14 10:00:00.000000", 3600},
		{"2024-03-14 10:00:00Z", "2024-03-14 10:00:00.000000", 0},
		{"2024-03-14T10:00:00.5+05:00", "2024-03-14 10:00:00.500000", 5 * 3600},
		{"2024-03-14", "2024-03-14 00:00:00.000000", 3600},
		{"2012/03/19 10:11:59", "2012-03-19 10:11:59.000000", 3600},
		{"Mon, 02 Jan 2006 15:04:05 -0700", "2006-01-02 15:04:05.000000", -7 * 3600},
	}

	for _, tt := range testv {
		x, err := Parse(tt.in, paris)
		if err != nil {
			t.Errorf("parse %q: %s", tt.in, err)
			continue
		}
		_, off := x.Zone()
		if !(Canonical(x) == tt.out && off == tt.offset) {
			t.Errorf("parse %q:\nhave: %s %d\nwant: %s %d", tt.in, Canonical(x), off, tt.out, tt.offset)
		}
	}

	for _, in := range []string{"", "2024-13-01", "2024-02-30 10:00:00", "zzz"} {
		_, err := Parse(in, paris)
		require.Error(t, err, "%q", in)
	}
	_, err = Parse("2024-13-01 00:00:00", paris)
	require.Contains(t, err.Error(), "out of range")
}

func TestRelative(t *testing.T) {
	ref := time.Date(2024, 3, 14, 10, 0, 0, 123456789, time.UTC) // Thursday

	x, err := Relative("tomorrow", ref)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), x.Format("2006-01-02"))
	require.Equal(t, time.UTC, x.Location())
	require.Equal(t, 0, x.Nanosecond()%1000)

	x, err = Relative("yesterday", ref)
	require.NoError(t, err)
	require.Equal(t, "2024-03-13", x.Format("2006-01-02"))

	x, err = Relative("next friday", ref)
	require.NoError(t, err)
	require.Equal(t, time.Friday, x.Weekday())
	require.True(t, x.After(ref))

	// date modifiers; time of day is kept
	var testv = []struct {in, out string} {
		{"+1 day", "2024-03-15 10:00:00.123456"},
		{"-2 days", "2024-03-12 10:00:00.123456"},
		{"+1 week", "2024-03-21 10:00:00.123456"},
		{"+90 min", "2024-03-14 11:30:00.123456"},
		{"- 3 hours", "2024-03-14 07:00:00.123456"},
		{"+1 fortnight", "2024-03-28 10:00:00.123456"},
		{"next month", "2024-04-14 10:00:00.123456"},
		{"Last Year", "2023-03-14 10:00:00.123456"},
		{"this week", "2024-03-14 10:00:00.123456"},
		{"last day of next month", "2024-04-30 10:00:00.123456"},
		{"first day of last month", "2024-02-01 10:00:00.123456"},
		{"last day of this month", "2024-03-31 10:00:00.123456"},
	}
	for _, tt := range testv {
		x, err := Relative(tt.in, ref)
		if err != nil {
			t.Errorf("relative %q: %s", tt.in, err)
			continue
		}
		if have := Canonical(x); have != tt.out {
			t.Errorf("relative %q:\nhave: %s\nwant: %s", tt.in, have, tt.out)
		}
	}

	// month overflow carries like calendar arithmetic does
	x, err = Relative("+1 month", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "2024-03-02 00:00:00.000000", Canonical(x))

	// days move the calendar, not the clock
	paris, err := LoadLocation("Europe/Paris")
	require.NoError(t, err)
	x, err = Relative("+1 day", time.Date(2024, 3, 30, 12, 0, 0, 0, paris))
	require.NoError(t, err)
	require.Equal(t, "2024-03-31 12:00:00.000000", Canonical(x))
	_, off := x.Zone()
	require.Equal(t, 2*3600, off)

	// only fragments are understood -> not relative
	for _, in := range []string{
		"+-+",
		"March 14, 2024 10:00 +0100",
		"Mon, 02 Jan 2006 15:04:05 -0700",
		"14-03-2024",
		"2024/03/15 10:00:00 +01:00",
		"+1 day garbage",
	} {
		_, err := Relative(in, ref)
		require.ErrorIs(t, err, ErrNotRelative, "%q", in)
	}
}
