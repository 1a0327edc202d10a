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
// construction

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/tomkirsch/microtime/internal/calendar"
)

// Parse creates Time from date/time string.
//
// An empty string, or "now", means current time: the time installed with
// SetTestNow if any, otherwise the clock. Relative expressions such as
// "tomorrow", "next tuesday" or "3 days ago" are resolved against current
// time in the requested timezone. Everything else is parsed as absolute
// date/time, canonical format first:
//
//	2024-03-14 10:00:00.123456
//	2024-03-14T10:00:00.123456+01:00
//	2024-03-14
//	Mar 14, 2024 10:00am
//
// Strings without zone information are interpreted in the requested
// timezone (default timezone if none). Strings with an explicit offset
// keep it.
//
// Errors are of type *CalendarError.
func Parse(s string, opts ...Option) (Time, error) {
	o, explicit := makeOptions(opts)
	if o.err != nil {
		return Time{}, o.err
	}

	if calendar.IsNow(s) {
		if testNow != nil {
			t := testNow.t
			if explicit {
				t = t.In(o.loc)
			}
			return Time{t: t, locale: o.locale}, nil
		}
		return Time{t: calendar.Clock(o.loc), locale: o.locale}, nil
	}

	t, err := parseInstant(s, o.loc)
	if err != nil {
		return Time{}, err
	}
	return Time{t: t, locale: o.locale}, nil
}

// parseInstant parses absolute or relative s in loc.
//
// Strings that only look relative, e.g. because of an offset sign, and
// are not understood as relative expression as a whole are parsed as
// absolute date/time.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	input := s
	if calendar.HasRelativeKeywords(s) {
		t, err := calendar.Relative(s, reference(loc))
		if err == nil {
			// re-express through canonical format, so that the result is
			// exactly what parsing the resolved value would give.
			s = calendar.Canonical(t)
		}
	}

	t, err := calendar.Parse(s, loc)
	if err != nil {
		return time.Time{}, calendarErr(input, err)
	}
	return t, nil
}

// Now returns current time. It is the same as Parse("", opts...).
func Now(opts ...Option) (Time, error) {
	return Parse("", opts...)
}

// Create creates Time from individual components.
//
// Zero Year, Month or Day are taken from today's date in the requested
// timezone. Components are validated: e.g. Month 13, negative Year or Day
// 30 in February give *CalendarError, and Microsecond outside [0, 999999]
// gives *SubSecondError.
func Create(f Fields, opts ...Option) (Time, error) {
	if err := checkMicrosecond(int64(f.Microsecond)); err != nil {
		return Time{}, err
	}

	o, _ := makeOptions(opts)
	if o.err != nil {
		return Time{}, o.err
	}

	if f.Year == 0 || f.Month == 0 || f.Day == 0 {
		today := reference(o.loc)
		if f.Year == 0 {
			f.Year = today.Year()
		}
		if f.Month == 0 {
			f.Month = int(today.Month())
		}
		if f.Day == 0 {
			f.Day = today.Day()
		}
	}

	if err := checkFields(f); err != nil {
		return Time{}, err
	}

	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
		f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, f.Microsecond)
	return Parse(s, o.withLocation(o.loc)...)
}

// CreateFromTime creates Time with today's date and given time of day.
func CreateFromTime(hour, minute, second, microsecond int, opts ...Option) (Time, error) {
	return Create(Fields{Hour: hour, Minute: minute, Second: second, Microsecond: microsecond}, opts...)
}

// CreateFromFormat creates Time by parsing s strictly according to format.
//
// format uses PHP date() pattern syntax, e.g. "Y-m-d H:i:s.u" or "d/m/Y".
// Components not present in format are taken from current time, except
// microseconds which are reset to zero unless the format has u or v. The
// ! and | pattern characters reset missing components to Unix epoch.
//
// If the format has no timezone, s is interpreted in the requested
// timezone. If it has one, the parsed zone is kept, unless a timezone was
// requested explicitly: then the parsed wall clock is re-expressed in it.
// NOTE PHP-style createFromFormat instead always re-parses the wall clock
// in the default timezone, dropping the parsed zone when none is requested.
//
// An input not matching format, or with out of range components, gives
// *FormatError.
func CreateFromFormat(format, s string, opts ...Option) (Time, error) {
	o, explicit := makeOptions(opts)
	if o.err != nil {
		return Time{}, o.err
	}

	t, err := calendar.ParseFormat(format, s, o.loc, reference(o.loc))
	if err != nil {
		return Time{}, &FormatError{Format: format, Input: s, Err: err}
	}

	loc := t.Location()
	if explicit {
		loc = o.loc
	}
	return Parse(calendar.Canonical(t), o.withLocation(loc)...)
}

// CreateFromTimestamp creates Time from Unix time in seconds.
//
// The result is in UTC unless a timezone is requested.
func CreateFromTimestamp(sec int64, opts ...Option) (Time, error) {
	o, explicit := makeOptions(opts)
	if o.err != nil {
		return Time{}, o.err
	}
	loc := time.UTC
	if explicit {
		loc = o.loc
	}

	utc, err := Parse(calendar.Canonical(time.Unix(sec, 0).UTC()), InLocation(time.UTC), WithLocale(o.locale))
	if err != nil {
		return Time{}, err
	}
	return utc.In(loc), nil
}

// CreateFromTimestampFloat creates Time from Unix time in seconds, with
// microseconds as fraction.
//
// The fraction is rounded to the nearest microsecond. The result is in UTC
// unless a timezone is requested.
func CreateFromTimestampFloat(ts float64, opts ...Option) (Time, error) {
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return Time{}, calendarErr(fmt.Sprint(ts), errors.New("not a finite timestamp"))
	}

	fsec := math.Floor(ts)
	usec := int64(math.Round((ts - fsec) * 1e6))
	if usec == MaxMicrosecond+1 {
		fsec++
		usec = 0
	}
	if err := checkMicrosecond(usec); err != nil {
		return Time{}, err
	}

	o, explicit := makeOptions(opts)
	if o.err != nil {
		return Time{}, o.err
	}

	utc, err := CreateFromTimestamp(int64(fsec), WithLocale(o.locale))
	if err != nil {
		return Time{}, err
	}
	utc, err = utc.SetMicrosecond(int(usec))
	if err != nil {
		return Time{}, err
	}

	loc := time.UTC
	if explicit {
		loc = o.loc
	}
	return utc.In(loc), nil
}

// CreateFromInstance creates Time with the same fields and timezone as x.
//
// Sub-microsecond part of x is dropped. WithLocale can be given; timezone
// options are ignored.
func CreateFromInstance(x Instant, opts ...Option) (Time, error) {
	o, _ := makeOptions(opts)

	year, month, day := x.Date()
	hour, min, sec := x.Clock()
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d.%06d",
		year, int(month), day, hour, min, sec, x.Nanosecond()/1000)
	return Parse(s, o.withLocation(x.Location())...)
}

// Strtotime parses date/time string and returns Unix time in seconds with
// microseconds as fraction.
//
// It accepts what Parse accepts, interpreting zone-less strings in default
// timezone, without constructing Time.
func Strtotime(s string) (float64, error) {
	o, _ := makeOptions(nil)
	var t time.Time
	if calendar.IsNow(s) {
		t = reference(o.loc)
	} else {
		var err error
		t, err = parseInstant(s, o.loc)
		if err != nil {
			return 0, err
		}
	}
	return float64(t.Unix()) + float64(t.Nanosecond()/1000)/1e6, nil
}
