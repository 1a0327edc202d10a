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

// Package microtime provides Time: immutable date/time value with microsecond precision.
//
// Time keeps year..second, microsecond, timezone and locale. Its string
// form is the canonical machine format
//
//	2006-01-02 15:04:05.000000
//
// which is never localized and round-trips losslessly through Parse.
// Human-readable localized forms are available via ToDateTimeString,
// ToTimeString and ToLocalizedString.
//
// Every operation that "changes" Time returns a new value; the receiver is
// never modified:
//
//	t, err := microtime.Parse("2024-03-14 10:00:59.999800", microtime.InTimezone("Europe/Paris"))
//	u := t.AddMicroseconds(500)	// 2024-03-14 10:01:00.000300, t is unchanged
//
// Timezone names are resolved at construction. Locale defaults to the
// process locale (see package internal/config for how it is determined).
package microtime

import (
	"time"

	"github.com/tomkirsch/microtime/internal/calendar"
	"github.com/tomkirsch/microtime/internal/config"
)

// Formats of string representations. These are fixed.
const (
	// FormatIntl is the localized date/time pattern (ICU syntax).
	FormatIntl = "yyyy-MM-dd HH:mm:ss.SSS"

	// FormatDateTime is the canonical machine format (PHP date syntax).
	FormatDateTime = "Y-m-d H:i:s.u"

	// Layout is FormatDateTime expressed as Go layout.
	Layout = calendar.Layout
)

// MaxMicrosecond is the largest valid microsecond value.
const MaxMicrosecond = 999999

// Time is microsecond-precision date/time in a timezone, with locale.
//
// The zero value is 0001-01-01 00:00:00.000000 UTC with default locale.
//
// Time values can be compared with Equal; == also compares location and
// locale.
type Time struct {
	t      time.Time // truncated to microsecond, no monotonic reading
	locale string    // "" means default
}

// Instant is anything exposing calendar fields, sub-second fraction and timezone.
//
// time.Time is an Instant.
type Instant interface {
	Date() (year int, month time.Month, day int)
	Clock() (hour, min, sec int)
	Nanosecond() int
	Location() *time.Location
}

var _ Instant = time.Time{}
var _ Instant = Time{}

// Fields specifies date/time components for Create.
//
// Zero Year, Month or Day mean the corresponding component of today's date.
type Fields struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Microsecond          int
}

// ---- options ----

// Option customizes timezone or locale of a constructed Time.
type Option func(*options)

type options struct {
	tzname string         // timezone to resolve, if loc == nil
	loc    *time.Location // explicitly requested location
	locale string
	err    error
}

// InTimezone requests timezone by name: IANA name, "UTC", "Local" or ±HH:MM offset.
//
// An empty name means default timezone.
func InTimezone(name string) Option {
	return func(o *options) {
		o.tzname = name
		o.loc = nil
	}
}

// InLocation requests timezone by location. nil means default timezone.
func InLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
		o.tzname = ""
	}
}

// WithLocale requests locale, e.g. "de_DE". An empty locale means default.
func WithLocale(locale string) Option {
	return func(o *options) {
		o.locale = locale
	}
}

// makeOptions applies opts and resolves timezone.
//
// explicit reports whether a timezone was requested at all.
func makeOptions(opts []Option) (o options, explicit bool) {
	for _, opt := range opts {
		opt(&o)
	}
	if o.locale == "" {
		o.locale = config.Locale()
	}

	switch {
	case o.loc != nil:
		explicit = true
	case o.tzname != "":
		explicit = true
		o.loc, o.err = calendar.LoadLocation(o.tzname)
		if o.err != nil {
			o.err = &CalendarError{Input: o.tzname, Err: o.err}
		}
	default:
		o.loc = config.Location()
	}
	return o, explicit
}

func (o *options) withLocation(loc *time.Location) []Option {
	return []Option{InLocation(loc), WithLocale(o.locale)}
}

// ---- access ----

// Year returns the year.
func (t Time) Year() int { return t.t.Year() }

// Month returns month of the year in [1, 12].
func (t Time) Month() int { return int(t.t.Month()) }

// Day returns day of the month.
func (t Time) Day() int { return t.t.Day() }

func (t Time) Hour() int        { return t.t.Hour() }
func (t Time) Minute() int      { return t.t.Minute() }
func (t Time) Second() int      { return t.t.Second() }
func (t Time) Microsecond() int { return t.t.Nanosecond() / 1000 }

func (t Time) Weekday() time.Weekday { return t.t.Weekday() }
func (t Time) YearDay() int          { return t.t.YearDay() }

// Date, Clock, Nanosecond and Location make Time an Instant.
func (t Time) Date() (year int, month time.Month, day int) { return t.t.Date() }
func (t Time) Clock() (hour, min, sec int)                 { return t.t.Clock() }
func (t Time) Nanosecond() int                             { return t.t.Nanosecond() }

// Location returns timezone of t.
func (t Time) Location() *time.Location { return t.t.Location() }

// TimezoneName returns name of t's timezone, e.g. "Europe/Paris" or "+02:00".
func (t Time) TimezoneName() string { return calendar.ZoneName(t.t) }

// Locale returns locale used for localized formatting.
func (t Time) Locale() string {
	if t.locale == "" {
		return config.Locale()
	}
	return t.locale
}

// IsZero reports whether t is the zero instant 0001-01-01 00:00:00 UTC.
func (t Time) IsZero() bool { return t.t.IsZero() }

// Timestamp returns Unix time in seconds.
func (t Time) Timestamp() int64 { return t.t.Unix() }

// TimestampMicro returns Unix time in seconds with microseconds as fraction.
func (t Time) TimestampMicro() float64 {
	return float64(t.t.Unix()) + float64(t.Microsecond())/1e6
}

// UnixMicro returns Unix time in microseconds.
func (t Time) UnixMicro() int64 { return t.t.UnixMicro() }

// ToTime returns t as time.Time with identical fields and location.
//
// time.Time is a value: the result can be freely manipulated without
// affecting t.
func (t Time) ToTime() time.Time { return t.t }
