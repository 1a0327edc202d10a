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
// derivation of new values with changed components

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tomkirsch/microtime/internal/calendar"
)

// Field names a date/time component.
type Field int

const (
	FieldYear Field = iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldMicrosecond
)

var fieldNames = [...]string{"year", "month", "day", "hour", "minute", "second", "microsecond"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "field?"
	}
	return fieldNames[f]
}

// Fields decomposes t into components.
func (t Time) Fields() Fields {
	year, month, day := t.t.Date()
	hour, min, sec := t.t.Clock()
	return Fields{
		Year: year, Month: int(month), Day: day,
		Hour: hour, Minute: min, Second: sec,
		Microsecond: t.Microsecond(),
	}
}

// SetValue returns t with component field replaced by value.
//
// The result is recomposed via Create in t's timezone and locale, so value
// must keep the date valid: e.g. setting day 31 on a date in April fails
// with *CalendarError.
func (t Time) SetValue(field Field, value int) (Time, error) {
	f := t.Fields()
	switch field {
	case FieldYear:
		f.Year = value
	case FieldMonth:
		f.Month = value
	case FieldDay:
		f.Day = value
	case FieldHour:
		f.Hour = value
	case FieldMinute:
		f.Minute = value
	case FieldSecond:
		f.Second = value
	case FieldMicrosecond:
		f.Microsecond = value
	default:
		return Time{}, errors.Errorf("microtime: set: invalid field %d", int(field))
	}

	// zero means "today" to Create
	switch {
	case field == FieldYear && value < 1,
		field == FieldMonth && value < 1,
		field == FieldDay && value < 1:
		return Time{}, calendarErr(field.String(), errors.Errorf("%d out of range", value))
	}

	return Create(f, InLocation(t.Location()), WithLocale(t.locale))
}

// setRange is SetValue for field with values in [lo, hi].
func (t Time) setRange(field Field, value, lo, hi int) (Time, error) {
	if err := checkRange(field, value, lo, hi); err != nil {
		return Time{}, err
	}
	return t.SetValue(field, value)
}

func checkRange(field Field, value, lo, hi int) error {
	if value < lo || value > hi {
		return calendarErr(field.String(), errors.Errorf("%d out of range [%d, %d]", value, lo, hi))
	}
	return nil
}

// checkFields verifies that components of f, with date already resolved,
// are in range. Whether e.g. day 30 exists in the month is left to parsing.
func checkFields(f Fields) error {
	for _, c := range [...]struct {
		field         Field
		value, lo, hi int
	}{
		{FieldYear, f.Year, 1, 9999},
		{FieldMonth, f.Month, 1, 12},
		{FieldDay, f.Day, 1, 31},
		{FieldHour, f.Hour, 0, 23},
		{FieldMinute, f.Minute, 0, 59},
		{FieldSecond, f.Second, 0, 59},
	} {
		if err := checkRange(c.field, c.value, c.lo, c.hi); err != nil {
			return err
		}
	}
	return nil
}

// SetMicrosecond returns t with microsecond replaced.
//
// value must be in [0, 999999], otherwise *SubSecondError is returned.
func (t Time) SetMicrosecond(value int) (Time, error) {
	if err := checkMicrosecond(int64(value)); err != nil {
		return Time{}, err
	}
	return t.SetValue(FieldMicrosecond, value)
}

func (t Time) SetYear(value int) (Time, error)   { return t.setRange(FieldYear, value, 1, 9999) }
func (t Time) SetMonth(value int) (Time, error)  { return t.setRange(FieldMonth, value, 1, 12) }
func (t Time) SetDay(value int) (Time, error)    { return t.setRange(FieldDay, value, 1, 31) }
func (t Time) SetHour(value int) (Time, error)   { return t.setRange(FieldHour, value, 0, 23) }
func (t Time) SetMinute(value int) (Time, error) { return t.setRange(FieldMinute, value, 0, 59) }
func (t Time) SetSecond(value int) (Time, error) { return t.setRange(FieldSecond, value, 0, 59) }

// SetTimestamp returns Time for Unix time sec, in t's timezone and locale.
//
// The result has zero microseconds; use CreateFromTimestampFloat for
// fractional timestamps.
func (t Time) SetTimestamp(sec int64) (Time, error) {
	loc := t.Location()
	return Parse(calendar.Canonical(time.Unix(sec, 0).In(loc)), InLocation(loc), WithLocale(t.locale))
}

// In returns the same instant as t, expressed in location loc.
func (t Time) In(loc *time.Location) Time {
	if loc == nil {
		loc = time.UTC
	}
	return Time{t: t.t.In(loc), locale: t.locale}
}

// SetTimezone returns the same instant as t, expressed in timezone name.
func (t Time) SetTimezone(name string) (Time, error) {
	loc, err := calendar.LoadLocation(name)
	if err != nil {
		return Time{}, calendarErr(name, err)
	}
	return t.In(loc), nil
}

// WithLocale returns t with locale replaced. An empty locale means default.
func (t Time) WithLocale(locale string) Time {
	return Time{t: t.t, locale: locale}
}
