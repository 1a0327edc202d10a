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

// Package calendar is the calendar and timezone engine behind microtime.
//
// It resolves timezone names, parses absolute date/time strings, resolves
// relative expressions ("next tuesday", "3 days ago") against a reference
// instant, and parses strings strictly against PHP-style date patterns.
//
// Calendar arithmetic and DST rules come from package time and the IANA
// database. Natural-language resolution is delegated to olebedev/when and
// free-form parsing to araddon/dateparse.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Layout is the canonical machine layout: date, time and six-digit microseconds.
const Layout = "2006-01-02 15:04:05.000000"

// {} name -> location
var (
	locMu    sync.RWMutex
	locCache = map[string]*time.Location{}
)

var reOffset = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)

// LoadLocation resolves timezone name to location.
//
// Besides IANA names, "UTC" and "Local", fixed offsets of the form ±HH:MM
// and ±HHMM are accepted; the offset text becomes the zone name.
func LoadLocation(name string) (*time.Location, error) {
	locMu.RLock()
	loc, ok := locCache[name]
	locMu.RUnlock()
	if ok {
		return loc, nil
	}

	if m := reOffset.FindStringSubmatch(name); m != nil {
		hh, _ := strconv.Atoi(m[2])
		mm, _ := strconv.Atoi(m[3])
		if hh > 23 || mm > 59 {
			return nil, errors.Errorf("timezone %q: offset out of range", name)
		}
		off := hh*3600 + mm*60
		if m[1] == "-" {
			off = -off
		}
		loc = time.FixedZone(m[1]+m[2]+":"+m[3], off)
	} else {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			return nil, errors.Wrapf(err, "timezone %q", name)
		}
	}

	locMu.Lock()
	locCache[name] = loc
	locMu.Unlock()
	return loc, nil
}

// Truncate drops sub-microsecond part of t and its monotonic clock reading.
func Truncate(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

// Canonical formats t with Layout in t's own location.
func Canonical(t time.Time) string {
	return t.Format(Layout)
}

// Clock returns current time in loc truncated to microseconds.
func Clock(loc *time.Location) time.Time {
	return Truncate(time.Now().In(loc))
}

// IsNow reports whether s denotes current time: it is empty or "now".
func IsNow(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "now")
}

// ZoneName returns name of t's location, or its ±HH:MM offset if the
// location is unnamed (e.g. parsed from "...+01:00").
//
// LoadLocation(ZoneName(t)) gives location with the same offset at t.
func ZoneName(t time.Time) string {
	name := t.Location().String()
	if name != "" {
		return name
	}
	_, off := t.Zone()
	return offsetName(off)
}

// FixedZone returns location with constant offset seconds east of UTC,
// named ±HH:MM.
func FixedZone(off int) *time.Location {
	return time.FixedZone(offsetName(off), off)
}

func offsetName(off int) string {
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%c%02d:%02d", sign, off/3600, off%3600/60)
}
