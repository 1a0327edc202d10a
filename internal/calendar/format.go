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
// strict parsing against PHP date() patterns

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const unset = -1

// pfields accumulates what ParseFormat has seen so far.
type pfields struct {
	year, month, day     int
	hour, minute, second int
	usec                 int
	pm                   int // unset | 0 (am) | 1 (pm)
	hour12               bool
	unix                 *int64
	loc                  *time.Location
}

func newPFields() *pfields {
	return &pfields{
		year: unset, month: unset, day: unset,
		hour: unset, minute: unset, second: unset,
		usec: unset, pm: unset,
	}
}

// reset sets all not yet parsed fields to Unix epoch values.
func (f *pfields) reset() {
	for _, p := range []*int{&f.year, &f.month, &f.day, &f.hour, &f.minute, &f.second, &f.usec} {
		if *p == unset {
			*p = 0
		}
	}
	if f.year == 0 {
		f.year = 1970
	}
	if f.month == 0 {
		f.month = 1
	}
	if f.day == 0 {
		f.day = 1
	}
}

var monthNames = map[string]time.Month{}
var weekdayNames = map[string]bool{}

func init() {
	for m := time.January; m <= time.December; m++ {
		monthNames[strings.ToLower(m.String())] = m
		monthNames[strings.ToLower(m.String()[:3])] = m
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdayNames[strings.ToLower(d.String())] = true
		weekdayNames[strings.ToLower(d.String()[:3])] = true
	}
}

// ParseFormat parses value strictly according to PHP date pattern format.
//
// Supported pattern characters:
//
//	d j     day of month, 1 or 2 digits
//	m n     month, 1 or 2 digits
//	M F     month name (English), short or full
//	D l     weekday name (English), ignored
//	Y       year, up to 4 digits
//	y       2-digit year, 70..99 -> 19xx, 00..69 -> 20xx
//	H G     hour 0..23, 1 or 2 digits
//	h g     hour 1..12, 1 or 2 digits, used with a/A
//	a A     am/pm
//	i       minutes, 2 digits
//	s       seconds, 2 digits
//	u       fraction of second, up to 6 digits
//	v       milliseconds, up to 3 digits
//	U       seconds since Unix epoch
//	e T P O p  timezone: identifier, Z, or ±HH:MM / ±HHMM offset
//	#       one of ;:/.,-()
//	?       any byte
//	*       bytes until next separator or digit
//	!       reset all fields to Unix epoch
//	|       reset not yet parsed fields to Unix epoch
//	+       ignore trailing data
//	\c      literal c
//	space   zero or more spaces or tabs
//
// Fields not present in format are taken from now (in loc) unless reset
// with ! or |. If any of hour/minute/second was parsed, missing ones are
// zero. Microseconds are zero unless parsed.
//
// Parsed values must be in calendar ranges: e.g. month 13 or February 30
// is an error.
func ParseFormat(format, value string, loc *time.Location, now time.Time) (time.Time, error) {
	f := newPFields()
	s := value
	trailingOK := false

	for i := 0; i < len(format); i++ {
		c := format[i]
		var err error
		switch c {
		case 'd', 'j':
			f.day, s, err = pnum(s, 1, 2, "day")
		case 'm', 'n':
			f.month, s, err = pnum(s, 1, 2, "month")
		case 'Y':
			f.year, s, err = pnum(s, 1, 4, "year")
		case 'y':
			f.year, s, err = pnum(s, 2, 2, "year")
			if err == nil {
				if f.year < 70 {
					f.year += 2000
				} else {
					f.year += 1900
				}
			}
		case 'H', 'G':
			f.hour, s, err = pnum(s, 1, 2, "hour")
		case 'h', 'g':
			f.hour, s, err = pnum(s, 1, 2, "hour")
			f.hour12 = true
		case 'i':
			f.minute, s, err = pnum(s, 2, 2, "minute")
		case 's':
			f.second, s, err = pnum(s, 2, 2, "second")
		case 'u', 'v':
			maxw := 6
			if c == 'v' {
				maxw = 3
			}
			var n, w int
			n, w, s, err = pdigits(s, 1, maxw, "fraction")
			if err == nil {
				for ; w < 6; w++ {
					n *= 10
				}
				f.usec = n
			}
		case 'a', 'A':
			if len(s) < 2 {
				return time.Time{}, errors.New("am/pm: unexpected end of data")
			}
			switch strings.ToLower(s[:2]) {
			case "am":
				f.pm = 0
			case "pm":
				f.pm = 1
			default:
				return time.Time{}, errors.Errorf("am/pm: %q invalid", s[:2])
			}
			s = s[2:]
		case 'M', 'F':
			var word string
			word, s = palpha(s)
			m, ok := monthNames[strings.ToLower(word)]
			if !ok {
				return time.Time{}, errors.Errorf("month name %q invalid", word)
			}
			f.month = int(m)
		case 'D', 'l':
			var word string
			word, s = palpha(s)
			if !weekdayNames[strings.ToLower(word)] {
				return time.Time{}, errors.Errorf("weekday name %q invalid", word)
			}
		case 'U':
			j := 0
			if j < len(s) && (s[j] == '-' || s[j] == '+') {
				j++
			}
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			sec, e := strconv.ParseInt(s[:j], 10, 64)
			if e != nil {
				return time.Time{}, errors.Errorf("unix timestamp %q invalid", s[:j])
			}
			f.unix = &sec
			s = s[j:]
		case 'e', 'T', 'P', 'O', 'p':
			f.loc, s, err = pzone(s)
		case '#':
			if s == "" || !strings.ContainsRune(";:/.,-()", rune(s[0])) {
				return time.Time{}, errors.Errorf("separator expected at %q", s)
			}
			s = s[1:]
		case '?':
			if s == "" {
				return time.Time{}, errors.New("unexpected end of data")
			}
			s = s[1:]
		case '*':
			j := 0
			for j < len(s) && !isDigit(s[j]) && !strings.ContainsRune(" ;:/.,-()", rune(s[j])) {
				j++
			}
			s = s[j:]
		case '!':
			*f = *newPFields()
			f.reset()
		case '|':
			f.reset()
		case '+':
			trailingOK = true
		case ' ':
			s = strings.TrimLeft(s, " \t")
		case '\\':
			i++
			if i >= len(format) {
				return time.Time{}, errors.New("format: trailing backslash")
			}
			c = format[i]
			fallthrough
		default:
			if s == "" || s[0] != c {
				return time.Time{}, errors.Errorf("%q expected at %q", string(c), s)
			}
			s = s[1:]
		}
		if err != nil {
			return time.Time{}, err
		}
	}

	if s != "" && !trailingOK {
		return time.Time{}, errors.Errorf("trailing data %q", s)
	}

	return f.resolve(loc, now)
}

// resolve turns parsed fields into time, validating calendar ranges.
func (f *pfields) resolve(loc *time.Location, now time.Time) (time.Time, error) {
	if f.loc != nil {
		loc = f.loc
	}
	if f.unix != nil {
		zone := time.UTC
		if f.loc != nil {
			zone = f.loc
		}
		nsec := int64(0)
		if f.usec != unset {
			nsec = int64(f.usec) * 1000
		}
		return time.Unix(*f.unix, nsec).In(zone), nil
	}

	now = now.In(loc)
	if f.year == unset {
		f.year = now.Year()
	}
	if f.month == unset {
		f.month = int(now.Month())
	}
	if f.day == unset {
		f.day = now.Day()
	}
	if f.hour == unset && f.minute == unset && f.second == unset {
		f.hour, f.minute, f.second = now.Clock()
	}
	for _, p := range []*int{&f.hour, &f.minute, &f.second, &f.usec} {
		if *p == unset {
			*p = 0
		}
	}

	if f.hour12 || f.pm != unset {
		if f.hour < 1 || f.hour > 12 {
			return time.Time{}, errors.Errorf("hour %d out of range", f.hour)
		}
		if f.pm == 1 && f.hour != 12 {
			f.hour += 12
		}
		if f.pm == 0 && f.hour == 12 {
			f.hour = 0
		}
	}

	switch {
	case f.month < 1 || f.month > 12:
		return time.Time{}, errors.Errorf("month %d out of range", f.month)
	case f.day < 1 || f.day > daysIn(time.Month(f.month), f.year):
		return time.Time{}, errors.Errorf("day %d out of range", f.day)
	case f.hour > 23:
		return time.Time{}, errors.Errorf("hour %d out of range", f.hour)
	case f.minute > 59:
		return time.Time{}, errors.Errorf("minute %d out of range", f.minute)
	case f.second > 59:
		return time.Time{}, errors.Errorf("second %d out of range", f.second)
	}

	return time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, f.second, f.usec*1000, loc), nil
}

// daysIn returns number of days in month m of year.
func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// pdigits consumes minw..maxw leading digits of s.
func pdigits(s string, minw, maxw int, subj string) (n, width int, rest string, _ error) {
	j := 0
	for j < len(s) && j < maxw && isDigit(s[j]) {
		n = n*10 + int(s[j]-'0')
		j++
	}
	if j < minw {
		return 0, 0, s, errors.Errorf("%s: %q: expected %d digits", subj, s, minw)
	}
	return n, j, s[j:], nil
}

func pnum(s string, minw, maxw int, subj string) (int, string, error) {
	n, _, rest, err := pdigits(s, minw, maxw, subj)
	return n, rest, err
}

// palpha consumes leading ASCII letters of s.
func palpha(s string) (word, rest string) {
	j := 0
	for j < len(s) && ('a' <= s[j]|0x20 && s[j]|0x20 <= 'z') {
		j++
	}
	return s[:j], s[j:]
}

// pzone consumes timezone: Z, ±HH:MM, ±HHMM or timezone identifier.
func pzone(s string) (*time.Location, string, error) {
	if s == "" {
		return nil, s, errors.New("timezone: unexpected end of data")
	}
	if s[0] == 'Z' && (len(s) == 1 || !('a' <= s[1]|0x20 && s[1]|0x20 <= 'z')) {
		return time.UTC, s[1:], nil
	}

	j := 0
	if s[0] == '+' || s[0] == '-' {
		j = 1
		for j < len(s) && j < 6 && (isDigit(s[j]) || s[j] == ':') {
			j++
		}
	} else {
		for j < len(s) && (isDigit(s[j]) || strings.ContainsRune("/_-+", rune(s[j])) ||
			('a' <= s[j]|0x20 && s[j]|0x20 <= 'z')) {
			j++
		}
	}

	loc, err := LoadLocation(s[:j])
	if err != nil {
		return nil, s, err
	}
	return loc, s[j:], nil
}
