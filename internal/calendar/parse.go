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
// parsing of absolute and relative date/time strings

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/pkg/errors"

	"github.com/tomkirsch/microtime/internal/log"
)

// layouts tried before falling back to free-form parsing.
//
// NOTE time.Parse accepts fractional seconds after the seconds field even
// if the layout does not have them.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
	"2006-01-02",
}

var reDate = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`)
var reRelative = regexp.MustCompile(`(?i)this|next|last|tomorrow|yesterday|midnight|today|[+-]|first|ago`)

// HasRelativeKeywords reports whether s should be resolved as relative expression.
//
// Strings containing an explicit YYYY-M-D date are never relative, so that
// "2024-01-02T03:04:05-07:00" is not mistaken because of its sign.
func HasRelativeKeywords(s string) bool {
	if reDate.MatchString(s) {
		return false
	}
	return reRelative.MatchString(s)
}

// Parse parses absolute date/time string.
//
// Strings without zone information are interpreted in loc. Strings with
// their own offset keep it.
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date/time string")
	}

	var errRange error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return Truncate(t), nil
		}
		if errRange == nil && strings.Contains(err.Error(), "out of range") {
			errRange = err
		}
	}

	// shaped like canonical form, but with e.g. month 13: report what time
	// rejected instead of letting free-form parser guess.
	if errRange != nil {
		return time.Time{}, errors.Wrapf(errRange, "%q", s)
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "%q", s)
	}
	return Truncate(t), nil
}

// ErrNotRelative is returned by Relative when expression is not, as a
// whole, a relative date/time expression.
var ErrNotRelative = errors.New("not a relative expression")

const unitPattern = `sec(?:ond)?|min(?:ute)?|hour|day|week|fortnight|month|year`

// modifyRule handles offsets in date modifier form:
//
//	+1 day, -2 weeks, +90 min
//	next month, last year, this week
//	first day of next month, last day of last month
//
// The time of day is kept.
func modifyRule() rules.Rule {
	return &rules.F{
		RegExp: regexp.MustCompile(`(?i)(?:^|\s)(?:` +
			`(first|last)\s+day\s+of\s+(next|last|previous|this)\s+month` +
			`|(next|last|previous|this)\s+(` + unitPattern + `)` +
			`|([+-])\s*(\d{1,6})\s*((?:` + unitPattern + `)s?)` +
			`)(?:\s|$)`),
		Applier: func(m *rules.Match, c *rules.Context, _ *rules.Options, ref time.Time) (bool, error) {
			cv := m.Captures
			var t time.Time
			switch {
			case cv[0] != "":
				year, month, _ := ref.Date()
				month += time.Month(relStep(cv[1]))
				day := 1
				if strings.EqualFold(cv[0], "last") {
					month++
					day = 0
				}
				hour, min, sec := ref.Clock()
				t = time.Date(year, month, day, hour, min, sec, ref.Nanosecond(), ref.Location())

			case cv[2] != "":
				t = shift(ref, relStep(cv[2]), cv[3])

			default:
				n, err := strconv.Atoi(cv[5])
				if err != nil {
					return false, err
				}
				if cv[4] == "-" {
					n = -n
				}
				t = shift(ref, n, cv[6])
			}

			c.Duration += t.Sub(ref)
			return true, nil
		},
	}
}

// relStep returns direction of next / last / previous / this.
func relStep(word string) int {
	switch strings.ToLower(word) {
	case "next":
		return +1
	case "last", "previous":
		return -1
	}
	return 0
}

// shift moves ref by n units. Units of a day and longer move the calendar,
// not the clock, so that wall time is kept across DST changes.
func shift(ref time.Time, n int, unit string) time.Time {
	u := strings.ToLower(unit)
	switch {
	case strings.HasPrefix(u, "sec"):
		return ref.Add(time.Duration(n) * time.Second)
	case strings.HasPrefix(u, "min"):
		return ref.Add(time.Duration(n) * time.Minute)
	case strings.HasPrefix(u, "hour"):
		return ref.Add(time.Duration(n) * time.Hour)
	case strings.HasPrefix(u, "day"):
		return ref.AddDate(0, 0, n)
	case strings.HasPrefix(u, "week"):
		return ref.AddDate(0, 0, 7*n)
	case strings.HasPrefix(u, "fortnight"):
		return ref.AddDate(0, 0, 14*n)
	case strings.HasPrefix(u, "month"):
		return ref.AddDate(0, n, 0)
	default:
		return ref.AddDate(n, 0, 0)
	}
}

// parser resolving relative expressions; rules are immutable after init.
var relParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	w.Add(modifyRule())
	return w
}()

// Relative resolves relative expression against reference instant ref.
//
// The whole of expr must be understood: if only a fragment is, e.g.
// "10:00" in "March 14, 2024 10:00 +0100", or resolution fails, the error
// is ErrNotRelative and the caller should parse expr as absolute date/time
// instead.
//
// The result is in ref's location.
func Relative(expr string, ref time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	r, err := relParser.Parse(expr, ref)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrNotRelative, "%q: %s", expr, err)
	}
	if r == nil || r.Index != 0 || strings.TrimSpace(r.Text) != expr {
		return time.Time{}, errors.Wrapf(ErrNotRelative, "%q", expr)
	}

	t := Truncate(r.Time.In(ref.Location()))
	log.V(2).Infof("calendar: %q @ %s -> %s", expr, Canonical(ref), Canonical(t))
	return t, nil
}
