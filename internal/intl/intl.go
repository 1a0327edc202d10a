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

// Package intl renders time values according to ICU date patterns, localized.
//
// Numbers are rendered with digits of the locale numbering system through
// golang.org/x/text; month and weekday names come from goodsign/monday.
//
// Supported pattern letters:
//
//	y yy yyyy   year (yy: last 2 digits)
//	M MM        month number;  MMM MMMM  month name (also L)
//	d dd        day of month;  D  day of year
//	E..EEE EEEE weekday name, short or full
//	a           am/pm marker
//	H HH  h hh  hour 0-23, 1-12;  k  1-24;  K  0-11
//	m mm  s ss  minute, second
//	S...        fraction of second, truncated to number of letters (max 9)
//	z           zone abbreviation;  Z  -0700;  X XX XXX  Z/-07:00;  VV  zone name
//	'...'       literal text; '' is a single quote
//
// Other ASCII letters are reserved and rendered verbatim.
package intl

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tomkirsch/microtime/internal/config"
)

// Patterns used by microtime.
const (
	DateTime    = "yyyy-MM-dd HH:mm:ss.SSS"
	TimeOfDay   = "HH:mm:ss.SSS"
	Microsecond = "SSSSSS"
)

// Formatter formats time values for one locale.
type Formatter struct {
	locale  string
	printer *message.Printer
	names   monday.Locale
}

// NewFormatter returns formatter for locale.
//
// locale is POSIX-like ("de_DE", "de_DE.UTF-8") or BCP 47 ("de-DE").
// Unknown locales format as "und": Latin digits and English names.
func NewFormatter(locale string) *Formatter {
	tag := Tag(locale)
	return &Formatter{
		locale:  locale,
		printer: message.NewPrinter(tag),
		names:   mondayLocale(tag),
	}
}

// Tag converts locale to language tag.
func Tag(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(config.NormalizeLocale(locale), "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// mondayLocale maps tag to locale known to monday, e.g. de -> de_DE.
func mondayLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	return monday.Locale(base.String() + "_" + region.String())
}

// Format formats t according to pattern in locale.
func Format(t time.Time, locale, pattern string) string {
	return NewFormatter(locale).Format(t, pattern)
}

// Format formats t according to ICU pattern.
func (f *Formatter) Format(t time.Time, pattern string) string {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		c := pattern[i]

		// quoted literal
		if c == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			j := i + 1
			for j < len(pattern) {
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						b.WriteByte('\'')
						j += 2
						continue
					}
					break
				}
				b.WriteByte(pattern[j])
				j++
			}
			i = j + 1
			continue
		}

		if !isLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}
		f.field(&b, t, c, n)
		i += n
	}

	return b.String()
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// field renders one pattern field of letter c repeated n times.
func (f *Formatter) field(b *strings.Builder, t time.Time, c byte, n int) {
	switch c {
	case 'y':
		year := t.Year()
		if n == 2 {
			b.WriteString(f.num(year%100, 2))
		} else {
			b.WriteString(f.num(year, n))
		}
	case 'M', 'L':
		switch {
		case n >= 4:
			b.WriteString(f.name(t, "January"))
		case n == 3:
			b.WriteString(f.name(t, "Jan"))
		default:
			b.WriteString(f.num(int(t.Month()), n))
		}
	case 'd':
		b.WriteString(f.num(t.Day(), n))
	case 'D':
		b.WriteString(f.num(t.YearDay(), n))
	case 'E':
		if n >= 4 {
			b.WriteString(f.name(t, "Monday"))
		} else {
			b.WriteString(f.name(t, "Mon"))
		}
	case 'a':
		b.WriteString(f.name(t, "PM"))
	case 'H':
		b.WriteString(f.num(t.Hour(), n))
	case 'k':
		h := t.Hour()
		if h == 0 {
			h = 24
		}
		b.WriteString(f.num(h, n))
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		b.WriteString(f.num(h, n))
	case 'K':
		b.WriteString(f.num(t.Hour()%12, n))
	case 'm':
		b.WriteString(f.num(t.Minute(), n))
	case 's':
		b.WriteString(f.num(t.Second(), n))
	case 'S':
		if n > 9 {
			n = 9
		}
		frac := t.Nanosecond()
		for k := 9; k > n; k-- {
			frac /= 10
		}
		b.WriteString(f.num(frac, n))
	case 'z':
		b.WriteString(t.Format("MST"))
	case 'Z':
		b.WriteString(t.Format("-0700"))
	case 'X':
		if n == 1 {
			b.WriteString(t.Format("Z07"))
		} else if n == 2 {
			b.WriteString(t.Format("Z0700"))
		} else {
			b.WriteString(t.Format("Z07:00"))
		}
	case 'V':
		b.WriteString(t.Location().String())
	default:
		b.WriteString(strings.Repeat(string(c), n))
	}
}

// num renders v with at least width digits, without grouping.
func (f *Formatter) num(v, width int) string {
	return f.printer.Sprint(number.Decimal(v, number.NoSeparator(), number.MinIntegerDigits(width)))
}

// name renders textual component of t via Go layout elem ("Jan", "Monday", ...).
func (f *Formatter) name(t time.Time, elem string) string {
	return monday.Format(t, elem, f.names)
}
