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
// formatting

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/tomkirsch/microtime/internal/intl"
)

// String returns t in canonical format, e.g. "2024-03-14 10:00:00.000123".
//
// It is locale-independent, and Parse of the result in t's timezone gives
// back t.
func (t Time) String() string {
	return string(t.XFmtString(nil))
}

// XFmtString appends canonical form of t to b.
//
// It allows t to be used with go123/xfmt.
func (t Time) XFmtString(b []byte) []byte {
	return t.t.AppendFormat(b, Layout)
}

// ToDateTimeString returns t localized according to FormatIntl, e.g. "2024-03-14 10:00:00.000".
func (t Time) ToDateTimeString() string {
	return intl.Format(t.t, t.Locale(), intl.DateTime)
}

// ToTimeString returns time of day of t, localized, e.g. "10:00:00.000".
func (t Time) ToTimeString() string {
	return intl.Format(t.t, t.Locale(), intl.TimeOfDay)
}

// MicrosecondString returns 6-digit microsecond of t, localized.
func (t Time) MicrosecondString() string {
	return intl.Format(t.t, t.Locale(), intl.Microsecond)
}

// ToLocalizedString formats t according to ICU date pattern, e.g. "d MMMM yyyy".
//
// See package internal/intl for supported pattern letters.
func (t Time) ToLocalizedString(pattern string) string {
	return intl.Format(t.t, t.Locale(), pattern)
}

// Format formats t according to Go time layout.
func (t Time) Format(layout string) string {
	return t.t.Format(layout)
}

// MarshalText encodes t in canonical format.
func (t Time) MarshalText() ([]byte, error) {
	return t.XFmtString(nil), nil
}

// UnmarshalText decodes t from anything Parse accepts, in default timezone.
//
// Canonical format carries no timezone: for zone-preserving encodings see
// Scan, MarshalMsg and EncodePickle.
func (t *Time) UnmarshalText(data []byte) error {
	x, err := Parse(string(data))
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// MarshalJSON encodes t as JSON string in canonical format.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes t from JSON string. JSON null leaves t unchanged.
func (t *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return errors.Wrap(err, "microtime: json")
	}
	return t.UnmarshalText([]byte(s))
}
