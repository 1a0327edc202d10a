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
// database/sql support

import (
	"database/sql"
	"database/sql/driver"
	"time"

	"github.com/pkg/errors"
)

var _ sql.Scanner = (*Time)(nil)
var _ driver.Valuer = Time{}

// Value implements driver.Valuer: t is stored as canonical string.
//
// Canonical strings sort chronologically within one timezone and keep
// microseconds on drivers whose native time type does not.
func (t Time) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner.
//
// Accepted column values are
//
//	string, []byte	parsed as by Parse, in default timezone
//	time.Time	as by CreateFromInstance
//	int64		Unix time in seconds, as by CreateFromTimestamp
//	float64		Unix time with fraction, as by CreateFromTimestampFloat
//
// NULL yields zero Time.
func (t *Time) Scan(src interface{}) (err error) {
	var x Time
	switch src := src.(type) {
	case nil:
		// zero
	case string:
		x, err = Parse(src)
	case []byte:
		x, err = Parse(string(src))
	case time.Time:
		x, err = CreateFromInstance(src)
	case int64:
		x, err = CreateFromTimestamp(src)
	case float64:
		x, err = CreateFromTimestampFloat(src)
	default:
		err = errors.Errorf("microtime: scan: unsupported type %T", src)
	}
	if err != nil {
		return err
	}
	*t = x
	return nil
}
