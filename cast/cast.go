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

// Package cast adapts raw entity attribute values to microtime.Time and back.
//
// It is used by entity layers that store date/time attributes in whatever
// form their backend produced (strings, epoch numbers, time.Time) and want
// microtime.Time on read:
//
//	v, err := cast.Get(row["created_at"])	// -> microtime.Time
//	row["created_at"] = cast.Set(v)		// -> canonical string
package cast

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/tomkirsch/microtime"
	"github.com/tomkirsch/microtime/internal/log"
)

// Get converts raw attribute value to microtime.Time.
//
// The first matching rule applies:
//
//	microtime.Time, *microtime.Time	returned as is
//	microtime.Instant (time.Time, ...)	microtime.CreateFromInstance
//	integer, float, json.Number	microtime.CreateFromTimestamp, truncated to seconds
//	numeric string			the same
//	string, []byte			microtime.Parse
//
// Values of any other type are returned unchanged with nil error.
func Get(value interface{}) (interface{}, error) {
	switch value.(type) {
	case microtime.Time, *microtime.Time:
		return value, nil
	}

	if x, ok := value.(microtime.Instant); ok && !isNilPtr(value) {
		return microtime.CreateFromInstance(x)
	}

	if sec, ok := numeric(value); ok {
		return microtime.CreateFromTimestamp(sec)
	}

	switch v := value.(type) {
	case string:
		return microtime.Parse(v)
	case []byte:
		return microtime.Parse(string(v))
	}

	log.V(1).Infof("cast: %T: passing through", value)
	return value, nil
}

// Set converts value to attribute form for storage.
//
// microtime.Time becomes its canonical string; anything else is returned
// unchanged.
func Set(value interface{}) interface{} {
	switch v := value.(type) {
	case microtime.Time:
		return v.String()
	case *microtime.Time:
		if v != nil {
			return v.String()
		}
	}
	return value
}

// numeric returns value as whole seconds if it is a number or a numeric string.
func numeric(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		return parseNumeric(string(v))
	case string:
		return parseNumeric(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return truncFloat(rv.Float())
	}
	return 0, false
}

// parseNumeric parses decimal or float number, e.g. "1700000000" or "1.7e9".
func parseNumeric(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return truncFloat(f)
}

func truncFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func isNilPtr(value interface{}) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
