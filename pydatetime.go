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
// interoperation with Python datetime via pickles

import (
	"bytes"
	"fmt"
	"time"

	pickle "github.com/kisielk/og-rek"
	"github.com/pkg/errors"

	"github.com/tomkirsch/microtime/internal/calendar"
)

var (
	pyDateTime  = pickle.Class{Module: "datetime", Name: "datetime"}
	pyTimezone  = pickle.Class{Module: "datetime", Name: "timezone"}
	pyTimedelta = pickle.Class{Module: "datetime", Name: "timedelta"}
	pyCodecsEnc = pickle.Class{Module: "_codecs", Name: "encode"}
)

// PyDateTime returns t as python datetime.datetime object, ready to be pickled.
//
// The datetime is aware: its tzinfo is datetime.timezone with t's UTC offset,
// named with t's timezone name.
func (t Time) PyDateTime() pickle.Call {
	year, month, day := t.t.Date()
	hour, min, sec := t.t.Clock()
	usec := t.Microsecond()
	state := []byte{
		byte(year >> 8), byte(year), byte(month), byte(day),
		byte(hour), byte(min), byte(sec),
		byte(usec >> 16), byte(usec >> 8), byte(usec),
	}

	_, off := t.t.Zone()
	days := off / 86400
	if off < 0 && off%86400 != 0 {
		days--
	}
	delta := pickle.Call{Callable: pyTimedelta, Args: pickle.Tuple{int64(days), int64(off - days*86400), int64(0)}}
	tz := pickle.Call{Callable: pyTimezone, Args: pickle.Tuple{delta, t.TimezoneName()}}

	return pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{pickle.Bytes(state), tz}}
}

// EncodePickle returns t pickled as python datetime.datetime (protocol 3).
//
// It can be loaded by python3 pickle.loads.
func (t Time) EncodePickle() ([]byte, error) {
	buf := &bytes.Buffer{}
	p := pickle.NewEncoderWithConfig(buf, &pickle.EncoderConfig{Protocol: 3})
	err := p.Encode(t.PyDateTime())
	if err != nil {
		return nil, errors.Wrap(err, "microtime: pickle")
	}
	return buf.Bytes(), nil
}

// DecodePickle loads Time from pickled python datetime.datetime.
//
// Naive datetimes are interpreted as UTC. A datetime.timezone is resolved
// by its name when that names a timezone with the same offset at decoded
// instant, and to fixed offset otherwise.
func DecodePickle(data []byte, opts ...Option) (_ Time, err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "microtime: unpickle")
		}
	}()

	p := pickle.NewDecoder(bytes.NewReader(data))
	xobj, err := p.Decode()
	if err != nil {
		return Time{}, err
	}
	return FromPyDateTime(xobj, opts...)
}

// FromPyDateTime converts decoded python datetime.datetime object to Time.
//
// WithLocale can be given; timezone options are ignored.
func FromPyDateTime(xobj interface{}, opts ...Option) (Time, error) {
	o, _ := makeOptions(opts)

	obj, ok := xobj.(pickle.Call)
	if !ok || obj.Callable != pyDateTime {
		return Time{}, fmt.Errorf("expected %s.%s, got %T", pyDateTime.Module, pyDateTime.Name, xobj)
	}
	if !(len(obj.Args) == 1 || len(obj.Args) == 2) {
		return Time{}, fmt.Errorf("datetime: expected 1 or 2 arguments, got %d", len(obj.Args))
	}

	state, err := pyBytes(obj.Args[0])
	if err != nil {
		return Time{}, errors.Wrap(err, "datetime: state")
	}
	if len(state) != 10 {
		return Time{}, fmt.Errorf("datetime: state: expected 10 bytes, got %d", len(state))
	}

	year := int(state[0])<<8 | int(state[1])
	month := time.Month(state[2] & 0x7f) // high bit is fold
	usec := int(state[7])<<16 | int(state[8])<<8 | int(state[9])
	date := func(loc *time.Location) time.Time {
		return time.Date(year, month, int(state[3]), int(state[4]), int(state[5]), int(state[6]), usec*1000, loc)
	}

	// time.Date normalizes out of range values; python rejects them
	t := date(time.UTC)
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	if year < 1 || y != year || m != month || d != int(state[3]) ||
		hh != int(state[4]) || mm != int(state[5]) || ss != int(state[6]) || usec > MaxMicrosecond {
		return Time{}, fmt.Errorf("datetime: state: invalid date/time %q", state)
	}

	if len(obj.Args) == 2 && obj.Args[1] != nil {
		named, off, err := pyTZInfo(obj.Args[1])
		if err != nil {
			return Time{}, errors.Wrap(err, "datetime: tzinfo")
		}
		t = date(calendar.FixedZone(off))
		if named != nil {
			if _, noff := t.In(named).Zone(); noff == off {
				t = t.In(named)
			}
		}
	}
	return CreateFromInstance(t, WithLocale(o.locale))
}

// pyBytes returns python bytes object as Go bytes.
//
// Besides bytes, str (python2 pickle) and _codecs.encode(unicode, 'latin1')
// (python3 pickle with protocol < 3) are accepted.
func pyBytes(xb interface{}) ([]byte, error) {
	switch b := xb.(type) {
	case pickle.Bytes:
		return []byte(b), nil
	case string:
		return []byte(b), nil
	case pickle.Call:
		if b.Callable == pyCodecsEnc && len(b.Args) == 2 && b.Args[1] == "latin1" {
			s, ok := b.Args[0].(string)
			if ok {
				var out []byte
				for _, r := range s {
					if r > 0xff {
						return nil, fmt.Errorf("latin1: invalid rune %q", r)
					}
					out = append(out, byte(r))
				}
				return out, nil
			}
		}
	}
	return nil, fmt.Errorf("expected bytes, got %T", xb)
}

// pyTZInfo decodes python datetime.timezone object.
//
// It returns the zone offset, and location named by the timezone, if the
// name resolves.
func pyTZInfo(xtz interface{}) (named *time.Location, off int, _ error) {
	tz, ok := xtz.(pickle.Call)
	if !ok || tz.Callable != pyTimezone || len(tz.Args) < 1 || len(tz.Args) > 2 {
		return nil, 0, fmt.Errorf("expected %s.%s, got %v", pyTimezone.Module, pyTimezone.Name, xtz)
	}

	delta, ok := tz.Args[0].(pickle.Call)
	if !ok || delta.Callable != pyTimedelta || len(delta.Args) != 3 {
		return nil, 0, fmt.Errorf("offset: expected %s.%s, got %v", pyTimedelta.Module, pyTimedelta.Name, tz.Args[0])
	}
	var dv [3]int64
	for i, x := range delta.Args {
		v, ok := x.(int64)
		if !ok {
			return nil, 0, fmt.Errorf("offset: expected int, got %T", x)
		}
		dv[i] = v
	}
	if dv[2] != 0 {
		return nil, 0, fmt.Errorf("offset: sub-second offsets are not supported")
	}
	off = int(dv[0]*86400 + dv[1])

	if len(tz.Args) == 2 {
		name, _ := tz.Args[1].(string)
		if name != "" {
			named, _ = calendar.LoadLocation(name)
		}
	}
	return named, off, nil
}
