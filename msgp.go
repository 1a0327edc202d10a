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
// MessagePack serialization

import (
	"time"

	"github.com/tinylib/msgp/msgp"

	"github.com/tomkirsch/microtime/internal/calendar"
)

// Time is encoded as 4-element array
//
//	[unix seconds, microsecond, timezone name, locale]
//
// timezone name is as returned by TimezoneName. Decoding resolves it back,
// so the decoded value has the same instant, wall clock and locale.
const msgpArrayLen = 4

var (
	_ msgp.Marshaler   = Time{}
	_ msgp.Unmarshaler = (*Time)(nil)
	_ msgp.Encodable   = Time{}
	_ msgp.Decodable   = (*Time)(nil)
	_ msgp.Sizer       = Time{}
)

// MarshalMsg implements msgp.Marshaler.
func (t Time) MarshalMsg(b []byte) ([]byte, error) {
	b = msgp.AppendArrayHeader(b, msgpArrayLen)
	b = msgp.AppendInt64(b, t.t.Unix())
	b = msgp.AppendInt64(b, int64(t.Microsecond()))
	b = msgp.AppendString(b, t.TimezoneName())
	b = msgp.AppendString(b, t.locale)
	return b, nil
}

// UnmarshalMsg implements msgp.Unmarshaler.
func (t *Time) UnmarshalMsg(b []byte) (_ []byte, err error) {
	sz, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return b, err
	}
	if sz != msgpArrayLen {
		return b, msgp.ArrayError{Wanted: msgpArrayLen, Got: sz}
	}

	var sec, usec int64
	var tzname, locale string
	if sec, b, err = msgp.ReadInt64Bytes(b); err != nil {
		return b, err
	}
	if usec, b, err = msgp.ReadInt64Bytes(b); err != nil {
		return b, err
	}
	if tzname, b, err = msgp.ReadStringBytes(b); err != nil {
		return b, err
	}
	if locale, b, err = msgp.ReadStringBytes(b); err != nil {
		return b, err
	}

	x, err := fromUnix(sec, usec, tzname, locale)
	if err != nil {
		return b, err
	}
	*t = x
	return b, nil
}

// EncodeMsg implements msgp.Encodable.
func (t Time) EncodeMsg(w *msgp.Writer) (err error) {
	if err = w.WriteArrayHeader(msgpArrayLen); err != nil {
		return err
	}
	if err = w.WriteInt64(t.t.Unix()); err != nil {
		return err
	}
	if err = w.WriteInt64(int64(t.Microsecond())); err != nil {
		return err
	}
	if err = w.WriteString(t.TimezoneName()); err != nil {
		return err
	}
	return w.WriteString(t.locale)
}

// DecodeMsg implements msgp.Decodable.
func (t *Time) DecodeMsg(r *msgp.Reader) (err error) {
	sz, err := r.ReadArrayHeader()
	if err != nil {
		return err
	}
	if sz != msgpArrayLen {
		return msgp.ArrayError{Wanted: msgpArrayLen, Got: sz}
	}

	var sec, usec int64
	var tzname, locale string
	if sec, err = r.ReadInt64(); err != nil {
		return err
	}
	if usec, err = r.ReadInt64(); err != nil {
		return err
	}
	if tzname, err = r.ReadString(); err != nil {
		return err
	}
	if locale, err = r.ReadString(); err != nil {
		return err
	}

	x, err := fromUnix(sec, usec, tzname, locale)
	if err != nil {
		return err
	}
	*t = x
	return nil
}

// Msgsize implements msgp.Sizer.
func (t Time) Msgsize() int {
	return msgp.ArrayHeaderSize + 2*msgp.Int64Size +
		2*msgp.StringPrefixSize + len(t.TimezoneName()) + len(t.locale)
}

// fromUnix reconstructs Time from decoded components.
func fromUnix(sec, usec int64, tzname, locale string) (Time, error) {
	if err := checkMicrosecond(usec); err != nil {
		return Time{}, err
	}
	loc, err := calendar.LoadLocation(tzname)
	if err != nil {
		return Time{}, calendarErr(tzname, err)
	}
	return Time{t: time.Unix(sec, usec*1000).In(loc), locale: locale}, nil
}
