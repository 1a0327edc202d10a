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

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestMsgp(t *testing.T) {
	for _, x := range []Time{
		xparse("2024-03-14 10:00:00.123456", InTimezone("Europe/Paris"), WithLocale("de_DE")),
		xparse("1969-12-31 23:59:59.999999", InTimezone("UTC")),
		xparse("2024-03-14T10:00:00.000001-05:30", InTimezone("UTC")),
		xparse("0001-01-01 00:00:00.000000", InTimezone("UTC")),
	} {
		b, err := x.MarshalMsg(nil)
		require.NoError(t, err)
		require.True(t, len(b) <= x.Msgsize(), "msgsize %d < %d", x.Msgsize(), len(b))

		var y Time
		rest, err := y.UnmarshalMsg(b)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.True(t, y.Equal(x), "have %s  want %s", y, x)
		require.Equal(t, x.String(), y.String())
		require.Equal(t, x.TimezoneName(), y.TimezoneName())
		require.Equal(t, x.Locale(), y.Locale())

		// streaming
		buf := &bytes.Buffer{}
		w := msgp.NewWriter(buf)
		require.NoError(t, x.EncodeMsg(w))
		require.NoError(t, w.Flush())

		var z Time
		require.NoError(t, z.DecodeMsg(msgp.NewReader(buf)))
		require.Equal(t, y, z)
	}
}

func TestMsgpInvalid(t *testing.T) {
	var x Time

	b := msgp.AppendArrayHeader(nil, 3)
	_, err := x.UnmarshalMsg(b)
	require.Error(t, err)

	b = msgp.AppendArrayHeader(nil, msgpArrayLen)
	b = msgp.AppendInt64(b, 0)
	b = msgp.AppendInt64(b, 1000000)
	b = msgp.AppendString(b, "UTC")
	b = msgp.AppendString(b, "")
	_, err = x.UnmarshalMsg(b)
	require.IsType(t, &SubSecondError{}, err)

	b = msgp.AppendArrayHeader(nil, msgpArrayLen)
	b = msgp.AppendInt64(b, 0)
	b = msgp.AppendInt64(b, 0)
	b = msgp.AppendString(b, "Nowhere/City")
	b = msgp.AppendString(b, "")
	_, err = x.UnmarshalMsg(b)
	require.IsType(t, &CalendarError{}, err)

	_, err = x.UnmarshalMsg(b[:len(b)-3])
	require.Error(t, err)
}
