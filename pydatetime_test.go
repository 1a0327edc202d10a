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
	"fmt"
	"testing"

	pickle "github.com/kisielk/og-rek"
	"github.com/stretchr/testify/require"

	"github.com/tomkirsch/microtime/internal/xtesting"
)

func TestPyDateTime(t *testing.T) {
	x := xparse("2024-03-14 10:00:00.123456", InTimezone("Europe/Paris"), WithLocale("de_DE"))

	obj := x.PyDateTime()
	require.Equal(t, pyDateTime, obj.Callable)
	require.Equal(t, pickle.Bytes("\x07\xe8\x03\x0e\x0a\x00\x00\x01\xe2\x40"), obj.Args[0])

	tz := obj.Args[1].(pickle.Call)
	require.Equal(t, pickle.Tuple{
		pickle.Call{Callable: pyTimedelta, Args: pickle.Tuple{int64(0), int64(3600), int64(0)}},
		"Europe/Paris",
	}, tz.Args)

	// negative offsets are normalized the way python does
	y := xparse("2024-03-14 10:00:00-05:00", InTimezone("UTC"))
	delta := y.PyDateTime().Args[1].(pickle.Call).Args[0].(pickle.Call)
	require.Equal(t, pickle.Tuple{int64(-1), int64(68400), int64(0)}, delta.Args)
}

func TestPickleRoundTrip(t *testing.T) {
	for _, x := range []Time{
		xparse("2024-03-14 10:00:00.123456", InTimezone("Europe/Paris"), WithLocale("de_DE")),
		xparse("2024-07-14 10:00:00.000001", InTimezone("Europe/Paris")),
		xparse("1900-01-01 00:00:00", InTimezone("UTC")),
		xparse("2024-03-14T23:30:00.5-05:30", InTimezone("UTC")),
	} {
		data, err := x.EncodePickle()
		require.NoError(t, err)

		y, err := DecodePickle(data, WithLocale(x.Locale()))
		require.NoError(t, err)
		require.True(t, y.Equal(x), "have %s  want %s", y, x)
		require.Equal(t, x.String(), y.String())
		require.Equal(t, x.TimezoneName(), y.TimezoneName())
		require.Equal(t, x.Locale(), y.Locale())
	}
}

func TestFromPyDateTime(t *testing.T) {
	state := "\x07\xe8\x03\x0e\x0a\x00\x00\x01\xe2\x40"

	// naive, python2 str state
	x, err := FromPyDateTime(pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{state}})
	require.NoError(t, err)
	require.Equal(t, "2024-03-14 10:00:00.123456", x.String())
	require.Equal(t, "UTC", x.TimezoneName())

	// python3 protocol 2 state
	var u []rune
	for _, b := range []byte(state) {
		u = append(u, rune(b))
	}
	latin1 := pickle.Call{Callable: pyCodecsEnc, Args: pickle.Tuple{string(u), "latin1"}}
	x, err = FromPyDateTime(pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{latin1, nil}})
	require.NoError(t, err)
	require.Equal(t, "2024-03-14 10:00:00.123456", x.String())

	// name not matching offset -> fixed offset
	tz := pickle.Call{Callable: pyTimezone, Args: pickle.Tuple{
		pickle.Call{Callable: pyTimedelta, Args: pickle.Tuple{int64(0), int64(7200), int64(0)}},
		"Europe/Paris",
	}}
	x, err = FromPyDateTime(pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{pickle.Bytes(state), tz}})
	require.NoError(t, err)
	require.Equal(t, "2024-03-14 10:00:00.123456", x.String())
	require.Equal(t, "+02:00", x.TimezoneName())

	for _, bad := range []interface{}{
		"2024-03-14",
		pickle.Call{Callable: pickle.Class{Module: "datetime", Name: "date"}, Args: pickle.Tuple{state}},
		pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{"short"}},
		pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{int64(1)}},
		pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{state, "UTC"}},
		pickle.Call{Callable: pyDateTime, Args: pickle.Tuple{"\x07\xe8\x0d\x0e\x0a\x00\x00\x01\xe2\x40"}}, // month 13
	} {
		_, err := FromPyDateTime(bad)
		require.Error(t, err, "%#v", bad)
	}
}

func TestPickleInteropPy(t *testing.T) {
	xtesting.NeedPy(t)
	X := xtesting.FatalIf(t)

	// go -> py
	x := xparse("2024-03-14 10:00:00.123456", InTimezone("Europe/Paris"))
	data, err := x.EncodePickle(); X(err)
	out, err := xtesting.PyRun(`
import sys, pickle
d = pickle.loads(sys.stdin.buffer.read())
sys.stdout.write("%s %s" % (d.isoformat(' '), d.tzname()))
`, data); X(err)
	require.Equal(t, "2024-03-14 10:00:00.123456+01:00 Europe/Paris", string(out))

	// py -> go
	for _, proto := range []int{2, 3} {
		data, err := xtesting.PyRun(fmt.Sprintf(`
import sys, pickle, datetime as dt
d = dt.datetime(2024, 3, 14, 10, 0, 0, 123456, dt.timezone(dt.timedelta(hours=-5, minutes=-30)))
sys.stdout.buffer.write(pickle.dumps(d, %d))
`, proto), nil); X(err)

		y, err := DecodePickle(data)
		require.NoError(t, err, "protocol %d", proto)
		require.Equal(t, "2024-03-14 10:00:00.123456", y.String(), "protocol %d", proto)
		require.Equal(t, "-05:30", y.TimezoneName(), "protocol %d", proto)
	}
}
