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
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/gwenn/gosqlite" // "sqlite3" driver
)

func TestSQL(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer func() {
		err := db.Close()
		require.NoError(t, err)
	}()
	db.SetMaxOpenConns(1) // :memory: is per connection

	_, err = db.Exec(`CREATE TABLE event (
		id	INTEGER NOT NULL PRIMARY KEY,
		at	TEXT,
		ts	INTEGER,
		tsf	REAL
	)`)
	require.NoError(t, err)

	x := xparse("2024-03-14 10:00:00.123456", InTimezone("UTC"))

	_, err = db.Exec("INSERT INTO event VALUES (?, ?, ?, ?)", 1, x, 1700000000, 1700000000.25)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO event VALUES (?, ?, ?, ?)", 2, nil, nil, nil)
	require.NoError(t, err)

	var at, ts, tsf Time
	err = db.QueryRow("SELECT at, ts, tsf FROM event WHERE id = 1").Scan(&at, &ts, &tsf)
	require.NoError(t, err)
	require.Equal(t, x.String(), at.String())
	require.Equal(t, "2023-11-14 22:13:20.000000", ts.String())
	require.Equal(t, "UTC", ts.TimezoneName())
	require.Equal(t, "2023-11-14 22:13:20.250000", tsf.String())

	// canonical strings order chronologically
	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM event WHERE at > ?", x.SubMicroseconds(1)).Scan(&n)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	err = db.QueryRow("SELECT at, ts, tsf FROM event WHERE id = 2").Scan(&at, &ts, &tsf)
	require.NoError(t, err)
	require.True(t, at.IsZero() && ts.IsZero() && tsf.IsZero())
}

func TestScan(t *testing.T) {
	var x Time
	require.NoError(t, x.Scan([]byte("2024-03-14 10:00:00.000001")))
	require.Equal(t, "2024-03-14 10:00:00.000001", x.String())

	require.NoError(t, x.Scan(int64(0)))
	require.Equal(t, "1970-01-01 00:00:00.000000", x.String())

	u := xparse("2024-03-14 10:00:00.5", InTimezone("Asia/Tokyo")).ToTime()
	require.NoError(t, x.Scan(u))
	require.Equal(t, "2024-03-14 10:00:00.500000", x.String())
	require.Equal(t, "Asia/Tokyo", x.TimezoneName())

	v, err := x.Value()
	require.NoError(t, err)
	require.Equal(t, "2024-03-14 10:00:00.500000", v)

	// failed scan leaves x unchanged
	require.Error(t, x.Scan(true))
	require.Error(t, x.Scan("2024-99-99"))
	require.Equal(t, "2024-03-14 10:00:00.500000", x.String())
}
