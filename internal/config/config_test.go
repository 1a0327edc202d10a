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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setenv sets environment for the duration of the test; "" unsets.
func setenv(t *testing.T, kv ...string) {
	for _, k := range []string{"MICROTIME_TIMEZONE", "TZ", "MICROTIME_LOCALE", "LC_ALL", "LC_TIME", "LANG"} {
		t.Setenv(k, "")
	}
	for i := 0; i < len(kv); i += 2 {
		t.Setenv(kv[i], kv[i+1])
	}
}

func TestLoad(t *testing.T) {
	var testv = []struct {env []string; want Config} {
		{nil, Config{Timezone: "", Locale: "en"}},
		{[]string{"TZ", "Europe/Paris"}, Config{Timezone: "Europe/Paris", Locale: "en"}},
		{[]string{"TZ", ":Europe/Paris"}, Config{Timezone: "Europe/Paris", Locale: "en"}},
		{[]string{"TZ", "Europe/Paris", "MICROTIME_TIMEZONE", "Asia/Tokyo"}, Config{Timezone: "Asia/Tokyo", Locale: "en"}},
		{[]string{"LANG", "fr_FR.UTF-8"}, Config{Locale: "fr_FR"}},
		{[]string{"LANG", "fr_FR.UTF-8", "LC_TIME", "de_DE@euro"}, Config{Locale: "de_DE"}},
		{[]string{"LC_TIME", "de_DE", "LC_ALL", "C"}, Config{Locale: "en"}},
		{[]string{"LC_ALL", "pt_BR", "MICROTIME_LOCALE", "ja-JP"}, Config{Locale: "ja_JP"}},
	}

	for _, tt := range testv {
		t.Run("", func(t *testing.T) {
			setenv(t, tt.env...)
			require.Equal(t, tt.want, Load(), "env: %q", tt.env)
		})
	}
}

func TestNormalizeLocale(t *testing.T) {
	var testv = []struct {in, out string} {
		{"", ""},
		{"en", "en"},
		{"de_DE.UTF-8", "de_DE"},
		{"de_DE.UTF-8@euro", "de_DE"},
		{"sr_RS@latin", "sr_RS"},
		{"pt-BR", "pt_BR"},
		{" C ", "en"},
		{"POSIX", "en"},
	}

	for _, tt := range testv {
		if out := NormalizeLocale(tt.in); out != tt.out {
			t.Errorf("normalizeLocale %q: have %q  want %q", tt.in, out, tt.out)
		}
	}
}

func TestDefaults(t *testing.T) {
	// loaded once from whatever environment the test runs in
	require.NotNil(t, Location())
	require.NotEmpty(t, Locale())
	require.Same(t, Location(), Location())
}
