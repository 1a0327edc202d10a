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

// Package config provides process-wide defaults for microtime values.
//
// Defaults are taken from the environment:
//
//	timezone:  $MICROTIME_TIMEZONE, $TZ              (else time.Local)
//	           IANA name or ±HH:MM offset
//	locale:    $MICROTIME_LOCALE, $LC_ALL, $LC_TIME, $LANG  (else "en")
//
// and are loaded once, on first use.
package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/tomkirsch/microtime/internal/calendar"
	"github.com/tomkirsch/microtime/internal/log"
)

// DefaultLocale is used when neither configuration nor environment name a locale.
const DefaultLocale = "en"

// Config holds defaults applied to values constructed without explicit
// timezone or locale.
type Config struct {
	Timezone string `mapstructure:"timezone"` // IANA name; "" means time.Local
	Locale   string `mapstructure:"locale"`   // normalized, e.g. "de_DE"
}

// Load reads configuration from the environment.
func Load() Config {
	v := viper.New()
	// BindEnv only fails when called without key
	_ = v.BindEnv("timezone", "MICROTIME_TIMEZONE", "TZ")
	_ = v.BindEnv("locale", "MICROTIME_LOCALE", "LC_ALL", "LC_TIME", "LANG")

	c := Config{
		Timezone: strings.TrimPrefix(v.GetString("timezone"), ":"),
		Locale:   NormalizeLocale(v.GetString("locale")),
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	return c
}

// NormalizeLocale converts POSIX locale names to the form used by microtime.
//
//	"de_DE.UTF-8@euro" -> "de_DE"
//	"pt-BR"            -> "pt_BR"
//	"C", "POSIX"       -> "en"
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "C", "POSIX":
		return DefaultLocale
	}
	return strings.ReplaceAll(locale, "-", "_")
}

var (
	loadOnce sync.Once
	loaded   Config
	location *time.Location
)

func load() {
	loaded = Load()
	location = time.Local
	if loaded.Timezone == "" {
		return
	}

	loc, err := calendar.LoadLocation(loaded.Timezone)
	if err != nil {
		log.Warningf("config: %s; falling back to %s", err, time.Local)
		return
	}
	location = loc
}

// Location returns default timezone.
func Location() *time.Location {
	loadOnce.Do(load)
	return location
}

// Locale returns default locale.
func Locale() string {
	loadOnce.Do(load)
	return loaded.Locale
}
