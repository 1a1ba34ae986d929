// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package jton

import (
	"fmt"
	"time"
)

// SQLDate is a date-only temporal value (the clock is midnight).
type SQLDate time.Time

// SQLTime is a time-of-day temporal value (the date is 1970-01-01).
type SQLTime time.Time

// SQLTimestamp is a full-precision temporal value, distinguished from a
// generic time.Time payload only by its serialized type tag.
type SQLTimestamp time.Time

// Time returns the value as a time.Time.
func (d SQLDate) Time() time.Time      { return time.Time(d) }
func (d SQLTime) Time() time.Time      { return time.Time(d) }
func (d SQLTimestamp) Time() time.Time { return time.Time(d) }

func (d SQLDate) String() string      { return FormatDate(time.Time(d)) }
func (d SQLTime) String() string      { return FormatTime(time.Time(d)) }
func (d SQLTimestamp) String() string { return FormatDateTime(time.Time(d)) }

// Layouts of the ISO-8601 textual convention shared by the codecs.
// Date-times accept an optional fraction and an optional zone; a value
// without a zone is taken as UTC.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

var timeLayouts = []string{
	"15:04:05.999999999Z07:00",
	"15:04:05.999999999",
	"15:04:05Z07:00",
	"15:04:05",
}

// FormatDateTime renders t as an ISO-8601 date-time with optional
// fractional seconds and a zone designator (Z for UTC).
func FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.999999999Z07:00")
}

// ParseDateTime parses an ISO-8601 date-time.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("jton: %q is not a valid date-time", s)
}

// FormatDate renders the date part of t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

// ParseDate parses a date-only value. A full date-time is accepted and
// truncated to its date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := ParseDateTime(s); err == nil {
		return truncateToDate(t), nil
	}
	return time.Time{}, fmt.Errorf("jton: %q is not a valid date", s)
}

// FormatTime renders the clock part of t as HH:MM:SS with optional
// fractional seconds and a zone designator.
func FormatTime(t time.Time) string {
	return t.Format("15:04:05.999999999Z07:00")
}

// ParseTime parses a time-of-day value onto the epoch date.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("jton: %q is not a valid time", s)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func truncateToClock(t time.Time) time.Time {
	return time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
