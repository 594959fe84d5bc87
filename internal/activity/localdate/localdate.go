// Package localdate centralizes conversions between UTC instants and the
// caller's local calendar day, given a fixed UTC offset in minutes.
//
// The offset is a signed integer of minutes, deliberately not an IANA zone:
// clients report their current offset and historical events are bucketed by a
// plain fixed shift. This cannot model DST transitions; swapping in real zone
// handling would move bucket boundaries on transition days, so keep the
// simplification.
package localdate

import (
	"strconv"
	"time"
)

// MinOffsetMinutes and MaxOffsetMinutes span every real-world zone
// (UTC-14:00 through UTC+14:00).
const (
	MinOffsetMinutes = -840
	MaxOffsetMinutes = 840
)

// DateFormat is the wire format for all calendar dates.
const DateFormat = "2006-01-02"

// NormalizeOffset parses a raw utcOffset query value. Absent, non-numeric, or
// out-of-range input falls back to 0 (UTC) rather than failing the request:
// a view rendered in the wrong zone beats a rejected request.
func NormalizeOffset(raw string) int {
	if raw == "" {
		return 0
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	if offset < MinOffsetMinutes || offset > MaxOffsetMinutes {
		return 0
	}
	return offset
}

// LocalMidnightUTC returns the UTC instant of 00:00 local time on the given
// local calendar date. time.Date normalizes out-of-range fields, so callers
// may pass day-20 or month+1 and get correct rollover across month and year
// boundaries.
func LocalMidnightUTC(year int, month time.Month, day, offsetMinutes int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).
		Add(-time.Duration(offsetMinutes) * time.Minute)
}

// CivilDate returns the local calendar date an instant falls on, as
// "YYYY-MM-DD": shift the instant by the offset, then read UTC fields of the
// shifted instant. Applied uniformly at read time and never stored, so
// history stays correct when a user's offset changes.
func CivilDate(t time.Time, offsetMinutes int) string {
	return t.Add(time.Duration(offsetMinutes) * time.Minute).UTC().Format(DateFormat)
}

// Today returns the local calendar date of "now" under the given offset.
func Today(now time.Time, offsetMinutes int) (year int, month time.Month, day int) {
	shifted := now.Add(time.Duration(offsetMinutes) * time.Minute).UTC()
	return shifted.Year(), shifted.Month(), shifted.Day()
}
