// ABOUTME: Time parsing utilities for calendar dates and unix timestamps
// ABOUTME: Covers the date formats used by listing pages and JSON indexer APIs

package time

import (
	"strconv"
	"strings"
	"time"
)

// ParseCalendarDate parses dates such as "Mar 3, 2023" and places them at
// 09:00 UTC. Runs of whitespace are tolerated.
func ParseCalendarDate(input string) (time.Time, error) {
	value := strings.Join(strings.Fields(input), " ")
	t, err := time.Parse("Jan 2, 2006", value)
	if err != nil {
		return time.Time{}, &DateFormatError{Input: input, Cause: err}
	}
	return t.Add(listingHour * time.Hour), nil
}

// ParseUnix parses a decimal unix timestamp in seconds
func ParseUnix(input string) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return time.Time{}, &DateFormatError{Input: input, Cause: err}
	}
	return FromUnix(secs), nil
}

// FromUnix converts unix seconds to a UTC instant
func FromUnix(secs int64) time.Time {
	return time.Unix(secs, 0).UTC()
}
