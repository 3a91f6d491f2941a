// ABOUTME: Parser for the relative and absolute dates shown on torrent listings
// ABOUTME: Handles "Jul. 18th '20", "9pm Mar. 21st" and bare "9:30am" shapes

package time

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// listingHour is the clock time assigned to dates published without one
const listingHour = 9

// DateFormatError reports date text matching none of the known shapes
type DateFormatError struct {
	Input string
	Cause error
}

func (e *DateFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unrecognized date %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("unrecognized date %q", e.Input)
}

func (e *DateFormatError) Unwrap() error {
	return e.Cause
}

// ListingDate is a parsed listing date. When TimeOnly is set, At carries a
// placeholder date and only its time of day is meaningful.
type ListingDate struct {
	At       time.Time
	TimeOnly bool
}

// On returns the instant, placing time-only values on the UTC day of ref
func (d ListingDate) On(ref time.Time) time.Time {
	if !d.TimeOnly {
		return d.At
	}
	ref = ref.UTC()
	return time.Date(ref.Year(), ref.Month(), ref.Day(), d.At.Hour(), d.At.Minute(), 0, 0, time.UTC)
}

// ListingDateParser parses listing dates. Build it once with
// NewListingDateParser and share it between requests.
type ListingDateParser struct {
	withYear *regexp.Regexp
	sameYear *regexp.Regexp
	now      func() time.Time
}

// NewListingDateParser compiles the listing date grammars
func NewListingDateParser() *ListingDateParser {
	return &ListingDateParser{
		// Jul. 18th '20
		withYear: regexp.MustCompile(`^([A-Za-z]+)\.\s+(\d+)[A-Za-z]+\s+'(\d+)$`),
		// 10pm Mar. 21st
		sameYear: regexp.MustCompile(`^(\d+)([ap]m)\s+([A-Za-z]+)\.\s+(\d+)[a-z]+$`),
		now:      time.Now,
	}
}

// WithClock returns a copy of the parser reading the current year from now
func (p *ListingDateParser) WithClock(now func() time.Time) *ListingDateParser {
	clone := *p
	clone.now = now
	return &clone
}

// Parse tries the year-qualified shape first, then the same-year shape, then
// a bare time of day.
func (p *ListingDateParser) Parse(input string) (ListingDate, error) {
	value := strings.TrimSpace(input)

	if m := p.withYear.FindStringSubmatch(value); m != nil {
		yy, err := strconv.Atoi(m[3])
		if err != nil {
			return ListingDate{}, &DateFormatError{Input: input, Cause: err}
		}
		at, err := calendarDate(2000+yy, m[1], m[2], listingHour)
		if err != nil {
			return ListingDate{}, &DateFormatError{Input: input, Cause: err}
		}
		return ListingDate{At: at}, nil
	}

	if m := p.sameYear.FindStringSubmatch(value); m != nil {
		hour, err := clockHour(m[1], m[2])
		if err != nil {
			return ListingDate{}, &DateFormatError{Input: input, Cause: err}
		}
		at, err := calendarDate(p.now().UTC().Year(), m[3], m[4], hour)
		if err != nil {
			return ListingDate{}, &DateFormatError{Input: input, Cause: err}
		}
		return ListingDate{At: at}, nil
	}

	clock, err := time.Parse("3:04pm", value)
	if err != nil {
		return ListingDate{}, &DateFormatError{Input: input, Cause: err}
	}
	return ListingDate{
		At:       time.Date(1970, time.January, 1, clock.Hour(), clock.Minute(), 0, 0, time.UTC),
		TimeOnly: true,
	}, nil
}

func clockHour(hour, meridiem string) (int, error) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return 0, err
	}
	if h < 1 || h > 12 {
		return 0, fmt.Errorf("hour %d out of range", h)
	}
	h %= 12
	if meridiem == "pm" {
		h += 12
	}
	return h, nil
}

func calendarDate(year int, month, day string, hour int) (time.Time, error) {
	m, err := parseMonth(month)
	if err != nil {
		return time.Time{}, err
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, err
	}
	at := time.Date(year, m, d, hour, 0, 0, 0, time.UTC)
	if at.Month() != m || at.Day() != d {
		return time.Time{}, fmt.Errorf("day %d out of range for %s", d, m)
	}
	return at, nil
}

func parseMonth(name string) (time.Month, error) {
	for _, layout := range []string{"Jan", "January"} {
		if t, err := time.Parse(layout, name); err == nil {
			return t.Month(), nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}
