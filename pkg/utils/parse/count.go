// ABOUTME: Parser for abbreviated counts such as "4.2K" or "2g"
// ABOUTME: Suffixes k, m and g scale by one thousand, one million and one billion

package parse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CountParser parses abbreviated counts. Build it once with NewCountParser
// and share it; it holds no mutable state.
type CountParser struct {
	pattern *regexp.Regexp
}

// NewCountParser compiles the count grammar
func NewCountParser() *CountParser {
	return &CountParser{
		pattern: regexp.MustCompile(`(?i)^([0-9]+(\.[0-9]+)?)\s*([kmg]?)$`),
	}
}

// CountError reports text that is not a valid count
type CountError struct {
	Input string
	Cause error
}

func (e *CountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid count %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid count %q", e.Input)
}

func (e *CountError) Unwrap() error {
	return e.Cause
}

// Parse returns the integer value of input. A literal without suffix must be
// an integer; fractional literals need a scale suffix and are truncated.
func (p *CountParser) Parse(input string) (uint64, error) {
	value := strings.TrimSpace(input)
	m := p.pattern.FindStringSubmatch(value)
	if m == nil {
		return 0, &CountError{Input: input}
	}

	var scale float64
	switch strings.ToLower(m[3]) {
	case "":
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return 0, &CountError{Input: input, Cause: err}
		}
		return n, nil
	case "k":
		scale = 1e3
	case "m":
		scale = 1e6
	case "g":
		scale = 1e9
	}

	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &CountError{Input: input, Cause: err}
	}
	scaled := math.Trunc(f * scale)
	if scaled >= math.MaxUint64 {
		return 0, &CountError{Input: input, Cause: strconv.ErrRange}
	}
	return uint64(scaled), nil
}

// Uint32 parses a count that must fit a peer counter
func (p *CountParser) Uint32(input string) (uint32, error) {
	n, err := p.Parse(input)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint32 {
		return 0, &CountError{Input: input, Cause: strconv.ErrRange}
	}
	return uint32(n), nil
}
