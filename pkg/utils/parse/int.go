// ABOUTME: Utility functions for parsing peer counts from scraped text
// ABOUTME: Provides strict unsigned parsing with surrounding whitespace tolerated

package parse

import (
	"strconv"
	"strings"
)

// Uint32 parses a plain decimal peer count such as "1068"
func Uint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Uint64 parses a plain decimal byte count such as "1044300000"
func Uint64(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}
