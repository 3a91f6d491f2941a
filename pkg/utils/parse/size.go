// ABOUTME: Parser for human readable byte sizes such as "4.1 GB"
// ABOUTME: Wraps go-humanize so SI and IEC units are both accepted

package parse

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrEmptySize is returned for blank size text
var ErrEmptySize = errors.New("empty size")

// Size parses a human readable size into a byte count
func Size(input string) (uint64, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return 0, ErrEmptySize
	}
	return humanize.ParseBytes(value)
}
