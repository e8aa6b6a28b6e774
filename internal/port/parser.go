package port

import (
	"fmt"
	"regexp"
	"strconv"
)

// descriptorRegex parses the canonical textual form, e.g. `clk` or `sum[7:0]`.
var descriptorRegex = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)(?:\[(\d+):(\d+)\])?$`)

// Parse creates a BasicPort by parsing its canonical string representation.
// A bare identifier yields a single-bit port.
func Parse(raw string) (BasicPort, error) {
	if raw == "" {
		return BasicPort{}, fmt.Errorf("port descriptor cannot be empty")
	}

	matches := descriptorRegex.FindStringSubmatch(raw)
	if matches == nil {
		return BasicPort{}, fmt.Errorf("invalid port descriptor format: %q", raw)
	}

	p := BasicPort{Name: matches[1]}
	if matches[2] != "" {
		msb, err := strconv.Atoi(matches[2])
		if err != nil {
			// Unreachable due to regex `\d+`
			return BasicPort{}, fmt.Errorf("internal error parsing msb: %w", err)
		}
		lsb, err := strconv.Atoi(matches[3])
		if err != nil {
			return BasicPort{}, fmt.Errorf("internal error parsing lsb: %w", err)
		}
		p.MSB = msb
		p.LSB = lsb
	}

	return p, nil
}
