// Package timeline holds the shared timeline-scanning logic: clock
// parsing, score reconstruction, and per-shot context enrichment.
package timeline

import (
	"strconv"
	"strings"
)

// PeriodSeconds is the regulation length of one period.
const PeriodSeconds = 1200

// ParseClock converts an "MM:SS" elapsed-time string to seconds.
// Empty or malformed strings parse to 0; sparse feeds must never
// make a scan fail.
func ParseClock(clock string) int {
	mm, ss, ok := strings.Cut(clock, ":")
	if !ok {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(mm))
	if err != nil || minutes < 0 {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(ss))
	if err != nil || seconds < 0 {
		return 0
	}
	return minutes*60 + seconds
}

// MomentLE reports whether moment (p1, e1) is at or before (p2, e2):
// period order first, then elapsed seconds within the period.
func MomentLE(p1, e1, p2, e2 int) bool {
	if p1 != p2 {
		return p1 < p2
	}
	return e1 <= e2
}
