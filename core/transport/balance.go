package transport

import (
	"math"
	"strconv"
	"strings"
)

// Balance computes what the student still owes. It is a pure function of its
// three inputs and is recomputed from scratch on every edit, before any
// network call, so the displayed balance can never drift.
func Balance(fare, discount, paid float64) float64 {
	return math.Max(0, fare-discount-paid)
}

// ParseAmount reads a user-typed amount. Unparsable or non-finite input is
// 0; NaN never propagates into a balance.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
