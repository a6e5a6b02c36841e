package util

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses s or returns def if it is empty or invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseSymbols splits a comma separated ticker list, uppercases each entry
// and drops blanks and duplicates while keeping order.
func ParseSymbols(s string) []string {
	return NormalizeSymbols(strings.Split(s, ","))
}

// NormalizeSymbols uppercases, trims and dedupes tickers.
func NormalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
