package common

import "strings"

// MissingTokens are the cell values treated as "no value" in source tables.
var MissingTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// IsMissing reports whether s is one of MissingTokens.
func IsMissing(s string) bool {
	return HasAny(strings.TrimSpace(s), MissingTokens...)
}

// HasAny returns true if s equals any of the candidates.
func HasAny(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
