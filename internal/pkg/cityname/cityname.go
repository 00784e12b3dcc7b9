// Package cityname normalizes free-form city names to their canonical form.
// The core stores and compares only normalized names; every city value must
// pass through Normalize before it is used for filtering or grouping.
//
// Normalization is a two-step lookup: an exact alias table first, then a
// fuzzy fallback that matches close misspellings against the canonical set
// using Levenshtein distance.
package cityname

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxFuzzyDistance is the largest edit distance still accepted as a
// misspelling of a canonical city name.
const maxFuzzyDistance = 2

// canonical is the set of service cities in their canonical spelling.
var canonical = []string{
	"ahmedabad",
	"gandhinagar",
	"mehsana",
	"rajkot",
	"surat",
	"vadodara",
}

// aliases maps known alternate spellings to canonical names.
var aliases = map[string]string{
	"ahmadabad": "ahmedabad",
	"amdavad":   "ahmedabad",
	"baroda":    "vadodara",
	"mahesana":  "mehsana",
	"mehsāna":   "mehsana",
}

// Normalize returns the canonical form of a city name.
//
// The input is lowercased and trimmed, then resolved through the exact alias
// table. If no exact match exists, the closest canonical name within
// maxFuzzyDistance edits is used. Input that matches nothing is returned in
// its cleaned form so that unknown cities still compare consistently.
func Normalize(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}

	if alias, ok := aliases[cleaned]; ok {
		return alias
	}
	for _, name := range canonical {
		if cleaned == name {
			return name
		}
	}

	best := ""
	bestDistance := maxFuzzyDistance + 1
	for _, name := range canonical {
		if d := levenshtein.ComputeDistance(cleaned, name); d < bestDistance {
			best = name
			bestDistance = d
		}
	}
	if best != "" {
		return best
	}

	return cleaned
}

// IsKnown reports whether the given name resolves to a canonical service city.
func IsKnown(raw string) bool {
	normalized := Normalize(raw)
	for _, name := range canonical {
		if normalized == name {
			return true
		}
	}
	return false
}
