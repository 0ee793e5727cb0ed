// Package parsing normalizes extracted resume text and pulls structured fields out of it.
package parsing

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText folds compatibility characters (PDF ligatures such as "ﬁ", full-width
// letters) and collapses every run of whitespace into a single space.
// The result has no leading or trailing whitespace and NormalizeText(NormalizeText(s)) == NormalizeText(s).
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	folded := norm.NFKC.String(raw)
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeKeywords trims each keyword and drops blank entries.
// Order and duplicates are kept exactly as supplied.
func NormalizeKeywords(raw []string) []string {
	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		keywords = append(keywords, k)
	}
	return keywords
}

// SplitKeywords parses a comma-separated keyword list such as "Python, SQL, AWS".
func SplitKeywords(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	return NormalizeKeywords(strings.Split(csv, ","))
}
