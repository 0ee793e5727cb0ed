// Package matching scores resume text against a target keyword list.
package matching

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/talentsphere/internal/parsing"
	"github.com/jonathan/talentsphere/internal/types"
)

// MatchKeywords classifies each target keyword as found or missing in text.
// Matching is case-insensitive and whole-word: "Java" is not found inside "JavaScript".
// Both lists keep the caller's order. The score is the found percentage rounded to
// two decimals, and 0 when there are no targets.
func MatchKeywords(text string, targets []string) types.KeywordMatch {
	targets = parsing.NormalizeKeywords(targets)
	match := types.KeywordMatch{
		Found:   make([]string, 0, len(targets)),
		Missing: make([]string, 0, len(targets)),
	}
	if len(targets) == 0 {
		return match
	}

	lower := strings.ToLower(text)
	for _, keyword := range targets {
		if WordPattern(strings.ToLower(keyword)).MatchString(lower) {
			match.Found = append(match.Found, keyword)
		} else {
			match.Missing = append(match.Missing, keyword)
		}
	}

	match.MatchScore = Percent(len(match.Found), len(targets))
	return match
}

// Percent returns 100*part/total rounded to two decimals, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// WordPattern compiles phrase as a literal anchored on word boundaries.
// An edge of the phrase that is not a word character ("C++", ".NET") is left
// unanchored, since \b can never hold between two non-word characters.
func WordPattern(phrase string) *regexp.Regexp {
	var b strings.Builder
	runes := []rune(phrase)
	if len(runes) > 0 && isWordRune(runes[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(phrase))
	if len(runes) > 0 && isWordRune(runes[len(runes)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.MustCompile(b.String())
}

// isWordRune mirrors RE2's ASCII definition of \w.
func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}
