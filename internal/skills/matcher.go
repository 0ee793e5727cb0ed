package skills

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/talentsphere/internal/matching"
)

// ErrEmptyVocabulary is returned when a matcher is built from a vocabulary with no usable phrases.
var ErrEmptyVocabulary = errors.New("skill vocabulary is empty")

type phrase struct {
	text    string
	pattern *regexp.Regexp
}

// PhraseMatcher finds vocabulary phrases in text. Matching is exact-case and
// aligned to word boundaries, so "Go" is found in "Go, Rust" but not in "Google".
// A PhraseMatcher is immutable and safe for concurrent use.
type PhraseMatcher struct {
	phrases []phrase
}

// NewPhraseMatcher compiles vocab once. Blank and duplicate entries are skipped.
func NewPhraseMatcher(vocab []string) (*PhraseMatcher, error) {
	seen := make(map[string]bool, len(vocab))
	phrases := make([]phrase, 0, len(vocab))
	for _, v := range vocab {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		phrases = append(phrases, phrase{text: v, pattern: matching.WordPattern(v)})
	}
	if len(phrases) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return &PhraseMatcher{phrases: phrases}, nil
}

// Match returns the vocabulary phrases present in text, sorted.
// Overlapping phrases are all reported ("Google Cloud" and "Go" are independent hits).
func (m *PhraseMatcher) Match(text string) []string {
	found := make([]string, 0)
	if m == nil || text == "" {
		return found
	}
	for _, p := range m.phrases {
		if p.pattern.MatchString(text) {
			found = append(found, p.text)
		}
	}
	sort.Strings(found)
	return found
}

// Size returns the number of compiled phrases.
func (m *PhraseMatcher) Size() int {
	if m == nil {
		return 0
	}
	return len(m.phrases)
}
