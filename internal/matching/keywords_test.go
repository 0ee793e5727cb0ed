package matching

import (
	"testing"

	"github.com/jonathan/talentsphere/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchKeywords_WordBoundary(t *testing.T) {
	m := MatchKeywords("Senior JavaScript engineer", []string{"Java"})
	assert.Empty(t, m.Found)
	assert.Equal(t, []string{"Java"}, m.Missing)
	assert.Equal(t, 0.0, m.MatchScore)

	m = MatchKeywords("Java Developer at Acme", []string{"Java"})
	assert.Equal(t, []string{"Java"}, m.Found)
	assert.Equal(t, 100.0, m.MatchScore)
}

func TestMatchKeywords_PreservesOrderAndCase(t *testing.T) {
	text := "experienced with python, docker and sql"
	m := MatchKeywords(text, []string{"AWS", "SQL", "Python", "React"})

	assert.Equal(t, []string{"SQL", "Python"}, m.Found)
	assert.Equal(t, []string{"AWS", "React"}, m.Missing)
	assert.Equal(t, 50.0, m.MatchScore)
}

func TestMatchKeywords_Rounding(t *testing.T) {
	m := MatchKeywords("Python SQL", []string{"Python", "SQL", "AWS"})
	assert.Equal(t, 66.67, m.MatchScore)

	m = MatchKeywords("Python", []string{"Python", "SQL", "AWS"})
	assert.Equal(t, 33.33, m.MatchScore)
}

func TestMatchKeywords_EmptyTargets(t *testing.T) {
	m := MatchKeywords("Python SQL", nil)
	assert.Equal(t, 0.0, m.MatchScore)
	assert.NotNil(t, m.Found)
	assert.NotNil(t, m.Missing)
	assert.Empty(t, m.Found)
	assert.Empty(t, m.Missing)

	m = MatchKeywords("Python SQL", []string{" ", ""})
	assert.Equal(t, 0.0, m.MatchScore)
}

func TestMatchKeywords_Partition(t *testing.T) {
	targets := []string{"Go", "Rust", "Kubernetes", "Go", "Machine Learning"}
	m := MatchKeywords("Built Go services on Kubernetes with machine learning models", targets)

	require.Equal(t, len(targets), len(m.Found)+len(m.Missing))
	assert.Equal(t, []string{"Go", "Kubernetes", "Go", "Machine Learning"}, m.Found)
	assert.Equal(t, []string{"Rust"}, m.Missing)
	assert.Equal(t, 80.0, m.MatchScore)
}

func TestMatchKeywords_SymbolKeywords(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		keyword string
		found   bool
	}{
		{"C++ followed by space", "Expert in C++ and Rust", "C++", true},
		{"C++ at end", "Languages: C++", "C++", true},
		{"Node.js", "Backend in Node.js, Express", "Node.js", true},
		{"CI/CD", "Owned the CI/CD pipeline", "CI/CD", true},
		{"Regex metacharacters are literal", "Owned the CIXCD pipeline", "CI.CD", false},
		{"Spring Boot phrase", "spring boot microservices", "Spring Boot", true},
		{"Go inside Google", "Worked at Google", "Go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MatchKeywords(tt.text, []string{tt.keyword})
			assert.Equal(t, tt.found, len(m.Found) == 1)
		})
	}
}

func TestMatchKeywords_ReplacesPreviousResult(t *testing.T) {
	text := "Python and SQL"
	rec := types.NewAnalysisRecord()

	rec.ApplyKeywordMatch(MatchKeywords(text, []string{"Python", "AWS"}))
	require.Equal(t, []string{"Python"}, rec.SkillsFound)

	rec.ApplyKeywordMatch(MatchKeywords(text, []string{"SQL"}))
	assert.Equal(t, []string{"SQL"}, rec.SkillsFound)
	assert.Empty(t, rec.MissingKeywords)
	assert.Equal(t, 100.0, rec.MatchScore)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 0.0, Percent(0, 4))
	assert.Equal(t, 25.0, Percent(1, 4))
	assert.Equal(t, 14.29, Percent(1, 7))
	assert.Equal(t, 100.0, Percent(3, 3))
}
