package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talentsphere/internal/types"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := types.NewAnalysisRecord()
	rec.ContactInfo.Email = "jane@example.com"
	rec.MatchScore = 66.67
	rec.YearsExperience = 5
	rec.SkillsFound = []string{"Python", "SQL"}
	rec.MissingKeywords = []string{"AWS"}
	rec.AutoExtractedSkills = []string{"Docker"}

	p.PrintRecord("jane.pdf", rec)
	output := buf.String()

	assert.Contains(t, output, "ANALYSIS: jane.pdf")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "66.7%")
	assert.Contains(t, output, "5 yrs")
	assert.Contains(t, output, "• Python")
	assert.Contains(t, output, "• AWS")
	assert.Contains(t, output, "Auto-extracted: Docker")
	assert.NotContains(t, output, "DEGRADED")
}

func TestPrintRecord_Degraded(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := types.NewAnalysisRecord()
	rec.Degraded = true
	p.PrintRecord("scan.pdf", rec)

	assert.Contains(t, buf.String(), "DEGRADED")
	assert.Contains(t, buf.String(), types.NotFound)
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecord("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAudit(types.AuditReport{Score: 100, Suggestions: []string{}})
	assert.Contains(t, buf.String(), "AUDIT SCORE 100, NO SUGGESTIONS")

	buf.Reset()
	p.PrintAudit(types.AuditReport{Score: 80, Suggestions: []string{"Add a LinkedIn profile."}})
	assert.Contains(t, buf.String(), "STRUCTURAL AUDIT")
	assert.Contains(t, buf.String(), "Score: 80")
	assert.Contains(t, buf.String(), "⚠ Add a LinkedIn profile.")
}

func TestPrintGuidance(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGuidance(types.NewAnalysisRecord())
	assert.Empty(t, buf.String())

	rec := types.NewAnalysisRecord()
	rec.InterviewQuestions = []string{"Q1", "Q2", "Q3", "Q4", "Q5"}
	rec.LearningRoadmap = []string{"Learn Go"}
	p.PrintGuidance(rec)

	output := buf.String()
	assert.Contains(t, output, "GUIDANCE")
	assert.Contains(t, output, "• Q5")
	assert.Contains(t, output, "• Learn Go")
	assert.NotContains(t, output, "more")
}

func TestPrintEmailDraft(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintEmailDraft(types.EmailDraft{
		Recommendation: "INTERVIEW",
		Subject:        "Interview Invitation - Acme",
		Body:           "Hi Candidate,\n\nSee you soon.\n",
	})

	output := buf.String()
	assert.Contains(t, output, "EMAIL DRAFT")
	assert.Contains(t, output, "Recommendation: INTERVIEW")
	assert.Contains(t, output, "See you soon.")
}

func TestPrintLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLeaderboard(nil)
	assert.Empty(t, buf.String())

	ranked := make([]types.RankedCandidate, 7)
	for i := range ranked {
		ranked[i] = types.RankedCandidate{
			Rank: i + 1,
			CandidateSummary: types.CandidateSummary{
				Name:        fmt.Sprintf("cand%d.pdf", i+1),
				Score:       float64(90 - i*10),
				SkillsFound: []string{"Go"},
			},
		}
	}
	p.PrintLeaderboard(ranked)

	output := buf.String()
	assert.Contains(t, output, "LEADERBOARD")
	assert.Contains(t, output, "Candidates ranked: 7")
	assert.Contains(t, output, "#1  cand1.pdf")
	assert.Contains(t, output, "#5  cand5.pdf")
	assert.NotContains(t, output, "cand6.pdf")
	assert.Contains(t, output, "... and 2 more candidates")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}
