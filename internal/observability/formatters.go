// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talentsphere/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintRecord outputs a human-readable summary of one analyzed resume.
func (p *Printer) PrintRecord(name string, rec *types.AnalysisRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Email:       %s\n", rec.ContactInfo.Email))
	sb.WriteString(fmt.Sprintf("Phone:       %s\n", rec.ContactInfo.Phone))
	sb.WriteString(fmt.Sprintf("Match:       %.1f%%\n", rec.MatchScore))
	sb.WriteString(fmt.Sprintf("Experience:  %g yrs\n", rec.YearsExperience))
	if rec.Degraded {
		sb.WriteString("Status:      DEGRADED (no usable text)\n")
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills found", rec.SkillsFound, maxItemsToShow)
	writeList(&sb, "Missing keywords", rec.MissingKeywords, maxItemsToShow)
	if len(rec.AutoExtractedSkills) > 0 {
		sb.WriteString(fmt.Sprintf("Auto-extracted: %s\n", strings.Join(rec.AutoExtractedSkills, ", ")))
	}

	p.printBox("ANALYSIS: "+name, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAudit outputs the structural audit score and suggestions.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAudit(report types.AuditReport) {
	if len(report.Suggestions) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ AUDIT SCORE %d, NO SUGGESTIONS", report.Score))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d\n\n", report.Score))
	for _, s := range report.Suggestions {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", s))
	}
	p.printBox("STRUCTURAL AUDIT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGuidance outputs interview questions and the learning roadmap.
func (p *Printer) PrintGuidance(rec *types.AnalysisRecord) {
	if rec == nil || (len(rec.InterviewQuestions) == 0 && len(rec.LearningRoadmap) == 0) {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Interview questions", rec.InterviewQuestions, maxItemsToShow)
	writeList(&sb, "Learning roadmap", rec.LearningRoadmap, maxItemsToShow)
	p.printBox("GUIDANCE", strings.TrimSuffix(sb.String(), "\n\n"))
}

// PrintEmailDraft outputs a recruiter email draft.
func (p *Printer) PrintEmailDraft(draft types.EmailDraft) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommendation: %s\n", draft.Recommendation))
	sb.WriteString(fmt.Sprintf("Subject: %s\n\n", draft.Subject))
	sb.WriteString(strings.TrimSuffix(draft.Body, "\n"))
	p.printBox("EMAIL DRAFT", sb.String())
}

// PrintLeaderboard outputs the top ranked candidates.
func (p *Printer) PrintLeaderboard(ranked []types.RankedCandidate) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i, c := range ranked[:count] {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", c.Rank, c.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.1f  Experience: %g yrs\n", c.Score, c.Experience))
		if len(c.SkillsFound) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(c.SkillsFound, ", ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranked)-maxItemsToShow))
	}

	p.printBox("LEADERBOARD", strings.TrimSuffix(sb.String(), "\n"))
}
