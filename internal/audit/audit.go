// Package audit scores the structure of a resume with fixed heuristic checks.
package audit

import (
	"strings"

	"github.com/jonathan/talentsphere/internal/types"
)

// StartingScore is the audit score before any penalty is applied.
const StartingScore = 100

// Penalties for each failed check.
const (
	weakImpactPenalty        = 15
	missingEducationPenalty  = 10
	missingExperiencePenalty = 10
	missingLinkedInPenalty   = 5

	minActionVerbs = 3
)

// Suggestions emitted for failed checks, in check order.
const (
	SuggestionWeakImpact        = "Weak Impact: Your resume lacks strong action verbs (e.g., Led, Developed)."
	SuggestionMissingEducation  = "Structure: 'Education' section not clearly detected."
	SuggestionMissingExperience = "Structure: 'Experience' or 'Projects' section missing."
	SuggestionMissingLinkedIn   = "Credibility: Add a LinkedIn profile link."
)

// ActionVerbs are the verbs that count toward the impact check.
var ActionVerbs = []string{
	"developed", "led", "analyzed", "architected", "created", "designed",
	"implemented", "optimized", "managed", "deployed", "spearheaded",
}

// AuditResume runs every check against text. Each failed check subtracts its penalty
// and appends one suggestion. The score is not clamped.
func AuditResume(text string) types.AuditReport {
	lower := strings.ToLower(text)
	report := types.AuditReport{
		Score:       StartingScore,
		Suggestions: []string{},
	}

	if countActionVerbs(lower) < minActionVerbs {
		penalize(&report, weakImpactPenalty, SuggestionWeakImpact)
	}
	if !strings.Contains(lower, "education") {
		penalize(&report, missingEducationPenalty, SuggestionMissingEducation)
	}
	if !strings.Contains(lower, "experience") && !strings.Contains(lower, "projects") {
		penalize(&report, missingExperiencePenalty, SuggestionMissingExperience)
	}
	if !strings.Contains(lower, "linkedin.com") {
		penalize(&report, missingLinkedInPenalty, SuggestionMissingLinkedIn)
	}

	return report
}

func penalize(r *types.AuditReport, penalty int, suggestion string) {
	r.Score -= penalty
	r.Suggestions = append(r.Suggestions, suggestion)
}

// countActionVerbs counts distinct verbs present as substrings ("led" also counts inside "skilled").
func countActionVerbs(lower string) int {
	n := 0
	for _, v := range ActionVerbs {
		if strings.Contains(lower, v) {
			n++
		}
	}
	return n
}
