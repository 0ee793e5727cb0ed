package guidance

import (
	"fmt"
	"strings"

	"github.com/jonathan/talentsphere/internal/types"
)

// Recommendations attached to an email draft.
const (
	RecommendInterview = "INTERVIEW"
	RecommendReject    = "REJECT"
)

// InterviewThreshold is the minimum match score that earns an interview invitation.
const InterviewThreshold = 75.0

const highlightedSkills = 3

// DraftEmail writes the recruiter's reply to a candidate based on their match score.
// Invitations cite up to three found skills; rejections cite up to three missing keywords.
func DraftEmail(company string, rec *types.AnalysisRecord) types.EmailDraft {
	company = strings.TrimSpace(company)
	if company == "" {
		company = types.DefaultCompany
	}

	if rec.MatchScore >= InterviewThreshold {
		return types.EmailDraft{
			Recommendation: RecommendInterview,
			Subject:        fmt.Sprintf("Interview Invitation - %s", company),
			Body: fmt.Sprintf(
				"Hi Candidate,\n\nWe reviewed your profile and were impressed by your experience with %s.\nWe would like to invite you for an interview.\n\nBest,\n%s Recruiting Team\n",
				strings.Join(head(rec.SkillsFound, highlightedSkills), ", "), company),
		}
	}

	return types.EmailDraft{
		Recommendation: RecommendReject,
		Subject:        fmt.Sprintf("Update on your application - %s", company),
		Body: fmt.Sprintf(
			"Hi Candidate,\n\nThank you for applying. Unfortunately, we are looking for candidates with stronger experience in: %s.\nWe will keep your resume on file.\n\nBest,\n%s Recruiting Team\n",
			strings.Join(head(rec.MissingKeywords, highlightedSkills), ", "), company),
	}
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
