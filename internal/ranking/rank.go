// Package ranking orders analyzed candidates into a leaderboard.
package ranking

import (
	"sort"

	"github.com/jonathan/talentsphere/internal/types"
)

// Rank sorts candidates by match score, then years of experience, both descending,
// and assigns positional ranks 1..N. Candidates tied on both keys keep their
// submission order and still receive distinct ranks. The input slice is not modified.
func Rank(summaries []types.CandidateSummary) []types.RankedCandidate {
	sorted := make([]types.CandidateSummary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Experience > sorted[j].Experience
	})

	ranked := make([]types.RankedCandidate, 0, len(sorted))
	for i, s := range sorted {
		ranked = append(ranked, types.RankedCandidate{
			Rank:             i + 1,
			CandidateSummary: s,
		})
	}
	return ranked
}

// SummarizeRecord reduces an analysis record to the fields the leaderboard needs.
func SummarizeRecord(name string, rec *types.AnalysisRecord) types.CandidateSummary {
	if rec == nil {
		rec = types.NewAnalysisRecord()
	}
	skills := make([]string, len(rec.SkillsFound))
	copy(skills, rec.SkillsFound)

	return types.CandidateSummary{
		Name:        name,
		Score:       rec.MatchScore,
		Experience:  rec.YearsExperience,
		Contact:     rec.ContactInfo,
		SkillsFound: skills,
	}
}
