package schemas

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talentsphere/internal/types"
)

func TestBundledSchemasCompile(t *testing.T) {
	schemas, err := compile()
	require.NoError(t, err)
	assert.Contains(t, schemas, KindRecord)
	assert.Contains(t, schemas, KindBatch)
}

func TestValidateRecord_Defaults(t *testing.T) {
	assert.NoError(t, ValidateRecord(types.NewAnalysisRecord()))
}

func TestValidateRecord_Populated(t *testing.T) {
	rec := types.NewAnalysisRecord()
	rec.ContactInfo.Email = "jane@example.com"
	rec.SkillsFound = []string{"Python"}
	rec.MissingKeywords = []string{"Go"}
	rec.MatchScore = 50
	rec.YearsExperience = 4
	rec.AuditReport.Score = -10
	rec.AuditReport.Suggestions = []string{"Add a LinkedIn profile."}
	rec.AddWarning("skill auto-extraction unavailable")

	assert.NoError(t, ValidateRecord(rec))
}

func TestValidateRecord_Invalid(t *testing.T) {
	rec := types.NewAnalysisRecord()
	rec.MatchScore = 140

	err := ValidateRecord(rec)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Errors)
	assert.Equal(t, "match_score", verr.Errors[0].Field)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateDocument_MissingFields(t *testing.T) {
	err := ValidateDocument(KindRecord, []byte(`{"match_score": 10}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Greater(t, len(verr.Errors), 1)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidateDocument_Errors(t *testing.T) {
	err := ValidateDocument("resume", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")

	err = ValidateDocument(KindRecord, []byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document")
}

func TestValidateBatch(t *testing.T) {
	batch := &types.BatchResult{
		ID: uuid.New(),
		Ranked: []types.RankedCandidate{{
			Rank: 1,
			CandidateSummary: types.CandidateSummary{
				Name:        "jane.pdf",
				Score:       75,
				Experience:  5,
				Contact:     types.ContactInfo{Email: "jane@example.com", Phone: types.NotFound},
				SkillsFound: []string{"Python"},
			},
		}},
		Records: []types.DocumentResult{{Name: "jane.pdf", Record: types.NewAnalysisRecord()}},
	}
	assert.NoError(t, ValidateBatch(batch))

	batch.Ranked[0].Rank = 0
	var verr *ValidationError
	assert.ErrorAs(t, ValidateBatch(batch), &verr)
}
