// Package types provides type definitions for structured data used throughout the talentsphere system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/google/uuid"

// NotFound is the placeholder stored for contact fields that could not be extracted.
const NotFound = "Not Found"

// ContactInfo holds the contact details extracted from a resume.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AuditReport is the result of the structural audit.
// An audit starts at 100 and only decrements; the score is not clamped.
// A record whose audit did not run carries a zero score.
type AuditReport struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// KeywordMatch is the output of matching a target keyword list against resume text.
type KeywordMatch struct {
	Found      []string `json:"skills_found"`
	Missing    []string `json:"missing_keywords"`
	MatchScore float64  `json:"match_score"`
}

// AnalysisRecord is the accumulator populated by the analysis steps for one document.
// Field order matches the serialized key order.
type AnalysisRecord struct {
	ContactInfo         ContactInfo    `json:"contact_info"`
	SkillsFound         []string       `json:"skills_found"`
	MissingKeywords     []string       `json:"missing_keywords"`
	AutoExtractedSkills []string       `json:"auto_extracted_skills"`
	MatchScore          float64        `json:"match_score"`
	YearsExperience     float64        `json:"years_experience"`
	AuditReport         AuditReport    `json:"audit_report"`
	InterviewQuestions  []string       `json:"interview_questions"`
	LearningRoadmap     []string       `json:"learning_roadmap"`

	// Degraded is set when the document yielded no usable text and every field holds its default.
	Degraded bool     `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewAnalysisRecord returns an empty record with every field at its default value.
func NewAnalysisRecord() *AnalysisRecord {
	return &AnalysisRecord{
		ContactInfo: ContactInfo{
			Email: NotFound,
			Phone: NotFound,
		},
		SkillsFound:         []string{},
		MissingKeywords:     []string{},
		AutoExtractedSkills: []string{},
		AuditReport: AuditReport{
			Suggestions: []string{},
		},
		InterviewQuestions: []string{},
		LearningRoadmap:    []string{},
	}
}

// ApplyKeywordMatch replaces the keyword fields of the record with m.
// Earlier matches are discarded entirely.
func (r *AnalysisRecord) ApplyKeywordMatch(m KeywordMatch) {
	r.SkillsFound = append([]string{}, m.Found...)
	r.MissingKeywords = append([]string{}, m.Missing...)
	r.MatchScore = m.MatchScore
}

// AddWarning records a non-fatal problem encountered while analyzing the document.
func (r *AnalysisRecord) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// CandidateSummary is the per-candidate view consumed by the batch ranker.
type CandidateSummary struct {
	Name        string      `json:"name"`
	Score       float64     `json:"score"`
	Experience  float64     `json:"experience"`
	Contact     ContactInfo `json:"contact"`
	SkillsFound []string    `json:"skills_found"`
}

// RankedCandidate is a CandidateSummary with its assigned leaderboard position.
type RankedCandidate struct {
	Rank int `json:"rank"`
	CandidateSummary
}

// DocumentResult pairs an analyzed document name with its record.
type DocumentResult struct {
	Name   string          `json:"name"`
	Record *AnalysisRecord `json:"record"`
}

// BatchResult is the outcome of analyzing and ranking a set of documents.
type BatchResult struct {
	ID      uuid.UUID         `json:"id"`
	Ranked  []RankedCandidate `json:"ranked"`
	Records []DocumentResult  `json:"records"`
}

// EmailDraft is a recruiter's follow-up email generated from an analysis.
type EmailDraft struct {
	Recommendation string `json:"recommendation"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}
