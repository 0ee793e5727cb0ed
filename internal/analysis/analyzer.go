// Package analysis runs the resume analysis steps over one document.
package analysis

import (
	"context"
	"log"

	"github.com/jonathan/talentsphere/internal/audit"
	"github.com/jonathan/talentsphere/internal/guidance"
	"github.com/jonathan/talentsphere/internal/ingestion"
	"github.com/jonathan/talentsphere/internal/matching"
	"github.com/jonathan/talentsphere/internal/parsing"
	"github.com/jonathan/talentsphere/internal/skills"
	"github.com/jonathan/talentsphere/internal/types"
)

// Warnings attached to records.
const (
	WarnNoKeywords        = "no target keywords supplied: match score is 0"
	WarnSkillsUnavailable = "skill auto-extraction unavailable"
)

// TextExtractor reads the raw text of a document.
type TextExtractor interface {
	Extract(path string) (string, *ingestion.Metadata, error)
}

// Result is an analyzed document.
type Result struct {
	Record *types.AnalysisRecord
	// Metadata is nil when the document yielded no text.
	Metadata *ingestion.Metadata
}

// Analyzer runs analysis steps. It holds only read-only state after New returns
// and is safe for concurrent use.
type Analyzer struct {
	extractor TextExtractor
	matcher   *skills.PhraseMatcher
	bank      map[string]string

	vocabulary []string
	skillsErr  *DegradedCapabilityError
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor replaces the document text extractor.
func WithExtractor(e TextExtractor) Option {
	return func(a *Analyzer) { a.extractor = e }
}

// WithVocabulary replaces the skill vocabulary used for auto-extraction.
func WithVocabulary(vocab []string) Option {
	return func(a *Analyzer) { a.vocabulary = vocab }
}

// WithQuestionBank replaces the skill to interview question table.
func WithQuestionBank(bank map[string]string) Option {
	return func(a *Analyzer) { a.bank = bank }
}

// New builds an Analyzer. The skill matcher is compiled once here; if that fails
// the analyzer is still usable and skill auto-extraction is skipped.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor:  ingestion.NewExtractor(),
		bank:       guidance.DefaultQuestionBank,
		vocabulary: skills.DefaultVocabulary,
	}
	for _, opt := range opts {
		opt(a)
	}

	matcher, err := skills.NewPhraseMatcher(a.vocabulary)
	if err != nil {
		a.skillsErr = &DegradedCapabilityError{Capability: "skill auto-extraction", Cause: err}
		log.Printf("[analysis] %v", a.skillsErr)
	} else {
		a.matcher = matcher
	}
	return a
}

// SkillsAvailable reports whether skill auto-extraction is enabled.
// When it is not, the returned error explains why.
func (a *Analyzer) SkillsAvailable() (bool, error) {
	if a.skillsErr != nil {
		return false, a.skillsErr
	}
	return true, nil
}

// Analyze extracts the document at path and analyzes it.
// See AnalyzeFile for error semantics.
func (a *Analyzer) Analyze(ctx context.Context, path string, keywords []string, opts Options) (*types.AnalysisRecord, error) {
	res, err := a.AnalyzeFile(ctx, path, keywords, opts)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// AnalyzeFile extracts and analyzes one document. A document that is missing,
// unreadable or empty never fails the call: it produces a fully defaulted record
// marked Degraded with the cause in Warnings. Errors are returned only for invalid
// options or a cancelled context.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, keywords []string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, meta, err := a.extractor.Extract(path)
	if err != nil {
		if !ingestion.IsInputError(err) {
			log.Printf("[analysis] unexpected extraction error for %s: %v", path, err)
		}
		return &Result{Record: degradedRecord(err)}, nil
	}

	rec, err := a.AnalyzeText(raw, keywords, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Record: rec, Metadata: meta}, nil
}

// AnalyzeText analyzes already-extracted text.
func (a *Analyzer) AnalyzeText(raw string, keywords []string, opts Options) (*types.AnalysisRecord, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	text := parsing.NormalizeText(raw)
	keywords = parsing.NormalizeKeywords(keywords)
	rec := types.NewAnalysisRecord()

	if opts.Contact {
		rec.ContactInfo = parsing.ExtractContact(text)
	}
	if opts.Experience {
		rec.YearsExperience = parsing.ExtractExperience(text)
	}
	if opts.Skills {
		if a.matcher != nil {
			rec.AutoExtractedSkills = a.matcher.Match(text)
		} else {
			rec.AddWarning(WarnSkillsUnavailable)
		}
	}

	rec.ApplyKeywordMatch(matching.MatchKeywords(text, keywords))
	if len(keywords) == 0 {
		rec.AddWarning(WarnNoKeywords)
	}

	if opts.Audit {
		rec.AuditReport = audit.AuditResume(text)
	}
	if opts.Questions {
		rec.InterviewQuestions = guidance.InterviewQuestions(rec.SkillsFound, a.bank)
	}
	if opts.Roadmap {
		rec.LearningRoadmap = guidance.LearningRoadmap(rec.MissingKeywords)
	}
	return rec, nil
}

func degradedRecord(cause error) *types.AnalysisRecord {
	rec := types.NewAnalysisRecord()
	rec.Degraded = true
	rec.AddWarning(cause.Error())
	return rec
}
