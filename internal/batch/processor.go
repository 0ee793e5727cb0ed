package batch

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talentsphere/internal/analysis"
	"github.com/jonathan/talentsphere/internal/ranking"
	"github.com/jonathan/talentsphere/internal/types"
)

// DefaultWorkers is the number of documents analyzed at once when none is configured.
const DefaultWorkers = 4

// Processor analyzes documents with bounded concurrency.
type Processor struct {
	analyzer *analysis.Analyzer
	workers  int

	// OnDocument, when set, is called after each document finishes. Calls may be concurrent.
	OnDocument func(name string, rec *types.AnalysisRecord)
}

// NewProcessor returns a Processor running at most workers documents at a time.
func NewProcessor(analyzer *analysis.Analyzer, workers int) *Processor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Processor{analyzer: analyzer, workers: workers}
}

// Run analyzes every document and ranks the results. A document that cannot be
// fetched or read gets a degraded record and the batch continues. Run fails only
// for invalid options or when ctx is cancelled.
func (p *Processor) Run(ctx context.Context, docs []Document, keywords []string, opts analysis.Options) (*types.BatchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	records := make([]types.DocumentResult, len(docs))
	var mu sync.Mutex // serializes writes into records

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, doc := range docs {
		g.Go(func() error {
			rec, err := p.process(gCtx, doc, keywords, opts)
			if err != nil {
				return err
			}

			mu.Lock()
			records[i] = types.DocumentResult{Name: doc.Name(), Record: rec}
			mu.Unlock()

			if p.OnDocument != nil {
				p.OnDocument(doc.Name(), rec)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	summaries := make([]types.CandidateSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, ranking.SummarizeRecord(r.Name, r.Record))
	}

	return &types.BatchResult{
		ID:      uuid.New(),
		Ranked:  ranking.Rank(summaries),
		Records: records,
	}, nil
}

// process analyzes one document. The fetched file is released before it returns.
func (p *Processor) process(ctx context.Context, doc Document, keywords []string, opts analysis.Options) (*types.AnalysisRecord, error) {
	path, release, err := doc.Fetch(ctx)
	defer release()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[batch] %s: fetch failed: %v", doc.Name(), err)
		rec := types.NewAnalysisRecord()
		rec.Degraded = true
		rec.AddWarning(err.Error())
		return rec, nil
	}

	rec, err := p.analyzer.Analyze(ctx, path, keywords, opts)
	if err != nil {
		return nil, err
	}
	if rec.Degraded {
		log.Printf("[batch] %s: degraded: %v", doc.Name(), rec.Warnings)
	}
	return rec, nil
}
