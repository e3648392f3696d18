package pipeline

import (
	"context"
	"fmt"

	"github.com/aikawa-h/instapipe/utils/config"
	"github.com/aikawa-h/instapipe/utils/template"
)

// Stage identifies one step of the caption pipeline.
type Stage string

const (
	StageSelect   Stage = "select"
	StagePlan     Stage = "plan"
	StageRetrieve Stage = "retrieve"
	StageWrite    Stage = "write"
)

const (
	defaultResultLimit = 3
	defaultConcurrency = 4
)

// Options tunes a pipeline. The zero value gives sensible defaults.
type Options struct {
	// ResultLimit caps search results per retrieval query.
	ResultLimit int
	// Concurrency bounds the retrieval fan-out.
	Concurrency int
	// Fetcher, when set, enriches top search results with page text.
	Fetcher PageFetcher
}

// Pipeline runs the four-stage caption chain. A Pipeline holds only
// read-only collaborators, so one instance may serve concurrent runs; all
// per-run state lives in the Bundle.
type Pipeline struct {
	gen         Generator
	searcher    Searcher
	catalog     template.Catalog
	resultLimit int
	concurrency int
	fetcher     PageFetcher
}

// NewPipeline creates a caption pipeline over the given collaborators.
func NewPipeline(gen Generator, searcher Searcher, catalog template.Catalog, opts Options) *Pipeline {
	p := &Pipeline{
		gen:         gen,
		searcher:    searcher,
		catalog:     catalog,
		resultLimit: opts.ResultLimit,
		concurrency: opts.Concurrency,
		fetcher:     opts.Fetcher,
	}
	if p.resultLimit <= 0 {
		p.resultLimit = defaultResultLimit
	}
	if p.concurrency <= 0 {
		p.concurrency = defaultConcurrency
	}
	return p
}

// debugf prints debug information if verbose mode is enabled
func (p *Pipeline) debugf(format string, args ...interface{}) {
	config.DebugLog("[Pipeline] "+format, args...)
}

// Run executes the linear stage sequence select -> plan -> retrieve ->
// write, threading each stage's output into the next. Any stage failure
// aborts the run with the stage name attached; no partial bundle is
// returned.
func (p *Pipeline) Run(ctx context.Context, input UserInput) (*Bundle, error) {
	var state Bundle

	transitions := []struct {
		stage Stage
		run   func(context.Context) error
	}{
		{StageSelect, func(ctx context.Context) error {
			result, err := p.runSelector(ctx, input)
			state.TemplateSelector = result
			return err
		}},
		{StagePlan, func(ctx context.Context) error {
			result, err := p.runPlanner(ctx, input, state.TemplateSelector.SelectedTemplate)
			state.CaptionPlanner = result
			return err
		}},
		{StageRetrieve, func(ctx context.Context) error {
			results, err := p.runRetrieval(ctx, state.CaptionPlanner.Queries)
			state.RAGResults = results
			return err
		}},
		{StageWrite, func(ctx context.Context) error {
			caption, err := p.runWriter(ctx, input,
				state.TemplateSelector.SelectedTemplate,
				state.CaptionPlanner.CaptionPlan,
				state.RAGResults)
			state.FinalCaption = caption
			return err
		}},
	}

	for _, t := range transitions {
		p.debugf("running stage: %s", t.stage)
		if err := t.run(ctx); err != nil {
			return nil, fmt.Errorf("%s stage: %w", t.stage, err)
		}
	}

	return &state, nil
}
