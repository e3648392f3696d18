package pipeline

import (
	"context"
	"sync"

	"github.com/aikawa-h/instapipe/utils/search"
)

// searchAttempts bounds per-query retries before falling back to an empty
// result set for that query.
const searchAttempts = 2

// runRetrieval answers each planner query against the search provider.
// Queries fan out to a bounded number of concurrent lookups; results land in
// a slice indexed by query position, so the returned sequence always matches
// input order. An empty query list short-circuits with no external calls.
func (p *Pipeline) runRetrieval(ctx context.Context, queries []string) ([]RAGResult, error) {
	if len(queries) == 0 {
		p.debugf("no retrieval queries, skipping search")
		return []RAGResult{}, nil
	}

	results := make([]RAGResult, len(queries))
	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = RAGResult{
				Query:   query,
				Results: p.searchWithRetry(ctx, query),
			}
		}(i, query)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.fetcher != nil {
		p.enrich(results)
	}

	return results, nil
}

// searchWithRetry issues one query with bounded retries. A query that keeps
// failing yields an empty result list rather than aborting the stage; a
// record is returned for every input query either way.
func (p *Pipeline) searchWithRetry(ctx context.Context, query string) []search.Result {
	var lastErr error
	for attempt := 1; attempt <= searchAttempts; attempt++ {
		if ctx.Err() != nil {
			return []search.Result{}
		}
		results, err := p.searcher.Search(ctx, query, p.resultLimit)
		if err == nil {
			if results == nil {
				results = []search.Result{}
			}
			return results
		}
		lastErr = err
		p.debugf("search attempt %d/%d failed for %q: %v", attempt, searchAttempts, query, err)
	}

	p.debugf("giving up on query %q: %v", query, lastErr)
	return []search.Result{}
}

// enrich appends page text from each record's top result to its snippet.
// Fetch failures leave the snippet as-is.
func (p *Pipeline) enrich(results []RAGResult) {
	for i := range results {
		if len(results[i].Results) == 0 {
			continue
		}
		top := &results[i].Results[0]
		if top.Link == "" {
			continue
		}
		excerpt, err := p.fetcher.PageText(top.Link)
		if err != nil {
			p.debugf("page fetch failed for %s: %v", top.Link, err)
			continue
		}
		if excerpt != "" {
			top.Snippet = top.Snippet + " " + excerpt
		}
	}
}
