package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/aikawa-h/instapipe/utils/config"
)

// Result is one ranked item returned for a query. Fields the provider omits
// stay as empty strings rather than failing the lookup.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// ExternalServiceError reports a transport-level failure from the search
// provider.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Client queries the Google Programmable Search engine.
type Client struct {
	svc      *customsearch.Service
	engineID string
}

// NewClient builds a search client from the configured API key and engine id.
// Extra options are for tests (endpoint override).
func NewClient(ctx context.Context, cfg config.SearchConfig, opts ...option.ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &config.ConfigurationError{Key: "search.api_key"}
	}
	if cfg.EngineID == "" {
		return nil, &config.ConfigurationError{Key: "search.engine_id"}
	}

	allOpts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	svc, err := customsearch.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &Client{svc: svc, engineID: cfg.EngineID}, nil
}

// Search runs one query and returns up to limit results in provider order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	config.DebugLog("[Search] query=%q limit=%d", query, limit)

	if limit <= 0 {
		limit = 3
	}

	resp, err := c.svc.Cse.List().
		Q(query).
		Cx(c.engineID).
		Num(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ExternalServiceError{Service: "search", Err: err}
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		results = append(results, Result{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	config.DebugLog("[Search] query=%q returned %d result(s)", query, len(results))
	return results, nil
}
