package pipeline

import (
	"context"
	"encoding/json"

	"github.com/aikawa-h/instapipe/utils/models"
	"github.com/aikawa-h/instapipe/utils/search"
)

// UserInput is a single job's request, immutable for the run.
type UserInput struct {
	BusinessType string `json:"business_type"`
	Title        string `json:"title"`
	Direction    string `json:"direction"`
}

// SelectorResult is the selector stage's decoded output.
type SelectorResult struct {
	SelectedTemplate string `json:"selected_template"`
}

// PlannerResult is the planner stage's decoded output: a structural outline
// plus the fact-finding queries the retrieval stage should answer.
type PlannerResult struct {
	CaptionPlan string   `json:"caption_plan"`
	Queries     []string `json:"query"`
}

// RAGResult is the set of search snippets retrieved for one query.
type RAGResult struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

// Bundle collects every stage's output for the caller; intermediate results
// are surfaced for observability, not hidden.
type Bundle struct {
	TemplateSelector SelectorResult `json:"template_selector"`
	CaptionPlanner   PlannerResult  `json:"caption_planner"`
	RAGResults       []RAGResult    `json:"rag_results"`
	FinalCaption     string         `json:"final_caption"`
}

// Generator is the structured-generation dependency of the stages.
// *models.Client satisfies it.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, history []models.ChatMessage) (string, error)
	GenerateJSON(ctx context.Context, prompt string, history []models.ChatMessage) (json.RawMessage, error)
}

// Searcher is the web search dependency of the retrieval stage.
// *search.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Result, error)
}

// PageFetcher optionally enriches retrieval snippets with page text.
// *scraper.Scraper satisfies it.
type PageFetcher interface {
	PageText(url string) (string, error)
}
