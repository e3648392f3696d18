package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aikawa-h/instapipe/utils/models"
)

// writerPayload is everything the writer stage sees: the user's request, the
// planner's outline and the retrieved snippets.
type writerPayload struct {
	BusinessType string      `json:"business_type"`
	Title        string      `json:"title"`
	Direction    string      `json:"direction"`
	CaptionPlan  string      `json:"caption_plan"`
	RAGResults   []RAGResult `json:"rag_results"`
}

// runWriter synthesizes the final caption as free text. The template's
// writing style is looked up by name and embedded into the instruction
// prompt; a missing template or style fails before the model call.
func (p *Pipeline) runWriter(ctx context.Context, input UserInput, selected string, plan string, ragResults []RAGResult) (string, error) {
	style, err := p.catalog.WritingStyleFor(selected)
	if err != nil {
		return "", err
	}

	styleJSON, err := json.MarshalIndent(style, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding writing style: %w", err)
	}

	prompt := strings.Replace(writerPrompt, "{{STYLE}}", string(styleJSON), 1)

	payload, err := json.Marshal(writerPayload{
		BusinessType: input.BusinessType,
		Title:        input.Title,
		Direction:    input.Direction,
		CaptionPlan:  plan,
		RAGResults:   ragResults,
	})
	if err != nil {
		return "", fmt.Errorf("error encoding writer payload: %w", err)
	}

	caption, err := p.gen.GenerateText(ctx, string(payload), []models.ChatMessage{
		{Role: models.RoleSystem, Content: prompt},
	})
	if err != nil {
		return "", err
	}

	p.debugf("writer produced caption of %d characters", len(caption))
	return caption, nil
}
