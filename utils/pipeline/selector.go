package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aikawa-h/instapipe/utils/models"
)

// runSelector chooses one template name from the catalog. The reduced
// catalog view keeps the prompt small: only name and caption_structure
// matter for selection. The chosen name is not verified here; the planner's
// lookup is the validation point, so an absent or bogus name surfaces there.
func (p *Pipeline) runSelector(ctx context.Context, input UserInput) (SelectorResult, error) {
	reduced, err := p.catalog.Reduce([]string{"name", "caption_structure"})
	if err != nil {
		return SelectorResult{}, err
	}

	templatesJSON, err := json.MarshalIndent(reduced, "", "  ")
	if err != nil {
		return SelectorResult{}, fmt.Errorf("error encoding reduced catalog: %w", err)
	}

	prompt := strings.Replace(selectorPrompt, "{{TEMPLATES}}", string(templatesJSON), 1)

	payload, err := json.Marshal(input)
	if err != nil {
		return SelectorResult{}, fmt.Errorf("error encoding user input: %w", err)
	}

	raw, err := p.gen.GenerateJSON(ctx, string(payload), []models.ChatMessage{
		{Role: models.RoleSystem, Content: prompt},
	})
	if err != nil {
		return SelectorResult{}, err
	}

	var result SelectorResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return SelectorResult{}, &models.ModelOutputError{Raw: string(raw), Err: err}
	}

	p.debugf("selector chose template: %q", result.SelectedTemplate)
	return result, nil
}
