package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aikawa-h/instapipe/utils/models"
	"github.com/aikawa-h/instapipe/utils/template"
)

// plannerPayload merges the selected template name with the user's input
// fields for the planner call.
type plannerPayload struct {
	SelectedTemplate string `json:"selected_template"`
	BusinessType     string `json:"business_type"`
	Title            string `json:"title"`
	Direction        string `json:"direction"`
}

// runPlanner produces the structural outline and retrieval queries. The
// catalog lookup comes first: it validates the selector's output before any
// model call is made for planning.
func (p *Pipeline) runPlanner(ctx context.Context, input UserInput, selected string) (PlannerResult, error) {
	tmpl, err := p.catalog.Lookup(selected)
	if err != nil {
		return PlannerResult{}, err
	}

	templateJSON, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return PlannerResult{}, fmt.Errorf("error encoding template %s: %w", tmpl.Name, err)
	}

	prompt := strings.Replace(plannerPrompt, "{{TEMPLATE}}", string(templateJSON), 1)

	payload, err := json.Marshal(plannerPayload{
		SelectedTemplate: selected,
		BusinessType:     input.BusinessType,
		Title:            input.Title,
		Direction:        input.Direction,
	})
	if err != nil {
		return PlannerResult{}, fmt.Errorf("error encoding planner payload: %w", err)
	}

	raw, err := p.gen.GenerateJSON(ctx, string(payload), []models.ChatMessage{
		{Role: models.RoleSystem, Content: prompt},
	})
	if err != nil {
		return PlannerResult{}, err
	}

	var result PlannerResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return PlannerResult{}, &models.ModelOutputError{Raw: string(raw), Err: err}
	}

	if result.CaptionPlan == "" {
		return PlannerResult{}, &template.SchemaError{Msg: "planner output missing caption_plan"}
	}
	if result.Queries == nil {
		result.Queries = []string{}
	}

	p.debugf("planner produced %d retrieval query(ies)", len(result.Queries))
	return result, nil
}
