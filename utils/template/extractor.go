package template

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aikawa-h/instapipe/utils/models"
)

// extractionPrompt drives the one-shot caption-to-template transform. It is
// a swappable string resource, not control flow.
var extractionPrompt = `You are an Instagram auto-post system's template extraction AI.

Goal: analyze the caption the user supplies and produce a reusable, general
template that does not depend on this specific post.

Rules:
1. caption_structure must use general, universal section labels
   (e.g. intro / description / features / benefits / experience /
   recommendation / closing / hashtags) - never the caption's own text.
2. writing_style must stay general: pick a broad tone category
   (calm & sacred / friendly & supportive / casual / informative /
   energetic / elegant) and generalize emoji_usage, sentence_length,
   formatting and punctuation to match.
3. hashtag_pattern must use only generalized tag categories such as
   #region, #industry, #service, #brand, #related-topic - no post-specific tags.
4. example_structure may follow the input caption, but as a concise outline.
5. example_caption must be the input caption returned verbatim - no edits,
   no additions, no translation.
6. Reply with exactly one JSON object and no surrounding prose:
{
  "name": "<short template name>",
  "caption_structure": ["...", "..."],
  "writing_style": {
      "tone": "",
      "emoji_usage": "",
      "sentence_length": "",
      "formatting": "",
      "punctuation": ""
  },
  "hashtag_pattern": ["...", "..."],
  "example_structure": ["...", "..."],
  "example_caption": "<input caption verbatim>"
}`

// requiredTemplateKeys are the fields an extracted template must carry.
var requiredTemplateKeys = []string{
	"name",
	"caption_structure",
	"writing_style",
	"hashtag_pattern",
	"example_structure",
	"example_caption",
}

// JSONGenerator is the structured-generation dependency of the extractor.
// *models.Client satisfies it.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, history []models.ChatMessage) (json.RawMessage, error)
}

// Extract turns an example caption into a reusable template via a single
// JSON-constrained model call, validating the reply shape before returning.
func Extract(ctx context.Context, gen JSONGenerator, caption string) (Template, error) {
	raw, err := gen.GenerateJSON(ctx, caption, []models.ChatMessage{
		{Role: models.RoleSystem, Content: extractionPrompt},
	})
	if err != nil {
		return Template{}, err
	}

	if err := validateExtracted(raw); err != nil {
		return Template{}, err
	}

	var tmpl Template
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return Template{}, fmt.Errorf("error decoding extracted template: %w", err)
	}

	return tmpl, nil
}

// validateExtracted checks required keys and container shapes, collecting all
// problems into one schema error.
func validateExtracted(raw json.RawMessage) error {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return &SchemaError{Msg: fmt.Sprintf("extracted template is not a JSON object: %v", err)}
	}

	var errors []string
	for _, key := range requiredTemplateKeys {
		if _, ok := data[key]; !ok {
			errors = append(errors, fmt.Sprintf("missing required template field: %s", key))
		}
	}

	listFields := []string{"caption_structure", "hashtag_pattern", "example_structure"}
	for _, field := range listFields {
		value, ok := data[field]
		if !ok {
			continue
		}
		var list []interface{}
		if err := json.Unmarshal(value, &list); err != nil {
			errors = append(errors, fmt.Sprintf("%s must be a list", field))
		}
	}
	if value, ok := data["writing_style"]; ok {
		var style map[string]interface{}
		if err := json.Unmarshal(value, &style); err != nil {
			errors = append(errors, "writing_style must be an object")
		}
	}

	if len(errors) > 0 {
		return &SchemaError{Msg: fmt.Sprintf("invalid extracted template:\n- %s", strings.Join(errors, "\n- "))}
	}
	return nil
}
