package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GoogleProvider handles Google AI (Gemini) family of models
type GoogleProvider struct {
	apiKey  string
	verbose bool
}

// NewGoogleProvider creates a new Google provider instance
func NewGoogleProvider() *GoogleProvider {
	return &GoogleProvider{}
}

// Name returns the provider name
func (g *GoogleProvider) Name() string {
	return "google"
}

// debugf prints debug information if verbose mode is enabled
func (g *GoogleProvider) debugf(format string, args ...interface{}) {
	if g.verbose {
		fmt.Printf("[DEBUG][Google] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by Google
func (g *GoogleProvider) SupportsModel(modelName string) bool {
	return strings.HasPrefix(strings.ToLower(modelName), "gemini-")
}

// Configure sets up the provider with necessary credentials
func (g *GoogleProvider) Configure(apiKey string) error {
	g.debugf("Configuring Google provider")
	if apiKey == "" {
		return fmt.Errorf("API key is required for Google provider")
	}
	g.apiKey = apiKey
	g.debugf("API key configured successfully")
	return nil
}

// SetVerbose enables or disables verbose mode
func (g *GoogleProvider) SetVerbose(verbose bool) {
	g.verbose = verbose
}

// SendChat sends the message sequence to the specified model and returns the text reply
func (g *GoogleProvider) SendChat(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error) {
	return g.send(ctx, modelName, messages, config, false)
}

// SendChatJSON sends the message sequence with a JSON-object response constraint
func (g *GoogleProvider) SendChatJSON(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error) {
	return g.send(ctx, modelName, messages, config, true)
}

func (g *GoogleProvider) send(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig, jsonMode bool) (string, error) {
	g.debugf("Preparing to send %d message(s) to model: %s (jsonMode=%v)", len(messages), modelName, jsonMode)

	if g.apiKey == "" {
		return "", fmt.Errorf("Google provider not configured: missing API key")
	}

	if !g.SupportsModel(modelName) {
		return "", fmt.Errorf("invalid Google model: %s", modelName)
	}

	if len(messages) == 0 {
		return "", fmt.Errorf("no messages to send")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Google AI client: %v", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(config.Temperature))
	if config.TopP > 0 {
		model.SetTopP(float32(config.TopP))
	}
	if config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(config.MaxTokens))
	}
	if jsonMode {
		model.ResponseMIMEType = "application/json"
	}

	// System turns become the model's system instruction; the rest of the
	// history maps onto Gemini chat roles (assistant -> model).
	var systemParts []string
	var history []*genai.Content
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case RoleSystem:
			systemParts = append(systemParts, m.Content)
		case RoleAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})
		}
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(strings.Join(systemParts, "\n\n"))},
		}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(messages[len(messages)-1].Content))
	if err != nil {
		return "", fmt.Errorf("Google AI API error: %v", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned from Google AI")
	}

	var response string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			response += string(text)
		}
	}

	g.debugf("API call completed, response length: %d characters", len(response))

	return response, nil
}
