package models

import "context"

// Default sampling settings. JSON mode runs cooler to keep structured output
// stable; free text keeps the creative default.
const (
	DefaultModel           = "gpt-5-nano"
	DefaultTextTemperature = 0.7
	DefaultJSONTemperature = 0.2
)

// ModelConfig represents configuration options for model calls
type ModelConfig struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Provider represents a model provider (e.g., OpenAI, Google)
type Provider interface {
	Name() string
	SupportsModel(modelName string) bool
	Configure(apiKey string) error
	SetVerbose(verbose bool)

	// SendChat sends an ordered message sequence and returns the text reply.
	SendChat(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error)

	// SendChatJSON is SendChat constrained to reply with a single JSON object.
	SendChatJSON(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error)
}

// DetectProvider determines the appropriate provider based on the model name
func DetectProvider(modelName string) Provider {
	providers := []Provider{
		NewOpenAIProvider(),
		NewGoogleProvider(),
		// Add other providers here as needed
	}

	for _, provider := range providers {
		if provider.SupportsModel(modelName) {
			return provider
		}
	}
	return nil
}
