package models

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// jsonOnlySystemPrompt pins JSON-mode replies to a single object with no prose.
const jsonOnlySystemPrompt = "You are a strict JSON responder. Reply with a single JSON object and nothing else."

// OpenAIProvider handles OpenAI family of models
type OpenAIProvider struct {
	apiKey  string
	verbose bool
}

// NewOpenAIProvider creates a new OpenAI provider instance
func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

// Name returns the provider name
func (o *OpenAIProvider) Name() string {
	return "openai"
}

// debugf prints debug information if verbose mode is enabled
func (o *OpenAIProvider) debugf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Printf("[DEBUG][OpenAI] "+format+"\n", args...)
	}
}

// SupportsModel checks if the given model name is supported by OpenAI
func (o *OpenAIProvider) SupportsModel(modelName string) bool {
	o.debugf("Checking if model is supported: %s", modelName)
	modelName = strings.ToLower(modelName)

	// Accept any model name that starts with our known prefixes
	validPrefixes := []string{
		"gpt-",
		"o1-",
		"o3-",
		"o4-",
	}

	for _, prefix := range validPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			o.debugf("Model %s is supported (matches prefix %s)", modelName, prefix)
			return true
		}
	}

	o.debugf("Model %s is not supported (no matching prefix)", modelName)
	return false
}

// Configure sets up the provider with necessary credentials
func (o *OpenAIProvider) Configure(apiKey string) error {
	o.debugf("Configuring OpenAI provider")
	if apiKey == "" {
		return fmt.Errorf("API key is required for OpenAI provider")
	}
	o.apiKey = apiKey
	o.debugf("API key configured successfully")
	return nil
}

// SetVerbose enables or disables verbose mode
func (o *OpenAIProvider) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// createChatCompletionRequest creates a ChatCompletionRequest with the appropriate parameters
func (o *OpenAIProvider) createChatCompletionRequest(modelName string, messages []ChatMessage, config ModelConfig) openai.ChatCompletionRequest {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	req := openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    chatMessages,
		Temperature: float32(config.Temperature),
	}
	if config.MaxTokens > 0 {
		req.MaxTokens = config.MaxTokens
	}
	if config.TopP > 0 {
		req.TopP = float32(config.TopP)
	}

	o.debugf("Request parameters: Temperature=%.2f, MaxTokens=%d, TopP=%.2f",
		config.Temperature, config.MaxTokens, config.TopP)

	return req
}

// SendChat sends the message sequence to the specified model and returns the text reply
func (o *OpenAIProvider) SendChat(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error) {
	return o.send(ctx, modelName, messages, config, false)
}

// SendChatJSON sends the message sequence with a JSON-object response constraint
func (o *OpenAIProvider) SendChatJSON(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig) (string, error) {
	return o.send(ctx, modelName, messages, config, true)
}

func (o *OpenAIProvider) send(ctx context.Context, modelName string, messages []ChatMessage, config ModelConfig, jsonMode bool) (string, error) {
	o.debugf("Preparing to send %d message(s) to model: %s (jsonMode=%v)", len(messages), modelName, jsonMode)

	if o.apiKey == "" {
		return "", fmt.Errorf("OpenAI provider not configured: missing API key")
	}

	if !o.SupportsModel(modelName) {
		return "", fmt.Errorf("invalid OpenAI model: %s", modelName)
	}

	client := openai.NewClient(o.apiKey)

	if jsonMode {
		messages = append([]ChatMessage{{Role: RoleSystem, Content: jsonOnlySystemPrompt}}, messages...)
	}

	req := o.createChatCompletionRequest(modelName, messages, config)
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %v", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned from OpenAI")
	}

	response := resp.Choices[0].Message.Content
	o.debugf("API call completed, response length: %d characters", len(response))

	return response, nil
}
