package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aikawa-h/instapipe/utils/config"
)

// ModelOutputError reports a model reply that failed to parse as JSON in
// JSON mode. Raw carries the offending text for diagnosis.
type ModelOutputError struct {
	Raw string
	Err error
}

func (e *ModelOutputError) Error() string {
	return fmt.Sprintf("model response was not valid JSON: %s", e.Raw)
}

func (e *ModelOutputError) Unwrap() error {
	return e.Err
}

// Client wraps a configured provider and model for structured generation.
// Text and JSON calls carry separate sampling defaults.
type Client struct {
	provider Provider
	model    string
	textCfg  ModelConfig
	jsonCfg  ModelConfig
	verbose  bool
}

// NewClient resolves the provider for modelName, configures it with the API
// key from envConfig, and returns a ready client. An empty modelName selects
// the default model.
func NewClient(envConfig *config.EnvConfig, modelName string) (*Client, error) {
	if modelName == "" {
		modelName = DefaultModel
	}

	provider := DetectProvider(modelName)
	if provider == nil {
		return nil, fmt.Errorf("unsupported model: %s (no provider found)", modelName)
	}

	providerConfig, err := envConfig.GetProviderConfig(provider.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to get config for provider %s: %w", provider.Name(), err)
	}
	if providerConfig.APIKey == "" {
		return nil, &config.ConfigurationError{Key: fmt.Sprintf("providers.%s.api_key", provider.Name())}
	}

	if err := provider.Configure(providerConfig.APIKey); err != nil {
		return nil, fmt.Errorf("failed to configure provider %s: %w", provider.Name(), err)
	}
	provider.SetVerbose(config.Verbose)

	return &Client{
		provider: provider,
		model:    modelName,
		textCfg:  ModelConfig{Temperature: DefaultTextTemperature},
		jsonCfg:  ModelConfig{Temperature: DefaultJSONTemperature},
		verbose:  config.Verbose,
	}, nil
}

// Model returns the model name this client sends to.
func (c *Client) Model() string {
	return c.model
}

// SetMaxTokens caps reply length for both text and JSON calls.
func (c *Client) SetMaxTokens(maxTokens int) {
	c.textCfg.MaxTokens = maxTokens
	c.jsonCfg.MaxTokens = maxTokens
}

// SetTemperatures overrides the text and JSON sampling temperatures.
func (c *Client) SetTemperatures(text, jsonMode float64) {
	c.textCfg.Temperature = text
	c.jsonCfg.Temperature = jsonMode
}

// GenerateText sends the prompt and history to the model and returns the
// trimmed free-text reply.
func (c *Client) GenerateText(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	messages, err := BuildMessages(prompt, history)
	if err != nil {
		return "", err
	}

	reply, err := c.provider.SendChat(ctx, c.model, messages, c.textCfg)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

// GenerateJSON sends the prompt with a JSON-object constraint and returns the
// validated raw JSON reply. A reply that does not parse as JSON yields a
// *ModelOutputError carrying the offending text.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, history []ChatMessage) (json.RawMessage, error) {
	raw, err := c.GenerateJSONString(ctx, prompt, history)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(raw)) {
		return nil, &ModelOutputError{Raw: raw}
	}

	return json.RawMessage(raw), nil
}

// GenerateJSONString is GenerateJSON without the parse step, for callers that
// want the unparsed reply.
func (c *Client) GenerateJSONString(ctx context.Context, prompt string, history []ChatMessage) (string, error) {
	messages, err := BuildMessages(prompt, history)
	if err != nil {
		return "", err
	}

	reply, err := c.provider.SendChatJSON(ctx, c.model, messages, c.jsonCfg)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}
