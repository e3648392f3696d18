package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Model represents a single model configuration
type Model struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Provider represents a model provider's configuration
type Provider struct {
	APIKey string  `yaml:"api_key"`
	Models []Model `yaml:"models"`
}

// SearchConfig holds credentials for the Google Programmable Search engine
// used by the retrieval stage.
type SearchConfig struct {
	APIKey   string `yaml:"api_key"`
	EngineID string `yaml:"engine_id"`
}

// StorageConfig holds the GCS bucket used for staging carousel images.
type StorageConfig struct {
	Bucket string `yaml:"bucket"`
}

// InstagramConfig holds the Graph API credentials for publishing.
type InstagramConfig struct {
	UserID      string `yaml:"user_id"`
	AccessToken string `yaml:"access_token"`
	APIVersion  string `yaml:"api_version"`
}

// EnvConfig represents the complete environment configuration
type EnvConfig struct {
	Providers map[string]*Provider `yaml:"providers"`
	Search    SearchConfig         `yaml:"search"`
	Storage   StorageConfig        `yaml:"storage"`
	Instagram InstagramConfig      `yaml:"instagram"`
}

// ConfigurationError reports a required credential or setting that is absent
// at startup, before any pipeline stage runs.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// Verbose indicates whether verbose logging is enabled
var Verbose bool

// DebugLog prints debug information if verbose mode is enabled
func DebugLog(format string, args ...interface{}) {
	if Verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

// GetEnvPath returns the environment file path from INSTAPIPE_ENV or the default
func GetEnvPath() string {
	if envPath := os.Getenv("INSTAPIPE_ENV"); envPath != "" {
		DebugLog("Using environment file from INSTAPIPE_ENV: %s", envPath)
		return envPath
	}
	DebugLog("Using default environment file: .instapipe.env")
	return ".instapipe.env"
}

// LoadEnvConfig loads the environment configuration from a yaml file
func LoadEnvConfig(path string) (*EnvConfig, error) {
	DebugLog("Attempting to load environment configuration from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		DebugLog("Error reading environment file: %v", err)
		return nil, fmt.Errorf("error reading env file: %w", err)
	}

	var config EnvConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		DebugLog("Error parsing environment file: %v", err)
		return nil, fmt.Errorf("error parsing env file: %w", err)
	}

	DebugLog("Successfully loaded environment configuration")
	return &config, nil
}

// SaveEnvConfig saves the environment configuration to a yaml file
func SaveEnvConfig(path string, config *EnvConfig) error {
	DebugLog("Attempting to save environment configuration to: %s", path)

	data, err := yaml.Marshal(config)
	if err != nil {
		DebugLog("Error marshaling environment config: %v", err)
		return fmt.Errorf("error marshaling env config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		DebugLog("Error writing environment file: %v", err)
		return fmt.Errorf("error writing env file: %w", err)
	}

	DebugLog("Successfully saved environment configuration")
	return nil
}

// GetProviderConfig retrieves configuration for a specific provider
func (c *EnvConfig) GetProviderConfig(providerName string) (*Provider, error) {
	provider, exists := c.Providers[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found in configuration", providerName)
	}
	if provider == nil {
		return nil, fmt.Errorf("provider %s configuration is nil", providerName)
	}
	return provider, nil
}

// AddProvider adds or updates a provider configuration
func (c *EnvConfig) AddProvider(name string, provider Provider) {
	if c.Providers == nil {
		c.Providers = make(map[string]*Provider)
	}
	providerCopy := provider
	c.Providers[name] = &providerCopy
}

// AddModelToProvider adds a model to a specific provider
func (c *EnvConfig) AddModelToProvider(providerName string, model Model) error {
	provider, exists := c.Providers[providerName]
	if !exists {
		return fmt.Errorf("provider %s not found", providerName)
	}

	for _, m := range provider.Models {
		if m.Name == model.Name {
			return fmt.Errorf("model %s already exists for provider %s", model.Name, providerName)
		}
	}

	provider.Models = append(provider.Models, model)
	return nil
}

// GetModelConfig retrieves configuration for a specific model
func (c *EnvConfig) GetModelConfig(providerName, modelName string) (*Model, error) {
	provider, err := c.GetProviderConfig(providerName)
	if err != nil {
		return nil, err
	}

	for _, model := range provider.Models {
		if model.Name == modelName {
			return &model, nil
		}
	}

	return nil, fmt.Errorf("model %s not found for provider %s", modelName, providerName)
}

// UpdateAPIKey updates the API key for a specific provider
func (c *EnvConfig) UpdateAPIKey(providerName, apiKey string) error {
	provider, exists := c.Providers[providerName]
	if !exists {
		return fmt.Errorf("provider %s not found", providerName)
	}

	provider.APIKey = apiKey
	return nil
}

// ValidateSearch checks that the retrieval stage credentials are present.
func (c *EnvConfig) ValidateSearch() error {
	if c.Search.APIKey == "" {
		return &ConfigurationError{Key: "search.api_key"}
	}
	if c.Search.EngineID == "" {
		return &ConfigurationError{Key: "search.engine_id"}
	}
	return nil
}

// ValidatePublish checks that the storage and Graph API credentials are present.
func (c *EnvConfig) ValidatePublish() error {
	if c.Storage.Bucket == "" {
		return &ConfigurationError{Key: "storage.bucket"}
	}
	if c.Instagram.UserID == "" {
		return &ConfigurationError{Key: "instagram.user_id"}
	}
	if c.Instagram.AccessToken == "" {
		return &ConfigurationError{Key: "instagram.access_token"}
	}
	return nil
}

// GraphAPIVersion returns the configured Graph API version or the default.
func (c *EnvConfig) GraphAPIVersion() string {
	if c.Instagram.APIVersion != "" {
		return c.Instagram.APIVersion
	}
	return "v24.0"
}
