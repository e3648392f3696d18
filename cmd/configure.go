package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aikawa-h/instapipe/utils/config"
)

var listFlag bool

// readSecret reads a credential without echoing when stdin is a terminal.
func readSecret(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure provider, search and publishing credentials",
	Long:  `Configure model providers, the search engine, and the Instagram/GCS publishing credentials`,
	Run: func(cmd *cobra.Command, args []string) {
		if listFlag {
			listConfiguration()
			return
		}

		reader := bufio.NewReader(os.Stdin)
		configPath := config.GetEnvPath()

		cfg, err := config.LoadEnvConfig(configPath)
		if err != nil {
			cfg = &config.EnvConfig{Providers: make(map[string]*config.Provider)}
		}

		var section string
		for {
			section = readLine(reader, "Configure section (openai/google/search/instagram/storage): ")
			switch section {
			case "openai", "google", "search", "instagram", "storage":
			default:
				fmt.Println("Invalid section. Please enter 'openai', 'google', 'search', 'instagram', or 'storage'")
				continue
			}
			break
		}

		switch section {
		case "openai", "google":
			apiKey := readSecret(reader, "Enter API key: ")
			if _, exists := cfg.Providers[section]; exists {
				cfg.UpdateAPIKey(section, apiKey)
			} else {
				cfg.AddProvider(section, config.Provider{APIKey: apiKey})
			}

			modelName := readLine(reader, "Enter model name: ")
			if modelName != "" {
				if err := cfg.AddModelToProvider(section, config.Model{Name: modelName, Type: "external"}); err != nil {
					fmt.Printf("Note: %v\n", err)
				}
			}
		case "search":
			cfg.Search.APIKey = readSecret(reader, "Enter search API key: ")
			cfg.Search.EngineID = readLine(reader, "Enter search engine id: ")
		case "instagram":
			cfg.Instagram.UserID = readLine(reader, "Enter Instagram user id: ")
			cfg.Instagram.AccessToken = readSecret(reader, "Enter access token: ")
		case "storage":
			cfg.Storage.Bucket = readLine(reader, "Enter GCS bucket name: ")
		}

		if dir := filepath.Dir(configPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Printf("Error creating directory: %v\n", err)
				return
			}
		}

		if err := config.SaveEnvConfig(configPath, cfg); err != nil {
			fmt.Printf("Error writing configuration: %v\n", err)
			return
		}

		fmt.Printf("Configuration saved successfully to %s!\n", configPath)
	},
}

func listConfiguration() {
	configPath := config.GetEnvPath()
	cfg, err := config.LoadEnvConfig(configPath)
	if err != nil {
		fmt.Printf("No configuration found at %s\n", configPath)
		return
	}

	fmt.Printf("Configuration from %s:\n\n", configPath)

	if len(cfg.Providers) == 0 {
		fmt.Println("No providers configured.")
	} else {
		fmt.Println("Configured Providers:")
		for provider, data := range cfg.Providers {
			fmt.Printf("\n%s:\n", provider)
			if len(data.Models) == 0 {
				fmt.Println("  No models configured")
				continue
			}
			for _, model := range data.Models {
				fmt.Printf("  - %s (%s)\n", model.Name, model.Type)
			}
		}
	}

	fmt.Println()
	if cfg.Search.EngineID != "" {
		fmt.Printf("Search engine: %s\n", cfg.Search.EngineID)
	}
	if cfg.Instagram.UserID != "" {
		fmt.Printf("Instagram user: %s\n", cfg.Instagram.UserID)
	}
	if cfg.Storage.Bucket != "" {
		fmt.Printf("Storage bucket: %s\n", cfg.Storage.Bucket)
	}
}

func init() {
	configureCmd.Flags().BoolVar(&listFlag, "list", false, "List the configured providers and credentials")
	rootCmd.AddCommand(configureCmd)
}
