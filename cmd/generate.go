package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aikawa-h/instapipe/utils/config"
	"github.com/aikawa-h/instapipe/utils/models"
	"github.com/aikawa-h/instapipe/utils/pipeline"
	"github.com/aikawa-h/instapipe/utils/scraper"
	"github.com/aikawa-h/instapipe/utils/search"
	"github.com/aikawa-h/instapipe/utils/template"
)

var (
	businessType string
	postTitle    string
	direction    string
	catalogPath  string
	modelName    string
	resultLimit  int
	enrichPages  bool
	captionOnly  bool
	runTimeout   time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an Instagram caption",
	Long: `Run the caption pipeline: select a template, plan the caption,
retrieve supporting facts from the web, and write the final caption.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundle, err := runPipeline()
		if err != nil {
			return err
		}

		if captionOnly {
			fmt.Println(bundle.FinalCaption)
			return nil
		}

		out, err := json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding result bundle: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

// runPipeline wires the configured collaborators and runs one caption job.
// Shared by generate and post.
func runPipeline() (*pipeline.Bundle, error) {
	envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
	if err != nil {
		return nil, err
	}

	if err := envConfig.ValidateSearch(); err != nil {
		return nil, err
	}

	catalog, err := template.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}

	client, err := models.NewClient(envConfig, modelName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	searcher, err := search.NewClient(ctx, envConfig.Search)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{ResultLimit: resultLimit}
	if enrichPages {
		opts.Fetcher = scraper.NewScraper()
	}

	p := pipeline.NewPipeline(client, searcher, catalog, opts)

	spin := newSpinner()
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		spin.Disable()
	}
	spin.Start(fmt.Sprintf("Generating caption with %s", client.Model()))
	bundle, err := p.Run(ctx, pipeline.UserInput{
		BusinessType: businessType,
		Title:        postTitle,
		Direction:    direction,
	})
	spin.Stop()

	return bundle, err
}

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&businessType, "business", "", "business description (required)")
	cmd.Flags().StringVar(&postTitle, "title", "", "post title (required)")
	cmd.Flags().StringVar(&direction, "direction", "", "content direction (required)")
	cmd.Flags().StringVar(&catalogPath, "templates", "templates.yaml", "template catalog file")
	cmd.Flags().StringVar(&modelName, "model", "", "model name (defaults to "+models.DefaultModel+")")
	cmd.Flags().IntVar(&resultLimit, "limit", 3, "search results per retrieval query")
	cmd.Flags().BoolVar(&enrichPages, "enrich", false, "fetch top result pages to enrich snippets")
	cmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall pipeline timeout")
	cmd.MarkFlagRequired("business")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("direction")
}

func init() {
	addPipelineFlags(generateCmd)
	generateCmd.Flags().BoolVar(&captionOnly, "caption-only", false, "print only the final caption")
	rootCmd.AddCommand(generateCmd)
}
