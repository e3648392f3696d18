package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aikawa-h/instapipe/utils/config"
	"github.com/aikawa-h/instapipe/utils/models"
	"github.com/aikawa-h/instapipe/utils/template"
)

var (
	captionFile         string
	templateCatalogPath string
	templateModel       string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Extract a reusable template from an example caption",
	Long: `Analyze an existing caption and extract a generalized template
(structure, writing style, hashtag pattern), then append it to the catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		caption, err := os.ReadFile(captionFile)
		if err != nil {
			return fmt.Errorf("error reading caption file: %w", err)
		}

		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil {
			return err
		}

		client, err := models.NewClient(envConfig, templateModel)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		spin := newSpinner()
		spin.Start("Extracting template")
		tmpl, err := template.Extract(ctx, client, string(caption))
		spin.Stop()
		if err != nil {
			return err
		}

		catalog, err := template.LoadCatalog(templateCatalogPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			catalog = template.Catalog{}
		}
		catalog.Categories = append(catalog.Categories, tmpl)

		if err := template.SaveCatalog(templateCatalogPath, catalog); err != nil {
			return err
		}

		fmt.Printf("Template %q added to %s\n", tmpl.Name, templateCatalogPath)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVar(&captionFile, "caption-file", "", "file containing the example caption (required)")
	templateCmd.Flags().StringVar(&templateCatalogPath, "templates", "templates.yaml", "template catalog file")
	templateCmd.Flags().StringVar(&templateModel, "model", "", "model name (defaults to "+models.DefaultModel+")")
	templateCmd.MarkFlagRequired("caption-file")
	rootCmd.AddCommand(templateCmd)
}
