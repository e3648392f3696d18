package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aikawa-h/instapipe/utils/config"
	"github.com/aikawa-h/instapipe/utils/publish"
)

var imagePaths []string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Generate a caption and publish an Instagram carousel",
	Long: `Run the caption pipeline, upload the given images to the staging
bucket, and publish them as a single carousel post with the generated
caption.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envConfig, err := config.LoadEnvConfig(config.GetEnvPath())
		if err != nil {
			return err
		}
		if err := envConfig.ValidatePublish(); err != nil {
			return err
		}

		bundle, err := runPipeline()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		bucket, err := publish.NewBucket(ctx, envConfig.Storage.Bucket)
		if err != nil {
			return err
		}
		defer bucket.Close()

		graph, err := publish.NewGraphClient(envConfig.Instagram, envConfig.GraphAPIVersion(), nil)
		if err != nil {
			return err
		}

		publisher := publish.NewPublisher(bucket, graph)

		spin := newSpinner()
		spin.Start(fmt.Sprintf("Publishing carousel with %d image(s)", len(imagePaths)))
		publishedID, err := publisher.PostCarousel(ctx, imagePaths, bundle.FinalCaption)
		spin.Stop()
		if err != nil {
			return err
		}

		fmt.Printf("Published: %s\n%s\n", publishedID, bundle.FinalCaption)
		return nil
	},
}

func init() {
	addPipelineFlags(postCmd)
	postCmd.Flags().StringArrayVar(&imagePaths, "image", nil, "image file to include (repeatable, required)")
	postCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(postCmd)
}
