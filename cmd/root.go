package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aikawa-h/instapipe/utils/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "instapipe",
	Short: "An Instagram caption pipeline and carousel publisher",
	Long: `instapipe chains template selection, caption planning, web retrieval
and caption writing into a single pipeline, and can publish the result as an
Instagram carousel.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Verbose = verbose
		// A plain dotenv file may carry OS-level settings such as
		// GOOGLE_APPLICATION_CREDENTIALS; absence is fine.
		_ = godotenv.Load()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
