// Package cli provides the commands of the batarikh-mirror binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"batarikh-mirror/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "batarikh-mirror",
	Short: "Read-only web mirror of the Batarikh Telegram archive",
	Long: `batarikh-mirror serves the archived posts of a Telegram channel as a paginated
Persian feed, a JSON API and a sitemap, and proxies PDF downloads from the media host.

Configuration:
  config.yaml is searched from the working directory upwards unless --config is given.
  A .env file next to it is loaded first. Environment variables such as SITE_URL,
  SUPABASE_URL, STORE_DRIVER or RATE_LIMIT_BACKEND override the file.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func loadConfig() (config.AppConfig, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
