// Package main provides the seo_agent command line: article quality analysis,
// ingestion, keyword extraction and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath      string
	verbose         bool
	logLevel        string
	logFormat       string
	publisherDomain string
)

var rootCmd = &cobra.Command{
	Use:   "seo_agent",
	Short: "Article content-quality analyzer",
	Long: `seo_agent scores news articles for readability, depth, engagement and SEO health,
lists the issues that block publishing and recommends fixes.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print a human-readable summary and debug logs")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (text or json)")
	flags.StringVar(&publisherDomain, "publisher-domain", "", "Domain whose links count as internal (default thedailystar.net)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
