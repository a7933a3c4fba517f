package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/seo-analyzer/internal/fetch"
	"github.com/jonathan/seo-analyzer/internal/keywords"
	"github.com/jonathan/seo-analyzer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing POST /analyze, POST /analyze/stream and POST /keywords.

Keyword extraction is enabled when an API key is configured; otherwise /keywords answers 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	addLLMFlags(serveCmd)
	addBrowserFlag(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		e.cfg.Port = servePort
	}

	cfg := server.Config{
		Port:       e.cfg.Port,
		Analyzer:   e.analyzer(),
		UseBrowser: e.cfg.UseBrowser,
		Logger:     e.logger,
		Fetcher: fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{
			CacheTTL: e.cfg.CacheTTL(),
		}),
	}

	if e.cfg.APIKey != "" {
		extractor, client, err := e.keywordExtractor(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close LLM client: %v\n", err)
			}
		}()
		cfg.Keywords = keywords.NewCachedExtractor(extractor, e.cfg.CacheTTL())
	} else {
		e.logger.Warn("no API key configured, keyword extraction is disabled")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(cmd.Context())
}
