package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hykwon-dot/lira-intel/internal/config"
	"github.com/hykwon-dot/lira-intel/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the analysis endpoints: realtime insights, candidate matching, scenario analysis, compliance scanning, and trend snapshots.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		APIKey:      cfg.APIKey,
		LLMTimeout:  time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
