package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jmorrow/compliant-ats/internal/config"
	"github.com/jmorrow/compliant-ats/internal/db"
	"github.com/jmorrow/compliant-ats/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the screening pipeline: ranking uploads, feedback drafting, applicant analysis and run history.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	// Run history is optional: without a database URL the server still
	// ranks and drafts, it just cannot list past runs.
	var database *db.DB
	if databaseURL := config.ResolveDatabaseURL(&cfg); databaseURL != "" {
		database, err = db.Connect(context.Background(), databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			return err
		}
	} else {
		log.Println("DATABASE_URL not set; run history disabled")
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		AuthToken:   cfg.AuthToken,
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
	}, client, database)

	return srv.Start()
}
