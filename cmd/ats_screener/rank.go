package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmorrow/compliant-ats/internal/config"
	"github.com/jmorrow/compliant-ats/internal/db"
	"github.com/jmorrow/compliant-ats/internal/ingestion"
	"github.com/jmorrow/compliant-ats/internal/pipeline"
	"github.com/jmorrow/compliant-ats/internal/types"
)

var (
	rankJobFile string
	rankJobURL  string
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume files...]",
	Short: "Rank resumes against a job description",
	Long:  "Extract, clean and rank a batch of PDF/DOCX resumes by semantic similarity to a job description. Documents that cannot be processed are reported and skipped without aborting the run.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to text file containing the job description")
	rankCmd.Flags().StringVarP(&rankJobURL, "job-url", "u", "", "URL to fetch the job description from")
	rootCmd.AddCommand(rankCmd)
}

func loadJobDescription(ctx context.Context, jobFile, jobURL string) (string, error) {
	if jobFile == "" && jobURL == "" {
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
	if jobFile != "" && jobURL != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if jobFile != "" {
		return ingestion.FromFile(jobFile)
	}
	return ingestion.FromURL(ctx, jobURL)
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobDescription, err := loadJobDescription(ctx, rankJobFile, rankJobURL)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	docs := make([]types.Document, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		name := filepath.Base(path)
		docs = append(docs, types.Document{
			Name:   name,
			Data:   data,
			Format: types.FormatFromFilename(name),
		})
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	p := pipeline.New(client, &pipeline.Options{
		Concurrency: cfg.Concurrency,
		Verbose:     cfg.Verbose,
	})

	result, err := p.Screen(ctx, jobDescription, docs)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	printScreeningResult(result)

	if databaseURL := config.ResolveDatabaseURL(&cfg); databaseURL != "" {
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to run history database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}
		if err := database.SaveScreeningRun(ctx, result); err != nil {
			return err
		}
		fmt.Printf("\nRun saved: %s\n", result.RunID)
	}

	return nil
}

func printScreeningResult(result *types.ScreeningResult) {
	fmt.Printf("Ranked %d candidate(s):\n", len(result.Ranked))
	for i, rc := range result.Ranked {
		flag := ""
		if rc.NormalizationFailed {
			flag = "  [cleaning failed]"
		}
		fmt.Printf("%3d. %-40s %.4f%s\n", i+1, rc.Name, rc.Score, flag)
	}

	if len(result.Skipped) > 0 {
		fmt.Printf("\nSkipped %d document(s):\n", len(result.Skipped))
		for _, sd := range result.Skipped {
			fmt.Printf("   - %s (%s): %s\n", sd.Name, sd.Stage, sd.Reason)
		}
	}
}
