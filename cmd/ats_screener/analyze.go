package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmorrow/compliant-ats/internal/extraction"
	"github.com/jmorrow/compliant-ats/internal/normalize"
	"github.com/jmorrow/compliant-ats/internal/rewrite"
	"github.com/jmorrow/compliant-ats/internal/types"
)

var (
	analyzeJobFile string
	analyzeJobURL  string
	analyzeOutFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume file]",
	Short: "Score and rewrite your own resume against a job description",
	Long:  "Applicant mode: compute a semantic fit score between your resume and a job description, then produce a rewrite targeted at that job. The rewrite only reorganizes what the resume already says; it never invents experience.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to text file containing the job description")
	analyzeCmd.Flags().StringVarP(&analyzeJobURL, "job-url", "u", "", "URL to fetch the job description from")
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Write the rewritten resume to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobDescription, err := loadJobDescription(ctx, analyzeJobFile, analyzeJobURL)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)

	resumeText, err := extraction.Extract(types.Document{
		Name:   name,
		Data:   data,
		Format: types.FormatFromFilename(name),
	})
	if err != nil {
		// Plain-text resumes are fine in applicant mode.
		var unsupportedErr *extraction.UnsupportedFormatError
		if !errors.As(err, &unsupportedErr) {
			return fmt.Errorf("failed to extract resume text: %w", err)
		}
		resumeText = string(data)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	cleaned, err := normalize.New(client).Normalize(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("failed to clean resume: %w", err)
	}

	analysis, err := rewrite.New(client).Analyze(ctx, jobDescription, cleaned)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("Fit score: %.1f%%\n", analysis.FitScore*100)

	if analyzeOutFile != "" {
		if err := os.WriteFile(analyzeOutFile, []byte(analysis.RewrittenResume+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write rewrite: %w", err)
		}
		fmt.Printf("Rewritten resume written to %s\n", analyzeOutFile)
		return nil
	}

	fmt.Println()
	fmt.Println(analysis.RewrittenResume)
	return nil
}
