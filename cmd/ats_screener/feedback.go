package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmorrow/compliant-ats/internal/feedback"
	"github.com/jmorrow/compliant-ats/internal/ingestion"
)

var (
	feedbackJobFile   string
	feedbackResume    string
	feedbackOutputTxt string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Draft rejection feedback for a candidate",
	Long:  "Generate a compliance-constrained rejection feedback draft for a candidate against a job description. The draft is written to stdout (or a file) for mandatory human review; it is never sent anywhere.",
	RunE:  runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVarP(&feedbackJobFile, "job", "j", "", "Path to text file containing the job description (required)")
	feedbackCmd.Flags().StringVarP(&feedbackResume, "resume", "r", "", "Path to text file containing the candidate's cleaned resume (required)")
	feedbackCmd.Flags().StringVarP(&feedbackOutputTxt, "out", "o", "", "Write the draft to this file instead of stdout")

	feedbackCmd.MarkFlagRequired("job")
	feedbackCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	jobDescription, err := ingestion.FromFile(feedbackJobFile)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}
	candidateText, err := ingestion.FromFile(feedbackResume)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	draft, err := feedback.New(client).Generate(ctx, jobDescription, candidateText)
	if err != nil {
		return fmt.Errorf("feedback generation failed: %w", err)
	}

	if len(draft.Violations) > 0 {
		fmt.Fprintf(os.Stderr, "WARNING: draft contains flagged terms: %v\n", draft.Violations)
	}

	if feedbackOutputTxt != "" {
		if err := os.WriteFile(feedbackOutputTxt, []byte(draft.Body+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write draft: %w", err)
		}
		fmt.Printf("Draft written to %s (review before sending)\n", feedbackOutputTxt)
		return nil
	}

	fmt.Println(draft.Body)
	return nil
}
