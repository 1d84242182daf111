package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

func newQuickScoreCmd() *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "quick-score",
		Short: "Estimate keyword overlap between a résumé and a job posting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resumeFile == "" || jobFile == "" {
				return fmt.Errorf("--resume and --job are required")
			}
			resume, err := os.ReadFile(resumeFile)
			if err != nil {
				return fmt.Errorf("failed to read résumé: %w", err)
			}
			job, err := os.ReadFile(jobFile)
			if err != nil {
				return fmt.Errorf("failed to read job posting: %w", err)
			}

			result := pipeline.New().QuickScore(string(resume), string(job))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			observability.NewReportPrinter(cmd.OutOrStdout()).PrintQuickScore(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to résumé text file")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to job posting text file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a report")
	return cmd
}

func newScoreCmd() *cobra.Command {
	var (
		resumeFile string
		jobFiles   []string
		jobURLs    []string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a résumé against one or more job postings",
		Long: `Score a résumé against job postings given as files (--job) or URLs (--job-url).
Several jobs are scored concurrently.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			doc, err := readResume(resumeFile)
			if err != nil {
				return err
			}

			var jobs []pipeline.JobSource
			for _, path := range jobFiles {
				text, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read job posting: %w", err)
				}
				jobs = append(jobs, pipeline.JobSource{Text: string(text)})
			}
			for _, u := range jobURLs {
				jobs = append(jobs, pipeline.JobSource{URL: u})
			}
			if len(jobs) == 0 {
				return fmt.Errorf("at least one --job or --job-url is required")
			}

			p := pipeline.New(
				pipeline.WithFetcher(a.fetcher()),
				pipeline.WithLogger(a.logger),
			)
			results, err := p.ScoreMany(cmd.Context(), doc.Text, doc.HiddenLinks, jobs)
			if err != nil {
				return err
			}
			a.logger.Debug("scored", zap.Int("jobs", len(results)))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			printer := observability.NewReportPrinter(cmd.OutOrStdout())
			for _, r := range results {
				printer.PrintJobProfile(r.Job)
				printer.PrintScore(r.Result)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to résumé file (.txt, .md or .html)")
	cmd.Flags().StringArrayVarP(&jobFiles, "job", "j", nil, "Path to a job posting file (repeatable)")
	cmd.Flags().StringArrayVar(&jobURLs, "job-url", nil, "Job posting URL (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a report")
	return cmd
}

// cleanJob reads a job posting file into cleaned text
func cleanJob(path string) (string, error) {
	doc, err := ingestion.FromFile(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
