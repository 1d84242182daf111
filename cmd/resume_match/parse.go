package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/types"
)

func newParseCmd() *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		outFile    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a résumé or job posting into structured JSON",
		Long: `Parse a résumé (plain text or HTML export) into a CandidateProfile, or a job
posting into a JobProfile. HTML input keeps hyperlink targets that are not
visible in the text.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (resumeFile == "") == (jobFile == "") {
				return fmt.Errorf("exactly one of --resume or --job is required")
			}

			var result any
			printer := observability.NewReportPrinter(cmd.OutOrStdout())
			var print func()
			if resumeFile != "" {
				doc, err := ingestion.FromFile(resumeFile)
				if err != nil {
					return err
				}
				profile := parsing.ParseResume(doc.Text, doc.HiddenLinks...)
				result = profile
				print = func() { printer.PrintCandidate(profile) }
			} else {
				doc, err := ingestion.FromFile(jobFile)
				if err != nil {
					return err
				}
				profile := parsing.ParseJobProfile(doc.Text)
				result = profile
				print = func() { printer.PrintJobProfile(profile) }
			}

			if outFile != "" {
				if err := writeJSONFile(outFile, result); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outFile)
				return nil
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			print()
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to résumé file (.txt, .md or .html)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to job posting file")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a report")
	return cmd
}

// readResume loads a résumé file and returns its cleaned text and hidden links
func readResume(path string) (*ingestion.Document, error) {
	if path == "" {
		return nil, fmt.Errorf("--resume is required")
	}
	return ingestion.FromFile(path)
}

// readDraft loads a previously generated draft
func readDraft(path string) (*types.TailoredDraft, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return llm.DecodeDraft(string(raw))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeJSONFile(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, jsonBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
