package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

func newTailorCmd() *cobra.Command {
	var (
		resumeFile string
		jobFile    string
		jobURL     string
		draftFile  string
		outFile    string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Generate or clean a tailored résumé draft for a job posting",
		Long: `Tailor runs the full paid path: parse, score, generate a draft and clean it.
Pass --draft to clean an existing draft instead of calling the generator,
which needs an API key (api_key, GEMINI_API_KEY or RESUME_MATCH_API_KEY).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if jobFile == "" && jobURL == "" {
				return fmt.Errorf("one of --job or --job-url is required")
			}
			doc, err := readResume(resumeFile)
			if err != nil {
				return err
			}

			in := pipeline.Input{ResumeText: doc.Text, HiddenLinks: doc.HiddenLinks, JobURL: jobURL}
			if jobFile != "" {
				if in.JobText, err = cleanJob(jobFile); err != nil {
					return err
				}
			}
			if draftFile != "" {
				if in.Draft, err = readDraft(draftFile); err != nil {
					return err
				}
			}

			p, closeFn, err := a.pipeline(cmd.Context(), pipeline.WithProgress(func(e pipeline.ProgressEvent) {
				a.logger.Info(e.Message, zap.String(observability.FieldStep, e.Step))
			}))
			if err != nil {
				return err
			}
			defer closeFn()

			out, err := p.Tailor(cmd.Context(), in)
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := writeJSONFile(outFile, out); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			printer := observability.NewReportPrinter(cmd.OutOrStdout())
			printer.PrintScore(out.Score)
			printer.PrintQualityIssues(out.Issues)
			printer.PrintBoost(out.Boosted, out.RadarBefore, out.RadarAfter)
			if outFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to résumé file (.txt, .md or .html)")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to job posting file")
	cmd.Flags().StringVar(&jobURL, "job-url", "", "Job posting URL")
	cmd.Flags().StringVar(&draftFile, "draft", "", "Existing draft JSON to clean instead of generating one")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the result JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a report")
	cmd.Flags().String("model", "", "Model used for draft generation")
	cmd.Flags().Bool("browser", false, "Render script-heavy job pages with a headless browser")
	return cmd
}
