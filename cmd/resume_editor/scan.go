package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/ingestion"
	"github.com/jonathan/resume-editor/internal/keywords"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a resume for keywords missing from a job description",
	Long:  "Extract keywords from a job description (plain text or HTML), count them in the resume and report matched and missing keywords with placement suggestions.",
	RunE:  runScan,
}

var (
	scanResumeFile  string
	scanJobFile     string
	scanJSON        bool
	scanMaxKeywords int
	scanVerbose     bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanResumeFile, "resume", "r", "", "Path to the resume text (required)")
	scanCmd.Flags().StringVarP(&scanJobFile, "job", "j", "", "Path to the job description, text or HTML (required)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the result as JSON")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Show how the inputs were read and group missing keywords by category")
	scanCmd.Flags().IntVar(&scanMaxKeywords, "max-keywords", 0, "Score at most this many keywords (overrides config)")

	if err := scanCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	if err := scanCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	resume, err := ingestion.FromFile(scanResumeFile)
	if err != nil {
		return err
	}
	job, err := ingestion.FromFile(scanJobFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(job.Text) == "" {
		return fmt.Errorf("job description %s is empty", scanJobFile)
	}

	opts := keywords.Options{MaxKeywords: cfg.Scan.MaxKeywords}
	if cmd.Flags().Changed("max-keywords") {
		opts.MaxKeywords = scanMaxKeywords
	}
	result := keywords.ScanResumeWithOptions(resume.Text, job.Text, opts)

	if scanVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintDocument("resume", resume)
		printer.PrintDocument("job description", job)
		printer.PrintMissingKeywords(result)
	}

	if scanJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printReport(cmd.OutOrStdout(), result)
	return nil
}

// printReport writes a human readable scan report. Colors are dropped automatically when
// the output is not a terminal.
func printReport(w io.Writer, result types.ScanResult) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	scoreColor := red
	switch {
	case result.MatchPercentage >= 75:
		scoreColor = green
	case result.MatchPercentage >= 50:
		scoreColor = color.New(color.FgYellow)
	}

	bold.Fprint(w, "Keyword match: ")
	scoreColor.Fprintf(w, "%d%%", result.MatchPercentage)
	fmt.Fprintf(w, " (%d of %d keywords)\n", result.MatchedCount, result.TotalKeywords)

	if result.TotalKeywords == 0 {
		faint.Fprintln(w, "No keywords found in the job description.")
		return
	}

	if len(result.Matched) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Matched")
		for _, kw := range result.Matched {
			green.Fprint(w, "  ✓ ")
			fmt.Fprintf(w, "%s", kw.Term)
			faint.Fprintf(w, " ×%d\n", kw.Count)
		}
	}

	if len(result.Missing) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Missing")
		for _, kw := range result.Missing {
			red.Fprint(w, "  ✗ ")
			fmt.Fprintf(w, "%s", kw.Term)
			faint.Fprintf(w, " [%s]\n", kw.Category)
			fmt.Fprintf(w, "      %s\n", kw.Suggestion)
			if len(kw.Related) > 0 {
				faint.Fprintf(w, "      did you mean: %s\n", strings.Join(kw.Related, ", "))
			}
		}
	}
}
