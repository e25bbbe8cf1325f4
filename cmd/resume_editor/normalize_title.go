package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/llm"
	"github.com/jonathan/resume-editor/internal/titles"
)

var normalizeTitleAPIKey string

var normalizeTitleCmd = &cobra.Command{
	Use:   "normalize-title <title>",
	Short: "Map a free-form job title to standard titles",
	Long:  "Ask the language model for up to three standard job titles matching the given title and print one per line.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalizeTitle,
}

func init() {
	normalizeTitleCmd.Flags().StringVar(&normalizeTitleAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.AddCommand(normalizeTitleCmd)
}

func runNormalizeTitle(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	apiKey := normalizeTitleAPIKey
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return printTitles(ctx, cmd, titles.NewNormalizer(client, titles.WithLogger(logger)), strings.Join(args, " "))
}

func printTitles(ctx context.Context, cmd *cobra.Command, n *titles.Normalizer, title string) error {
	terms, err := n.Normalize(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to normalize title: %w", err)
	}
	for _, term := range terms {
		fmt.Fprintln(cmd.OutOrStdout(), term)
	}
	return nil
}
