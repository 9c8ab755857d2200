// File: cmd/analyze.go
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/flowlens-cli/internal/cache"
	"github.com/xkilldash9x/flowlens-cli/internal/config"
	"github.com/xkilldash9x/flowlens-cli/internal/llmclient"
	"github.com/xkilldash9x/flowlens-cli/internal/observability"
	"github.com/xkilldash9x/flowlens-cli/internal/orchestrator"
)

// newAnalyzeCmd creates and configures the `analyze` command.
func newAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [capture files...]",
		Short: "Analyzes recorded flow captures and writes reports",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their Viper keys so command-line flags override
			// config file and environment values.
			if err := viper.BindPFlag("report.output_dir", cmd.Flags().Lookup("output")); err != nil {
				return err
			}
			if err := viper.BindPFlag("report.format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the context passed from main.go (signal-aware).
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg := appConfig
			cfg.Report.OutputDir = viper.GetString("report.output_dir")
			cfg.Report.Format = viper.GetString("report.format")
			cfg.Analyze.Inputs = args
			cfg.Analyze.Concurrency, _ = cmd.Flags().GetInt("concurrency")
			cfg.Analyze.NoCache, _ = cmd.Flags().GetBool("no-cache")
			cfg.Analyze.NoLLM, _ = cmd.Flags().GetBool("no-llm")

			narrator, err := buildNarrator(cfg, logger)
			if err != nil {
				return err
			}
			if narrator == nil {
				logger.Info("Narrative generation disabled; reports will carry metrics only")
			}

			orch, err := orchestrator.New(cfg, logger, narrator)
			if err != nil {
				return err
			}

			results, err := orch.Run(ctx, cfg.Analyze.Inputs)
			if err != nil {
				if errors.Is(err, ctx.Err()) {
					logger.Warn("Analysis aborted by user signal")
				}
				return err
			}

			for _, result := range results {
				fmt.Printf("%s -> %s\n", result.SourceFile, result.OutputFile)
			}
			return nil
		},
	}

	analyzeCmd.Flags().StringP("output", "o", "results", "Directory for generated reports. (Overrides config/env)")
	analyzeCmd.Flags().StringP("format", "f", "markdown", "Report format: 'markdown' or 'html'. (Overrides config/env)")
	analyzeCmd.Flags().IntP("concurrency", "j", 4, "Number of capture files analyzed concurrently")
	analyzeCmd.Flags().Bool("no-cache", false, "Bypass the LLM response cache")
	analyzeCmd.Flags().Bool("no-llm", false, "Skip narrative generation even if an API key is configured")

	return analyzeCmd
}

// buildNarrator wires the Gemini client and response cache, or returns
// nil when narrative generation is off.
func buildNarrator(cfg *config.Config, logger *zap.Logger) (orchestrator.Narrator, error) {
	if cfg.Analyze.NoLLM || !cfg.LLM.Enabled() {
		return nil, nil
	}

	client, err := llmclient.NewGeminiClient(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}

	var responseCache *cache.Cache
	if cfg.Cache.Enabled && !cfg.Analyze.NoCache {
		responseCache, err = cache.New(cfg.Cache.Dir, cfg.Cache.TTL, logger)
		if err != nil {
			return nil, fmt.Errorf("opening response cache: %w", err)
		}
	}

	return llmclient.NewNarrator(client, responseCache, cfg.LLM, logger), nil
}
