// File: internal/orchestrator/orchestrator.go
// Description: Runs the analysis pipeline end to end: parse a capture
// file, compute the behavior report, optionally narrate, render, and
// write the result. Multiple input files run concurrently.

package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/behavior"
	"github.com/xkilldash9x/flowlens-cli/internal/config"
	"github.com/xkilldash9x/flowlens-cli/internal/flowparse"
	"github.com/xkilldash9x/flowlens-cli/internal/llmclient"
	"github.com/xkilldash9x/flowlens-cli/internal/report"
)

// Narrator is the optional narrative stage. A nil Narrator skips it.
type Narrator interface {
	Narrate(ctx context.Context, fc llmclient.FlowContext) (schemas.NarrativeAnalysis, error)
}

// RunResult describes one completed analysis.
type RunResult struct {
	RunID      string
	SourceFile string
	OutputFile string
}

// Orchestrator coordinates the per-file pipeline.
type Orchestrator struct {
	cfg      *config.Config
	logger   *zap.Logger
	analyzer *behavior.Analyzer
	renderer *report.Renderer
	narrator Narrator
}

// New creates an Orchestrator. The narrator may be nil when narrative
// generation is disabled.
func New(cfg *config.Config, logger *zap.Logger, narrator Narrator) (*Orchestrator, error) {
	if cfg == nil || logger == nil {
		return nil, fmt.Errorf("cannot initialize orchestrator with nil dependencies")
	}
	return &Orchestrator{
		cfg:      cfg,
		logger:   logger.Named("orchestrator"),
		analyzer: behavior.NewAnalyzer(logger),
		renderer: report.NewRenderer(logger),
		narrator: narrator,
	}, nil
}

// Run analyzes every input file, bounded by the configured concurrency.
// Each file is independent; one failure does not stop the others, and
// the joined error reports every failed file.
func (o *Orchestrator) Run(ctx context.Context, inputs []string) ([]RunResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	if err := os.MkdirAll(o.cfg.Report.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	concurrency := o.cfg.Analyze.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]RunResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			result, err := o.RunOne(ctx, input)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunOne executes the pipeline for a single capture file.
func (o *Orchestrator) RunOne(ctx context.Context, input string) (RunResult, error) {
	runID := uuid.NewString()
	logger := o.logger.With(zap.String("run_id", runID), zap.String("input", input))
	logger.Info("analysis run starting")

	parser, err := flowparse.Load(input, o.logger)
	if err != nil {
		return RunResult{}, err
	}

	behaviorReport := o.analyzer.Analyze(parser.Events())

	in := report.Input{
		RunID:        runID,
		SourceFile:   input,
		GeneratedAt:  time.Now().UTC(),
		Summary:      parser.Summary(),
		Journey:      parser.Journey(),
		Interactions: parser.Interactions(),
		Chapters:     parser.Chapters(),
		Videos:       parser.Videos(),
		Behavior:     *behaviorReport,
	}

	if o.narrator != nil {
		in.Narrative = o.narrate(ctx, logger, in)
	}

	outputFile, err := o.write(in)
	if err != nil {
		return RunResult{}, err
	}

	logger.Info("analysis run complete", zap.String("output", outputFile))
	return RunResult{RunID: runID, SourceFile: input, OutputFile: outputFile}, nil
}

// narrate asks the LLM for the qualitative section. Failures degrade the
// report rather than fail the run.
func (o *Orchestrator) narrate(ctx context.Context, logger *zap.Logger, in report.Input) *schemas.NarrativeAnalysis {
	raw, err := json.Marshal(in.Behavior)
	if err != nil {
		logger.Warn("encoding behavior report for narration failed", zap.Error(err))
		return nil
	}

	narrative, err := o.narrator.Narrate(ctx, llmclient.FlowContext{
		Summary:  in.Summary,
		Journey:  in.Journey,
		Behavior: raw,
	})
	if err != nil {
		logger.Warn("narrative generation failed, continuing without it", zap.Error(err))
		return nil
	}
	return &narrative
}

func (o *Orchestrator) write(in report.Input) (string, error) {
	var (
		content string
		ext     string
		err     error
	)
	switch o.cfg.Report.Format {
	case "html":
		ext = ".html"
		content, err = o.renderer.HTML(in)
		if err != nil {
			return "", err
		}
	default:
		ext = ".md"
		content = o.renderer.Markdown(in)
	}

	base := strings.TrimSuffix(filepath.Base(in.SourceFile), filepath.Ext(in.SourceFile))
	outputFile := filepath.Join(o.cfg.Report.OutputDir, base+"_analysis"+ext)
	if err := os.WriteFile(outputFile, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return outputFile, nil
}
