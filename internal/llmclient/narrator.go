// internal/llmclient/narrator.go
package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/cache"
	"github.com/xkilldash9x/flowlens-cli/internal/config"
)

const narratorSystemPrompt = `You are a UX research analyst. You are given a recorded user flow:
its metadata, the user's journey through pages, and computed behavioral
metrics. Respond with a single JSON object with exactly these string
fields: "summary" (2-3 sentences describing what the user did),
"user_goal" (one sentence inferring what the user was trying to
accomplish), and "key_insights" (notable behavioral observations).
Respond with JSON only, no surrounding prose.`

// Narrator turns a flow's structured views into a qualitative
// NarrativeAnalysis via an LLM, consulting the response cache first.
type Narrator struct {
	generator Generator
	cache     *cache.Cache
	cfg       config.LLMConfig
	logger    *zap.Logger
}

// NewNarrator builds a narrator. A nil cache disables caching.
func NewNarrator(generator Generator, c *cache.Cache, cfg config.LLMConfig, logger *zap.Logger) *Narrator {
	return &Narrator{
		generator: generator,
		cache:     c,
		cfg:       cfg,
		logger:    logger.Named("narrator"),
	}
}

// FlowContext is the material the narrator describes: the capture's
// metadata, the journey through it, and the computed behavior report in
// its wire form.
type FlowContext struct {
	Summary  schemas.FlowSummary     `json:"summary"`
	Journey  schemas.JourneyAnalysis `json:"journey"`
	Behavior json.RawMessage         `json:"behavior"`
}

// Narrate produces the narrative for one flow.
func (n *Narrator) Narrate(ctx context.Context, fc FlowContext) (schemas.NarrativeAnalysis, error) {
	userPrompt, err := buildUserPrompt(fc)
	if err != nil {
		return schemas.NarrativeAnalysis{}, err
	}

	key := cache.Key(n.cfg.Model, narratorSystemPrompt, userPrompt)
	if n.cache != nil {
		var cached schemas.NarrativeAnalysis
		if n.cache.Get(key, &cached) {
			n.logger.Debug("narrative served from cache", zap.String("flow", fc.Summary.Name))
			return cached, nil
		}
	}

	raw, err := n.generator.GenerateResponse(ctx, schemas.GenerationRequest{
		SystemPrompt: narratorSystemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  n.cfg.Temperature,
		MaxTokens:    n.cfg.MaxTokens,
	})
	if err != nil {
		return schemas.NarrativeAnalysis{}, fmt.Errorf("generating narrative: %w", err)
	}

	narrative, err := parseNarrative(raw)
	if err != nil {
		return schemas.NarrativeAnalysis{}, err
	}

	if n.cache != nil {
		n.cache.Set(key, narrative)
	}
	return narrative, nil
}

func buildUserPrompt(fc FlowContext) (string, error) {
	material, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding flow context: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze this recorded user flow and respond with the JSON object described.\n\n")
	b.Write(material)
	return b.String(), nil
}

// parseNarrative decodes the model's JSON reply, tolerating a fenced
// code block around it.
func parseNarrative(raw string) (schemas.NarrativeAnalysis, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var narrative schemas.NarrativeAnalysis
	if err := json.Unmarshal([]byte(text), &narrative); err != nil {
		return schemas.NarrativeAnalysis{}, fmt.Errorf("decoding narrative JSON: %w", err)
	}
	if narrative.Summary == "" {
		return schemas.NarrativeAnalysis{}, fmt.Errorf("narrative reply missing summary field")
	}
	return narrative, nil
}
