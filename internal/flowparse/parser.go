// internal/flowparse/parser.go

// Package flowparse loads a recorded walkthrough capture file and extracts
// the structured views the rest of the pipeline consumes: user
// interactions, flow metadata, journey analysis, and the raw event stream
// for the behavioral engine.
package flowparse

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/behavior"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// keyActionKeywords flag interactions worth calling out in the journey.
var keyActionKeywords = []string{"search", "click", "add to cart", "checkout"}

// Parser provides structured views over one parsed capture file.
type Parser struct {
	flow   schemas.Flow
	logger *zap.Logger
}

// Load reads and parses the capture file at path.
func Load(path string, logger *zap.Logger) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture file: %w", err)
	}
	return Parse(data, logger)
}

// Parse decodes raw capture JSON.
func Parse(data []byte, logger *zap.Logger) (*Parser, error) {
	var flow schemas.Flow
	if err := json.Unmarshal(data, &flow); err != nil {
		return nil, fmt.Errorf("decoding capture JSON: %w", err)
	}

	p := &Parser{flow: flow, logger: logger.Named("flowparse")}
	p.logger.Debug("capture parsed",
		zap.String("flow", flow.Name),
		zap.Int("steps", len(flow.Steps)),
		zap.Int("events", len(flow.CapturedEvents)))
	return p, nil
}

// Flow returns the decoded capture.
func (p *Parser) Flow() schemas.Flow { return p.flow }

// Summary digests the capture's metadata.
func (p *Parser) Summary() schemas.FlowSummary {
	name := p.flow.Name
	if name == "" {
		name = "Unknown Flow"
	}
	return schemas.FlowSummary{
		Name:            name,
		Description:     p.flow.Description,
		UseCase:         p.flow.UseCase,
		TotalSteps:      len(p.flow.Steps),
		HasAIProcessing: p.flow.HasUsedAI,
		Created:         p.flow.Created,
		SchemaVersion:   p.flow.SchemaVersion,
	}
}

// Interactions extracts the structured user interactions: every IMAGE
// step with at least one hotspot yields one interaction, described by its
// first hotspot.
func (p *Parser) Interactions() []schemas.Interaction {
	interactions := []schemas.Interaction{}
	for _, step := range p.flow.Steps {
		if step.Type != schemas.StepImage || len(step.Hotspots) == 0 {
			continue
		}
		hotspot := step.Hotspots[0]

		interaction := schemas.Interaction{
			StepID:      step.ID,
			ActionType:  "click",
			Description: hotspot.Label,
			ElementType: "unknown",
			Coordinates: schemas.Coordinates{X: hotspot.X, Y: hotspot.Y},
			Screenshot:  step.URL,
		}
		if interaction.Description == "" {
			interaction.Description = "User interaction"
		}
		if pc := step.PageContext; pc != nil {
			interaction.URL = pc.URL
			interaction.PageTitle = pc.Title
		}
		if cc := step.ClickContext; cc != nil {
			if cc.ElementType != "" {
				interaction.ElementType = cc.ElementType
			}
			interaction.ElementText = cc.Text
			interaction.CSSSelector = cc.CSSSelector
		}
		interactions = append(interactions, interaction)
	}
	return interactions
}

// Journey walks the interactions to find page transitions and key actions.
func (p *Parser) Journey() schemas.JourneyAnalysis {
	interactions := p.Interactions()

	journey := schemas.JourneyAnalysis{
		PageTransitions:   []schemas.PageTransition{},
		KeyActions:        []schemas.KeyAction{},
		TotalInteractions: len(interactions),
	}
	if len(interactions) == 0 {
		return journey
	}

	journey.StartURL = interactions[0].URL
	journey.EndURL = interactions[len(interactions)-1].URL

	currentURL := ""
	for _, interaction := range interactions {
		if interaction.URL != currentURL {
			journey.PageTransitions = append(journey.PageTransitions, schemas.PageTransition{
				From:      currentURL,
				To:        interaction.URL,
				PageTitle: interaction.PageTitle,
			})
			currentURL = interaction.URL
		}
	}

	for _, interaction := range interactions {
		desc := strings.ToLower(interaction.Description)
		for _, keyword := range keyActionKeywords {
			if strings.Contains(desc, keyword) {
				journey.KeyActions = append(journey.KeyActions, schemas.KeyAction{
					Action:  interaction.Description,
					URL:     interaction.URL,
					Element: interaction.ElementText,
				})
				break
			}
		}
	}

	return journey
}

// Chapters extracts the narrative content of CHAPTER steps.
func (p *Parser) Chapters() []schemas.Chapter {
	chapters := []schemas.Chapter{}
	for _, step := range p.flow.Steps {
		if step.Type != schemas.StepChapter {
			continue
		}
		chapters = append(chapters, schemas.Chapter{
			ID:       step.ID,
			Title:    step.Title,
			Subtitle: step.Subtitle,
			Theme:    step.Theme,
		})
	}
	return chapters
}

// Videos extracts the media content of VIDEO steps.
func (p *Parser) Videos() []schemas.VideoSegment {
	videos := []schemas.VideoSegment{}
	for _, step := range p.flow.Steps {
		if step.Type != schemas.StepVideo {
			continue
		}
		videos = append(videos, schemas.VideoSegment{
			ID:            step.ID,
			URL:           step.URL,
			StartTimeFrac: step.StartTimeFrac,
			EndTimeFrac:   step.EndTimeFrac,
			MuteAudio:     step.MuteAudio,
			PlaybackRate:  step.PlaybackRate,
		})
	}
	return videos
}

// Events converts the raw captured event stream into the behavioral
// engine's input form. The engine does its own click filtering and
// sorting; this is a plain one-to-one mapping.
func (p *Parser) Events() []behavior.Event {
	events := make([]behavior.Event, 0, len(p.flow.CapturedEvents))
	for _, e := range p.flow.CapturedEvents {
		events = append(events, behavior.Event{
			Kind:   e.Type,
			TimeMs: e.TimeMs,
			X:      e.FrameX,
			Y:      e.FrameY,
		})
	}
	return events
}
