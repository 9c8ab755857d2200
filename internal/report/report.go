// internal/report/report.go

// Package report renders a flow's analysis into a markdown document, with
// optional HTML conversion. Section order is deterministic so reports
// diff cleanly between runs.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/behavior"
)

// Input is everything one rendered report draws from. Narrative is nil
// when narrative generation is disabled or failed; the section is simply
// omitted.
type Input struct {
	RunID        string
	SourceFile   string
	GeneratedAt  time.Time
	Summary      schemas.FlowSummary
	Journey      schemas.JourneyAnalysis
	Interactions []schemas.Interaction
	Chapters     []schemas.Chapter
	Videos       []schemas.VideoSegment
	Behavior     behavior.BehaviorReport
	Narrative    *schemas.NarrativeAnalysis
}

// Renderer produces markdown and HTML reports.
type Renderer struct {
	md     goldmark.Markdown
	logger *zap.Logger
}

// NewRenderer builds a renderer.
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		logger: logger.Named("report"),
	}
}

// Markdown renders the full report document.
func (r *Renderer) Markdown(in Input) string {
	var b strings.Builder

	r.writeHeader(&b, in)
	r.writeNarrative(&b, in)
	r.writeJourney(&b, in)
	r.writeInteractions(&b, in)
	r.writeContent(&b, in)
	r.writeBehavior(&b, in.Behavior)
	r.writeTechnicalDetails(&b, in)

	return b.String()
}

// HTML renders the report and converts it with goldmark.
func (r *Renderer) HTML(in Input) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(r.Markdown(in)), &buf); err != nil {
		return "", fmt.Errorf("converting report to HTML: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) writeHeader(b *strings.Builder, in Input) {
	fmt.Fprintf(b, "# Flow Analysis: %s\n\n", in.Summary.Name)
	if in.Summary.Description != "" {
		fmt.Fprintf(b, "%s\n\n", in.Summary.Description)
	}
	fmt.Fprintf(b, "- **Generated:** %s\n", in.GeneratedAt.Format(time.RFC3339))
	if in.Summary.UseCase != "" {
		fmt.Fprintf(b, "- **Use case:** %s\n", in.Summary.UseCase)
	}
	fmt.Fprintf(b, "- **Total steps:** %d\n", in.Summary.TotalSteps)
	fmt.Fprintf(b, "- **Interactions:** %d\n\n", in.Journey.TotalInteractions)
}

func (r *Renderer) writeNarrative(b *strings.Builder, in Input) {
	if in.Narrative == nil {
		return
	}
	b.WriteString("## Narrative Summary\n\n")
	fmt.Fprintf(b, "%s\n\n", in.Narrative.Summary)
	if in.Narrative.UserGoal != "" {
		fmt.Fprintf(b, "**Inferred goal:** %s\n\n", in.Narrative.UserGoal)
	}
	if in.Narrative.KeyInsights != "" {
		fmt.Fprintf(b, "**Key insights:** %s\n\n", in.Narrative.KeyInsights)
	}
}

func (r *Renderer) writeJourney(b *strings.Builder, in Input) {
	b.WriteString("## User Journey\n\n")
	if in.Journey.TotalInteractions == 0 {
		b.WriteString("No interactions were recorded in this flow.\n\n")
		return
	}

	if in.Journey.StartURL != "" {
		fmt.Fprintf(b, "- **Start:** %s\n", in.Journey.StartURL)
	}
	if in.Journey.EndURL != "" {
		fmt.Fprintf(b, "- **End:** %s\n", in.Journey.EndURL)
	}
	fmt.Fprintf(b, "- **Page transitions:** %d\n\n", len(in.Journey.PageTransitions))

	if len(in.Journey.KeyActions) > 0 {
		b.WriteString("### Key Actions\n\n")
		for _, action := range in.Journey.KeyActions {
			line := action.Action
			if action.Element != "" {
				line = fmt.Sprintf("%s (`%s`)", line, action.Element)
			}
			fmt.Fprintf(b, "1. %s\n", line)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeInteractions(b *strings.Builder, in Input) {
	if len(in.Interactions) == 0 {
		return
	}
	b.WriteString("## Interactions\n\n")
	b.WriteString("| # | Action | Element | Page |\n")
	b.WriteString("|---|--------|---------|------|\n")
	for i, interaction := range in.Interactions {
		page := interaction.PageTitle
		if page == "" {
			page = interaction.URL
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s |\n",
			i+1, interaction.Description, interaction.ElementType, page)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeContent(b *strings.Builder, in Input) {
	if len(in.Chapters) == 0 && len(in.Videos) == 0 {
		return
	}
	b.WriteString("## Content\n\n")
	for _, chapter := range in.Chapters {
		fmt.Fprintf(b, "- Chapter: **%s**", chapter.Title)
		if chapter.Subtitle != "" {
			fmt.Fprintf(b, ": %s", chapter.Subtitle)
		}
		b.WriteString("\n")
	}
	for _, video := range in.Videos {
		fmt.Fprintf(b, "- Video segment: %s\n", video.URL)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeBehavior(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("## Behavioral Analytics\n\n")

	r.writeTiming(b, report)
	r.writeVelocity(b, report)
	r.writeDecisions(b, report)
	r.writeScores(b, report)
	r.writePrecision(b, report)

	if len(report.Insights) > 0 {
		b.WriteString("### Insights\n\n")
		for _, insight := range report.Insights {
			fmt.Fprintf(b, "- %s\n", insight)
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) writeTiming(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("### Timing\n\n")
	if !report.Timing.OK() {
		writeInsufficiency(b, report.Timing.Reason())
		return
	}
	timing := report.Timing.Value()
	fmt.Fprintf(b, "- **Duration:** %.1fs over %d clicks\n", timing.TotalDurationS, timing.TotalClicks)
	fmt.Fprintf(b, "- **Average delay:** %.1fs (median %.1fs, range %.1f-%.1fs)\n",
		timing.AverageDelay, timing.MedianDelay, timing.MinDelay, timing.MaxDelay)
	fmt.Fprintf(b, "- **Tempo:** %s\n\n", timing.Tempo)
}

func (r *Renderer) writeVelocity(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("### Velocity\n\n")
	if !report.Velocity.OK() {
		writeInsufficiency(b, report.Velocity.Reason())
		return
	}
	velocity := report.Velocity.Value()
	fmt.Fprintf(b, "- **Rate:** %.2f/s (%.1f per minute)\n",
		velocity.InteractionsPerSecond, velocity.InteractionsPerMinute)
	fmt.Fprintf(b, "- **Classification:** %s, pacing %s\n\n",
		velocity.VelocityClass, velocity.PacingConsistency)
}

func (r *Renderer) writeDecisions(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("### Decision Patterns\n\n")
	if !report.Decisions.OK() {
		writeInsufficiency(b, report.Decisions.Reason())
		return
	}
	decisions := report.Decisions.Value()
	fmt.Fprintf(b, "- **Style:** %s\n", decisions.Style)
	fmt.Fprintf(b, "- **Deliberation points:** %d, quick actions: %d\n",
		decisions.HesitationIndicators, decisions.ConfidenceIndicators)
	for _, point := range decisions.DecisionPoints {
		fmt.Fprintf(b, "  - Interaction %d paused %.1fs (%s)\n",
			point.InteractionNumber, point.DelaySeconds, point.Complexity)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeScores(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("### Scores\n\n")

	if report.Engagement.OK() {
		engagement := report.Engagement.Value()
		fmt.Fprintf(b, "- **Engagement:** %.1f/100 (%s)\n", engagement.Score, engagement.Level)
	} else {
		fmt.Fprintf(b, "- **Engagement:** %s\n", insufficiencyLine(report.Engagement.Reason()))
	}

	if report.Confidence.OK() {
		confidence := report.Confidence.Value()
		fmt.Fprintf(b, "- **Confidence:** %.1f/100 (%s)\n", confidence.Score, confidence.Level)
	} else {
		fmt.Fprintf(b, "- **Confidence:** %s\n", insufficiencyLine(report.Confidence.Reason()))
	}

	if report.Efficiency.OK() {
		efficiency := report.Efficiency.Value()
		fmt.Fprintf(b, "- **Efficiency:** %.1f/100 (%s), %.1fs actual vs %.1fs optimal\n",
			efficiency.Score, efficiency.Level, efficiency.ActualTimeS, efficiency.EstimatedOptimalTimeS)
	} else {
		fmt.Fprintf(b, "- **Efficiency:** %s\n", insufficiencyLine(report.Efficiency.Reason()))
	}
	b.WriteString("\n")
}

func (r *Renderer) writePrecision(b *strings.Builder, report behavior.BehaviorReport) {
	b.WriteString("### Spatial Precision\n\n")
	if !report.Precision.OK() {
		writeInsufficiency(b, report.Precision.Reason())
		return
	}
	precision := report.Precision.Value()
	fmt.Fprintf(b, "- **Coordinate clicks:** %d\n", precision.TotalClicks)
	fmt.Fprintf(b, "- **Movement:** %.1fpx total, %.1fpx average (%s)\n",
		precision.Movement.TotalDistance, precision.Movement.AverageDistance, precision.Movement.Pattern)
	fmt.Fprintf(b, "- **Cursor velocity:** %.1fpx/s average, %s\n",
		precision.Velocity.AverageVelocity, precision.Velocity.Consistency)
	fmt.Fprintf(b, "- **Screen exploration:** %s (%.0fx%.0fpx covered)\n",
		precision.ScreenUsage.Exploration, precision.ScreenUsage.CoverageX, precision.ScreenUsage.CoverageY)
	fmt.Fprintf(b, "- **Clustering:** %d clusters, largest %d (%s)\n",
		precision.ClickPatterns.Clustering.ClusterCount,
		precision.ClickPatterns.Clustering.LargestClusterSize,
		precision.ClickPatterns.Clustering.Type)
	fmt.Fprintf(b, "- **Precision score:** %.1f/100\n", precision.ClickPatterns.PrecisionScore)
	for _, insight := range precision.Insights {
		fmt.Fprintf(b, "  - %s\n", insight)
	}
	b.WriteString("\n")
}

func (r *Renderer) writeTechnicalDetails(b *strings.Builder, in Input) {
	b.WriteString("## Technical Details\n\n")
	fmt.Fprintf(b, "- **Run ID:** %s\n", in.RunID)
	fmt.Fprintf(b, "- **Source:** %s\n", in.SourceFile)
	if in.Summary.SchemaVersion != "" {
		fmt.Fprintf(b, "- **Schema version:** %s\n", in.Summary.SchemaVersion)
	}
	if in.Summary.Created.Seconds != 0 {
		created := time.Unix(in.Summary.Created.Seconds, in.Summary.Created.Nanoseconds).UTC()
		fmt.Fprintf(b, "- **Captured:** %s\n", created.Format(time.RFC3339))
	}
	b.WriteString("\n")
}

func writeInsufficiency(b *strings.Builder, reason string) {
	fmt.Fprintf(b, "%s\n\n", insufficiencyLine(reason))
}

// insufficiencyLine turns an engine reason code into a plain-language note.
func insufficiencyLine(reason string) string {
	switch reason {
	case behavior.ReasonNoTiming:
		return "Not enough timed clicks were recorded to analyze this."
	case behavior.ReasonNoCoordinates:
		return "No click coordinates were recorded, so spatial analysis was skipped."
	default:
		return fmt.Sprintf("Not available: %s.", strings.ReplaceAll(reason, "_", " "))
	}
}
