// internal/behavior/types.go
package behavior

// Event is one captured interaction record from a recorded session.
// Coordinates are optional; they are nil for events captured without
// frame positions.
type Event struct {
	Kind   string   `json:"kind"`
	TimeMs int64    `json:"time_ms"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// EventClick is the only event kind the engine analyzes.
const EventClick = "click"

// HasCoords reports whether the event carries both screen coordinates.
func (e Event) HasCoords() bool {
	return e.X != nil && e.Y != nil
}

// Tempo is the qualitative bucket of the average delay between clicks.
type Tempo string

const (
	TempoRapid         Tempo = "Rapid"
	TempoSteady        Tempo = "Steady"
	TempoDeliberate    Tempo = "Deliberate"
	TempoContemplative Tempo = "Contemplative"
)

// TimingMetrics summarizes the delays between chronologically sorted clicks.
// The Delays slice keeps full precision for downstream math; the summary
// statistics are rounded to one decimal, matching what the report shows.
type TimingMetrics struct {
	TotalDurationS float64   `json:"total_duration_seconds"`
	TotalClicks    int       `json:"total_interactions"`
	Delays         []float64 `json:"interaction_delays"`
	AverageDelay   float64   `json:"average_delay"`
	MedianDelay    float64   `json:"median_delay"`
	MinDelay       float64   `json:"min_delay"`
	MaxDelay       float64   `json:"max_delay"`
	DelayVariance  float64   `json:"delay_variance"`
	Tempo          Tempo     `json:"interaction_tempo"`
}

// VelocityClass buckets the overall interaction rate in clicks per minute.
type VelocityClass string

const (
	VelocityVeryFast VelocityClass = "Very Fast"
	VelocityFast     VelocityClass = "Fast"
	VelocityModerate VelocityClass = "Moderate"
	VelocitySlow     VelocityClass = "Slow"
	VelocityVerySlow VelocityClass = "Very Slow"
)

// PacingConsistency buckets the coefficient of variation of the delays.
type PacingConsistency string

const (
	PacingVeryConsistent   PacingConsistency = "Very Consistent"
	PacingConsistent       PacingConsistency = "Consistent"
	PacingSomewhatVariable PacingConsistency = "Somewhat Variable"
	PacingHighlyVariable   PacingConsistency = "Highly Variable"
	PacingUnknown          PacingConsistency = "Unknown"
)

// VelocityMetrics describes how quickly the user moved through the session.
type VelocityMetrics struct {
	InteractionsPerSecond float64           `json:"interactions_per_second"`
	InteractionsPerMinute float64           `json:"interactions_per_minute"`
	VelocityClass         VelocityClass     `json:"velocity_classification"`
	PacingConsistency     PacingConsistency `json:"pacing_consistency"`
}

// DecisionComplexity grades a decision point by how far the delay sits
// above the session average.
type DecisionComplexity string

const (
	DecisionSimple   DecisionComplexity = "Simple"
	DecisionModerate DecisionComplexity = "Moderate"
	DecisionComplex  DecisionComplexity = "Complex"
)

// DecisionStyle is the user's overall decision-making style.
type DecisionStyle string

const (
	StyleDecisive   DecisionStyle = "Decisive"
	StyleAnalytical DecisionStyle = "Analytical"
	StyleBalanced   DecisionStyle = "Balanced"
	StyleUnknown    DecisionStyle = "Unknown"
)

// DecisionPoint marks a delay significantly above the session average.
// InteractionNumber is 1-based: the n-th transition between clicks.
type DecisionPoint struct {
	InteractionNumber int                `json:"interaction_number"`
	DelaySeconds      float64            `json:"delay_seconds"`
	Complexity        DecisionComplexity `json:"decision_type"`
}

// QuickDecision marks a delay significantly below the session average.
type QuickDecision struct {
	InteractionNumber int     `json:"interaction_number"`
	DelaySeconds      float64 `json:"delay_seconds"`
}

// DecisionAnalysis classifies every inter-click delay as deliberation,
// quick action, or neutral.
type DecisionAnalysis struct {
	DecisionPoints       []DecisionPoint `json:"decision_points"`
	QuickDecisions       []QuickDecision `json:"quick_decisions"`
	Style                DecisionStyle   `json:"decision_making_style"`
	HesitationIndicators int             `json:"hesitation_indicators"`
	ConfidenceIndicators int             `json:"confidence_indicators"`
}

// Level is the shared qualitative bucket for engagement and confidence scores.
type Level string

const (
	LevelVeryLow  Level = "Very Low"
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

// EngagementBreakdown itemizes the components of the engagement score.
type EngagementBreakdown struct {
	InteractionDensity float64 `json:"interaction_density"`
	Consistency        float64 `json:"consistency"`
	Completion         float64 `json:"completion"`
}

// EngagementResult is the composite engagement score in [0,100].
type EngagementResult struct {
	Score     float64             `json:"engagement_score"`
	Level     Level               `json:"engagement_level"`
	Breakdown EngagementBreakdown `json:"score_breakdown"`
}

// ConfidenceResult is the composite confidence score in [0,100].
type ConfidenceResult struct {
	Score            float64 `json:"confidence_score"`
	Level            Level   `json:"confidence_level"`
	QuickActions     int     `json:"quick_actions"`
	HesitationPoints int     `json:"hesitation_points"`
}

// EfficiencyLevel buckets the journey-efficiency score.
type EfficiencyLevel string

const (
	EfficiencyInefficient         EfficiencyLevel = "Inefficient"
	EfficiencyModeratelyEfficient EfficiencyLevel = "Moderately Efficient"
	EfficiencyEfficient           EfficiencyLevel = "Efficient"
	EfficiencyHighlyEfficient     EfficiencyLevel = "Highly Efficient"
)

// EfficiencyResult compares the actual session duration against an
// assumed expert pace of 1.5 seconds per interaction.
type EfficiencyResult struct {
	Score                 float64         `json:"efficiency_score"`
	Level                 EfficiencyLevel `json:"efficiency_level"`
	ActualTimeS           float64         `json:"actual_time"`
	EstimatedOptimalTimeS float64         `json:"estimated_optimal_time"`
	TimeDifferenceS       float64         `json:"time_difference"`
}

// MovementPattern buckets the average distance between consecutive clicks.
type MovementPattern string

const (
	MovementNone      MovementPattern = "no_movement"
	MovementMinimal   MovementPattern = "minimal_movement"
	MovementFocused   MovementPattern = "focused_movement"
	MovementModerate  MovementPattern = "moderate_movement"
	MovementExtensive MovementPattern = "extensive_movement"
)

// VelocityConsistency buckets the coefficient of variation of the
// cursor velocities between clicks.
type VelocityConsistency string

const (
	VelocityVeryConsistent   VelocityConsistency = "very_consistent"
	VelocityConsistent       VelocityConsistency = "consistent"
	VelocityVariable         VelocityConsistency = "variable"
	VelocityHighlyVariable   VelocityConsistency = "highly_variable"
	VelocityInsufficientData VelocityConsistency = "insufficient_data"
)

// ScreenRegion labels where on a reference viewport a click landed.
// The pixel thresholds assume a fixed reference viewport; they are not
// adaptive to the actual captured screen size.
type ScreenRegion string

const (
	RegionHeader       ScreenRegion = "header"
	RegionFooter       ScreenRegion = "footer"
	RegionLeftSidebar  ScreenRegion = "left_sidebar"
	RegionRightSidebar ScreenRegion = "right_sidebar"
	RegionMainContent  ScreenRegion = "main_content"
)

// ExplorationLevel buckets how much of the screen the clicks covered.
type ExplorationLevel string

const (
	ExplorationMinimal   ExplorationLevel = "minimal_exploration"
	ExplorationFocused   ExplorationLevel = "focused_exploration"
	ExplorationModerate  ExplorationLevel = "moderate_exploration"
	ExplorationExtensive ExplorationLevel = "extensive_exploration"
)

// ClusteringType buckets the cluster count relative to the click count.
type ClusteringType string

const (
	ClusteringHighlyFocused     ClusteringType = "highly_focused"
	ClusteringFocused           ClusteringType = "focused"
	ClusteringModerateSpread    ClusteringType = "moderate_spread"
	ClusteringWidelyDistributed ClusteringType = "widely_distributed"
	ClusteringInsufficientData  ClusteringType = "insufficient_data"
)

// MovementAnalysis summarizes the distances traced between clicks.
type MovementAnalysis struct {
	TotalDistance   float64         `json:"total_movement_distance"`
	AverageDistance float64         `json:"average_movement_distance"`
	Efficiency      float64         `json:"movement_efficiency"`
	Pattern         MovementPattern `json:"movement_pattern"`
}

// VelocityAnalysis summarizes the cursor velocities between clicks, in
// pixels per second.
type VelocityAnalysis struct {
	AverageVelocity float64             `json:"average_movement_velocity"`
	MaxVelocity     float64             `json:"max_movement_velocity"`
	Consistency     VelocityConsistency `json:"velocity_consistency"`
}

// ScreenUsage is the bounding box and centroid of all click coordinates.
type ScreenUsage struct {
	CoverageX   float64          `json:"screen_coverage_x"`
	CoverageY   float64          `json:"screen_coverage_y"`
	CenterX     float64          `json:"interaction_center_x"`
	CenterY     float64          `json:"interaction_center_y"`
	Exploration ExplorationLevel `json:"screen_exploration"`
}

// ClusterAnalysis is the result of the greedy proximity clustering pass.
type ClusterAnalysis struct {
	ClusterCount       int            `json:"cluster_count"`
	LargestClusterSize int            `json:"largest_cluster_size"`
	Type               ClusteringType `json:"clustering_type"`
}

// ClickPatterns combines per-click region labels, clustering, and the
// composite precision score.
type ClickPatterns struct {
	Regions        []ScreenRegion  `json:"click_regions"`
	Clustering     ClusterAnalysis `json:"clustering_analysis"`
	PrecisionScore float64         `json:"precision_score"`
}

// PrecisionAnalysis is the output of the spatial pipeline over the
// coordinate-bearing clicks.
type PrecisionAnalysis struct {
	TotalClicks   int              `json:"total_clicks"`
	Movement      MovementAnalysis `json:"movement_analysis"`
	Velocity      VelocityAnalysis `json:"velocity_analysis"`
	ScreenUsage   ScreenUsage      `json:"screen_usage"`
	ClickPatterns ClickPatterns    `json:"click_patterns"`
	Insights      []string         `json:"precision_insights"`
}

// BehaviorReport aggregates every stage's output for one analyzed session.
// Every field is always populated: either with metrics or with an explicit
// insufficiency marker, so downstream rendering has a stable shape.
type BehaviorReport struct {
	Timing     Result[TimingMetrics]     `json:"timing_analysis"`
	Velocity   Result[VelocityMetrics]   `json:"interaction_velocity"`
	Decisions  Result[DecisionAnalysis]  `json:"decision_patterns"`
	Engagement Result[EngagementResult]  `json:"engagement_score"`
	Confidence Result[ConfidenceResult]  `json:"confidence_indicators"`
	Efficiency Result[EfficiencyResult]  `json:"journey_efficiency"`
	Precision  Result[PrecisionAnalysis] `json:"precision_analytics"`
	Insights   []string                  `json:"behavior_insights"`
}
