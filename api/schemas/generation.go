// api/schemas/generation.go
package schemas

// GenerationRequest carries the prompts for one LLM text-generation call.
type GenerationRequest struct {
	SystemPrompt string  `json:"system_prompt"`
	UserPrompt   string  `json:"user_prompt"`
	Temperature  float64 `json:"temperature"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
}

// NarrativeAnalysis is the LLM's qualitative read of a flow, rendered
// into the report alongside the computed behavioral metrics.
type NarrativeAnalysis struct {
	Summary     string `json:"summary"`
	UserGoal    string `json:"user_goal"`
	KeyInsights string `json:"key_insights"`
}
