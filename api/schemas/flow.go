// api/schemas/flow.go
package schemas

// StepType identifies what kind of content a recorded step carries.
type StepType string

const (
	StepImage   StepType = "IMAGE"
	StepVideo   StepType = "VIDEO"
	StepChapter StepType = "CHAPTER"
)

// Flow is the top-level structure of a recorded walkthrough capture file.
type Flow struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UseCase        string          `json:"useCase"`
	SchemaVersion  string          `json:"schemaVersion"`
	HasUsedAI      bool            `json:"hasUsedAI"`
	Created        Timestamp       `json:"created"`
	Steps          []Step          `json:"steps"`
	CapturedEvents []CapturedEvent `json:"capturedEvents"`
}

// Timestamp is the capture format's split seconds/nanoseconds encoding.
type Timestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// Step is one recorded step of the walkthrough. Field presence depends on
// the step type: IMAGE steps carry hotspots and page context, CHAPTER
// steps carry title text, VIDEO steps carry media URLs.
type Step struct {
	ID                 string        `json:"id"`
	Type               StepType      `json:"type"`
	URL                string        `json:"url,omitempty"`
	OriginalImageURL   string        `json:"originalImageUrl,omitempty"`
	Hotspots           []Hotspot     `json:"hotspots,omitempty"`
	PageContext        *PageContext  `json:"pageContext,omitempty"`
	ClickContext       *ClickContext `json:"clickContext,omitempty"`
	Title              string        `json:"title,omitempty"`
	Subtitle           string        `json:"subtitle,omitempty"`
	Theme              string        `json:"theme,omitempty"`
	StartTimeFrac      float64       `json:"startTimeFrac,omitempty"`
	EndTimeFrac        float64       `json:"endTimeFrac,omitempty"`
	MuteAudio          bool          `json:"muteAudio,omitempty"`
	PlaybackRate       float64       `json:"playbackRate,omitempty"`
}

// Hotspot marks the interactive region of an IMAGE step.
type Hotspot struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// PageContext describes the page a step was captured on.
type PageContext struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
}

// ClickContext describes the DOM element the user clicked.
type ClickContext struct {
	ElementType string `json:"elementType"`
	Text        string `json:"text"`
	CSSSelector string `json:"cssSelector"`
}

// CapturedEvent is one raw interaction record from the capture's event
// stream. FrameX/FrameY are pixel coordinates within the captured frame
// and are absent for events recorded without position data.
type CapturedEvent struct {
	Type    string   `json:"type"`
	ClickID string   `json:"clickId,omitempty"`
	TimeMs  int64    `json:"timeMs"`
	FrameX  *float64 `json:"frameX,omitempty"`
	FrameY  *float64 `json:"frameY,omitempty"`
}

// Interaction is one structured user interaction extracted from an IMAGE
// step with a hotspot.
type Interaction struct {
	StepID      string      `json:"step_id"`
	ActionType  string      `json:"action_type"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	PageTitle   string      `json:"page_title"`
	ElementType string      `json:"element_type"`
	ElementText string      `json:"element_text"`
	CSSSelector string      `json:"css_selector"`
	Coordinates Coordinates `json:"coordinates"`
	Screenshot  string      `json:"screenshot_url,omitempty"`
}

// Coordinates is a hotspot position, normalized to the step image.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FlowSummary is the capture's metadata digest.
type FlowSummary struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	UseCase         string    `json:"use_case"`
	TotalSteps      int       `json:"total_steps"`
	HasAIProcessing bool      `json:"has_ai_processing"`
	Created         Timestamp `json:"created"`
	SchemaVersion   string    `json:"schema_version"`
}

// PageTransition records the user moving to a new URL.
type PageTransition struct {
	From      string `json:"from"`
	To        string `json:"to"`
	PageTitle string `json:"page_title"`
}

// KeyAction is an interaction whose description matches a known
// action keyword (search, click, add to cart, checkout).
type KeyAction struct {
	Action  string `json:"action"`
	URL     string `json:"url"`
	Element string `json:"element"`
}

// JourneyAnalysis summarizes the user's path through the flow.
type JourneyAnalysis struct {
	StartURL          string           `json:"start_url"`
	EndURL            string           `json:"end_url"`
	PageTransitions   []PageTransition `json:"page_transitions"`
	KeyActions        []KeyAction      `json:"key_actions"`
	TotalInteractions int              `json:"total_interactions"`
}

// Chapter is the narrative content of a CHAPTER step.
type Chapter struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Theme    string `json:"theme"`
}

// VideoSegment is the media content of a VIDEO step.
type VideoSegment struct {
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	StartTimeFrac float64 `json:"start_time_frac"`
	EndTimeFrac   float64 `json:"end_time_frac"`
	MuteAudio     bool    `json:"mute_audio"`
	PlaybackRate  float64 `json:"playback_rate"`
}
