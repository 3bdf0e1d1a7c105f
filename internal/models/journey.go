// Package models defines the domain types for Raido.
package models

// Journey lifecycle-stage tags. State describes the narrative the map
// captures (as-is vs. to-be); Status is the separate publication tag.
// Both vocabularies contain "draft" but the fields are independent and
// must never be derived from one another.
const (
	StateDraft   = "draft"
	StateCurrent = "current"
	StateFuture  = "future"

	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Touchpoint emotions.
const (
	EmotionPositive = "positive"
	EmotionNeutral  = "neutral"
	EmotionNegative = "negative"
)

// Journey is a persisted customer journey document.
type Journey struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage,omitempty"`
	PersonaIDs  []string `json:"personaIds"`
	State       string   `json:"state"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	Stages      []Stage  `json:"stages"`
}

// Stage groups related touchpoints within a journey. Order is derived
// from the stage's position in the sequence at finalize time; sequence
// position stays authoritative and Order is never read back to reorder.
type Stage struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Order       int          `json:"order"`
	Touchpoints []Touchpoint `json:"touchpoints"`
}

// Touchpoint is a single interaction event within a stage.
type Touchpoint struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Emotion        string    `json:"emotion"`
	CustomerAction string    `json:"customerAction,omitempty"`
	CustomerJob    string    `json:"customerJob,omitempty"`
	Image          string    `json:"image,omitempty"`
	Insights       *Insights `json:"insights,omitempty"`
	Metrics        *Metrics  `json:"metrics,omitempty"`
}

// Insights holds qualitative findings attached to a touchpoint.
type Insights struct {
	Needs         []string `json:"needs"`
	PainPoints    []string `json:"painPoints"`
	Opportunities []string `json:"opportunities"`
}

// Metrics holds quantitative scores attached to a touchpoint.
type Metrics struct {
	Satisfaction float64 `json:"satisfaction"`
	Effort       float64 `json:"effort"`
	Completion   float64 `json:"completion"`
}

// NormalizeTouchpoint returns a copy with every optional shape
// materialized: nil insights/metrics become their zero-value shapes,
// nil string lists become empty lists, and an empty emotion defaults to
// neutral. All defaulting funnels through here so persisted documents
// never carry absent sub-shapes.
func NormalizeTouchpoint(tp Touchpoint) Touchpoint {
	if tp.Emotion == "" {
		tp.Emotion = EmotionNeutral
	}
	if tp.Insights == nil {
		tp.Insights = &Insights{}
	} else {
		in := *tp.Insights
		tp.Insights = &in
	}
	tp.Insights.Needs = nonNilSlice(tp.Insights.Needs)
	tp.Insights.PainPoints = nonNilSlice(tp.Insights.PainPoints)
	tp.Insights.Opportunities = nonNilSlice(tp.Insights.Opportunities)
	if tp.Metrics == nil {
		tp.Metrics = &Metrics{}
	} else {
		m := *tp.Metrics
		tp.Metrics = &m
	}
	return tp
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
