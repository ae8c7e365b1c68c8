package domain

import "time"

// Status is the lifecycle state of an optimization.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAnalyzing Status = "analyzing"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Active reports whether the optimization still occupies its campaign.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusAnalyzing
}

// CanTransition reports whether s -> to is an edge of the state machine
// pending -> analyzing -> {completed | failed}.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusAnalyzing
	case StatusAnalyzing:
		return to == StatusCompleted || to == StatusFailed
	default:
		return false
	}
}

// OptimizationType narrows what the requester is interested in. All five
// analyses run regardless; the type is recorded for the consumer.
type OptimizationType string

const (
	OptimizationFull         OptimizationType = "full"
	OptimizationTimingOnly   OptimizationType = "timing_only"
	OptimizationPlatformOnly OptimizationType = "platform_only"
)

// Valid reports whether t is a known optimization type.
func (t OptimizationType) Valid() bool {
	switch t {
	case OptimizationFull, OptimizationTimingOnly, OptimizationPlatformOnly:
		return true
	}
	return false
}

// Responses maps question keys to submitted answers. Values are whatever
// the JSON decoder produced: string, float64, bool or []any.
type Responses map[string]any

// String returns the answer as a string or def when absent or not a string.
func (r Responses) String(key, def string) string {
	if s, ok := r[key].(string); ok && s != "" {
		return s
	}
	return def
}

// Strings returns a multi-select answer. A single string counts as one.
func (r Responses) Strings(key string) []string {
	switch v := r[key].(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Number returns a numeric answer.
func (r Responses) Number(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Optimization is a single run of the recommendation pipeline for one
// campaign. Once terminal it is immutable except for the applied marker.
type Optimization struct {
	ID         string           `json:"id"`
	CampaignID string           `json:"campaign_id"`
	OrgID      string           `json:"org_id"`
	UserID     string           `json:"user_id"`
	Type       OptimizationType `json:"optimization_type"`
	Status     Status           `json:"status"`
	Responses  Responses        `json:"questionnaire_responses"`

	// Recommendations and Confidence are set together, only on completion.
	Recommendations *Recommendations  `json:"recommendations,omitempty"`
	Confidence      *ConfidenceScores `json:"confidence_scores,omitempty"`

	MarketSource MarketSource `json:"market_source,omitempty"`
	// MarketAnalysis is the market picture the recommendations were built on.
	MarketAnalysis        *MarketSummary `json:"market_analysis,omitempty"`
	DataSourcesUsed       []string       `json:"data_sources_used"`
	ProcessingTimeSeconds *float64       `json:"processing_time_seconds,omitempty"`
	Error                 string         `json:"error,omitempty"`

	Applied *AppliedRecommendations `json:"recommendations_applied,omitempty"`

	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
	QuestionnaireCompletedAt *time.Time `json:"questionnaire_completed_at,omitempty"`
	CompletedAt              *time.Time `json:"completed_at,omitempty"`
	AppliedAt                *time.Time `json:"applied_at,omitempty"`
}

// ConfidenceScores are heuristic values in [0,1] rounded to two decimals.
type ConfidenceScores struct {
	Overall     float64 `json:"overall" validate:"gte=0,lte=1"`
	Timing      float64 `json:"timing" validate:"gte=0,lte=1"`
	Platform    float64 `json:"platform" validate:"gte=0,lte=1"`
	Budget      float64 `json:"budget" validate:"gte=0,lte=1"`
	DataQuality float64 `json:"data_quality" validate:"gte=0,lte=1"`
}

// ApplySelection chooses which recommendation dimensions are written back
// onto the campaign.
type ApplySelection struct {
	Timing   bool `json:"timing"`
	Platform bool `json:"platform"`
	Budget   bool `json:"budget"`
	Audience bool `json:"audience"`
}

// AppliedRecommendations records what the application layer applied.
type AppliedRecommendations struct {
	Selection ApplySelection `json:"selection"`
	Changes   []string       `json:"changes"`
}

// ProcessResult is returned from questionnaire submission. Recommendations
// are present only when the analysis ran inline and finished.
type ProcessResult struct {
	OptimizationID        string            `json:"optimization_id"`
	Status                Status            `json:"status"`
	Recommendations       *Recommendations  `json:"recommendations,omitempty"`
	Confidence            *ConfidenceScores `json:"confidence_scores,omitempty"`
	ProcessingTimeSeconds *float64          `json:"processing_time_seconds,omitempty"`
}

// ApplyResult lists the campaign fields changed by an apply.
type ApplyResult struct {
	OptimizationID string   `json:"optimization_id"`
	CampaignID     string   `json:"campaign_id"`
	AppliedChanges []string `json:"applied_changes"`
}
