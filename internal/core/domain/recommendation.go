package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recommendations bundles the five analysis dimensions. Every dimension
// carries its own confidence so aggregation can be checked exhaustively.
type Recommendations struct {
	Timing   TimingRecommendation   `json:"timing"`
	Platform PlatformRecommendation `json:"platforms"`
	Budget   BudgetRecommendation   `json:"budget"`
	Creative CreativeRecommendation `json:"creative"`
	Audience AudienceRecommendation `json:"audience"`
}

// TimingRecommendation says when to launch.
type TimingRecommendation struct {
	ImmediateLaunch     bool        `json:"immediate_launch"`
	OptimalLaunchDate   time.Time   `json:"optimal_launch_date"`
	AlternativeDates    []time.Time `json:"alternative_dates"`
	AvoidMonths         []int       `json:"avoid_periods"`
	SeasonalMultiplier  float64     `json:"seasonal_multiplier"`
	RiskLevel           RiskLevel   `json:"risk_level"`
	EconomicRiskFactors []string    `json:"economic_risk_factors"`
	Reasoning           []string    `json:"reasoning"`
	Confidence          float64     `json:"confidence_level"`
}

// PlatformScore is one platform's weighted suitability on a 0-100 scale.
type PlatformScore struct {
	Platform    string  `json:"platform"`
	Total       float64 `json:"total_score"`
	Objective   float64 `json:"objective_score"`
	Demographic float64 `json:"demographic_score"`
	Efficiency  float64 `json:"efficiency_score"`
}

// PlatformRecommendation ranks advertising platforms.
type PlatformRecommendation struct {
	PrimaryPlatform      string              `json:"primary_platform"`
	SecondaryPlatforms   []string            `json:"secondary_platforms"`
	Scores               []PlatformScore     `json:"platform_scores"`
	BudgetAllocation     map[string]float64  `json:"budget_allocation"`
	ChannelMix           map[string]float64  `json:"channel_mix"`
	CreativeRequirements map[string][]string `json:"creative_requirements"`
	Reasoning            []string            `json:"reasoning"`
	Confidence           float64             `json:"confidence"`
}

// Budget pacing strategies.
const (
	PacingEven        = "even"
	PacingFrontLoaded = "front_loaded"
	PacingTestScale   = "test_and_scale"
	PacingSeasonal    = "seasonal"
)

// BudgetRecommendation proposes spend levels and their split.
type BudgetRecommendation struct {
	RecommendedTotal     decimal.Decimal            `json:"recommended_total_budget"`
	RecommendedDaily     decimal.Decimal            `json:"recommended_daily_budget"`
	Currency             string                     `json:"currency"`
	Pacing               string                     `json:"budget_pacing"`
	PlatformAllocation   map[string]decimal.Decimal `json:"platform_allocation"`
	SeasonalAdjustments  map[int]float64            `json:"seasonal_adjustments"`
	EstimatedDailyClicks float64                    `json:"estimated_daily_clicks"`
	Gaps                 []string                   `json:"gaps"`
	Confidence           float64                    `json:"confidence"`
}

// CreativeTesting describes how creative variants should be tested.
type CreativeTesting struct {
	Variants      int    `json:"variants"`
	PrimaryMetric string `json:"primary_metric"`
	DurationDays  int    `json:"duration_days"`
}

// CreativeRecommendation adjusts messaging, formats and calls to action.
type CreativeRecommendation struct {
	MessagingFocus  string          `json:"messaging_focus"`
	Tone            string          `json:"tone"`
	Formats         []string        `json:"creative_formats"`
	PrimaryCTA      string          `json:"primary_cta"`
	SecondaryCTA    string          `json:"secondary_cta"`
	CopySuggestions []string        `json:"copy_suggestions"`
	Testing         CreativeTesting `json:"testing_strategy"`
	Confidence      float64         `json:"confidence"`
}

// AudienceRecommendation refines targeting.
type AudienceRecommendation struct {
	AgeRange          AgeRange `json:"age_range"`
	ExpansionStrategy string   `json:"expansion_strategy"`
	InterestExpansion []string `json:"interest_expansion"`
	DeviceEmphasis    string   `json:"device_emphasis"`
	LookalikeSources  []string `json:"lookalike_audiences"`
	Exclusions        []string `json:"exclusion_targeting"`
	Confidence        float64  `json:"confidence"`
}
