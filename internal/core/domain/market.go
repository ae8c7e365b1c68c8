package domain

import (
	"math"
	"time"
)

// MarketSource tells where a market intelligence result came from.
type MarketSource string

const (
	// SourceFresh is a non-expired cache entry returned unchanged.
	SourceFresh MarketSource = "fresh"
	// SourceFetched was built from live gateway data in this call.
	SourceFetched MarketSource = "fetched"
	// SourceFallback has at least one section replaced by static defaults.
	SourceFallback MarketSource = "fallback"
)

// Trend is the direction of a time series over its last periods.
type Trend string

const (
	TrendIncreasing   Trend = "increasing"
	TrendDecreasing   Trend = "decreasing"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// RiskLevel grades the economic backdrop.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Observation is one time-stamped value of a statistics series.
type Observation struct {
	SeriesID string    `json:"series_id"`
	Period   time.Time `json:"period"`
	Value    float64   `json:"value"`
}

// Series is the observation list returned for a single series identifier.
type Series struct {
	ID           string        `json:"id"`
	Observations []Observation `json:"observations"`
}

// Indicator is an economic indicator summarised from its series.
type Indicator struct {
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Impact           string        `json:"impact_level"`
	Observations     []Observation `json:"data,omitempty"`
	Trend            Trend         `json:"trend"`
	Latest           *float64      `json:"latest_value,omitempty"`
	ChangePercentage float64       `json:"change_percentage"`
}

// EconomicIndicators is the economic section of market intelligence.
type EconomicIndicators struct {
	Indicators map[string]Indicator `json:"indicators"`
	Live       bool                 `json:"live"`
}

// RetailTrends is the industry retail series and its derived statistics.
type RetailTrends struct {
	Observations []Observation `json:"monthly_sales,omitempty"`
	GrowthRate   float64       `json:"growth_rate"`
	Trend        Trend         `json:"trend_direction"`
	Volatility   float64       `json:"volatility"`
	Live         bool          `json:"live"`
}

// SeasonalPattern is the result of a seasonal decomposition. Months are
// 1..12; Multipliers holds the seasonal index of every populated month.
type SeasonalPattern struct {
	PeakMonths        []int           `json:"peak_months"`
	LowMonths         []int           `json:"low_months"`
	RecommendedMonths []int           `json:"recommended_launch_months"`
	AvoidMonths       []int           `json:"avoid_months"`
	Strength          float64         `json:"seasonal_strength"`
	Multipliers       map[int]float64 `json:"seasonal_multipliers"`
	Live              bool            `json:"live"`
}

// Multiplier returns the seasonal index for month or 1.0 when unknown.
func (p SeasonalPattern) Multiplier(month time.Month) float64 {
	if v, ok := p.Multipliers[int(month)]; ok {
		return v
	}
	return 1.0
}

// Avoid reports whether month is one of the avoid months.
func (p SeasonalPattern) Avoid(month time.Month) bool {
	for _, m := range p.AvoidMonths {
		if m == int(month) {
			return true
		}
	}
	return false
}

// ConsumerBehavior is a snapshot of usage and adoption percentages.
type ConsumerBehavior struct {
	DigitalAdoptionRate   float64            `json:"digital_adoption_rate"`
	DigitalAdoptionGrowth float64            `json:"digital_adoption_growth"`
	OnlinePreference      float64            `json:"online_preference"`
	PrimaryAgeGroup       string             `json:"primary_age_group"`
	PlatformUsage         map[string]float64 `json:"platform_usage"`
	Live                  bool               `json:"live"`
}

// LaunchWindow is a month range considered best for launching.
type LaunchWindow struct {
	StartMonth int     `json:"start_month"`
	EndMonth   int     `json:"end_month"`
	Confidence float64 `json:"confidence"`
}

// EconomicFactors summarises economic timing risk.
type EconomicFactors struct {
	Favorable           bool      `json:"favorable"`
	RiskLevel           RiskLevel `json:"risk_level"`
	DecliningIndicators []string  `json:"declining_indicators"`
}

// TimingInsights is derived from the other market sections.
type TimingInsights struct {
	LaunchWindow LaunchWindow    `json:"optimal_launch_window"`
	AvoidPeriods []int           `json:"avoid_periods"`
	Economic     EconomicFactors `json:"economic_factors"`
	Confidence   float64         `json:"confidence_score"`
}

// MarketIntelligence is the composite of economic, seasonal and consumer
// signals for an (industry, geography) pair.
type MarketIntelligence struct {
	Industry        string             `json:"industry"`
	Geography       string             `json:"geography"`
	Economic        EconomicIndicators `json:"economic_indicators"`
	Retail          RetailTrends       `json:"retail_trends"`
	Seasonal        SeasonalPattern    `json:"seasonal_patterns"`
	Consumer        ConsumerBehavior   `json:"consumer_behavior"`
	Timing          TimingInsights     `json:"timing_insights"`
	Source          MarketSource       `json:"source"`
	ConfidenceScore float64            `json:"confidence_score"`
	FetchedAt       time.Time          `json:"fetched_at"`
	ExpiresAt       time.Time          `json:"expires_at"`
}

// DataQuality is "fallback" when any section is degraded, else "live".
func (m MarketIntelligence) DataQuality() string {
	if m.Source == SourceFallback {
		return "fallback"
	}
	return "live"
}

// Usable reports whether a cached entry may still be served at now.
func (m MarketIntelligence) Usable(now time.Time) bool {
	return now.Before(m.ExpiresAt)
}

// LiveIndicators counts economic indicators backed by observations.
func (m MarketIntelligence) LiveIndicators() int {
	if !m.Economic.Live {
		return 0
	}
	n := 0
	for _, ind := range m.Economic.Indicators {
		if len(ind.Observations) > 0 {
			n++
		}
	}
	return n
}

// MarketSummary is a condensed view for dashboards and the CLI.
type MarketSummary struct {
	Industry        string           `json:"industry"`
	Geography       string           `json:"geography"`
	DataQuality     string           `json:"data_quality"`
	Source          MarketSource     `json:"source"`
	IndicatorTrends map[string]Trend `json:"indicator_trends"`
	GrowthRate      float64          `json:"growth_rate"`
	PeakMonths      []int            `json:"peak_months"`
	AvoidMonths     []int            `json:"avoid_months"`
	RiskLevel       RiskLevel        `json:"risk_level"`
	ExpiresAt       time.Time        `json:"expires_at"`
}

// Summarize condenses the intelligence into the compact form served by the
// summary endpoint and stored alongside completed optimizations.
func (m MarketIntelligence) Summarize() MarketSummary {
	trends := make(map[string]Trend, len(m.Economic.Indicators))
	for name, ind := range m.Economic.Indicators {
		trends[name] = ind.Trend
	}
	return MarketSummary{
		Industry:        m.Industry,
		Geography:       m.Geography,
		DataQuality:     m.DataQuality(),
		Source:          m.Source,
		IndicatorTrends: trends,
		GrowthRate:      math.Round(m.Retail.GrowthRate*100) / 100,
		PeakMonths:      m.Seasonal.PeakMonths,
		AvoidMonths:     m.Seasonal.AvoidMonths,
		RiskLevel:       m.Timing.Economic.RiskLevel,
		ExpiresAt:       m.ExpiresAt,
	}
}
