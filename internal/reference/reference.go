// Package reference loads the static tables embedded in the binary:
// statistics vectors, industry fallbacks, platform benchmarks and the
// questionnaire catalogue.
package reference

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/scoring"
)

//go:embed tables.yaml
var tablesYAML []byte

//go:embed questions.yaml
var questionsYAML []byte

const defaultKey = "default"

// IndicatorSpec names an economic indicator and the statistics vectors
// that feed it.
type IndicatorSpec struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Impact      string  `yaml:"impact"`
	Vectors     []int64 `yaml:"vectors"`
}

// CentralBankSpec names the central bank series used as an indicator.
type CentralBankSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Impact      string `yaml:"impact"`
	Series      string `yaml:"series"`
}

// SeasonalFallback is the static pattern of an industry.
type SeasonalFallback struct {
	PeakMonths        []int `yaml:"peak_months"`
	LowMonths         []int `yaml:"low_months"`
	RecommendedMonths []int `yaml:"recommended_launch_months"`
}

// EconomicFallback is the static summary of one indicator.
type EconomicFallback struct {
	Description      string       `yaml:"description"`
	Impact           string       `yaml:"impact"`
	Trend            domain.Trend `yaml:"trend"`
	ChangePercentage float64      `yaml:"change_percentage"`
}

// RetailFallback is the static retail trend.
type RetailFallback struct {
	GrowthRate float64      `yaml:"growth_rate"`
	Trend      domain.Trend `yaml:"trend"`
}

// ConsumerFallback holds the documented defaults of consumer behaviour.
type ConsumerFallback struct {
	DigitalAdoptionRate   float64            `yaml:"digital_adoption_rate"`
	DigitalAdoptionGrowth float64            `yaml:"digital_adoption_growth"`
	OnlinePreference      float64            `yaml:"online_preference"`
	PrimaryAgeGroup       string             `yaml:"primary_age_group"`
	PlatformUsage         map[string]float64 `yaml:"platform_usage"`
}

// TimingFallback is the default timing insight.
type TimingFallback struct {
	StartMonth       int              `yaml:"start_month"`
	EndMonth         int              `yaml:"end_month"`
	WindowConfidence float64          `yaml:"window_confidence"`
	AvoidPeriods     []int            `yaml:"avoid_periods"`
	RiskLevel        domain.RiskLevel `yaml:"risk_level"`
	Confidence       float64          `yaml:"confidence"`
}

// Tables is the parsed content of tables.yaml.
type Tables struct {
	Indicators               []IndicatorSpec              `yaml:"indicators"`
	CentralBank              CentralBankSpec              `yaml:"central_bank"`
	IndustryVectors          map[string][]int64           `yaml:"industry_vectors"`
	SeasonalFallbacks        map[string]SeasonalFallback  `yaml:"seasonal_fallbacks"`
	SeasonalFallbackStrength float64                      `yaml:"seasonal_fallback_strength"`
	EconomicFallback         map[string]EconomicFallback  `yaml:"economic_fallback"`
	RetailFallback           RetailFallback               `yaml:"retail_fallback"`
	ConsumerFallback         ConsumerFallback             `yaml:"consumer_fallback"`
	TimingFallback           TimingFallback               `yaml:"timing_fallback"`
	Platforms                []scoring.PlatformBenchmark  `yaml:"platforms"`
	ObjectiveMultipliers     scoring.ObjectiveWeightTable `yaml:"objective_multipliers"`
	PlatformChannels         map[string]string            `yaml:"platform_channels"`
	PlatformCreatives        map[string][]string          `yaml:"platform_creatives"`
	BudgetSplit              []float64                    `yaml:"budget_split"`
}

// Catalogue is the parsed content of questions.yaml.
type Catalogue struct {
	Base         []domain.Question            `yaml:"base"`
	Industry     map[string][]domain.Question `yaml:"industry"`
	CampaignType map[string][]domain.Question `yaml:"campaign_type"`
	Conditional  map[string]domain.Question   `yaml:"conditional"`
}

// Conditional question triggers.
const (
	TriggerLargeBudget   = "large_budget"
	TriggerMultiLocation = "multi_location"
	TriggerInterests     = "interests"
)

// Normalize lower-cases and trims an industry or campaign type key.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// VectorsFor returns the retail vectors of the industry or the default set.
func (t *Tables) VectorsFor(industry string) []int64 {
	if v, ok := t.IndustryVectors[Normalize(industry)]; ok {
		return v
	}
	return t.IndustryVectors[defaultKey]
}

// SeasonalPattern builds the static decomposition of an industry: strength
// 0.3, avoid months are the first two low months and every month has a
// neutral multiplier.
func (t *Tables) SeasonalPattern(industry string) domain.SeasonalPattern {
	f, ok := t.SeasonalFallbacks[Normalize(industry)]
	if !ok {
		f = t.SeasonalFallbacks[defaultKey]
	}
	multipliers := make(map[int]float64, 12)
	for m := 1; m <= 12; m++ {
		multipliers[m] = 1.0
	}
	return domain.SeasonalPattern{
		PeakMonths:        append([]int(nil), f.PeakMonths...),
		LowMonths:         append([]int(nil), f.LowMonths...),
		RecommendedMonths: append([]int(nil), f.RecommendedMonths...),
		AvoidMonths:       append([]int(nil), f.LowMonths[:min(2, len(f.LowMonths))]...),
		Strength:          t.SeasonalFallbackStrength,
		Multipliers:       multipliers,
	}
}

// Platform returns the benchmark of a platform.
func (t *Tables) Platform(name string) (scoring.PlatformBenchmark, bool) {
	for _, p := range t.Platforms {
		if p.Platform == name {
			return p, true
		}
	}
	return scoring.PlatformBenchmark{}, false
}

func (t *Tables) validate() error {
	if len(t.Indicators) == 0 {
		return fmt.Errorf("no indicators")
	}
	if _, ok := t.IndustryVectors[defaultKey]; !ok {
		return fmt.Errorf("industry_vectors: missing %q", defaultKey)
	}
	if _, ok := t.SeasonalFallbacks[defaultKey]; !ok {
		return fmt.Errorf("seasonal_fallbacks: missing %q", defaultKey)
	}
	if len(t.Platforms) == 0 {
		return fmt.Errorf("no platforms")
	}
	var sum float64
	for _, s := range t.BudgetSplit {
		sum += s
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("budget_split sums to %v", sum)
	}
	return nil
}

func (c *Catalogue) validate() error {
	seen := make(map[string]bool)
	check := func(q domain.Question) error {
		if q.Key == "" {
			return fmt.Errorf("question without key")
		}
		if seen[q.Key] {
			return fmt.Errorf("duplicate question key %q", q.Key)
		}
		seen[q.Key] = true
		return nil
	}
	for _, q := range c.Base {
		if err := check(q); err != nil {
			return err
		}
	}
	for _, set := range []map[string][]domain.Question{c.Industry, c.CampaignType} {
		for _, qs := range set {
			for _, q := range qs {
				if err := check(q); err != nil {
					return err
				}
			}
		}
	}
	for _, q := range c.Conditional {
		if err := check(q); err != nil {
			return err
		}
	}
	return nil
}

// LoadTables parses raw tables.yaml content.
func LoadTables(raw []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("tables: %w", err)
	}
	return &t, nil
}

// LoadCatalogue parses raw questions.yaml content.
func LoadCatalogue(raw []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("questions: %w", err)
	}
	return &c, nil
}

var (
	once      sync.Once
	tables    *Tables
	catalogue *Catalogue
	loadErr   error
)

func load() {
	tables, loadErr = LoadTables(tablesYAML)
	if loadErr != nil {
		return
	}
	catalogue, loadErr = LoadCatalogue(questionsYAML)
}

// Default returns the embedded tables. It panics if the embedded files are
// malformed, which the package tests rule out.
func Default() *Tables {
	once.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
	return tables
}

// Questions returns the embedded questionnaire catalogue.
func Questions() *Catalogue {
	once.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
	return catalogue
}
