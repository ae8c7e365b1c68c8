package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/core/domain"
)

func TestEmbeddedTables(t *testing.T) {
	tb := Default()

	require.Len(t, tb.Indicators, 4)
	assert.Equal(t, "retail_sales", tb.Indicators[0].Name)
	assert.Equal(t, []int64{41692457, 41692458, 41692459}, tb.Indicators[0].Vectors)

	names := make([]string, len(tb.Platforms))
	for i, p := range tb.Platforms {
		names[i] = p.Platform
	}
	assert.Equal(t, []string{"google_ads", "facebook", "instagram", "linkedin"}, names)

	g, ok := tb.Platform("google_ads")
	require.True(t, ok)
	assert.Len(t, g.Formats, 3)
	assert.Equal(t, domain.AgeRange{Min: 25, Max: 65}, g.AgeBand)
	assert.InDelta(t, 1.4, tb.ObjectiveMultipliers.Multiplier("sales", "google_ads"), 1e-9)
}

func TestVectorsFor(t *testing.T) {
	tb := Default()
	assert.Equal(t, []int64{41692460, 41692461}, tb.VectorsFor(" Technology "))
	assert.Equal(t, tb.IndustryVectors["default"], tb.VectorsFor("space tourism"))
}

func TestSeasonalPatternFallback(t *testing.T) {
	tb := Default()

	p := tb.SeasonalPattern("Retail")
	assert.Equal(t, []int{11, 12, 1}, p.PeakMonths)
	assert.Equal(t, []int{2, 3}, p.AvoidMonths)
	assert.Equal(t, 0.3, p.Strength)
	assert.Len(t, p.Multipliers, 12)
	assert.False(t, p.Live)

	d := tb.SeasonalPattern("unknown")
	assert.Equal(t, []int{2, 3, 8, 9}, d.RecommendedMonths)
	assert.Equal(t, []int{1, 7}, d.AvoidMonths)

	// callers get their own copies
	p.PeakMonths[0] = 99
	assert.Equal(t, 11, tb.SeasonalPattern("retail").PeakMonths[0])
}

func TestCatalogue(t *testing.T) {
	c := Questions()
	require.Len(t, c.Base, 7)
	assert.Len(t, c.Industry["retail"], 2)
	assert.Len(t, c.Industry["technology"], 2)
	assert.Len(t, c.Industry["healthcare"], 1)
	assert.Len(t, c.Industry["finance"], 1)
	assert.Len(t, c.CampaignType, 3)
	assert.Len(t, c.Conditional, 3)

	ci := c.Base[4]
	assert.Equal(t, "competitive_intensity", ci.Key)
	assert.Equal(t, domain.QuestionScale, ci.Type)
	assert.Equal(t, 1, ci.ScaleMin)
	assert.Equal(t, 5, ci.ScaleMax)

	assert.True(t, c.Industry["retail"][0].MultipleSelect)
	assert.False(t, c.CampaignType["video"][0].Required)
	assert.Equal(t, "large_budget_allocation", c.Conditional[TriggerLargeBudget].Key)
}

func TestLoadTablesRejectsBrokenInput(t *testing.T) {
	_, err := LoadTables([]byte("indicators: ["))
	assert.Error(t, err)

	_, err = LoadTables([]byte("indicators: [{name: x}]\nplatforms: [{platform: p}]\nbudget_split: [1]\n"))
	assert.ErrorContains(t, err, "industry_vectors")
}

func TestLoadCatalogueRejectsDuplicateKeys(t *testing.T) {
	_, err := LoadCatalogue([]byte("base:\n  - key: a\n  - key: a\n"))
	assert.ErrorContains(t, err, "duplicate")
}
