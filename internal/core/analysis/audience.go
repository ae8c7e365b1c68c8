package analysis

import (
	"fmt"
	"strings"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

// Expansion strategies.
const (
	ExpansionStrict    = "strict"
	ExpansionSimilar   = "similar_interests"
	ExpansionLookalike = "lookalike"
	ExpansionBroad     = "broad"
)

const broadAgePadding = 5

var relatedInterests = map[string][]string{
	"retail":     {"shopping", "deals", "fashion"},
	"technology": {"software", "gadgets", "startups"},
	"healthcare": {"wellness", "fitness", "nutrition"},
	"finance":    {"investing", "personal_finance", "real_estate"},
	"education":  {"online_learning", "career_development"},
	"default":    {"lifestyle", "news"},
}

// Audience refines targeting with the consumer-behaviour snapshot.
func (a *Analyzer) Audience(in Input) domain.AudienceRecommendation {
	c := in.Campaign
	consumer := in.Market.Consumer
	target := c.Targeting.Age()

	rec := domain.AudienceRecommendation{
		AgeRange:          target,
		InterestExpansion: []string{},
		LookalikeSources:  []string{},
		DeviceEmphasis:    deviceEmphasis(consumer.PlatformUsage),
		Confidence:        0.6,
	}
	if consumer.Live {
		rec.Confidence = 0.75
	}
	if group, ok := parseAgeGroup(consumer.PrimaryAgeGroup); ok {
		// move halfway toward the market's primary age group
		rec.AgeRange = domain.AgeRange{
			Min: (target.Min + group.Min) / 2,
			Max: (target.Max + group.Max + 1) / 2,
		}
	}

	switch in.Responses.String(KeyAudienceExpansion, "") {
	case "similar_interests":
		rec.ExpansionStrategy = ExpansionSimilar
		related, ok := relatedInterests[reference.Normalize(in.Org.Industry)]
		if !ok {
			related = relatedInterests["default"]
		}
		for _, i := range related {
			if !contains(c.Targeting.Interests, i) {
				rec.InterestExpansion = append(rec.InterestExpansion, i)
			}
		}
	case "lookalike_audiences":
		rec.ExpansionStrategy = ExpansionLookalike
		rec.LookalikeSources = append(rec.LookalikeSources, "customer_list", "website_visitors")
	case "broad_targeting":
		rec.ExpansionStrategy = ExpansionBroad
		rec.AgeRange.Min = max(18, rec.AgeRange.Min-broadAgePadding)
		rec.AgeRange.Max = min(65, rec.AgeRange.Max+broadAgePadding)
	default:
		rec.ExpansionStrategy = ExpansionStrict
	}

	switch in.Responses.String(KeyPreviousPerf, "") {
	case "excellent", "good":
		rec.LookalikeSources = append(rec.LookalikeSources, "past_converters")
	}

	if in.Responses.String(KeySuccessMetric, "") == "customer_acquisition" {
		rec.Exclusions = []string{"existing_customers"}
	} else {
		rec.Exclusions = []string{"recent_converters"}
	}
	return rec
}

func deviceEmphasis(usage map[string]float64) string {
	mobile, okM := usage["mobile"]
	desktop, okD := usage["desktop"]
	switch {
	case !okM && !okD:
		return "balanced"
	case mobile > desktop:
		return "mobile_first"
	case desktop > mobile:
		return "desktop_first"
	default:
		return "balanced"
	}
}

// parseAgeGroup reads bands written as "25-44".
func parseAgeGroup(s string) (domain.AgeRange, bool) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return domain.AgeRange{}, false
	}
	var r domain.AgeRange
	if _, err := fmt.Sscanf(lo+" "+hi, "%d %d", &r.Min, &r.Max); err != nil || r.Max < r.Min {
		return domain.AgeRange{}, false
	}
	return r, true
}
