package analysis

import (
	"fmt"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/reference"
)

var formatsByType = map[string][]string{
	"search":   {"responsive_search_ads", "callout_extensions", "sitelink_extensions"},
	"display":  {"responsive_display_ads", "static_banners", "html5_banners"},
	"video":    {"bumper_6s", "in_stream_15s", "in_stream_30s"},
	"shopping": {"product_listing_ads", "showcase_ads"},
	"social":   {"single_image", "carousel", "short_video"},
}

var focusByMetric = map[string]string{
	"brand_awareness":      "brand_story",
	"website_traffic":      "curiosity_and_value",
	"lead_generation":      "problem_solution",
	"sales_revenue":        "offer_and_urgency",
	"customer_acquisition": "value_proposition",
	"engagement":           "community_and_interaction",
}

var toneByMaturity = map[string]string{
	"emerging":  "educational",
	"growing":   "confident",
	"mature":    "differentiating",
	"declining": "reassuring",
}

var ctaByObjective = map[string][2]string{
	"awareness": {"Learn More", "Watch Now"},
	"traffic":   {"Visit Site", "Learn More"},
	"leads":     {"Get a Quote", "Sign Up"},
	"sales":     {"Shop Now", "Buy Now"},
}

var metricByObjective = map[string]string{
	"awareness": "impressions",
	"traffic":   "ctr",
	"leads":     "cost_per_lead",
	"sales":     "roas",
}

// Creative adjusts messaging, formats and calls to action. It reads only
// the campaign and the answers.
func Creative(in Input) domain.CreativeRecommendation {
	c := in.Campaign
	obj := objective(in)

	rec := domain.CreativeRecommendation{
		MessagingFocus: "value_proposition",
		Tone:           "professional",
		Formats:        []string{"image", "video"},
		PrimaryCTA:     "Learn More",
		SecondaryCTA:   "Get Started",
		Confidence:     0.6,
	}
	if f, ok := formatsByType[reference.Normalize(c.CampaignType)]; ok {
		rec.Formats = append([]string(nil), f...)
	}
	if f, ok := focusByMetric[in.Responses.String(KeySuccessMetric, "")]; ok {
		rec.MessagingFocus = f
	}
	maturity := in.Responses.String(KeyMarketMaturity, "")
	if t, ok := toneByMaturity[maturity]; ok {
		rec.Tone = t
	}
	if cta, ok := ctaByObjective[obj]; ok {
		rec.PrimaryCTA, rec.SecondaryCTA = cta[0], cta[1]
	}
	if c.Creative.CallToAction != "" && c.Creative.CallToAction != rec.PrimaryCTA {
		rec.SecondaryCTA = c.Creative.CallToAction
	}

	for _, theme := range c.Creative.MessagingThemes[:min(3, len(c.Creative.MessagingThemes))] {
		rec.CopySuggestions = append(rec.CopySuggestions, fmt.Sprintf("Lead with %s in the headline", theme))
	}
	switch maturity {
	case "emerging":
		rec.CopySuggestions = append(rec.CopySuggestions, "Explain the problem before the product")
	case "mature":
		rec.CopySuggestions = append(rec.CopySuggestions, "State what sets the offer apart from established players")
	}
	if rec.CopySuggestions == nil {
		rec.CopySuggestions = []string{"Pair a clear benefit with the call to action"}
	}

	variants := min(max(c.Creative.AssetCount, 2), 5)
	duration := 14
	if in.Responses.String(KeyUrgency, "") == "immediate" {
		duration = 7
	}
	metric, ok := metricByObjective[obj]
	if !ok {
		metric = "ctr"
	}
	rec.Testing = domain.CreativeTesting{Variants: variants, PrimaryMetric: metric, DurationDays: duration}
	return rec
}
