package main

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"campaign-optimizer/internal/adapter/usecase"
	"campaign-optimizer/internal/core/domain"
)

// campaignFlags describes the ad-hoc campaign the commands work on.
type campaignFlags struct {
	industry     string
	campaignType string
	objective    string
	platform     string
	dailyBudget  float64
	totalBudget  float64
	locations    []string
	interests    []string
}

func (f *campaignFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.industry, "industry", "retail", "organization industry")
	cmd.Flags().StringVar(&f.campaignType, "type", "search", "campaign type")
	cmd.Flags().StringVar(&f.objective, "objective", "sales", "primary objective")
	cmd.Flags().StringVar(&f.platform, "platform", "", "current platform")
	cmd.Flags().Float64Var(&f.dailyBudget, "daily-budget", 0, "daily budget")
	cmd.Flags().Float64Var(&f.totalBudget, "total-budget", 0, "total budget")
	cmd.Flags().StringSliceVar(&f.locations, "locations", []string{"Canada"}, "targeted locations")
	cmd.Flags().StringSliceVar(&f.interests, "interests", nil, "targeted interests")
}

func (f *campaignFlags) build(userID string) (domain.Campaign, domain.Organization) {
	org := domain.Organization{ID: "cli-org", Name: "cli", Industry: f.industry}
	c := domain.Campaign{
		ID:               "cli-campaign",
		OrgID:            org.ID,
		UserID:           userID,
		Name:             "cli",
		CampaignType:     f.campaignType,
		Platform:         f.platform,
		Status:           "draft",
		PrimaryObjective: f.objective,
		Currency:         "CAD",
		Targeting:        domain.Targeting{Locations: f.locations, Interests: f.interests},
		CreatedAt:        time.Now(),
	}
	if f.dailyBudget > 0 {
		c.DailyBudget = decimal.NewNullDecimal(decimal.NewFromFloat(f.dailyBudget))
	}
	if f.totalBudget > 0 {
		c.TotalBudget = decimal.NewNullDecimal(decimal.NewFromFloat(f.totalBudget))
	}
	return c, org
}

func newQuestionnaireCmd(_ configLoader) *cobra.Command {
	var flags campaignFlags
	cmd := &cobra.Command{
		Use:   "questionnaire",
		Short: "Print the questionnaire generated for a campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, org := flags.build("cli")
			return printJSON(cmd, usecase.NewQuestionnaireService(nil).Generate(cmd.Context(), c, org))
		},
	}
	flags.register(cmd)
	return cmd
}
