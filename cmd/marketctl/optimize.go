package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campaign-optimizer/internal/app"
	"campaign-optimizer/internal/core/domain"
)

const cliUser = "cli"

func newOptimizeCmd(load configLoader) *cobra.Command {
	var (
		flags     campaignFlags
		responses string
		optType   string
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run a full optimization in memory from a JSON answers file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(responses)
			if err != nil {
				return err
			}
			var answers domain.Responses
			if err = json.Unmarshal(raw, &answers); err != nil {
				return fmt.Errorf("parse %s: %w", responses, err)
			}

			_, campaigns, optimizer := app.InMemory(cfg, logger)
			c, org := flags.build(cliUser)
			campaigns.PutOrganization(org)
			campaigns.PutCampaign(c)

			opt, err := optimizer.StartOptimization(cmd.Context(), c.ID, cliUser, domain.OptimizationType(optType))
			if err != nil {
				return err
			}
			res, err := optimizer.ProcessQuestionnaire(cmd.Context(), opt.ID, cliUser, answers)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&responses, "responses", "", "path to a JSON object of questionnaire answers")
	cmd.Flags().StringVar(&optType, "optimization-type", string(domain.OptimizationFull), "full, timing_only or platform_only")
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}
