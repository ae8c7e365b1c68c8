package main

import (
	"github.com/spf13/cobra"

	"campaign-optimizer/internal/adapter/memory"
	"campaign-optimizer/internal/app"
)

func newMarketCmd(load configLoader) *cobra.Command {
	var (
		geography string
		lookback  int
		summary   bool
	)
	cmd := &cobra.Command{
		Use:   "market [industry]",
		Short: "Fetch market intelligence for an industry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			industry := ""
			if len(args) == 1 {
				industry = args[0]
			}
			market := app.NewMarket(cfg, memory.NewMarketCache(nil), logger)
			if summary {
				return printJSON(cmd, market.Summary(cmd.Context(), industry))
			}
			return printJSON(cmd, market.Get(cmd.Context(), industry, geography, lookback))
		},
	}
	cmd.Flags().StringVar(&geography, "geography", "", "geography, defaults to OPTIMIZER_GEOGRAPHY")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "months of history, defaults to OPTIMIZER_LOOKBACK_MONTHS")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the condensed summary")
	return cmd
}
