// Command marketctl inspects market intelligence and questionnaires and
// runs one-off optimizations without a database.
package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"campaign-optimizer/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Inspect market intelligence and campaign optimizations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log gateway activity to stderr")
	root.SetOut(out)

	loadConfig := func() (config.Config, *slog.Logger, error) {
		cfg, err := config.Load()
		if err != nil {
			return cfg, nil, err
		}
		if !verbose {
			cfg.Log.Level = "error"
		}
		return cfg, cfg.Log.New(os.Stderr), nil
	}

	root.AddCommand(
		newMarketCmd(loadConfig),
		newQuestionnaireCmd(loadConfig),
		newOptimizeCmd(loadConfig),
	)
	return root
}

type configLoader func() (config.Config, *slog.Logger, error)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
