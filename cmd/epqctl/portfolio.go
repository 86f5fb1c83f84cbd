package main

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/epq-service/internal/scenario"
	"github.com/guttosm/epq-service/internal/service"
)

func newPortfolioCmd() *cobra.Command {
	var scenarioPath, demandCSV, format string

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Optimise every item of a scenario and sum the minimal costs",
		Example: `  epqctl portfolio --scenario plant.yaml
  epqctl portfolio --scenario plant.yaml --demand-csv sales.csv -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			sc, err := scenario.Load(scenarioPath)
			if err != nil {
				return err
			}

			items := sc.Items
			if demandCSV != "" {
				est, err := estimateFile(cmd, demandCSV, service.NewCSVDemandEstimator())
				if err != nil {
					return err
				}
				items = scenario.WithDemand(items, est.AnnualDemand)
			}

			result, err := service.NewOptimizerService().OptimizePortfolio(items)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writePortfolio(cmd.OutOrStdout(), sc.Label, result)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML with the portfolio items")
	cmd.Flags().StringVar(&demandCSV, "demand-csv", "", "Daily sales CSV; its annual estimate replaces every item's demand")
	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format (text, json)")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}
