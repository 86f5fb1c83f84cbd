package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/service"
)

func newDemandCmd() *cobra.Command {
	var csvPath, quantityColumn, dateColumn, dateLayout, format string

	cmd := &cobra.Command{
		Use:     "demand",
		Short:   "Estimate annual demand from a daily sales CSV",
		Example: `  epqctl demand --csv sales.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			est, err := estimateFile(cmd, csvPath, service.NewCSVDemandEstimator(
				service.WithQuantityColumn(quantityColumn),
				service.WithDateColumn(dateColumn, dateLayout),
			))
			if err != nil {
				return err
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), est)
			}
			return writeDemand(cmd.OutOrStdout(), est)
		},
	}

	f := cmd.Flags()
	f.StringVar(&csvPath, "csv", "", "Daily sales CSV file")
	f.StringVar(&quantityColumn, "quantity-column", service.DefaultQuantityColumn, "Column holding the daily quantity")
	f.StringVar(&dateColumn, "date-column", service.DefaultDateColumn, "Optional date column")
	f.StringVar(&dateLayout, "date-layout", service.DefaultDateLayout, "Go time layout of the date column")
	f.StringVarP(&format, "output", "o", formatText, "Output format (text, json)")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func estimateFile(cmd *cobra.Command, path string, est service.DemandEstimator) (model.DemandEstimate, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.DemandEstimate{}, fmt.Errorf("open demand csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := est.Estimate(ctx, f)
	if err != nil {
		return model.DemandEstimate{}, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}
