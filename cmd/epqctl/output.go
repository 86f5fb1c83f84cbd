package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/guttosm/epq-service/internal/domain/model"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func validateFormat(format string) error {
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, formatText, formatJSON)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResult(w io.Writer, r model.OptimizationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "TC(Q)\t%s\n", r.CostFunction)
	fmt.Fprintf(tw, "dTC/dQ\t%s\n", r.FirstDerivative)
	fmt.Fprintf(tw, "d2TC/dQ2\t%s\n", r.SecondDerivativeFunction)
	fmt.Fprintf(tw, "Q*\t%s\t(%s)\n", r.Display.OptimalLotSize, r.ExactLotSize)
	fmt.Fprintf(tw, "TC(Q*)\t%s\t(%s)\n", r.Display.TotalCost, r.ExactTotalCost)
	fmt.Fprintf(tw, "convex\t%t\n", r.Convex)
	return tw.Flush()
}

func writePortfolio(w io.Writer, label string, r model.PortfolioResult) error {
	if label != "" {
		fmt.Fprintf(w, "scenario: %s\n", label)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tQ*\tTC(Q*)\tCONVEX")
	for _, it := range r.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", it.Name, it.Result.Display.OptimalLotSize, it.Result.Display.TotalCost, it.Result.Convex)
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s\t\n", r.Display)
	return tw.Flush()
}

func writeDemand(w io.Writer, e model.DemandEstimate) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "rows\t%d\n", e.Rows)
	if e.DaysCovered > 0 {
		fmt.Fprintf(tw, "days\t%d\t%s .. %s\n", e.DaysCovered, e.FirstDate.Format("2006-01-02"), e.LastDate.Format("2006-01-02"))
	}
	fmt.Fprintf(tw, "mean daily demand\t%s\n", round2(e.MeanDailyDemand))
	fmt.Fprintf(tw, "annual demand\t%s\n", round2(e.AnnualDemand))
	return tw.Flush()
}

func round2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
