package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/epq-service/internal/domain/model"
)

const (
	// DefaultQuantityColumn is the daily sales column of the demand CSV.
	DefaultQuantityColumn = "Sales Quantity"
	// DefaultDateColumn is the optional date column of the demand CSV.
	DefaultDateColumn = "Date"
	// DefaultDateLayout is the layout of the date column.
	DefaultDateLayout = "2006-01-02"

	daysPerYear = 365
)

var (
	// ErrMissingColumn is returned when the quantity column is absent.
	ErrMissingColumn = errors.New("demand csv: missing column")
	// ErrNoDemandRows is returned for a CSV without data rows.
	ErrNoDemandRows = errors.New("demand csv: no data rows")
	// ErrInvalidDemandValue is returned for an unparsable or negative row.
	ErrInvalidDemandValue = errors.New("demand csv: invalid value")
)

// DemandEstimator estimates annual demand from daily sales history.
type DemandEstimator interface {
	Estimate(ctx context.Context, r io.Reader) (model.DemandEstimate, error)
}

// DemandOption configures a CSVDemandEstimator.
type DemandOption func(*CSVDemandEstimator)

// CSVDemandEstimator reads daily sales rows from CSV.
type CSVDemandEstimator struct {
	quantityColumn string
	dateColumn     string
	dateLayout     string
}

// NewCSVDemandEstimator creates an estimator with the default column names.
func NewCSVDemandEstimator(opts ...DemandOption) *CSVDemandEstimator {
	e := &CSVDemandEstimator{
		quantityColumn: DefaultQuantityColumn,
		dateColumn:     DefaultDateColumn,
		dateLayout:     DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithQuantityColumn overrides the quantity column name.
func WithQuantityColumn(name string) DemandOption {
	return func(e *CSVDemandEstimator) {
		if name != "" {
			e.quantityColumn = name
		}
	}
}

// WithDateColumn overrides the date column name and layout.
func WithDateColumn(name, layout string) DemandOption {
	return func(e *CSVDemandEstimator) {
		if name != "" {
			e.dateColumn = name
		}
		if layout != "" {
			e.dateLayout = layout
		}
	}
}

// EstimateAnnualDemand reads a daily sales CSV and returns the annual demand.
func EstimateAnnualDemand(ctx context.Context, r io.Reader, opts ...DemandOption) (model.DemandEstimate, error) {
	return NewCSVDemandEstimator(opts...).Estimate(ctx, r)
}

// Estimate returns the mean daily quantity scaled to a year. A linear trend
// fitted with an intercept averages to the same value over the sample, so
// the mean is used directly.
func (e *CSVDemandEstimator) Estimate(ctx context.Context, r io.Reader) (model.DemandEstimate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.DemandEstimate{}, ErrNoDemandRows
	}
	if err != nil {
		return model.DemandEstimate{}, fmt.Errorf("read demand header: %w", err)
	}

	qtyIdx, dateIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, e.quantityColumn):
			qtyIdx = i
		case strings.EqualFold(name, e.dateColumn):
			dateIdx = i
		}
	}
	if qtyIdx < 0 {
		return model.DemandEstimate{}, fmt.Errorf("%w %q", ErrMissingColumn, e.quantityColumn)
	}

	var (
		est   model.DemandEstimate
		sum   = decimal.Zero
		days  = make(map[string]struct{})
		line  = 1
		first time.Time
		last  time.Time
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return model.DemandEstimate{}, fmt.Errorf("read demand row %d: %w", line, err)
		}
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return model.DemandEstimate{}, err
			}
		}
		if qtyIdx >= len(record) {
			return model.DemandEstimate{}, fmt.Errorf("%w: row %d has no %q value", ErrInvalidDemandValue, line, e.quantityColumn)
		}

		qty, err := decimal.NewFromString(strings.TrimSpace(record[qtyIdx]))
		if err != nil || qty.IsNegative() {
			return model.DemandEstimate{}, fmt.Errorf("%w: row %d quantity %q", ErrInvalidDemandValue, line, record[qtyIdx])
		}
		sum = sum.Add(qty)
		est.Rows++

		if dateIdx >= 0 && dateIdx < len(record) {
			raw := strings.TrimSpace(record[dateIdx])
			day, err := time.Parse(e.dateLayout, raw)
			if err != nil {
				return model.DemandEstimate{}, fmt.Errorf("%w: row %d date %q", ErrInvalidDemandValue, line, raw)
			}
			days[day.Format(DefaultDateLayout)] = struct{}{}
			if first.IsZero() || day.Before(first) {
				first = day
			}
			if last.IsZero() || day.After(last) {
				last = day
			}
		}
	}

	if est.Rows == 0 {
		return model.DemandEstimate{}, ErrNoDemandRows
	}

	rows := decimal.NewFromInt(int64(est.Rows))
	est.MeanDailyDemand = sum.Div(rows).InexactFloat64()
	est.AnnualDemand = sum.Mul(decimal.NewFromInt(daysPerYear)).Div(rows).InexactFloat64()
	est.DaysCovered = len(days)
	est.FirstDate = first
	est.LastDate = last
	return est, nil
}
