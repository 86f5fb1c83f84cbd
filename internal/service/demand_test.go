package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVDemandEstimator_Estimate(t *testing.T) {
	tests := []struct {
		name           string
		csv            string
		opts           []DemandOption
		expectedAnnual float64
		expectedMean   float64
		expectedRows   int
		expectedDays   int
		expectedErr    error
	}{
		{
			name:           "mean daily quantity scaled to a year",
			csv:            "Date,Store,Sales Quantity\n2024-01-01,A,2\n2024-01-01,B,4\n2024-01-02,A,3\n2024-01-03,A,3\n",
			expectedAnnual: 1095,
			expectedMean:   3,
			expectedRows:   4,
			expectedDays:   3,
		},
		{
			name:           "date column is optional",
			csv:            "Sales Quantity\n10\n20\n",
			expectedAnnual: 5475,
			expectedMean:   15,
			expectedRows:   2,
		},
		{
			name:           "header matching ignores case and spaces",
			csv:            " sales quantity ,date\n1.5,2024-03-01\n",
			expectedAnnual: 547.5,
			expectedMean:   1.5,
			expectedRows:   1,
			expectedDays:   1,
		},
		{
			name:           "custom columns",
			csv:            "day,units\n01/02/2024,7\n",
			opts:           []DemandOption{WithQuantityColumn("units"), WithDateColumn("day", "02/01/2006")},
			expectedAnnual: 2555,
			expectedMean:   7,
			expectedRows:   1,
			expectedDays:   1,
		},
		{
			name:        "missing quantity column",
			csv:         "Date,Qty\n2024-01-01,3\n",
			expectedErr: ErrMissingColumn,
		},
		{
			name:        "header only",
			csv:         "Date,Sales Quantity\n",
			expectedErr: ErrNoDemandRows,
		},
		{
			name:        "empty input",
			csv:         "",
			expectedErr: ErrNoDemandRows,
		},
		{
			name:        "unparsable quantity",
			csv:         "Sales Quantity\n3\nabc\n",
			expectedErr: ErrInvalidDemandValue,
		},
		{
			name:        "negative quantity",
			csv:         "Sales Quantity\n-3\n",
			expectedErr: ErrInvalidDemandValue,
		},
		{
			name:        "bad date",
			csv:         "Date,Sales Quantity\nyesterday,3\n",
			expectedErr: ErrInvalidDemandValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewCSVDemandEstimator(tt.opts...).Estimate(context.Background(), strings.NewReader(tt.csv))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedAnnual, est.AnnualDemand, 1e-9)
			assert.InDelta(t, tt.expectedMean, est.MeanDailyDemand, 1e-9)
			assert.Equal(t, tt.expectedRows, est.Rows)
			assert.Equal(t, tt.expectedDays, est.DaysCovered)
		})
	}
}

func TestCSVDemandEstimator_DateRange(t *testing.T) {
	csv := "Date,Sales Quantity\n2024-02-10,1\n2024-01-05,1\n2024-03-01,1\n"

	est, err := EstimateAnnualDemand(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), est.FirstDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), est.LastDate)
}

func TestCSVDemandEstimator_ReportsRowNumber(t *testing.T) {
	_, err := EstimateAnnualDemand(context.Background(), strings.NewReader("Sales Quantity\n1\n2\nx\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 4")
}

func TestCSVDemandEstimator_HonoursCancellation(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Sales Quantity\n")
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&sb, "%d\n", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EstimateAnnualDemand(ctx, strings.NewReader(sb.String()))
	assert.ErrorIs(t, err, context.Canceled)
}
