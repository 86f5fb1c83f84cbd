package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name   string
		entry  *LogEntry
		key    string
		value  interface{}
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:  "nil fields are allocated",
			entry: &LogEntry{ActionType: ActionOptimize},
			key:   "total_cost",
			value: 447.21,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 447.21, e.Fields["total_cost"])
			},
		},
		{
			name: "existing fields are kept",
			entry: &LogEntry{
				ActionType: ActionScheduledRun,
				Fields:     map[string]interface{}{"scenario": "plant.yaml"},
			},
			key:   "items",
			value: 2,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "plant.yaml", e.Fields["scenario"])
				assert.Equal(t, 2, e.Fields["items"])
			},
		},
		{
			name:  "same key overwrites",
			entry: &LogEntry{Fields: map[string]interface{}{"label": "old"}},
			key:   "label",
			value: "plant-a",
			verify: func(t *testing.T, e *LogEntry) {
				assert.Len(t, e.Fields, 1)
				assert.Equal(t, "plant-a", e.Fields["label"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	params := CostParameters{Demand: 1000, ManufacturerSetupCost: 50, HoldingCost: 2}

	tests := []struct {
		name   string
		entry  *LogEntry
		fields map[string]interface{}
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:   "cost parameters on an empty entry",
			entry:  &LogEntry{ActionType: ActionOptimize},
			fields: params.Fields(),
			verify: func(t *testing.T, e *LogEntry) {
				assert.Len(t, e.Fields, 7)
				assert.Equal(t, 1000.0, e.Fields["demand"])
				assert.Equal(t, 0.0, e.Fields["production_rate"])
			},
		},
		{
			name: "merge with existing fields",
			entry: &LogEntry{
				ActionType: ActionOptimizePortfolio,
				Fields:     map[string]interface{}{"items": 2},
			},
			fields: map[string]interface{}{"total_cost": 894.43},
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 2, e.Fields["items"])
				assert.Equal(t, 894.43, e.Fields["total_cost"])
			},
		},
		{
			name:   "empty map leaves fields empty",
			entry:  &LogEntry{ActionType: ActionEstimateDemand},
			fields: map[string]interface{}{},
			verify: func(t *testing.T, e *LogEntry) {
				assert.Empty(t, e.Fields)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithFields(tt.fields)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_AuditJSON(t *testing.T) {
	tests := []struct {
		name    string
		entry   LogEntry
		present map[string]interface{}
		absent  []string
	}{
		{
			name: "authenticated optimisation",
			entry: LogEntry{
				Level:      "info",
				Message:    "Lot size optimised",
				Subject:    "planner",
				ActionType: ActionOptimize,
				StatusCode: 200,
			},
			present: map[string]interface{}{
				"subject":     "planner",
				"action_type": "optimize",
				"status_code": 200.0,
			},
			absent: []string{"error", "fields"},
		},
		{
			name: "failed scheduled run without caller",
			entry: LogEntry{
				Level:      "error",
				Message:    "Scheduled portfolio optimisation",
				ActionType: ActionScheduledRun,
				Error:      "no feasible solution",
			},
			present: map[string]interface{}{
				"action_type": "scheduled_run",
				"error":       "no feasible solution",
			},
			absent: []string{"subject", "status_code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.entry)
			require.NoError(t, err)

			var doc map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &doc))
			for k, v := range tt.present {
				assert.Equal(t, v, doc[k], k)
			}
			for _, k := range tt.absent {
				assert.NotContains(t, doc, k)
			}
		})
	}
}

func TestActionTypesAreDistinct(t *testing.T) {
	actions := []string{ActionOptimize, ActionOptimizePortfolio, ActionEstimateDemand, ActionScheduledRun}

	seen := make(map[string]bool, len(actions))
	for _, a := range actions {
		assert.NotEmpty(t, a)
		assert.False(t, seen[a], "duplicate action type %q", a)
		seen[a] = true
	}
}
