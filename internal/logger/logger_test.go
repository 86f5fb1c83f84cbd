//go:build !integration

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			InitWithWriter(tt.level, false, &bytes.Buffer{})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInit_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", false, &buf)

	l := WithContext(map[string]interface{}{"request_id": "req-1", "kind": "single"})
	l.Info().Msg("optimised")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "optimised", line["message"])
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "single", line["kind"])
	assert.Contains(t, line, "time")
}

func TestInit_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("debug", true, &buf)

	l := Logger()
	l.Debug().Msg("pretty")
	assert.Contains(t, buf.String(), "pretty")
	assert.NotContains(t, buf.String(), `"message"`)
}
