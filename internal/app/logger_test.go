//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/epq-service/config"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LogConfig
		expected zerolog.Level
	}{
		{name: "defaults to info", cfg: config.LogConfig{}, expected: zerolog.InfoLevel},
		{name: "debug level", cfg: config.LogConfig{Level: "debug"}, expected: zerolog.DebugLevel},
		{name: "pretty output", cfg: config.LogConfig{Level: "warn", Pretty: true}, expected: zerolog.WarnLevel},
		{name: "error level", cfg: config.LogConfig{Level: "error"}, expected: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}
