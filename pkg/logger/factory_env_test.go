package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

func TestWithDevelopment(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithDevelopment("svc"),
		logger.WithOutput(buf),
	)
	require.NotNil(t, log)
	log.Debug("msg")
	output := buf.String()
	assert.Contains(t, output, "DEBUG")
	assert.Contains(t, output, "service=svc")
	assert.Contains(t, output, "env=development")
}

func TestWithProduction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithProduction("svc"),
		logger.WithOutput(buf),
	)
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("msg")
	entry := decodeEntry(t, buf)
	assert.Equal(t, "svc", entry["service"])
	assert.Equal(t, "production", entry["env"])
}

func TestWithEnvironment(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"production", "production"},
		{"PROD", "production"},
		{"stage", "staging"},
		{"development", "development"},
		{"", "development"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(
				logger.WithEnvironment(tt.env, "tenantd"),
				logger.WithJSONFormatter(),
				logger.WithOutput(buf),
			)
			log.Info("msg")
			entry := decodeEntry(t, buf)
			assert.Equal(t, tt.want, entry["env"])
			assert.Equal(t, "tenantd", entry["service"])
		})
	}
}

func TestPresetWithoutServiceIsNoop(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithProduction(""),
		logger.WithOutput(buf),
	)
	log.Info("msg")
	entry := decodeEntry(t, buf)
	assert.NotContains(t, entry, "service")
}
