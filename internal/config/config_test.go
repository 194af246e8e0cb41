package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysize/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "SWEEP_WORKERS", "SWEEP_MAX_ROWS", "DEFAULT_CONFIDENCE", "EXPORT_DIR", "READ_TIMEOUT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.GreaterOrEqual(t, cfg.Sweep.Workers, 1)
	assert.Equal(t, 100000, cfg.Sweep.MaxRows)
	assert.Equal(t, 0.95, cfg.Sweep.DefaultConfidence)
	assert.Equal(t, ".", cfg.Export.Dir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SWEEP_WORKERS", "3")
	t.Setenv("SWEEP_MAX_ROWS", "50")
	t.Setenv("DEFAULT_CONFIDENCE", "0.9")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Sweep.Workers)
	assert.Equal(t, 50, cfg.Sweep.MaxRows)
	assert.Equal(t, 0.9, cfg.Sweep.DefaultConfidence)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DEFAULT_CONFIDENCE", "1.5")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	t.Setenv("DEFAULT_CONFIDENCE", "")
	t.Setenv("SWEEP_WORKERS", "0")
	_, err = Load()
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
