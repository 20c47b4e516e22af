package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "searchfront", cfg.AppName)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "none", cfg.GateType)
	assert.Equal(t, time.Minute, cfg.GateWindow)
	assert.Equal(t, 30, cfg.GateMaxRequests)
	assert.Equal(t, "./configs/reporters.yaml", cfg.ReportersFile)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_BASE", "https://search.example/beta/api/")
	t.Setenv("GATE_TYPE", "BBolt")
	t.Setenv("GATE_MAX_REQUESTS", "5")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://search.example/beta/api/", cfg.APIBase)
	assert.Equal(t, "bbolt", cfg.GateType)
	assert.Equal(t, 5, cfg.GateMaxRequests)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"timeout":  {"request_timeout_seconds": 0},
		"window":   {"gate_type": "bbolt", "gate_window_seconds": -1},
		"max":      {"gate_type": "bbolt", "gate_max_requests": 0},
		"path":     {"gate_type": "bbolt", "gate_path": " "},
		"gateType": {"gate_type": "redis"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for k, val := range overrides {
				v.Set(k, val)
			}
			_, err := load(v)
			assert.Error(t, err)
		})
	}
}
