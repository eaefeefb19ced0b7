package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
	"github.com/hupe1980/roundtable/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, evaluation.DefaultThreshold, cfg.ConvergenceThreshold)
	assert.Len(t, cfg.Phases, 3)
}

func TestParse_OverridesKeepDefaults(t *testing.T) {
	cfg, err := Parse([]byte("max_iterations: 7\nlogging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.InDelta(t, 0.9, cfg.ConvergenceThreshold, 1e-9)
	assert.Len(t, cfg.Phases, 3)
}

func TestParse_CustomPhases(t *testing.T) {
	payload := `
max_iterations: 4
phases:
  - name: draft
    role: researcher
  - name: polish
    role: executor
`
	cfg, err := Parse([]byte(payload))
	require.NoError(t, err)

	table := cfg.PhaseTable()
	require.Len(t, table, 2)
	assert.Equal(t, router.Phase{Name: "draft", Role: core.RoleResearcher}, table[0])
	assert.Equal(t, router.Phase{Name: "polish", Role: core.RoleExecutor}, table[1])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", "   \n"},
		{"not yaml", "max_iterations: [oops"},
		{"zero iterations", "max_iterations: 0"},
		{"threshold too high", "convergence_threshold: 1.5"},
		{"threshold zero", "convergence_threshold: 0.0\nmax_iterations: 3"},
		{"negative retries", "max_turn_retries: -1"},
		{"unnamed phase", "phases:\n  - role: researcher"},
		{"duplicate phase", "phases:\n  - {name: a, role: researcher}\n  - {name: a, role: critic}"},
		{"unknown role", "phases:\n  - {name: a, role: astrologer}"},
		{"coordinator in table", "phases:\n  - {name: a, role: coordinator}"},
		{"evaluator in table", "phases:\n  - {name: a, role: evaluator}"},
		{"bad log level", "logging:\n  level: loud"},
		{"bad log format", "logging:\n  format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roundtable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations: 9\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxIterations)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(dir)
	assert.ErrorContains(t, err, "directory")
}
