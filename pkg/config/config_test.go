package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverConfig_MaxTime(t *testing.T) {
	s := SolverConfig{MaxTimeMS: 5000}
	assert.Equal(t, 5*time.Second, s.MaxTime())
}

func validConfig() *Config {
	return &Config{
		Instance: InstanceConfig{Path: "data/TSPA.csv", FractionNodes: 0.5},
		Solver: SolverConfig{
			Algorithm:            "ls_steepest_2e_random",
			CandidateListSize:    10,
			NumIterations:        200,
			MaxTimeMS:            20000,
			PerturbationStrength: 4,
			Accept:               "always",
			Repetitions:          20,
		},
		Output: OutputConfig{Dir: "solutions", Formats: []string{"text"}},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing instance path", func(c *Config) { c.Instance.Path = "" }},
		{"fraction zero", func(c *Config) { c.Instance.FractionNodes = 0 }},
		{"fraction above one", func(c *Config) { c.Instance.FractionNodes = 1.5 }},
		{"unknown algorithm", func(c *Config) { c.Solver.Algorithm = "anneal" }},
		{"negative candidate list", func(c *Config) { c.Solver.CandidateListSize = -1 }},
		{"zero iterations", func(c *Config) { c.Solver.NumIterations = 0 }},
		{"zero time budget", func(c *Config) { c.Solver.MaxTimeMS = 0 }},
		{"zero perturbation", func(c *Config) { c.Solver.PerturbationStrength = 0 }},
		{"bad accept", func(c *Config) { c.Solver.Accept = "sometimes" }},
		{"zero repetitions", func(c *Config) { c.Solver.Repetitions = 0 }},
		{"unknown format", func(c *Config) { c.Output.Formats = []string{"docx"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestKnownAlgorithm(t *testing.T) {
	assert.True(t, KnownAlgorithm("msls"))
	assert.True(t, KnownAlgorithm("lsns_no_inner"))
	assert.False(t, KnownAlgorithm("tabu"))
}

func TestLoader_DefaultsWithEnvOverride(t *testing.T) {
	t.Setenv("SOLVER_INSTANCE_PATH", "data/TSPA.csv")
	t.Setenv("SOLVER_SOLVER_ALGORITHM", "msls")

	// No config file in an empty temp dir.
	l := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")))
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "data/TSPA.csv", cfg.Instance.Path)
	assert.Equal(t, "msls", cfg.Solver.Algorithm)
	// Defaults survive.
	assert.Equal(t, 0.5, cfg.Instance.FractionNodes)
	assert.Equal(t, 200, cfg.Solver.NumIterations)
	assert.Equal(t, "selcycle-solver", cfg.App.Name)
	assert.Equal(t, []string{"text"}, cfg.Output.Formats)
}

func TestLoader_EnvUnderscoreKeys(t *testing.T) {
	// Ключи с подчёркиваниями внутри имени: секцией считается только
	// первый сегмент.
	tests := []struct {
		envVar string
		value  string
		check  func(*testing.T, *Config)
	}{
		{"SOLVER_SOLVER_MAX_TIME_MS", "5000", func(t *testing.T, c *Config) {
			assert.Equal(t, int64(5000), c.Solver.MaxTimeMS)
			assert.Equal(t, 5*time.Second, c.Solver.MaxTime())
		}},
		{"SOLVER_SOLVER_NUM_ITERATIONS", "500", func(t *testing.T, c *Config) {
			assert.Equal(t, 500, c.Solver.NumIterations)
		}},
		{"SOLVER_SOLVER_CANDIDATE_LIST_SIZE", "15", func(t *testing.T, c *Config) {
			assert.Equal(t, 15, c.Solver.CandidateListSize)
		}},
		{"SOLVER_SOLVER_PERTURBATION_STRENGTH", "6", func(t *testing.T, c *Config) {
			assert.Equal(t, 6, c.Solver.PerturbationStrength)
		}},
		{"SOLVER_INSTANCE_FRACTION_NODES", "0.25", func(t *testing.T, c *Config) {
			assert.Equal(t, 0.25, c.Instance.FractionNodes)
		}},
		{"SOLVER_SOLVER_INNER_LOCAL_SEARCH", "false", func(t *testing.T, c *Config) {
			assert.False(t, c.Solver.InnerLocalSearch)
		}},
		{"SOLVER_LOG_MAX_BACKUPS", "9", func(t *testing.T, c *Config) {
			assert.Equal(t, 9, c.Log.MaxBackups)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.envVar, func(t *testing.T) {
			t.Setenv("SOLVER_INSTANCE_PATH", "data/TSPA.csv")
			t.Setenv(tt.envVar, tt.value)

			cfg, err := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml"))).Load()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoader_MaxTimeFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "instance:\n  path: data/TSPA.csv\nsolver:\n  max_time_ms: 5000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)

	assert.Equal(t, int64(5000), cfg.Solver.MaxTimeMS)
	assert.Equal(t, 5*time.Second, cfg.Solver.MaxTime())
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
instance:
  path: data/TSPB.csv
solver:
  algorithm: ils
  repetitions: 5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)

	assert.Equal(t, "data/TSPB.csv", cfg.Instance.Path)
	assert.Equal(t, "ils", cfg.Solver.Algorithm)
	assert.Equal(t, 5, cfg.Solver.Repetitions)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instance:\n  path: data/TSPB.csv\n"), 0644))

	t.Setenv("SOLVER_INSTANCE_PATH", "data/TSPC.csv")

	cfg, err := NewLoader(WithConfigPaths(path)).Load()
	require.NoError(t, err)
	assert.Equal(t, "data/TSPC.csv", cfg.Instance.Path)
}

func TestLoader_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "instance:\n  path: data/TSPA.csv\nsolver:\n  algorithm: nope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewLoader(WithConfigPaths(path)).Load()
	require.Error(t, err)
}
