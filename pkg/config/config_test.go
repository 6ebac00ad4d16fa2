package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/brep/pkg/geom"
	"github.com/chazu/brep/pkg/topo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, topo.MatchValue, cfg.Match())
	assert.Equal(t, DefaultEvalTimeout, cfg.EvalTimeout.Duration())
	assert.Equal(t, geom.Exact[float64](), cfg.ModelTolerance())
	assert.Len(t, cfg.ModelOptions(), 2)
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
tolerance: 0.001
vertex_match: point
eval_timeout: 2s
`)
	cfg, got, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	assert.Equal(t, topo.MatchPoint, cfg.Match())
	assert.Equal(t, geom.Within(0.001), cfg.ModelTolerance())
	assert.Equal(t, 2*time.Second, cfg.EvalTimeout.Duration())
	assert.Equal(t, 1, cfg.Version)
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	cfg, _, err := LoadFromPath(writeConfig(t, "version: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "value", cfg.VertexMatch)
	assert.Nil(t, cfg.Tolerance)
	assert.Equal(t, DefaultEvalTimeout, cfg.EvalTimeout.Duration())
}

func TestLoadFromPathErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed yaml", "tolerance: [", "parse config"},
		{"bad duration", "eval_timeout: soon\n", "parse config"},
		{"unknown policy", "vertex_match: identity\n", "unknown vertex match policy"},
		{"negative tolerance", "tolerance: -1\n", "tolerance must be"},
		{"nan tolerance", "tolerance: .nan\n", "tolerance must be"},
		{"negative timeout", "eval_timeout: -1s\n", "eval_timeout must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadFromPath(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	_, _, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidateInfiniteTolerance(t *testing.T) {
	cfg := DefaultConfig()
	inf := math.Inf(1)
	cfg.Tolerance = &inf
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	tol := 0.25
	cfg := DefaultConfig()
	cfg.Tolerance = &tol
	cfg.VertexMatch = "id"
	cfg.EvalTimeout = Duration(750 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "nested", "brep.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadUsesEnvironment(t *testing.T) {
	path := writeConfig(t, "vertex_match: id\n")
	t.Setenv(EnvConfigPath, path)

	cfg, got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, topo.MatchID, cfg.Match())
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}
