package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlerive/mcoption/gbm"
	"github.com/charlerive/mcoption/option"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, option.Params{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, Steps: 252, NPaths: 5000}, s.Params)
	assert.Equal(t, gbm.Antithetic, s.Sampling)
	assert.False(t, s.Seeded)
	assert.Zero(t, s.Workers)
	assert.NoError(t, s.Params.Validate())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MCOPTION_SIGMA", "0.35")
	t.Setenv("MCOPTION_PATHS", "1001")
	t.Setenv("MCOPTION_SEED", "12345")
	t.Setenv("MCOPTION_SAMPLING", "independent")
	t.Setenv("MCOPTION_CHART_DIR", "/tmp/charts")

	s, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, 0.35, s.Params.Sigma)
	assert.Equal(t, 1001, s.Params.NPaths)
	assert.True(t, s.Seeded)
	assert.Equal(t, uint64(12345), s.Seed)
	assert.Equal(t, gbm.Independent, s.Sampling)
	assert.Equal(t, "/tmp/charts", s.ChartDir)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "mcoption.yaml")
	body := []byte("s0: 120\nstrike: 110\nrate: 0.01\nt: 0.5\nsteps: 10\nseed: 7\n")
	require.NoError(t, os.WriteFile(filename, body, 0644))

	v := New()
	require.NoError(t, ReadFile(v, filename))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 120.0, s.Params.S0)
	assert.Equal(t, 110.0, s.Params.K)
	assert.Equal(t, 0.01, s.Params.R)
	assert.Equal(t, 0.5, s.Params.T)
	assert.Equal(t, 10, s.Params.Steps)
	assert.Equal(t, 0.2, s.Params.Sigma)
	assert.True(t, s.Seeded)
	assert.Equal(t, uint64(7), s.Seed)
}

func TestReadFile_Missing(t *testing.T) {
	assert.NoError(t, ReadFile(New(), ""))
	assert.Error(t, ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml")))
}

func TestLoad_BadSampling(t *testing.T) {
	v := New()
	v.Set("sampling", "quasi")
	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoad_ExampleFile(t *testing.T) {
	v := New()
	require.NoError(t, ReadFile(v, "mcoption.yaml"))

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, option.Params{S0: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1, Steps: 252, NPaths: 5000}, s.Params)
	assert.False(t, s.Seeded)
}
