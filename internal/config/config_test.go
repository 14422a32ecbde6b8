package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"arbor/internal/history"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.Equal(t, history.DefaultDepth, cfg.History.Depth)
	require.Equal(t, history.StrategyV4, cfg.Strategy())
	require.Equal(t, float64(100), cfg.Clone.OffsetX)
	require.Equal(t, float64(100), cfg.Clone.OffsetY)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arbor.yaml")
	raw := "history:\n  depth: 5\n  strategy: v2\nclone:\n  offset_x: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.History.Depth)
	require.Equal(t, history.StrategyV2, cfg.Strategy())
	require.Equal(t, float64(40), cfg.Clone.OffsetX)
	// Fields the file does not mention keep their defaults.
	require.Equal(t, float64(100), cfg.Clone.OffsetY)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown strategy", "history:\n  strategy: v9\n"},
		{"zero depth", "history:\n  depth: 0\n"},
		{"malformed yaml", "history: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arbor.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.raw), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
