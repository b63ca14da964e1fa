package deck_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/opsdeck/opsdeck/internal/deck"
	"github.com/opsdeck/opsdeck/internal/observability"
)

func TestConfigDefaultsWhenFileMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := deck.NewConfigManagerFs(fs, "/cfg/config.yaml", observability.NewNoOpLogger())

	require.Equal(t, "info", m.LogLevel())
	require.Equal(t, 300*time.Millisecond, m.SearchDebounce())
	require.True(t, m.AnimationsEnabled())
	require.Equal(t, "/cfg", m.StateDir())
}

func TestConfigRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := observability.NewNoOpLogger()

	m := deck.NewConfigManagerFs(fs, "/cfg/config.yaml", logger)
	m.SetAnimationsEnabled(false)

	reloaded := deck.NewConfigManagerFs(fs, "/cfg/config.yaml", logger)
	require.False(t, reloaded.AnimationsEnabled())
	require.Equal(t, "info", reloaded.LogLevel())
}

func TestConfigLoadsValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "logLevel: debug\nstateDir: /var/lib/opsdeck\nsearchDebounceMs: 150\nanimations: true\n"
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte(data), 0o644))

	m := deck.NewConfigManagerFs(fs, "/cfg/config.yaml", observability.NewNoOpLogger())
	require.Equal(t, "debug", m.LogLevel())
	require.Equal(t, "/var/lib/opsdeck", m.StateDir())
	require.Equal(t, 150*time.Millisecond, m.SearchDebounce())
}

func TestConfigMalformedFileFallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cfg/config.yaml", []byte("{not yaml"), 0o644))

	m := deck.NewConfigManagerFs(fs, "/cfg/config.yaml", observability.NewNoOpLogger())
	require.Equal(t, "info", m.LogLevel())
	require.Equal(t, 300*time.Millisecond, m.SearchDebounce())
}
