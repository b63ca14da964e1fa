package deck

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/opsdeck/opsdeck/internal/observability"
)

// appConfig is the persisted application configuration. Per-grid state
// lives in the preference store; this holds console-wide settings.
type appConfig struct {
	// LogLevel is the slog level name: debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// StateDir overrides where the preference database lives.
	StateDir string `yaml:"stateDir,omitempty"`

	// SearchDebounceMs is the quiet period for grid search input.
	SearchDebounceMs int `yaml:"searchDebounceMs"`

	// Animations disables panel animations when false, for slow
	// terminals.
	Animations bool `yaml:"animations"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		LogLevel:         "info",
		SearchDebounceMs: 300,
		Animations:       true,
	}
}

// ConfigManager loads and saves the application configuration. Reads are
// served from memory; Save writes the whole file back.
type ConfigManager struct {
	fs     afero.Fs
	path   string
	logger *observability.CoreLogger
	cfg    appConfig
}

// NewConfigManager loads the configuration at path, falling back to
// defaults when the file is missing or malformed.
func NewConfigManager(path string, logger *observability.CoreLogger) *ConfigManager {
	return NewConfigManagerFs(afero.NewOsFs(), path, logger)
}

// NewConfigManagerFs is NewConfigManager over an explicit filesystem.
//
// Intended for tests using an in-memory fs.
func NewConfigManagerFs(fs afero.Fs, path string, logger *observability.CoreLogger) *ConfigManager {
	m := &ConfigManager{
		fs:     fs,
		path:   path,
		logger: logger,
		cfg:    defaultAppConfig(),
	}
	m.load()
	return m
}

// DefaultConfigPath returns the config file location under the user's
// config directory.
func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "opsdeck", "config.yaml")
}

func (m *ConfigManager) load() {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.CaptureError(err, "op", "read_config", "path", m.path)
		}
		return
	}
	var cfg appConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		m.logger.CaptureError(err, "op", "decode_config", "path", m.path)
		return
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = m.cfg.LogLevel
	}
	if cfg.SearchDebounceMs <= 0 {
		cfg.SearchDebounceMs = m.cfg.SearchDebounceMs
	}
	m.cfg = cfg
}

// Save writes the configuration back to disk.
func (m *ConfigManager) Save() error {
	if err := m.fs.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(m.cfg)
	if err != nil {
		return err
	}
	return afero.WriteFile(m.fs, m.path, data, 0o644)
}

// LogLevel returns the configured log level name.
func (m *ConfigManager) LogLevel() string { return m.cfg.LogLevel }

// StateDir returns the configured state directory, or dir under the user
// config directory when unset.
func (m *ConfigManager) StateDir() string {
	if m.cfg.StateDir != "" {
		return m.cfg.StateDir
	}
	return filepath.Dir(m.path)
}

// SearchDebounce returns the configured search quiet period.
func (m *ConfigManager) SearchDebounce() time.Duration {
	return time.Duration(m.cfg.SearchDebounceMs) * time.Millisecond
}

// AnimationsEnabled reports whether panel animations are on.
func (m *ConfigManager) AnimationsEnabled() bool { return m.cfg.Animations }

// SetAnimationsEnabled updates the animation setting and saves.
func (m *ConfigManager) SetAnimationsEnabled(on bool) {
	m.cfg.Animations = on
	if err := m.Save(); err != nil {
		m.logger.CaptureError(err, "op", "save_config", "path", m.path)
	}
}
