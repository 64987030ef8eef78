// Package config loads the slink configuration file into a fixed, typed
// structure. The loaded Config is immutable input for the rest of the
// program; every component receives it as an argument.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/slink-tools/slink/internal/errors"
)

// EnvConfigPath is the environment variable that overrides the
// configuration file location.
const EnvConfigPath = "SLINK_CONFIG"

// LogLevel specifies the logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat specifies the log output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// SourcesConfig holds the ordered list of skill source directories.
// Earlier entries shadow later ones during resolution.
type SourcesConfig struct {
	Skills []string `toml:"skills"`
}

// GlobalConfig describes the global scope: a set of target directories and
// the skill names linked into each of them.
type GlobalConfig struct {
	Targets []string `toml:"targets"`
	Skills  []string `toml:"skills"`
}

// ProjectConfig describes a per-project scope.
type ProjectConfig struct {
	// Inherit controls whether global skills are also linked into this
	// project. Absent means true.
	Inherit *bool    `toml:"inherit"`
	Skills  []string `toml:"skills"`
}

// Inherits reports whether the project receives the global skill set.
func (p ProjectConfig) Inherits() bool {
	return p.Inherit == nil || *p.Inherit
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	Format LogFormat `toml:"format"`
}

// Config is the main configuration struct for slink.
//
// Absent sections decode to their zero values; nothing is invented. An
// empty source list means resolution always fails, loudly.
type Config struct {
	Sources  SourcesConfig            `toml:"sources"`
	Global   GlobalConfig             `toml:"global"`
	Projects map[string]ProjectConfig `toml:"projects"`
	Logging  LoggingConfig            `toml:"logging"`
}

// Load reads and parses the configuration file at path. All configured
// paths (sources, targets, project keys) have "~" expanded so callers work
// with concrete filesystem paths only.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	for i, src := range cfg.Sources.Skills {
		cfg.Sources.Skills[i] = ExpandPath(src)
	}
	for i, target := range cfg.Global.Targets {
		cfg.Global.Targets[i] = ExpandPath(target)
	}
	if len(cfg.Projects) > 0 {
		projects := make(map[string]ProjectConfig, len(cfg.Projects))
		for path, project := range cfg.Projects {
			projects[ExpandPath(path)] = project
		}
		cfg.Projects = projects
	}

	return &cfg, nil
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "slink", "config.toml"), nil
}

// Locate resolves the configuration file path: explicit flag value first,
// then the SLINK_CONFIG environment variable, then the default per-user
// path.
func Locate(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return ExpandPath(env), nil
	}
	return DefaultPath()
}

// ExpandPath expands ~ at the start of a path to the user's home directory.
// If ~ is not at the start or home directory cannot be determined, returns
// path unchanged.
func ExpandPath(path string) string {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
