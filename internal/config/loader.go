package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/statusboard/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".statusboard.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/statusboard"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. STATUSBOARD_API_PASSWORD.
	EnvPrefix = "STATUSBOARD"
)

// Load reads config from the specified path, with environment overrides
// applied on top. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'statusboard init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .statusboard.yaml in current directory
// 3. .statusboard.yaml in parent directories (stops at git root or home)
// 4. ~/.config/statusboard/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	home, _ := os.UserHomeDir()
	if path := findUp(cwd, home); path != "" {
		return path, nil
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// findUp looks for ConfigFileName in dir and its parents, stopping at a git
// root, the home directory or the filesystem root.
func findUp(dir, home string) string {
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		if isGitRoot(dir) {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		if home != "" && parent == home {
			return ""
		}
		dir = parent
	}
}

// Resolve finds and loads the config, falling back to defaults plus
// environment overrides when no file exists. Returns the config and the
// path it came from ("" when none).
func Resolve(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newViper returns a viper instance with every key defaulted, so
// AutomaticEnv can override keys missing from the file.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("api.url", "")
	v.SetDefault("api.username", "")
	v.SetDefault("api.password", "")
	v.SetDefault("api.insecure_skip_verify", false)
	v.SetDefault("api.timeout", def.API.Timeout.String())
	v.SetDefault("poll.interval", def.Poll.Interval.String())
	v.SetDefault("board.slots", def.Board.Slots)
	v.SetDefault("board.timezone", def.Board.Timezone)
	v.SetDefault("server.listen", "")
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "the environment"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.API.URL = strings.TrimRight(strings.TrimSpace(cfg.API.URL), "/")
	cfg.API.Username = Expand(cfg.API.Username)
	cfg.API.Password = Expand(cfg.API.Password)

	return cfg, nil
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
