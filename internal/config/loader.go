package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

type mergeOverlay struct {
	Bindings []BindingConfig `toml:"bindings"`
}

func getConfigFilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv("CYPHERUI_CONFIG_DIR"); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
		xdgConfigDir := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigDir != "" {
			configDirs = append(configDirs, xdgConfigDir)
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		configPath := filepath.Join(dir, "cypherui", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "cypherui", "config.toml")
	}
	return ""
}

func GetConfigDir() string {
	configFile := getConfigFilePath()
	if configFile == "" {
		return ""
	}
	return filepath.Dir(configFile)
}

func loadDefaultConfig() *Config {
	config, err := LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
	return config
}

// LoadDefault builds a fresh config from the embedded defaults.
func LoadDefault() (*Config, error) {
	config := &Config{}
	for _, name := range []string{"default/config.toml", "default/bindings.toml"} {
		data, err := configFS.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "no embedded %s found", name)
		}
		if err := config.Load(string(data)); err != nil {
			return nil, errors.Wrapf(err, "failed to load embedded %s", name)
		}
	}
	return config, nil
}

func (c *Config) Load(data string) error {
	baseBindings := append([]BindingConfig(nil), c.Bindings...)

	metadata, err := toml.Decode(data, c)
	if err != nil {
		return errors.Wrap(err, "parsing config")
	}

	// Bindings are read into a fresh struct so the merge only sees what this
	// document declares, never the slice toml.Decode just overwrote.
	overlay := &mergeOverlay{}
	if _, err := toml.Decode(data, overlay); err != nil {
		return errors.Wrap(err, "parsing bindings")
	}

	if metadata.IsDefined("bindings") {
		c.Bindings = mergeBindings(baseBindings, overlay.Bindings)
	} else {
		c.Bindings = baseBindings
	}

	return c.ValidateBindings()
}

// LoadConfigFile returns the user config file contents, or nil when there is none.
func LoadConfigFile() ([]byte, error) {
	configFile := getConfigFilePath()
	if configFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", configFile)
	}
	return data, nil
}
