package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "staticbuild.yaml"

// Config represents the application configuration.
type Config struct {
	// Source is the asset directory mirrored into the output. A missing source is not an error.
	Source  string        `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Serve   ServeConfig   `yaml:"serve"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"` // Fully replaced on every build
	Page      string `yaml:"page"`      // Generated page filename inside Directory
}

// PageConfig holds the values rendered into the demo page.
type PageConfig struct {
	Title          string `yaml:"title"`
	Stylesheet     string `yaml:"stylesheet"`
	HashLibraryURL string `yaml:"hash_library_url"`
	DefaultMessage string `yaml:"default_message"`
	Intro          string `yaml:"intro,omitempty"` // Markdown
}

// ServeConfig configures the local preview server.
type ServeConfig struct {
	Port              int  `yaml:"port"`
	DisableLiveReload bool `yaml:"disable_live_reload,omitempty"`
}

// MetricsConfig configures build metrics export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // Prometheus textfile written after each build
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level LogLevel `yaml:"level,omitempty"`
}

// Load reads the configuration at configPath on top of Default().
// When required is false a missing file yields the defaults.
// .env files and STATICBUILD_* environment variables are applied afterwards.
func Load(configPath string, required bool) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if configPath != "" {
		if err := readFile(configPath, required, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(configPath string, required bool, cfg *Config) error {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		if required {
			return errors.NewError(errors.CategoryNotFound, "configuration file not found").
				Fatal().
				UserAction().
				WithContext("path", configPath).
				Build()
		}
		return nil
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Init creates a new configuration file with the default values spelled out.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Build()
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return nil
}
