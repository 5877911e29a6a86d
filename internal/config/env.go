package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// EnvPrefix prefixes every environment override, e.g. STATICBUILD_OUTPUT.
const EnvPrefix = "STATICBUILD"

// envOverrides mirrors the settings that may come from the environment.
// Empty values leave the file/default value in place.
type envOverrides struct {
	Source         string
	Output         string
	Page           string
	Title          string
	HashLibraryURL string `split_words:"true"`
	Port           int
	MetricsFile    string `split_words:"true"`
	LogLevel       string `split_words:"true"`
}

// loadEnvFiles loads .env and .env.local when present. godotenv never overrides
// variables that are already set in the process environment.
func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "file", f, "error", err)
			continue
		}
		slog.Debug("loaded env file", "file", f)
	}
}

func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to process environment overrides").
			Fatal().
			UserAction().
			Build()
	}
	setIfNotEmpty(&cfg.Source, env.Source)
	setIfNotEmpty(&cfg.Output.Directory, env.Output)
	setIfNotEmpty(&cfg.Output.Page, env.Page)
	setIfNotEmpty(&cfg.Page.Title, env.Title)
	setIfNotEmpty(&cfg.Page.HashLibraryURL, env.HashLibraryURL)
	setIfNotEmpty(&cfg.Metrics.Textfile, env.MetricsFile)
	if env.Port != 0 {
		cfg.Serve.Port = env.Port
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = NormalizeLogLevel(env.LogLevel)
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
