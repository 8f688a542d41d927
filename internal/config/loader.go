package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/2beens/intervals-sync/pkg"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// DefaultConfigFile is looked up relative to the working directory
	// and silently skipped when absent.
	DefaultConfigFile = ".sync_config.json"

	envPrefix = "INTERVALS_SYNC_"
)

// Load builds a Config by layering defaults, an optional JSON file, env
// vars and CLI flags. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (JSON), path from --config / INTERVALS_SYNC_CONFIG
//  3. env (prefix INTERVALS_SYNC_)
//  4. flags the user explicitly set
func Load(flags *pflag.FlagSet) (*Config, error) {
	base := New()

	k := koanf.New(".")

	configPath, explicit := resolveConfigPath(flags)
	loadFile := explicit
	if !explicit {
		exists, err := pkg.PathExists(configPath, false)
		if err != nil {
			return nil, fmt.Errorf("check config file %s: %w", configPath, err)
		}
		loadFile = exists
	}
	if loadFile {
		if err := k.Load(file.Provider(configPath), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Env keys like INTERVALS_SYNC_ATHLETE_ID map to flat keys like
	// athlete_id, matching the koanf tags on the struct.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, strings.ToLower(envPrefix))
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// Only flags the user actually set are merged, so flag defaults
	// never shadow file or env values. Flag names use dashes, koanf
	// keys use underscores.
	if flags != nil {
		flagProvider := posflag.ProviderWithValue(flags, ".", k, func(key, value string) (string, any) {
			if flag := flags.Lookup(key); flag == nil || !flag.Changed {
				return "", nil
			}
			return strings.ReplaceAll(key, "-", "_"), value
		})
		if err := k.Load(flagProvider, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Sentry and Honeycomb keep their usual ambient env vars as a
	// fallback when not set through the config layers.
	if cfg.SentryDSN == "" {
		cfg.SentryDSN = os.Getenv("SENTRY_DSN")
	}
	if !cfg.HoneycombEnabled {
		cfg.HoneycombEnabled = os.Getenv("HONEYCOMB_ENABLED") == "true"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolveConfigPath(flags *pflag.FlagSet) (path string, explicit bool) {
	if flags != nil {
		if flag := flags.Lookup("config"); flag != nil && flag.Changed {
			return flag.Value.String(), true
		}
	}
	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		return path, true
	}
	return DefaultConfigFile, false
}
