package config

import (
	"context"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CARTOART_CONFIG is set
//  3. env (prefix CARTOART_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CARTOART_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: CARTOART_ADDR, CARTOART_MARKET_URL, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("CARTOART_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "cartoart_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	switch {
	case cfg.Addr == "":
		return nil, ErrEmptyAddr
	case cfg.MarketURL == "" && cfg.FallbackSnapshotPath == "":
		return nil, ErrNoMarketSource
	case cfg.RefreshIntervalSeconds <= 0:
		return nil, ErrBadRefreshInterval
	}
	return &cfg, nil
}
