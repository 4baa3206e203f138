package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		ctx := context.Background()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then defaults should apply", func() {
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.MarketURL, ShouldContainSubstring, "cartola")
				So(cfg.RefreshIntervalSeconds, ShouldEqual, 300)
				So(cfg.FetchTimeoutMS, ShouldEqual, 10_000)
				So(cfg.MaxRosterRows, ShouldEqual, 200)
				So(cfg.ValuationToken, ShouldBeEmpty)
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		ctx := context.Background()

		_ = os.Setenv("CARTOART_ADDR", ":8080")
		_ = os.Setenv("CARTOART_MARKET_URL", "http://localhost:9090/atletas/mercado")
		_ = os.Setenv("CARTOART_REFRESH_INTERVAL_SECONDS", "60")
		_ = os.Setenv("CARTOART_MAX_ROSTER_ROWS", "50")
		defer func() {
			_ = os.Unsetenv("CARTOART_ADDR")
			_ = os.Unsetenv("CARTOART_MARKET_URL")
			_ = os.Unsetenv("CARTOART_REFRESH_INTERVAL_SECONDS")
			_ = os.Unsetenv("CARTOART_MAX_ROSTER_ROWS")
		}()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then env values should win over defaults", func() {
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.MarketURL, ShouldEqual, "http://localhost:9090/atletas/mercado")
				So(cfg.RefreshIntervalSeconds, ShouldEqual, 60)
				So(cfg.MaxRosterRows, ShouldEqual, 50)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := []byte("addr: \":7070\"\nlog_level: debug\nvaluation_url: http://localhost:9090/valuation\n")
		So(os.WriteFile(path, content, 0o600), ShouldBeNil)

		_ = os.Setenv("CARTOART_CONFIG", path)
		defer func() { _ = os.Unsetenv("CARTOART_CONFIG") }()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)

			Convey("Then file values should layer over defaults", func() {
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.ValuationURL, ShouldEqual, "http://localhost:9090/valuation")
				So(cfg.MarketURL, ShouldContainSubstring, "cartola")
			})
		})

		Convey("When env overrides the file", func() {
			_ = os.Setenv("CARTOART_ADDR", ":6060")
			defer func() { _ = os.Unsetenv("CARTOART_ADDR") }()

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})

		Convey("When the file does not exist", func() {
			_ = os.Setenv("CARTOART_CONFIG", filepath.Join(dir, "missing.yaml"))
			_, err := config.Load(ctx)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid configuration", t, func() {
		ctx := context.Background()

		Convey("When the listen address is empty", func() {
			_ = os.Setenv("CARTOART_ADDR", "")
			defer func() { _ = os.Unsetenv("CARTOART_ADDR") }()

			_, err := config.Load(ctx)
			So(errors.Is(err, config.ErrEmptyAddr), ShouldBeTrue)
		})

		Convey("When no market source is configured", func() {
			_ = os.Setenv("CARTOART_MARKET_URL", "")
			defer func() { _ = os.Unsetenv("CARTOART_MARKET_URL") }()

			_, err := config.Load(ctx)
			So(errors.Is(err, config.ErrNoMarketSource), ShouldBeTrue)
		})

		Convey("When a fallback dataset stands in for the market URL", func() {
			_ = os.Setenv("CARTOART_MARKET_URL", "")
			_ = os.Setenv("CARTOART_FALLBACK_SNAPSHOT_PATH", "/var/lib/cartoart/mercado.json")
			defer func() {
				_ = os.Unsetenv("CARTOART_MARKET_URL")
				_ = os.Unsetenv("CARTOART_FALLBACK_SNAPSHOT_PATH")
			}()

			cfg, err := config.Load(ctx)
			So(err, ShouldBeNil)
			So(cfg.FallbackSnapshotPath, ShouldNotBeEmpty)
		})

		Convey("When the refresh interval is not positive", func() {
			_ = os.Setenv("CARTOART_REFRESH_INTERVAL_SECONDS", "0")
			defer func() { _ = os.Unsetenv("CARTOART_REFRESH_INTERVAL_SECONDS") }()

			_, err := config.Load(ctx)
			So(errors.Is(err, config.ErrBadRefreshInterval), ShouldBeTrue)
		})
	})
}
