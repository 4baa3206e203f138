package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/adapters/http/api"
	app "github.com/tcorrea/cartoart/internal/app"
	"github.com/tcorrea/cartoart/internal/config"
	"github.com/tcorrea/cartoart/pkg/logger"
	"github.com/tcorrea/cartoart/pkg/metrics"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CARTOART_ADDR", ":8080")
			_ = os.Setenv("CARTOART_REFRESH_INTERVAL_SECONDS", "60")
			defer func() {
				_ = os.Unsetenv("CARTOART_ADDR")
				_ = os.Unsetenv("CARTOART_REFRESH_INTERVAL_SECONDS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RefreshIntervalSeconds, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New(app.WithLogger(logger.Get()))
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithLogger(logger.Get()),
					app.WithRefreshInterval(time.Minute),
					app.WithMaxRosterRows(50),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New(app.WithLogger(logger.Get()))
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		convey.Convey("When testing full application setup", func() {
			_ = os.Setenv("CARTOART_ADDR", ":8080")
			defer func() { _ = os.Unsetenv("CARTOART_ADDR") }()

			convey.Convey("Then all components should work together", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)

				svc := app.New(
					app.WithLogger(logger.Get()),
					app.WithRefreshInterval(time.Duration(cfg.RefreshIntervalSeconds)*time.Second),
					app.WithMaxRosterRows(cfg.MaxRosterRows),
				)
				convey.So(svc, convey.ShouldNotBeNil)

				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(mux, convey.ShouldNotBeNil)
				server.Register(ctx, mux)

				svc.Stop()
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("CARTOART_ADDR", "")
			defer func() { _ = os.Unsetenv("CARTOART_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
