package config_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/config"
)

func TestNew(t *testing.T) {
	Convey("Given a fresh Config", t, func() {
		cfg := config.New()

		Convey("Then it should carry the documented defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.MarketURL, ShouldEqual, "https://api.cartola.globo.com/atletas/mercado")
			So(cfg.ValuationURL, ShouldBeEmpty)
			So(cfg.ValuationToken, ShouldBeEmpty)
			So(cfg.RefreshIntervalSeconds, ShouldEqual, 300)
			So(cfg.FetchTimeoutMS, ShouldEqual, 10_000)
			So(cfg.FallbackSnapshotPath, ShouldBeEmpty)
			So(cfg.ClubTablePath, ShouldBeEmpty)
			So(cfg.MaxRosterRows, ShouldEqual, 200)
		})
	})
}
