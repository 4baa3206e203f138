package valuation_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/domain/position"
	"github.com/tcorrea/cartoart/internal/domain/valuation"
)

func TestFeed(t *testing.T) {
	Convey("Given a loaded valuation feed", t, func() {
		feed := valuation.NewFeed(map[string]float64{
			"100": 2.1,
			"200": 8.4,
		})

		Convey("When looking up known records", func() {
			v, ok := feed.Metric("100")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 2.1)
			So(feed.Len(), ShouldEqual, 2)
		})

		Convey("When looking up an unknown record", func() {
			_, ok := feed.Metric("999")
			So(ok, ShouldBeFalse)
		})

		Convey("When looking up an empty id", func() {
			_, ok := feed.Metric("")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a nil feed", t, func() {
		var feed *valuation.Feed

		Convey("Then lookups should degrade to no data", func() {
			_, ok := feed.Metric("100")
			So(ok, ShouldBeFalse)
			So(feed.Len(), ShouldEqual, 0)
		})
	})
}

func TestTierFor(t *testing.T) {
	Convey("Given the per-position tier thresholds", t, func() {
		Convey("When classifying coaches, keepers, and centre-backs", func() {
			for _, pos := range []position.Code{position.Coach, position.Keeper, position.CentreBack} {
				So(valuation.TierFor(pos, 2.5), ShouldEqual, valuation.TierGood)
				So(valuation.TierFor(pos, 2.6), ShouldEqual, valuation.TierNeutral)
				So(valuation.TierFor(pos, 6.0), ShouldEqual, valuation.TierNeutral)
				So(valuation.TierFor(pos, 6.1), ShouldEqual, valuation.TierBad)
			}
		})

		Convey("When classifying fullbacks", func() {
			So(valuation.TierFor(position.Fullback, 3.0), ShouldEqual, valuation.TierGood)
			So(valuation.TierFor(position.Fullback, 6.5), ShouldEqual, valuation.TierNeutral)
			So(valuation.TierFor(position.Fullback, 6.6), ShouldEqual, valuation.TierBad)
		})

		Convey("When classifying midfielders and forwards", func() {
			for _, pos := range []position.Code{position.Midfielder, position.Forward} {
				So(valuation.TierFor(pos, 3.0), ShouldEqual, valuation.TierGood)
				So(valuation.TierFor(pos, 7.0), ShouldEqual, valuation.TierNeutral)
				So(valuation.TierFor(pos, 7.1), ShouldEqual, valuation.TierBad)
			}
		})

		Convey("When the position is unknown", func() {
			So(valuation.TierFor(position.Unknown, 1.0), ShouldEqual, valuation.TierNeutral)
		})
	})
}
