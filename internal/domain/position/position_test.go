package position_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/tcorrea/cartoart/internal/domain/position"
)

func TestParse(t *testing.T) {
	Convey("Given the roster position codes", t, func() {
		Convey("When parsing the six known codes", func() {
			cases := map[string]position.Code{
				"TEC": position.Coach,
				"GOL": position.Keeper,
				"LAT": position.Fullback,
				"ZAG": position.CentreBack,
				"MEI": position.Midfielder,
				"ATA": position.Forward,
			}
			for raw, want := range cases {
				c, ok := position.Parse(raw)
				So(ok, ShouldBeTrue)
				So(c, ShouldEqual, want)
			}
		})

		Convey("When parsing with odd casing or accents", func() {
			c, ok := position.Parse("téc")
			So(ok, ShouldBeTrue)
			So(c, ShouldEqual, position.Coach)

			c, ok = position.Parse("ata ")
			So(ok, ShouldBeTrue)
			So(c, ShouldEqual, position.Forward)
		})

		Convey("When parsing unknown codes", func() {
			for _, raw := range []string{"", "XYZ", "goleiro", "12"} {
				c, ok := position.Parse(raw)
				So(ok, ShouldBeFalse)
				So(c, ShouldEqual, position.Unknown)
			}
		})
	})
}

func TestFromLabel(t *testing.T) {
	Convey("Given textual position labels", t, func() {
		Convey("When mapping known labels", func() {
			cases := map[string]position.Code{
				"Técnico":  position.Coach,
				"Goleiro":  position.Keeper,
				"Lateral":  position.Fullback,
				"Zagueiro": position.CentreBack,
				"Meia":     position.Midfielder,
				"Atacante": position.Forward,
			}
			for label, want := range cases {
				c, ok := position.FromLabel(label)
				So(ok, ShouldBeTrue)
				So(c, ShouldEqual, want)
			}
		})

		Convey("When mapping an unknown label", func() {
			_, ok := position.FromLabel("Ponta")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFromFeedID(t *testing.T) {
	Convey("Given the market feed position ids", t, func() {
		Convey("When mapping ids 1 through 6", func() {
			cases := map[int]position.Code{
				1: position.Keeper,
				2: position.Fullback,
				3: position.CentreBack,
				4: position.Midfielder,
				5: position.Forward,
				6: position.Coach,
			}
			for id, want := range cases {
				c, ok := position.FromFeedID(id)
				So(ok, ShouldBeTrue)
				So(c, ShouldEqual, want)
			}
		})

		Convey("When mapping an out-of-range id", func() {
			for _, id := range []int{0, 7, -1, 99} {
				c, ok := position.FromFeedID(id)
				So(ok, ShouldBeFalse)
				So(c, ShouldEqual, position.Unknown)
			}
		})
	})
}

func TestString(t *testing.T) {
	Convey("Given position codes", t, func() {
		Convey("When rendering the short code", func() {
			So(position.Coach.String(), ShouldEqual, "TEC")
			So(position.Forward.String(), ShouldEqual, "ATA")
			So(position.Unknown.String(), ShouldEqual, "?")
		})

		Convey("When listing all codes", func() {
			all := position.All()
			So(all, ShouldHaveLength, 6)
			So(all[0], ShouldEqual, position.Coach)

			Convey("Then every code should round-trip through Parse", func() {
				for _, c := range all {
					parsed, ok := position.Parse(c.String())
					So(ok, ShouldBeTrue)
					So(parsed, ShouldEqual, c)
				}
			})
		})
	})
}
