package diagnostic_test

import (
	"testing"

	"nnx1/internal/diagnostic"
	"nnx1/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifyTier(t *testing.T) {
	Convey("Given the tier boundaries", t, func() {
		cases := []struct {
			score int
			level int
		}{
			{0, 1}, {30, 1}, {31, 2}, {70, 2}, {71, 3}, {90, 3}, {91, 4}, {100, 4},
		}

		Convey("Then each boundary score lands in exactly one tier", func() {
			for _, c := range cases {
				tier, err := diagnostic.ClassifyTier(c.score)
				So(err, ShouldBeNil)
				So(tier.Level, ShouldEqual, c.level)
			}
		})
	})

	Convey("Given every score in range", t, func() {
		Convey("Then points to next is positive below Level 4 and nil within it", func() {
			for score := 0; score <= 100; score++ {
				tier, err := diagnostic.ClassifyTier(score)
				So(err, ShouldBeNil)
				if score >= 91 {
					So(tier.PointsToNext, ShouldBeNil)
					So(tier.NextLabel, ShouldBeNil)
					continue
				}
				So(tier.PointsToNext, ShouldNotBeNil)
				So(*tier.PointsToNext, ShouldBeGreaterThan, 0)
				next, _ := diagnostic.ClassifyTier(score + *tier.PointsToNext)
				So(next.Level, ShouldEqual, tier.Level+1)
				So(*tier.NextLabel, ShouldEqual, next.Label)
			}
		})

		Convey("Then the color class agrees with the tier", func() {
			for score := 0; score <= 100; score++ {
				tier, _ := diagnostic.ClassifyTier(score)
				So(diagnostic.ColorFor(score), ShouldEqual, tier.Color)
			}
		})
	})

	Convey("Given a score of zero", t, func() {
		tier, err := diagnostic.ClassifyTier(0)

		Convey("Then it is Getting Started with 31 points to Builder", func() {
			So(err, ShouldBeNil)
			So(tier.Label, ShouldEqual, "Level 1: Getting Started")
			So(*tier.PointsToNext, ShouldEqual, 31)
			So(*tier.NextLabel, ShouldEqual, "Level 2: Builder")
			So(tier.Color, ShouldEqual, model.ColorRed)
		})
	})

	Convey("Given an out of range score", t, func() {
		Convey("Then classification fails with invalid input", func() {
			_, err := diagnostic.ClassifyTier(-1)
			So(err, ShouldWrap, diagnostic.ErrInvalidInput)
			_, err = diagnostic.ClassifyTier(101)
			So(err, ShouldWrap, diagnostic.ErrInvalidInput)
		})
	})
}

func TestTiers(t *testing.T) {
	Convey("Given the tier table", t, func() {
		tiers := diagnostic.Tiers()

		Convey("Then the ranges are contiguous over [0,100]", func() {
			So(tiers, ShouldHaveLength, 4)
			So(tiers[0].Min, ShouldEqual, 0)
			So(tiers[len(tiers)-1].Max, ShouldEqual, 100)
			for i := 1; i < len(tiers); i++ {
				So(tiers[i].Min, ShouldEqual, tiers[i-1].Max+1)
			}
		})

		Convey("Then mutating the copy leaves the table intact", func() {
			tiers[0].Label = "changed"
			again := diagnostic.Tiers()
			So(again[0].Label, ShouldEqual, "Level 1: Getting Started")
		})
	})
}
