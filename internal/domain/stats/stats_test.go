package stats_test

import (
	"errors"
	"testing"

	"github.com/okian/laureates/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBasicStatistics(t *testing.T) {
	Convey("Given a set of ages", t, func() {
		ages := []int{90, 70, 80}

		Convey("Then min, max, mean and median should be computed", func() {
			mn, err := stats.Min(ages)
			So(err, ShouldBeNil)
			So(mn, ShouldEqual, 70)

			mx, err := stats.Max(ages)
			So(err, ShouldBeNil)
			So(mx, ShouldEqual, 90)

			mean, err := stats.Mean(ages)
			So(err, ShouldBeNil)
			So(mean, ShouldEqual, 80)

			med, err := stats.Median(ages)
			So(err, ShouldBeNil)
			So(med, ShouldEqual, 80)
		})

		Convey("And the input order should be preserved", func() {
			_, _ = stats.Median(ages)
			So(ages, ShouldResemble, []int{90, 70, 80})
		})
	})

	Convey("Given an even number of ages", t, func() {
		med, err := stats.Median([]int{60, 65})

		Convey("Then the median should interpolate", func() {
			So(err, ShouldBeNil)
			So(med, ShouldEqual, 62.5)
		})
	})

	Convey("Given quantiles outside the unit range", t, func() {
		lo, _ := stats.Quantile([]int{1, 2, 3}, -1)
		hi, _ := stats.Quantile([]int{1, 2, 3}, 2)

		Convey("Then they should clamp to min and max", func() {
			So(lo, ShouldEqual, 1)
			So(hi, ShouldEqual, 3)
		})
	})

	Convey("Given no observations", t, func() {
		Convey("Then every statistic should return ErrEmpty", func() {
			_, err := stats.Median(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
			_, err = stats.Min(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
			_, err = stats.Max(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
			_, err = stats.Mean(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
			_, err = stats.Box(nil)
			So(errors.Is(err, stats.ErrEmpty), ShouldBeTrue)
		})
	})
}

func TestBox(t *testing.T) {
	Convey("Given ages with one far outlier", t, func() {
		ages := []int{70, 72, 74, 76, 78, 80, 20}

		Convey("When computing the box summary", func() {
			b, err := stats.Box(ages)

			Convey("Then quartiles should follow linear interpolation", func() {
				So(err, ShouldBeNil)
				So(b.Count, ShouldEqual, 7)
				So(b.Min, ShouldEqual, 20)
				So(b.Max, ShouldEqual, 80)
				So(b.Q1, ShouldEqual, 71)
				So(b.Median, ShouldEqual, 74)
				So(b.Q3, ShouldEqual, 77)
			})

			Convey("And the outlier should sit outside the whiskers", func() {
				So(b.Outliers, ShouldResemble, []int{20})
				So(b.LowerWhisker, ShouldEqual, 70)
				So(b.UpperWhisker, ShouldEqual, 80)
			})
		})
	})

	Convey("Given a single observation", t, func() {
		b, err := stats.Box([]int{64})

		Convey("Then every statistic should equal it", func() {
			So(err, ShouldBeNil)
			So(b.Q1, ShouldEqual, 64)
			So(b.Median, ShouldEqual, 64)
			So(b.Q3, ShouldEqual, 64)
			So(b.LowerWhisker, ShouldEqual, 64)
			So(b.UpperWhisker, ShouldEqual, 64)
			So(b.Outliers, ShouldBeEmpty)
		})
	})
}
