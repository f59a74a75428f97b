package ranking_test

import (
	"errors"
	"testing"

	"github.com/okian/laureates/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

// sample yields counts USA:5, UK:3, Germany:3, France:2, Sweden:1, Japan:1.
func sample() []string {
	return []string{
		"USA", "UK", "Germany", "USA", "France", "UK", "USA", "Germany",
		"", "Sweden", "USA", "Germany", "UK", "France", "USA", "Japan", "  ",
	}
}

func TestCounts(t *testing.T) {
	Convey("Given a column of birth countries", t, func() {
		counts := ranking.Counts(sample())

		Convey("Then values should be ordered by count then first appearance", func() {
			So(counts, ShouldResemble, []ranking.Count{
				{Value: "USA", Count: 5},
				{Value: "UK", Count: 3},
				{Value: "Germany", Count: 3},
				{Value: "France", Count: 2},
				{Value: "Sweden", Count: 1},
				{Value: "Japan", Count: 1},
			})
		})

		Convey("And the total should equal the non-empty values", func() {
			So(ranking.Total(counts), ShouldEqual, 15)
		})
	})

	Convey("Given no values", t, func() {
		So(ranking.Counts(nil), ShouldBeEmpty)
	})
}

func TestTopN(t *testing.T) {
	Convey("Given ranked counts", t, func() {
		counts := ranking.Counts(sample())

		Convey("When the n-th entry is tied with the next", func() {
			top, err := ranking.TopN(counts, 2)

			Convey("Then both tied entries should be kept", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 3)
				So(top[2].Value, ShouldEqual, "Germany")
			})
		})

		Convey("When the n-th entry is not tied", func() {
			top, err := ranking.TopN(counts, 4)

			Convey("Then exactly n entries should be returned", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 4)
			})
		})

		Convey("When the tie is at the tail", func() {
			top, err := ranking.TopN(counts, 5)

			Convey("Then the trailing ties should be included", func() {
				So(err, ShouldBeNil)
				So(len(top), ShouldEqual, 6)
			})
		})

		Convey("When n exceeds the distinct values", func() {
			top, err := ranking.TopN(counts, 10)

			Convey("Then every value should be returned", func() {
				So(err, ShouldBeNil)
				So(top, ShouldResemble, counts)
				So(ranking.Total(top), ShouldEqual, 15)
			})
		})

		Convey("When n is out of bounds", func() {
			_, errLow := ranking.TopN(counts, 0)
			_, errHigh := ranking.TopN(counts, 11)

			Convey("Then ErrInvalidN should be returned", func() {
				So(errors.Is(errLow, ranking.ErrInvalidN), ShouldBeTrue)
				So(errors.Is(errHigh, ranking.ErrInvalidN), ShouldBeTrue)
			})
		})

		Convey("For every n in range", func() {
			Convey("Then the length should be n plus the ties at the boundary", func() {
				for n := ranking.MinN; n <= ranking.MaxN; n++ {
					top, err := ranking.TopN(counts, n)
					So(err, ShouldBeNil)
					if n >= len(counts) {
						So(len(top), ShouldEqual, len(counts))
						continue
					}
					ties := 0
					for _, c := range counts[n:] {
						if c.Count == counts[n-1].Count {
							ties++
						}
					}
					So(len(top), ShouldEqual, n+ties)
				}
			})
		})

		Convey("And the result should not alias the input", func() {
			top, _ := ranking.TopN(counts, 1)
			top[0].Count = 99
			So(counts[0].Count, ShouldEqual, 5)
		})
	})
}

func TestBars(t *testing.T) {
	Convey("Given ranked counts and the default palette", t, func() {
		palette := ranking.DefaultPalette()
		top, _ := ranking.TopN(ranking.Counts(sample()), 2)

		Convey("When building bars", func() {
			bars := ranking.Bars(top, palette)

			Convey("Then colors should follow the palette in order", func() {
				So(bars, ShouldResemble, []ranking.Bar{
					{Label: "USA", Count: 5, Color: "#19376D"},
					{Label: "UK", Count: 3, Color: "#576CBC"},
					{Label: "Germany", Count: 3, Color: "#A5D7E8"},
				})
			})
		})
	})

	Convey("Given more bars than colors", t, func() {
		counts := []ranking.Count{{Value: "a", Count: 3}, {Value: "b", Count: 2}, {Value: "c", Count: 1}}
		bars := ranking.Bars(counts, []string{"#000", "#fff"})

		Convey("Then the palette should cycle", func() {
			So(bars[2].Color, ShouldEqual, "#000")
		})
	})

	Convey("Given an empty palette", t, func() {
		bars := ranking.Bars([]ranking.Count{{Value: "a", Count: 1}}, nil)

		Convey("Then the default palette should be used", func() {
			So(bars[0].Color, ShouldEqual, ranking.DefaultPalette()[0])
		})
	})
}
