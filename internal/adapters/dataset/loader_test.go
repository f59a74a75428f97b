package dataset_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/laureates/internal/adapters/dataset"
	"github.com/okian/laureates/internal/domain/category"
	"github.com/okian/laureates/internal/domain/types"
	"github.com/okian/laureates/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture(name string) string {
	return filepath.Join("testdata", name)
}

func TestLoad(t *testing.T) {
	Convey("Given the laureates fixture", t, func() {
		ctx := context.Background()

		Convey("When loading it", func() {
			s, err := dataset.Load(ctx, fixture("laureates.csv"))

			Convey("Then every row should be kept", func() {
				So(err, ShouldBeNil)
				So(s.Len(), ShouldEqual, 25)
				So(s.Source(), ShouldEqual, fixture("laureates.csv"))
				So(s.ID(), ShouldNotBeEmpty)
				So(s.Aliased(), ShouldEqual, 0)
			})

			Convey("And derived fields should be set", func() {
				recs := s.Records()
				So(recs[0].Category, ShouldEqual, category.Chemistry)
				So(recs[0].BirthYear, ShouldResemble, types.Int(1852))
				So(recs[0].DeathYear, ShouldResemble, types.Int(1911))
				So(recs[0].Age, ShouldResemble, types.Int(59))
				So(recs[6].FullName, ShouldEqual, "Marie Curie, née Sklodowska")
				So(recs[6].Sex, ShouldEqual, "Female")
			})

			Convey("And unparsable dates should only blank the age", func() {
				recs := s.Records()
				bragg := recs[24]
				So(bragg.BirthYear.Valid, ShouldBeFalse)
				So(bragg.DeathYear, ShouldResemble, types.Int(1971))
				So(bragg.Age.Valid, ShouldBeFalse)
				So(s.MissingAges(), ShouldEqual, 4)
			})

			Convey("And the prize years should span the file", func() {
				lo, hi, ok := s.PrizeYears()
				So(ok, ShouldBeTrue)
				So(lo, ShouldEqual, 1901)
				So(hi, ShouldEqual, 2014)
			})
		})

		Convey("When loading it twice", func() {
			a, errA := dataset.Load(ctx, fixture("laureates.csv"))
			b, errB := dataset.Load(ctx, fixture("laureates.csv"))

			Convey("Then the records should match but the load ids differ", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a.Records(), ShouldResemble, b.Records())
				So(a.ID(), ShouldNotEqual, b.ID())
			})
		})
	})

	Convey("Given a path that does not exist", t, func() {
		_, err := dataset.Load(context.Background(), fixture("nope.csv"))

		Convey("Then ErrOpen should be returned", func() {
			So(errors.Is(err, dataset.ErrOpen), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})

	Convey("Given a file missing required columns", t, func() {
		_, err := dataset.Load(context.Background(), fixture("missing_column.csv"))

		Convey("Then a schema error should name the columns", func() {
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Birth_Country")
		})
	})

	Convey("Given a file with bad rows", t, func() {
		_, err := dataset.Load(context.Background(), fixture("bad_rows.csv"))

		Convey("Then every violation should be reported in one error", func() {
			var se *dataset.SchemaError
			So(errors.As(err, &se), ShouldBeTrue)
			So(len(se.Violations), ShouldEqual, 3)
			So(se.Truncated, ShouldBeFalse)
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
			So(errors.Is(err, category.ErrUnknown), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "line 3")
		})

		Convey("And a low cap should truncate the list", func() {
			_, err := dataset.Load(context.Background(), fixture("bad_rows.csv"), dataset.WithMaxViolations(1))
			var se *dataset.SchemaError
			So(errors.As(err, &se), ShouldBeTrue)
			So(len(se.Violations), ShouldEqual, 1)
			So(se.Truncated, ShouldBeTrue)
		})
	})

	Convey("Given a file with only a header", t, func() {
		ctx := context.Background()

		Convey("Then it should be rejected by default", func() {
			_, err := dataset.Load(ctx, fixture("header_only.csv"))
			So(errors.Is(err, dataset.ErrEmpty), ShouldBeTrue)
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
		})

		Convey("And accepted when empty files are allowed", func() {
			s, err := dataset.Load(ctx, fixture("header_only.csv"), dataset.WithAllowEmpty())
			So(err, ShouldBeNil)
			So(s.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a raw export with spaced headers and alias labels", t, func() {
		s, err := dataset.Load(context.Background(), fixture("kaggle_header.csv"))

		Convey("Then it should load with canonical labels", func() {
			So(err, ShouldBeNil)
			So(s.Len(), ShouldEqual, 3)
			So(s.Aliased(), ShouldEqual, 1)
			recs := s.Records()
			So(recs[0].Category, ShouldEqual, category.Economics)
			So(recs[1].Category, ShouldEqual, category.Economics)
			So(recs[0].Year, ShouldResemble, types.Int(1969))
			So(recs[2].Year.Valid, ShouldBeFalse)
			So(recs[0].Age, ShouldResemble, types.Int(78))
		})
	})
}

func TestRead(t *testing.T) {
	Convey("Given an empty stream", t, func() {
		_, err := dataset.Read(context.Background(), strings.NewReader(""))

		Convey("Then it should be a schema error", func() {
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
			So(errors.Is(err, dataset.ErrEmpty), ShouldBeTrue)
		})
	})

	Convey("Given duplicate header columns", t, func() {
		in := "Year,Category,Birth_Date,Birth Date,Birth_Country,Death_Date\n"
		_, err := dataset.Read(context.Background(), strings.NewReader(in))

		Convey("Then it should be rejected", func() {
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "duplicate column")
		})
	})

	Convey("Given a malformed quote", t, func() {
		in := "Year,Category,Birth_Date,Birth_Country,Death_Date\n1901,\"Physics,1845-03-27,X,10/02/1923\n"
		_, err := dataset.Read(context.Background(), strings.NewReader(in))

		Convey("Then it should fail as a schema error", func() {
			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
		})
	})

	Convey("Given prize years outside the plausible window", t, func() {
		hdr := "Year,Category,Birth_Date,Birth_Country,Death_Date\n"

		for _, year := range []string{"1e20", "-1e20", "999", "10000", "NaN", "1901.5"} {
			_, err := dataset.Read(context.Background(), strings.NewReader(hdr+year+",Physics,1900-01-01,USA,01/01/1980\n"))

			So(errors.Is(err, dataset.ErrSchema), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "is not an integer")
		}

		Convey("And an integral float year should still load", func() {
			s, err := dataset.Read(context.Background(), strings.NewReader(hdr+"1901.0,Physics,1845-03-27,X,10/02/1923\n"))
			So(err, ShouldBeNil)
			So(s.Records()[0].Year, ShouldResemble, types.Int(1901))
		})
	})

	Convey("Given exactly as many bad rows as the cap", t, func() {
		in := "Year,Category,Birth_Date,Birth_Country,Death_Date\n" +
			"1901,Mathematics,1845-03-27,X,10/02/1923\n" +
			"1902,Physics,1845-03-27,X,10/02/1923\n"
		_, err := dataset.Read(context.Background(), strings.NewReader(in), dataset.WithMaxViolations(1))

		Convey("Then the list should not be marked truncated", func() {
			var se *dataset.SchemaError
			So(errors.As(err, &se), ShouldBeTrue)
			So(len(se.Violations), ShouldEqual, 1)
			So(se.Truncated, ShouldBeFalse)
			So(err.Error(), ShouldNotEndWith, "; ...")
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		in := "Year,Category,Birth_Date,Birth_Country,Death_Date\n1901,Physics,1845-03-27,X,10/02/1923\n"
		_, err := dataset.Read(ctx, strings.NewReader(in))

		Convey("Then loading should stop", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestLoadLogging(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(logger.InitWriter(&buf), ShouldBeNil)
		Reset(func() { _ = logger.Init() })

		Convey("When a capped load is rejected", func() {
			_, err := dataset.Load(context.Background(), fixture("bad_rows.csv"),
				dataset.WithMaxViolations(1),
				dataset.WithLogger(logger.Named("dataset")))

			Convey("Then the rejection should report the cap", func() {
				So(err, ShouldNotBeNil)
				So(buf.String(), ShouldContainSubstring, "dataset rejected")
				So(buf.String(), ShouldContainSubstring, "dataset.violations=1")
				So(buf.String(), ShouldContainSubstring, "dataset.truncated=true")
			})
		})
	})
}
