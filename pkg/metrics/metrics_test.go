package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created and enabled", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.datasetRecords.Set(3)

			Convey("Then metric names should carry the namespace and labels", func() {
				So(manager.Enabled(), ShouldBeFalse)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_unit_dataset_records" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When two managers share a registry", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second registration should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording a dataset load", func() {
			RecordDatasetLoad(969, 310, 2, 12.5)

			Convey("Then the dataset gauges should reflect it", func() {
				So(testutil.ToFloat64(globalManager.datasetRecords), ShouldEqual, 969)
				So(testutil.ToFloat64(globalManager.datasetMissingAges), ShouldEqual, 310)
				So(testutil.ToFloat64(globalManager.datasetAliasedLabels), ShouldEqual, 2)
			})
		})

		Convey("When recording a failed load", func() {
			before := testutil.ToFloat64(globalManager.datasetSchemaViolations)
			RecordDatasetLoadFailure(4)

			Convey("Then violations should accumulate", func() {
				So(testutil.ToFloat64(globalManager.datasetSchemaViolations), ShouldEqual, before+4)
			})
		})

		Convey("When recording queries", func() {
			before := testutil.ToFloat64(globalManager.queries.WithLabelValues("countries"))
			RecordQuery("countries", 0.4)
			RecordQuery("countries", 0.2)

			Convey("Then the query counter should increase", func() {
				So(testutil.ToFloat64(globalManager.queries.WithLabelValues("countries")), ShouldEqual, before+2)
			})
		})

		Convey("When recording other metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					RecordSelectorNoData()
					RecordHTTPRequest("countries", "GET", "200")
					RecordHTTPRequestDuration("countries", "GET", "200", 1.5)
					RecordErrorByType("client_error", "medium")
					RecordErrorByEndpoint("select", "GET", "not_found")
					RecordErrorLatency("http", "not_found", 0.3)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.7)
				}, ShouldNotPanic)
			})
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
