package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording domain metrics", func() {
			So(RecordTodoCreated, ShouldNotPanic)
			So(RecordTodoUpdated, ShouldNotPanic)
			So(RecordTodoDeleted, ShouldNotPanic)
			So(RecordNotFound, ShouldNotPanic)
			So(RecordValidationError, ShouldNotPanic)
			So(func() { UpdateStoreSize(3) }, ShouldNotPanic)
		})

		Convey("When recording journal and worker metrics", func() {
			So(func() { UpdateJournalSize(1) }, ShouldNotPanic)
			So(func() { UpdateJournalCapacity(10) }, ShouldNotPanic)
			So(func() { UpdateJournalUtilization(0.1) }, ShouldNotPanic)
			So(RecordJournalRecord, ShouldNotPanic)
			So(RecordJournalDrop, ShouldNotPanic)
			So(func() { UpdateWorkerCount(2) }, ShouldNotPanic)
			So(func() { RecordChangeApplied("created") }, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() { RecordHTTPRequest("todo", "GET", "200") }, ShouldNotPanic)
			So(func() { RecordHTTPRequestDuration("todo", "GET", "200", 1.5) }, ShouldNotPanic)
		})

		Convey("Then the registry should be available", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
