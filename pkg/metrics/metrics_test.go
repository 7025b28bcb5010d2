package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("swiss"),
				WithHistogramBuckets([]float64{1, 2}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then collectors are registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				m.roundsStarted.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_swiss_rounds_started_total"], ShouldBeTrue)
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "swiss")
				So(m.subsystem, ShouldEqual, "tournament")
				So(len(m.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording tournament flow", func() {
			before := testutil.ToFloat64(globalManager.byesAwarded)
			RecordRoundStarted(3)
			RecordPairings(4)
			RecordBye()
			RecordRepeatPairings(1)
			RecordUnpaired(0)
			RecordResultsConfirmed()
			RecordTournamentCompleted()
			RecordValidationFailure("duplicate_name")
			RecordPairingLatency(0.4)
			UpdateCompetitors(9)

			Convey("Then the collectors reflect it", func() {
				So(testutil.ToFloat64(globalManager.byesAwarded), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.currentRound), ShouldEqual, 3)
				So(testutil.ToFloat64(globalManager.competitors), ShouldEqual, 9)
				So(testutil.ToFloat64(globalManager.validationFailures.WithLabelValues("duplicate_name")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording export and HTTP metrics", func() {
			RecordExport("file", "ok")
			RecordArchiveWrite("error")
			UpdateExportQueueSize(2)
			RecordHTTPRequest("standings", "GET", "200")
			RecordHTTPRequestDuration("standings", "GET", "200", 1.5)
			RecordErrorByEndpoint("rounds", "POST", "conflict")
			RecordErrorByComponent("export", "io")
			UpdateCurrentRound(0)

			Convey("Then the registry gathers without error", func() {
				So(testutil.ToFloat64(globalManager.exports.WithLabelValues("file", "ok")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.exportQueueSize), ShouldEqual, 2)
				_, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
