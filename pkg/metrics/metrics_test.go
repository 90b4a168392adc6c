package metrics_test

import (
	"testing"

	"github.com/coachdesk/ascend/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a fresh metrics manager", t, func() {
		m := metrics.NewManager()

		Convey("Then its registry gathers the instrument families", func() {
			families, err := m.Registry().Gather()
			So(err, ShouldBeNil)
			// Vec instruments only appear after first use, but the plain
			// counters and gauges register eagerly.
			So(len(families), ShouldBeGreaterThanOrEqualTo, 5)
		})
	})

	Convey("Given the default manager", t, func() {
		Convey("When domain events are recorded", func() {
			metrics.RecordTransitionApplied("interested")
			metrics.RecordTransitionRejected()
			metrics.RecordDuplicateTransition()
			metrics.RecordUnknownRank()
			metrics.UpdateRecordsTracked(12)
			metrics.UpdateOverdueRecords(3)
			metrics.RecordHTTPRequest("stages", "GET", "200")
			metrics.RecordHTTPRequestDuration("stages", "GET", 4.2)

			Convey("Then gathering succeeds and includes the used families", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["ascend_transitions_applied_total"], ShouldBeTrue)
				So(names["ascend_unknown_rank_lookups_total"], ShouldBeTrue)
				So(names["ascend_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
