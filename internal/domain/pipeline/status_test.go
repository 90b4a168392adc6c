package pipeline_test

import (
	"errors"
	"testing"

	"github.com/coachdesk/ascend/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseStatus(t *testing.T) {
	Convey("Given the prospect status set", t, func() {
		Convey("Then every member parses to itself", func() {
			for _, s := range pipeline.ProspectStatuses() {
				parsed, err := pipeline.ParseStatus(pipeline.KindProspect, s.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, s)
			}
		})

		Convey("Then parsing ignores case and whitespace", func() {
			parsed, err := pipeline.ParseStatus(pipeline.KindProspect, "  HA_Scheduled ")
			So(err, ShouldBeNil)
			So(parsed, ShouldEqual, pipeline.StatusHAScheduled)
		})

		Convey("Then client statuses are rejected for prospects", func() {
			_, err := pipeline.ParseStatus(pipeline.KindProspect, "active")
			So(errors.Is(err, pipeline.ErrInvalidStatus), ShouldBeTrue)
		})

		Convey("Then garbage is rejected with the value named", func() {
			_, err := pipeline.ParseStatus(pipeline.KindProspect, "banana")
			So(errors.Is(err, pipeline.ErrInvalidStatus), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "banana")
		})
	})

	Convey("Given the client status set", t, func() {
		Convey("Then prospect statuses are rejected for clients", func() {
			_, err := pipeline.ParseStatus(pipeline.KindClient, "ha_scheduled")
			So(errors.Is(err, pipeline.ErrInvalidStatus), ShouldBeTrue)
		})

		Convey("Then every member parses", func() {
			for _, s := range pipeline.ClientStatuses() {
				parsed, err := pipeline.ParseStatus(pipeline.KindClient, s.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, s)
			}
		})
	})
}

func TestStatus_Classification(t *testing.T) {
	Convey("Given the prospect statuses", t, func() {
		Convey("Then exits and conversions are terminal", func() {
			So(pipeline.StatusConverted.Terminal(), ShouldBeTrue)
			So(pipeline.StatusCoach.Terminal(), ShouldBeTrue)
			So(pipeline.StatusNotInterested.Terminal(), ShouldBeTrue)
			So(pipeline.StatusNotClosed.Terminal(), ShouldBeTrue)
		})

		Convey("Then the forward flow is not terminal", func() {
			So(pipeline.StatusNew.Terminal(), ShouldBeFalse)
			So(pipeline.StatusInterested.Terminal(), ShouldBeFalse)
			So(pipeline.StatusHAScheduled.Terminal(), ShouldBeFalse)
		})

		Convey("Then exactly the failure exits recycle", func() {
			So(pipeline.StatusNotInterested.Recycling(), ShouldBeTrue)
			So(pipeline.StatusNotClosed.Recycling(), ShouldBeTrue)
			So(pipeline.StatusConverted.Recycling(), ShouldBeFalse)
			So(pipeline.StatusNew.Recycling(), ShouldBeFalse)
		})
	})
}

func TestParseKind(t *testing.T) {
	Convey("Given kind strings", t, func() {
		Convey("Then the two kinds parse case-insensitively", func() {
			k, err := pipeline.ParseKind("Prospect")
			So(err, ShouldBeNil)
			So(k, ShouldEqual, pipeline.KindProspect)

			k, err = pipeline.ParseKind(" client ")
			So(err, ShouldBeNil)
			So(k, ShouldEqual, pipeline.KindClient)
		})

		Convey("Then anything else is ErrInvalidKind", func() {
			_, err := pipeline.ParseKind("lead")
			So(errors.Is(err, pipeline.ErrInvalidKind), ShouldBeTrue)
		})
	})
}

func TestParseDate(t *testing.T) {
	Convey("Given date strings", t, func() {
		Convey("Then YYYY-MM-DD parses", func() {
			d, err := pipeline.ParseDate("2026-08-28")
			So(err, ShouldBeNil)
			So(d.String(), ShouldEqual, "2026-08-28")
		})

		Convey("Then malformed input is ErrInvalidDate", func() {
			_, err := pipeline.ParseDate("28/08/2026")
			So(errors.Is(err, pipeline.ErrInvalidDate), ShouldBeTrue)
		})

		Convey("Then Before compares day-by-day", func() {
			a, _ := pipeline.ParseDate("2026-08-27")
			b, _ := pipeline.ParseDate("2026-08-28")
			So(a.Before(b), ShouldBeTrue)
			So(b.Before(a), ShouldBeFalse)
			So(b.Before(b), ShouldBeFalse)
		})
	})
}
