package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/coachdesk/ascend/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When a request id is recorded for the first time", func() {
			seen := d.SeenAndRecord(ctx, "req-1")

			Convey("Then it was not previously seen", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a replay reports it as seen", func() {
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When an id is unrecorded after a failed apply", func() {
			d.SeenAndRecord(ctx, "req-2")
			d.Unrecord(ctx, "req-2")

			Convey("Then the retry is treated as new", func() {
				So(d.SeenAndRecord(ctx, "req-2"), ShouldBeFalse)
			})
		})
	})
}

func TestInMemoryDeduper_Bounded(t *testing.T) {
	Convey("Given a deduper bounded to 3 ids", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When a fourth id arrives", func() {
			for i := 1; i <= 4; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("req-%d", i)), ShouldBeFalse)
			}

			Convey("Then the oldest id was evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "req-1"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "req-4"), ShouldBeTrue)
			})
		})
	})
}

func TestInMemoryDeduper_Concurrent(t *testing.T) {
	Convey("Given concurrent submissions of the same id", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		const goroutines = 32
		results := make(chan bool, goroutines)
		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- d.SeenAndRecord(ctx, "same-request")
			}()
		}
		wg.Wait()
		close(results)

		Convey("Then exactly one caller wins", func() {
			var fresh int
			for seen := range results {
				if !seen {
					fresh++
				}
			}
			So(fresh, ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
