package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/coachdesk/ascend/internal/adapters/repository"
	"github.com/coachdesk/ascend/internal/domain/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

func newProspect(id, coachID string) pipeline.Record {
	return pipeline.Record{
		ID:      id,
		CoachID: coachID,
		Kind:    pipeline.KindProspect,
		Label:   "Prospect " + id,
		Status:  pipeline.StatusNew,
	}
}

func TestMemStore_CreateGet(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When a record is created", func() {
			created, err := store.Create(ctx, newProspect("p1", "coach-1"))

			Convey("Then it starts at version 1 and reads back", func() {
				So(err, ShouldBeNil)
				So(created.Version, ShouldEqual, 1)

				got, err := store.Get(ctx, "p1")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, created)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And creating the same id again is rejected", func() {
				_, err := store.Create(ctx, newProspect("p1", "coach-1"))
				So(errors.Is(err, repository.ErrDuplicateID), ShouldBeTrue)
			})
		})

		Convey("When a record has no id", func() {
			_, err := store.Create(ctx, pipeline.Record{CoachID: "coach-1"})

			Convey("Then creation is rejected", func() {
				So(errors.Is(err, repository.ErrMissingID), ShouldBeTrue)
			})
		})

		Convey("When an unknown id is fetched", func() {
			_, err := store.Get(ctx, "ghost")

			Convey("Then it is ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_ListByCoach(t *testing.T) {
	Convey("Given records across coaches and kinds", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		_, err := store.Create(ctx, newProspect("p2", "coach-1"))
		So(err, ShouldBeNil)
		_, err = store.Create(ctx, newProspect("p1", "coach-1"))
		So(err, ShouldBeNil)
		_, err = store.Create(ctx, newProspect("p3", "coach-2"))
		So(err, ShouldBeNil)
		_, err = store.Create(ctx, pipeline.Record{
			ID: "c1", CoachID: "coach-1", Kind: pipeline.KindClient, Status: pipeline.StatusActive,
		})
		So(err, ShouldBeNil)

		Convey("When listing coach-1's prospects", func() {
			out, err := store.ListByCoach(ctx, "coach-1", pipeline.KindProspect)

			Convey("Then only that coach's prospects come back, ordered by id", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 2)
				So(out[0].ID, ShouldEqual, "p1")
				So(out[1].ID, ShouldEqual, "p2")
			})
		})

		Convey("When listing coach-1's clients", func() {
			out, err := store.ListByCoach(ctx, "coach-1", pipeline.KindClient)

			Convey("Then the client shows up alone", func() {
				So(err, ShouldBeNil)
				So(len(out), ShouldEqual, 1)
				So(out[0].ID, ShouldEqual, "c1")
			})
		})

		Convey("When listing an unknown coach", func() {
			out, err := store.ListByCoach(ctx, "coach-9", pipeline.KindProspect)

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestMemStore_Save(t *testing.T) {
	Convey("Given a stored record", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		created, err := store.Create(ctx, newProspect("p1", "coach-1"))
		So(err, ShouldBeNil)

		Convey("When saving with a matching version", func() {
			created.Status = pipeline.StatusInterested
			saved, err := store.Save(ctx, created)

			Convey("Then the write applies and the version bumps", func() {
				So(err, ShouldBeNil)
				So(saved.Version, ShouldEqual, 2)
				got, _ := store.Get(ctx, "p1")
				So(got.Status, ShouldEqual, pipeline.StatusInterested)
			})

			Convey("And the stale original snapshot now loses", func() {
				created.Status = pipeline.StatusNotInterested
				_, err := store.Save(ctx, created)
				So(errors.Is(err, repository.ErrVersionConflict), ShouldBeTrue)

				// The first write is intact.
				got, _ := store.Get(ctx, "p1")
				So(got.Status, ShouldEqual, pipeline.StatusInterested)
			})
		})

		Convey("When saving a record that disappeared", func() {
			ghost := newProspect("ghost", "coach-1")
			ghost.Version = 1
			_, err := store.Save(ctx, ghost)

			Convey("Then it is ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When many writers race on the same snapshot", func() {
			const writers = 16
			var wg sync.WaitGroup
			results := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					snap := created
					snap.Status = pipeline.StatusInterested
					_, err := store.Save(ctx, snap)
					results <- err
				}()
			}
			wg.Wait()
			close(results)

			Convey("Then exactly one write wins", func() {
				var wins, conflicts int
				for err := range results {
					if err == nil {
						wins++
					} else if errors.Is(err, repository.ErrVersionConflict) {
						conflicts++
					}
				}
				So(wins, ShouldEqual, 1)
				So(conflicts, ShouldEqual, writers-1)
			})
		})
	})
}
