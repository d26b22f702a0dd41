package service

import (
	"context"
	"errors"
	"testing"
	"time"

	repository "github.com/okian/tudu/internal/adapters/repository"
	"github.com/okian/tudu/internal/domain/types"
	"github.com/okian/tudu/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func startedService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc := New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := New(WithWorkerCount(2), WithJournalSize(64))

		Convey("When starting it twice", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then it reports started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["workerCount"], ShouldEqual, 2)
			})
		})

		Convey("When stopping a stopped service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()

			Convey("Then a second stop is a no-op", func() {
				So(svc.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestServiceCRUD(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t, WithWorkerCount(1))

		Convey("When creating a todo", func() {
			created, err := svc.CreateTodo(ctx, types.Todo{
				Name:        "Workout",
				Description: "Go to the gym",
				Priority:    types.PriorityHigh,
			})

			Convey("Then the record carries a fresh id", func() {
				So(err, ShouldBeNil)
				So(created.ID, ShouldEqual, 1)
			})

			Convey("Then it is retrievable", func() {
				got, err := svc.GetTodo(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, created)
			})

			Convey("Then the change reaches the tally", func() {
				ok := waitFor(func() bool {
					snap := svc.tally.Snapshot()
					return snap["created"] == 1
				}, 2*time.Second)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When updating a missing todo", func() {
			_, err := svc.UpdateTodo(ctx, 7, types.TodoPatch{})

			Convey("Then the store's not-found error surfaces", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting a created todo", func() {
			created, _ := svc.CreateTodo(ctx, types.Todo{Name: "Call Mom", Priority: types.PriorityMedium})
			removed, err := svc.DeleteTodo(ctx, created.ID)

			Convey("Then the removed record is returned and gone", func() {
				So(err, ShouldBeNil)
				So(removed.ID, ShouldEqual, created.ID)
				_, err := svc.GetTodo(ctx, created.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestServiceSeed(t *testing.T) {
	Convey("Given a service seeded with demo data", t, func() {
		ctx := context.Background()
		svc := startedService(t, WithSeed(DemoTodos()))

		Convey("Then the demo todos are present", func() {
			out, err := svc.ListTodos(ctx, 10)
			So(err, ShouldBeNil)
			So(len(out), ShouldEqual, 5)
			So(out[0].Name, ShouldEqual, "Buy groceries")
			So(out[2].Completed, ShouldBeTrue)
		})

		Convey("Then stats count them", func() {
			stats := svc.GetStats()
			So(stats["totalTodos"], ShouldEqual, 5)
		})
	})
}
