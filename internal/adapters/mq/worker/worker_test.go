package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/tudu/internal/adapters/mq/journal"
	"github.com/okian/tudu/internal/domain/model"
	"github.com/okian/tudu/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[model.Op]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: make(map[model.Op]int)}
}

func (r *countingRecorder) Apply(_ context.Context, c Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[c.Op]++
	return nil
}

func (r *countingRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.counts {
		n += c
	}
	return n
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

func TestJournalWorker(t *testing.T) {
	Convey("Given a worker on a journal", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		j := journal.NewInMemoryJournal(journal.WithCapacity(16))
		rec := newCountingRecorder()
		w := NewJournalWorker(j, rec, WithName("worker-test"))

		go w.Run(ctx)

		Convey("When changes are recorded", func() {
			So(j.Record(ctx, model.NewChange(model.OpCreated, 1)), ShouldBeTrue)
			So(j.Record(ctx, model.NewChange(model.OpUpdated, 1)), ShouldBeTrue)
			So(j.Record(ctx, model.NewChange(model.OpDeleted, 1)), ShouldBeTrue)

			Convey("Then the recorder sees every change", func() {
				So(waitFor(func() bool { return rec.total() == 3 }, 2*time.Second), ShouldBeTrue)
				rec.mu.Lock()
				defer rec.mu.Unlock()
				So(rec.counts[model.OpCreated], ShouldEqual, 1)
				So(rec.counts[model.OpUpdated], ShouldEqual, 1)
				So(rec.counts[model.OpDeleted], ShouldEqual, 1)
			})
		})

		Convey("When shutting down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			Convey("Then shutdown returns before the timeout", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		j := journal.NewInMemoryJournal(journal.WithCapacity(128))
		rec := newCountingRecorder()
		pool := NewPool(4, j, rec)

		So(pool.Size(), ShouldEqual, 4)
		pool.Start(ctx)

		Convey("When many changes are recorded", func() {
			const n = 100
			for i := 0; i < n; i++ {
				So(j.Record(ctx, model.NewChange(model.OpCreated, i)), ShouldBeTrue)
			}

			Convey("Then the tally matches the mutations", func() {
				So(waitFor(func() bool { return rec.total() == n }, 3*time.Second), ShouldBeTrue)
			})
		})

		Convey("When stopping the pool", func() {
			Convey("Then it stops without hanging", func() {
				So(pool.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestPoolDefaultSize(t *testing.T) {
	Convey("Given a pool built with an invalid count", t, func() {
		j := journal.NewInMemoryJournal()
		pool := NewPool(0, j, newCountingRecorder())

		Convey("Then a CPU-derived default is used", func() {
			So(pool.Size(), ShouldBeGreaterThan, 0)
		})
	})
}
