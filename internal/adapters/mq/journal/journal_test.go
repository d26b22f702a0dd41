package journal

import (
	"context"
	"testing"
	"time"

	"github.com/okian/tudu/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestJournalRecord(t *testing.T) {
	Convey("Given an in-memory journal", t, func() {
		ctx := context.Background()
		j := NewInMemoryJournal(WithCapacity(2))

		Convey("When recording within capacity", func() {
			ok := j.Record(ctx, model.NewChange(model.OpCreated, 1))

			Convey("Then the change is accepted", func() {
				So(ok, ShouldBeTrue)
				So(j.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the journal is full", func() {
			So(j.Record(ctx, model.NewChange(model.OpCreated, 1)), ShouldBeTrue)
			So(j.Record(ctx, model.NewChange(model.OpCreated, 2)), ShouldBeTrue)
			ok := j.Record(ctx, model.NewChange(model.OpCreated, 3))

			Convey("Then the change is dropped, not blocked on", func() {
				So(ok, ShouldBeFalse)
				So(j.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When the journal is closed", func() {
			So(j.Close(), ShouldBeNil)
			ok := j.Record(ctx, model.NewChange(model.OpCreated, 1))

			Convey("Then recording fails", func() {
				So(ok, ShouldBeFalse)
				So(j.IsClosed(), ShouldBeTrue)
			})

			Convey("Then closing again is a no-op", func() {
				So(j.Close(), ShouldBeNil)
			})
		})
	})
}

func TestJournalStream(t *testing.T) {
	Convey("Given a journal with pending changes", t, func() {
		ctx := context.Background()
		j := NewInMemoryJournal(WithCapacity(8))

		a := model.NewChange(model.OpCreated, 1)
		b := model.NewChange(model.OpDeleted, 1)
		So(j.Record(ctx, a), ShouldBeTrue)
		So(j.Record(ctx, b), ShouldBeTrue)

		Convey("When streaming", func() {
			ch := j.Stream(ctx)

			Convey("Then changes arrive in order", func() {
				got := <-ch
				So(got.ChangeID, ShouldEqual, a.ChangeID)
				got = <-ch
				So(got.ChangeID, ShouldEqual, b.ChangeID)
			})
		})

		Convey("When the journal is closed after draining", func() {
			ch := j.Stream(ctx)
			<-ch
			<-ch
			So(j.Close(), ShouldBeNil)

			Convey("Then the stream channel closes", func() {
				select {
				case _, open := <-ch:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("stream did not close")
				}
			})
		})
	})
}
