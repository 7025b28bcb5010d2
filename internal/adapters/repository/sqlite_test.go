package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/swissround/internal/adapters/repository"
	"github.com/okian/swissround/internal/domain/ledger"
	"github.com/okian/swissround/internal/domain/standings"
	"github.com/okian/swissround/internal/domain/strength"
	"github.com/okian/swissround/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func record(id, winner string) types.Record {
	return types.Record{
		ID:          id,
		TotalRounds: 2,
		Ledger: []ledger.Row{
			{Round: 1, Player1: "C", Player2: "BYE", Result: "Auto Win"},
			{Round: 1, Player1: winner, Player2: "B", Result: winner},
		},
		Standings: standings.Snapshot{
			Round: 2,
			Final: true,
			Entries: []standings.Entry{
				{Rank: 1, Name: winner, Points: 2, Wins: 2, OMW: 0.25, Tier: strength.Underpowered},
				{Rank: 2, Name: "C", Points: 1, Wins: 1, Losses: 1, OMW: 0.75, Tier: strength.Brutal},
				{Rank: 3, Name: "B", Points: 0, Losses: 2, OMW: 1, Tier: strength.Brutal},
			},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh archive", t, func() {
		clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		store, err := repository.New(
			filepath.Join(t.TempDir(), "nested", "archive.db"),
			repository.WithClock(func() time.Time {
				clock = clock.Add(time.Minute)
				return clock
			}),
		)
		So(err, ShouldBeNil)
		Reset(func() { store.Close() })

		Convey("When a record is saved", func() {
			rec := record("t-1", "A")
			So(store.Save(ctx, rec), ShouldBeNil)

			Convey("Then it reads back unchanged", func() {
				got, err := store.Get(ctx, "t-1")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, rec)
			})

			Convey("Then saving again replaces it", func() {
				again := record("t-1", "Z")
				So(store.Save(ctx, again), ShouldBeNil)
				got, err := store.Get(ctx, "t-1")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, again)

				list, err := store.List(ctx, 10)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 1)
				So(list[0].Winner, ShouldEqual, "Z")
			})
		})

		Convey("When several records are saved", func() {
			So(store.Save(ctx, record("t-1", "A")), ShouldBeNil)
			So(store.Save(ctx, record("t-2", "D")), ShouldBeNil)
			So(store.Save(ctx, record("t-3", "E")), ShouldBeNil)

			Convey("Then List returns the newest first up to the limit", func() {
				list, err := store.List(ctx, 2)
				So(err, ShouldBeNil)
				So(len(list), ShouldEqual, 2)
				So(list[0].ID, ShouldEqual, "t-3")
				So(list[0].Winner, ShouldEqual, "E")
				So(list[0].Competitors, ShouldEqual, 3)
				So(list[0].TotalRounds, ShouldEqual, 2)
				So(list[1].ID, ShouldEqual, "t-2")
				So(list[0].ArchivedAt.After(list[1].ArchivedAt), ShouldBeTrue)
			})
		})

		Convey("Then unknown IDs are not found", func() {
			_, err := store.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then records without an ID are rejected", func() {
			So(errors.Is(store.Save(ctx, types.Record{}), repository.ErrEmptyID), ShouldBeTrue)
		})

		Convey("Then a non-positive limit is rejected", func() {
			_, err := store.List(ctx, 0)
			So(errors.Is(err, repository.ErrInvalidLimit), ShouldBeTrue)
		})
	})
}
