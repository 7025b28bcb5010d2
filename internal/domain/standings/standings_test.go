package standings_test

import (
	"testing"

	"github.com/okian/swissround/internal/domain/competitor"
	"github.com/okian/swissround/internal/domain/standings"
	"github.com/okian/swissround/internal/domain/strength"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given A beat B in round one and C took a bye", t, func() {
		a := competitor.New("A")
		b := competitor.New("B")
		c := competitor.New("C")
		competitor.Meet(a, b)
		a.RecordWin()
		b.RecordLoss()
		c.RecordBye()
		roster := []*competitor.Competitor{a, b, c}

		Convey("When computed after round one", func() {
			snap := standings.Compute(roster, 1, false)

			Convey("Then rows are ranked and OMW display is suppressed", func() {
				So(snap.Round, ShouldEqual, 1)
				So(len(snap.Entries), ShouldEqual, 3)
				So(snap.Entries[0].Name, ShouldEqual, "A")
				So(snap.Entries[0].Rank, ShouldEqual, 1)
				So(snap.Entries[1].Name, ShouldEqual, "C")
				So(snap.Entries[2].Name, ShouldEqual, "B")
				for _, e := range snap.Entries {
					So(e.Suppressed, ShouldBeTrue)
					So(e.Tier, ShouldEqual, strength.Tier(""))
				}
			})

			Convey("Then the raw OMW is still filled in", func() {
				So(snap.Entries[2].OMW, ShouldEqual, 1.0)
			})
		})

		Convey("When computed as final after round one", func() {
			snap := standings.Compute(roster, 1, true)

			Convey("Then tiers are shown", func() {
				So(snap.Final, ShouldBeTrue)
				So(snap.Entries[2].Suppressed, ShouldBeFalse)
				So(snap.Entries[2].Tier, ShouldEqual, strength.Brutal)
				So(snap.Entries[0].Tier, ShouldEqual, strength.Underpowered)
			})
		})

		Convey("When computed after round two", func() {
			snap := standings.Compute(roster, 2, false)

			Convey("Then nothing is suppressed", func() {
				So(snap.Entries[0].Suppressed, ShouldBeFalse)
				So(snap.Entries[0].Wins, ShouldEqual, 1)
				So(snap.Entries[2].Losses, ShouldEqual, 1)
			})
		})
	})
}
