package competitor_test

import (
	"testing"

	"github.com/okian/swissround/internal/domain/competitor"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompetitor(t *testing.T) {
	Convey("Given a new competitor", t, func() {
		c := competitor.New("Alice")

		Convey("Then the record is clean", func() {
			So(c.Name(), ShouldEqual, "Alice")
			So(c.Points, ShouldEqual, 0)
			So(c.Played(), ShouldEqual, 0)
			So(c.WinPercentage(), ShouldEqual, 0.0)
			So(c.OpponentCount(), ShouldEqual, 0)
		})

		Convey("When a bye is recorded", func() {
			c.RecordBye()

			Convey("Then it counts as a win without an opponent", func() {
				So(c.Points, ShouldEqual, 1)
				So(c.Wins, ShouldEqual, 1)
				So(c.OpponentCount(), ShouldEqual, 0)
				So(c.WinPercentage(), ShouldEqual, 1.0)
			})
		})

		Convey("When a win and a loss are recorded", func() {
			c.RecordWin()
			c.RecordLoss()

			Convey("Then the win percentage is one half and ties stay zero", func() {
				So(c.Points, ShouldEqual, 1)
				So(c.WinPercentage(), ShouldEqual, 0.5)
				So(c.Ties, ShouldEqual, 0)
			})
		})
	})
}

func TestMeet(t *testing.T) {
	Convey("Given two competitors", t, func() {
		a := competitor.New("A")
		b := competitor.New("B")
		c := competitor.New("C")

		Convey("When they meet", func() {
			competitor.Meet(a, b)

			Convey("Then the history is symmetric", func() {
				So(a.HasFaced(b), ShouldBeTrue)
				So(b.HasFaced(a), ShouldBeTrue)
				So(a.HasFaced(c), ShouldBeFalse)
				So(a.OpponentCount(), ShouldEqual, 1)
				So(b.OpponentCount(), ShouldEqual, 1)
			})
		})

		Convey("When the same pair meets twice", func() {
			competitor.Meet(a, b)
			competitor.Meet(a, b)

			Convey("Then the record keeps both occurrences", func() {
				So(a.OpponentCount(), ShouldEqual, 2)
			})

			Convey("Then EachOpponent visits every occurrence in order", func() {
				var names []string
				a.EachOpponent(func(o *competitor.Competitor) { names = append(names, o.Name()) })
				So(names, ShouldResemble, []string{"B", "B"})
			})
		})
	})
}
