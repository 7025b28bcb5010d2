package pairing_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/okian/swissround/internal/domain/competitor"
	"github.com/okian/swissround/internal/domain/pairing"
	. "github.com/smartystreets/goconvey/convey"
)

func roster(names ...string) []*competitor.Competitor {
	out := make([]*competitor.Competitor, len(names))
	for i, n := range names {
		out[i] = competitor.New(n)
	}
	return out
}

func pairNames(res pairing.Result) [][2]string {
	out := make([][2]string, len(res.Pairs))
	for i, p := range res.Pairs {
		out[i] = [2]string{p.First.Name(), p.Second.Name()}
	}
	return out
}

func TestEngine_RoundOne(t *testing.T) {
	Convey("Given four fresh competitors and no shuffle", t, func() {
		ctx := context.Background()
		cs := roster("A", "B", "C", "D")
		engine := pairing.NewEngine(pairing.WithoutShuffle())

		Convey("When round one is paired", func() {
			res := engine.Pair(ctx, 1, cs)

			Convey("Then the first candidate wins every tie", func() {
				So(pairNames(res), ShouldResemble, [][2]string{{"A", "B"}, {"C", "D"}})
				So(res.Bye, ShouldBeNil)
				So(res.Repeats(), ShouldEqual, 0)
			})

			Convey("Then opponents are recorded on both sides", func() {
				So(cs[0].HasFaced(cs[1]), ShouldBeTrue)
				So(cs[1].HasFaced(cs[0]), ShouldBeTrue)
				So(cs[0].HasFaced(cs[2]), ShouldBeFalse)
			})
		})
	})

	Convey("Given two engines sharing a seed", t, func() {
		ctx := context.Background()
		first := pairing.NewEngine(pairing.WithSeed(7)).Pair(ctx, 1, roster("A", "B", "C", "D", "E", "F"))
		second := pairing.NewEngine(pairing.WithShuffler(rand.New(rand.NewSource(7)))).Pair(ctx, 1, roster("A", "B", "C", "D", "E", "F"))

		Convey("Then round one is reproducible", func() {
			So(pairNames(first), ShouldResemble, pairNames(second))
			So(len(first.Pairs), ShouldEqual, 3)
		})
	})

	Convey("Given an odd roster", t, func() {
		ctx := context.Background()
		cs := roster("A", "B", "C")
		res := pairing.NewEngine(pairing.WithoutShuffle()).Pair(ctx, 1, cs)

		Convey("Then the last competitor gets a scored bye", func() {
			So(pairNames(res), ShouldResemble, [][2]string{{"A", "B"}})
			So(res.Bye, ShouldEqual, cs[2])
			So(cs[2].Points, ShouldEqual, 1)
			So(cs[2].Wins, ShouldEqual, 1)
			So(cs[2].OpponentCount(), ShouldEqual, 0)
		})
	})
}

func TestEngine_Greedy(t *testing.T) {
	Convey("Given the state after a manual round one of A..E", t, func() {
		ctx := context.Background()
		cs := roster("A", "B", "C", "D", "E")
		a, b, c, d, e := cs[0], cs[1], cs[2], cs[3], cs[4]
		competitor.Meet(a, b)
		competitor.Meet(c, d)
		e.RecordBye()
		a.RecordWin()
		b.RecordLoss()
		c.RecordWin()
		d.RecordLoss()

		Convey("When round two is paired", func() {
			res := pairing.NewEngine().Pair(ctx, 2, cs)

			Convey("Then leaders meet, prior opponents are avoided, D gets the bye", func() {
				So(pairNames(res), ShouldResemble, [][2]string{{"A", "C"}, {"E", "B"}})
				So(res.Bye, ShouldEqual, d)
				So(d.Points, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a point gap and an OMW gap", t, func() {
		ctx := context.Background()
		cs := roster("A", "B", "C", "D")
		a, b, c, d := cs[0], cs[1], cs[2], cs[3]
		x := competitor.New("X")
		y := competitor.New("Y")
		// A and C both on 2 points; B and D on 1. D faced a strong X, B faced a weak Y.
		a.Points, c.Points = 2, 2
		b.Points, d.Points = 1, 1
		x.Wins = 3
		y.Losses = 3
		competitor.Meet(d, x)
		competitor.Meet(b, y)

		Convey("When paired", func() {
			res := pairing.NewEngine().Pair(ctx, 3, cs)

			Convey("Then equal points pair first and OMW orders the lower group", func() {
				So(pairNames(res), ShouldResemble, [][2]string{{"A", "C"}, {"D", "B"}})
			})
		})
	})
}

func TestEngine_Exhaustion(t *testing.T) {
	Convey("Given four competitors where A has met everyone", t, func() {
		ctx := context.Background()
		setup := func() []*competitor.Competitor {
			cs := roster("A", "B", "C", "D")
			competitor.Meet(cs[0], cs[1])
			competitor.Meet(cs[0], cs[2])
			competitor.Meet(cs[0], cs[3])
			competitor.Meet(cs[1], cs[2])
			return cs
		}

		Convey("When the repeat fallback is on", func() {
			cs := setup()
			res := pairing.NewEngine().Pair(ctx, 4, cs)

			Convey("Then A is rematched instead of dropped", func() {
				So(pairNames(res), ShouldResemble, [][2]string{{"A", "B"}, {"C", "D"}})
				So(res.Pairs[0].Repeat, ShouldBeTrue)
				So(res.Pairs[1].Repeat, ShouldBeFalse)
				So(res.Repeats(), ShouldEqual, 1)
				So(res.Unpaired, ShouldBeEmpty)
				So(res.Bye, ShouldBeNil)
			})
		})

		Convey("When the repeat fallback is off", func() {
			cs := setup()
			res := pairing.NewEngine(pairing.WithRepeatFallback(false)).Pair(ctx, 4, cs)

			Convey("Then A sits out and the leftover takes a bye", func() {
				So(pairNames(res), ShouldResemble, [][2]string{{"B", "D"}})
				So(len(res.Unpaired), ShouldEqual, 1)
				So(res.Unpaired[0].Name(), ShouldEqual, "A")
				So(res.Bye.Name(), ShouldEqual, "C")
				So(cs[0].Points, ShouldEqual, 0)
			})
		})
	})
}
