package pairing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/swissround/internal/domain/pairing"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolveManual(t *testing.T) {
	Convey("Given a roster of five", t, func() {
		cs := roster("A", "B", "C", "D", "E")

		Convey("When every pair is given but one competitor", func() {
			plan, err := pairing.ResolveManual(cs, [][2]string{{"A", "B"}, {"C", "D"}})

			Convey("Then the leftover gets the bye", func() {
				So(err, ShouldBeNil)
				So(plan.Explicit, ShouldEqual, 2)
				So(len(plan.Pairs), ShouldEqual, 2)
				So(plan.Bye.Name(), ShouldEqual, "E")
			})

			Convey("Then nothing is recorded yet", func() {
				So(cs[0].OpponentCount(), ShouldEqual, 0)
				So(cs[4].Points, ShouldEqual, 0)
			})
		})

		Convey("When only one pair is given", func() {
			plan, err := pairing.ResolveManual(cs, [][2]string{{"E", "C"}})

			Convey("Then the rest are paired in roster order", func() {
				So(err, ShouldBeNil)
				So(pairNames(pairing.Result{Pairs: plan.Pairs}), ShouldResemble, [][2]string{{"E", "C"}, {"A", "B"}})
				So(plan.Bye.Name(), ShouldEqual, "D")
			})
		})

		Convey("When a competitor is reused", func() {
			_, err := pairing.ResolveManual(cs, [][2]string{{"A", "B"}, {"B", "C"}})

			Convey("Then a validation error names it", func() {
				var verr *pairing.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Names, ShouldResemble, []string{"B"})
				So(errors.Is(err, pairing.ErrValidation), ShouldBeTrue)
				So(errors.Is(err, pairing.ErrCompetitorReused), ShouldBeTrue)
			})
		})

		Convey("When a competitor is paired with itself", func() {
			_, err := pairing.ResolveManual(cs, [][2]string{{"A", "A"}})
			So(errors.Is(err, pairing.ErrSelfPairing), ShouldBeTrue)
		})

		Convey("When a name is not on the roster", func() {
			_, err := pairing.ResolveManual(cs, [][2]string{{"A", "a"}})
			So(errors.Is(err, pairing.ErrUnknownCompetitor), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "a")
		})

		Convey("When nothing is proposed", func() {
			_, err := pairing.ResolveManual(cs, nil)
			So(errors.Is(err, pairing.ErrNoProposals), ShouldBeTrue)
		})
	})
}

func TestEngine_Apply(t *testing.T) {
	Convey("Given a resolved plan", t, func() {
		cs := roster("A", "B", "C")
		plan, err := pairing.ResolveManual(cs, [][2]string{{"C", "A"}})
		So(err, ShouldBeNil)

		Convey("When it is applied", func() {
			res := pairing.NewEngine().Apply(context.Background(), 1, plan)

			Convey("Then opponents and the bye are recorded", func() {
				So(res.Round, ShouldEqual, 1)
				So(pairNames(res), ShouldResemble, [][2]string{{"C", "A"}})
				So(cs[2].HasFaced(cs[0]), ShouldBeTrue)
				So(res.Bye.Name(), ShouldEqual, "B")
				So(cs[1].Points, ShouldEqual, 1)
			})
		})
	})
}
