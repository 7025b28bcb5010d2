package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with the tint format", func() {
			var buf bytes.Buffer
			So(Init(WithFormat(FormatTint), WithOutput(&buf)), ShouldBeNil)
			Get().Info(context.Background(), "round paired", Int("round", 2))

			Convey("Then the message is written", func() {
				So(buf.String(), ShouldContainSubstring, "round paired")
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestLoggerFields(t *testing.T) {
	Convey("Given a text logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		SetLevel(slog.LevelInfo)
		ctx := context.Background()

		Convey("When logging with fields through a named logger", func() {
			Named("pairing").Info(ctx, "bye awarded",
				String("competitor", "E"),
				Bool("repeat", false),
				Strings("names", []string{"A", "B"}),
				Error(errors.New("boom")),
			)
			out := buf.String()

			Convey("Then every field and the component are rendered", func() {
				So(out, ShouldContainSubstring, "bye awarded")
				So(out, ShouldContainSubstring, "component=pairing")
				So(out, ShouldContainSubstring, "competitor=E")
				So(out, ShouldContainSubstring, "repeat=false")
				So(out, ShouldContainSubstring, "error=boom")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised above info", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Error(ctx, "shown")
			SetLevel(slog.LevelInfo)

			Convey("Then lower levels are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "shown")
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		for _, lvl := range []string{"debug", "info", "", "warn", "warning", "error", " INFO "} {
			So(SetLevelString(lvl), ShouldBeNil)
		}
		So(SetLevelString("loud"), ShouldNotBeNil)
		SetLevel(slog.LevelInfo)
	})
}

func TestNop(t *testing.T) {
	Convey("Nop discards without panicking", t, func() {
		l := Nop()
		So(func() { l.Named("x").Error(context.Background(), "dropped") }, ShouldNotPanic)
	})
}
