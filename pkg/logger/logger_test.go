package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the default initializer", t, func() {
		err := Init()

		Convey("Then the global logger should be available", func() {
			So(err, ShouldBeNil)
			So(Get(), ShouldNotBeNil)
			So(Sync(), ShouldBeNil)
		})
	})

	Convey("Given an unknown output format", t, func() {
		err := InitWithWriter(&bytes.Buffer{}, "xml")

		Convey("Then initialization should fail", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log format")
		})
	})

	Convey("Given a nil writer", t, func() {
		Convey("Then initialization should fail", func() {
			So(InitWithWriter(nil, FormatText), ShouldNotBeNil)
		})
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "page served",
				String("route", "/items"),
				Uint64("total", 42),
				Duration("took", time.Millisecond),
				Error(errors.New("boom")),
			)

			var rec map[string]any
			err := json.Unmarshal(buf.Bytes(), &rec)

			Convey("Then the record should carry message, fields and source", func() {
				So(err, ShouldBeNil)
				So(rec["msg"], ShouldEqual, "page served")
				So(rec["route"], ShouldEqual, "/items")
				So(rec["total"], ShouldEqual, float64(42))
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level is raised to error", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Info(ctx, "suppressed")

			Convey("Then info records should be dropped", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestLoggerNamed(t *testing.T) {
	Convey("Given a named logger", t, func() {
		var buf bytes.Buffer
		So(InitWithWriter(&buf, FormatJSON), ShouldBeNil)

		Named("static").Warn(context.Background(), "fallback", String("path", "/app"))

		Convey("Then fields should be grouped under the name", func() {
			var rec map[string]any
			So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
			group, ok := rec["static"].(map[string]any)
			So(ok, ShouldBeTrue)
			So(group["path"], ShouldEqual, "/app")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(Init(), ShouldBeNil)

		Convey("Then known levels should be accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "WARN", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels should be rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
