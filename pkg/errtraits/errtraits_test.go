package errtraits_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/okian/httpkit/pkg/errtraits"
	. "github.com/smartystreets/goconvey/convey"
)

type timeoutError struct{}

func (timeoutError) Error() string            { return "timeout occurred" }
func (timeoutError) IsRecoverable() bool      { return true }
func (timeoutError) IsConnectionClosed() bool { return false }
func (timeoutError) IsTimeout() bool          { return true }

type validationError struct{}

func (validationError) Error() string       { return "invalid data" }
func (validationError) IsRecoverable() bool { return false }

type parseError struct{ pos int }

func (e parseError) Error() string         { return fmt.Sprintf("unexpected token at %d", e.pos) }
func (e parseError) Suggestions() []string { return []string{"quote the value"} }
func (e parseError) Help() (string, bool)  { return "values must be JSON strings", true }
func (e parseError) Position() (int, bool) { return e.pos, true }

func TestRecoverable(t *testing.T) {
	Convey("Given recoverable and non-recoverable errors", t, func() {
		Convey("Then classification should follow IsRecoverable", func() {
			So(errtraits.IsRecoverable(timeoutError{}), ShouldBeTrue)
			So(errtraits.IsRecoverable(validationError{}), ShouldBeFalse)
			So(errtraits.IsRecoverable(errors.New("plain")), ShouldBeFalse)
		})

		Convey("And wrapped errors should be found in the chain", func() {
			So(errtraits.IsRecoverable(fmt.Errorf("fetch: %w", timeoutError{})), ShouldBeTrue)
		})
	})
}

func TestConnectionProbes(t *testing.T) {
	Convey("Given a connection error that reports a timeout", t, func() {
		err := fmt.Errorf("read: %w", timeoutError{})

		Convey("Then optional behaviour methods should be honoured", func() {
			So(errtraits.IsTimeout(err), ShouldBeTrue)
			So(errtraits.IsConnectionClosed(err), ShouldBeFalse)
			So(errtraits.IsConnectionRefused(err), ShouldBeFalse)
		})
	})
}

func TestDiagnostics(t *testing.T) {
	Convey("Given a diagnostic error", t, func() {
		err := fmt.Errorf("decode body: %w", parseError{pos: 17})

		Convey("Then suggestions, help and position should be exposed", func() {
			So(errtraits.Suggestions(err), ShouldResemble, []string{"quote the value"})
			help, ok := errtraits.Help(err)
			So(ok, ShouldBeTrue)
			So(help, ShouldEqual, "values must be JSON strings")
			pos, ok := errtraits.Position(err)
			So(ok, ShouldBeTrue)
			So(pos, ShouldEqual, 17)
		})
	})

	Convey("Given a plain error", t, func() {
		err := errors.New("plain")

		Convey("Then diagnostics should be empty", func() {
			So(errtraits.Suggestions(err), ShouldBeNil)
			_, ok := errtraits.Help(err)
			So(ok, ShouldBeFalse)
			_, ok = errtraits.Position(err)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMessageHeuristics(t *testing.T) {
	Convey("Given errors with suggestive messages", t, func() {
		So(errtraits.MessageSuggestsTimeout(errors.New("connection timeout after 30s")), ShouldBeTrue)
		So(errtraits.MessageSuggestsTimeout(errors.New("i/o Timed Out")), ShouldBeTrue)
		So(errtraits.MessageSuggestsConnectionClosed(errors.New("connection closed by peer")), ShouldBeTrue)
		So(errtraits.MessageSuggestsConnectionClosed(io.ErrUnexpectedEOF), ShouldBeTrue)
		So(errtraits.MessageSuggestsConnectionReset(errors.New("connection reset by peer")), ShouldBeTrue)
		So(errtraits.MessageSuggestsConnectionReset(errors.New("write: broken pipe")), ShouldBeTrue)
	})

	Convey("Given unrelated or nil errors", t, func() {
		So(errtraits.MessageSuggestsTimeout(errors.New("permission denied")), ShouldBeFalse)
		So(errtraits.MessageSuggestsConnectionReset(nil), ShouldBeFalse)
	})
}
