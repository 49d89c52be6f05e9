// Package errtraits describes common error behaviour (retryability,
// connection failures, diagnostics) independently of concrete error types.
package errtraits

import (
	"errors"
	"strings"
)

// Recoverable is implemented by errors that may succeed on retry, such as
// timeouts or transient network failures.
type Recoverable interface {
	error
	IsRecoverable() bool
}

// ConnectionError is implemented by errors raised by network connections.
// Implementations may also provide IsTimeout() bool and
// IsConnectionRefused() bool; both are treated as false when absent.
type ConnectionError interface {
	error
	IsConnectionClosed() bool
}

// Diagnostic is implemented by errors that can explain themselves.
// Each accessor is optional; absent accessors yield zero values.
type Diagnostic interface {
	error
	Suggestions() []string
}

type timeoutProbe interface{ IsTimeout() bool }

type refusedProbe interface{ IsConnectionRefused() bool }

type helpProbe interface{ Help() (string, bool) }

type positionProbe interface{ Position() (int, bool) }

// IsRecoverable reports whether any error in err's chain is Recoverable and
// says it is.
func IsRecoverable(err error) bool {
	var r Recoverable
	return errors.As(err, &r) && r.IsRecoverable()
}

// IsConnectionClosed reports whether err's chain holds a ConnectionError
// signalling a closed connection.
func IsConnectionClosed(err error) bool {
	var c ConnectionError
	return errors.As(err, &c) && c.IsConnectionClosed()
}

// IsTimeout reports whether err's chain holds an error with IsTimeout() true.
func IsTimeout(err error) bool {
	var p timeoutProbe
	return errors.As(err, &p) && p.IsTimeout()
}

// IsConnectionRefused reports whether err's chain holds an error with
// IsConnectionRefused() true.
func IsConnectionRefused(err error) bool {
	var p refusedProbe
	return errors.As(err, &p) && p.IsConnectionRefused()
}

// Suggestions returns the suggestions of the first Diagnostic in err's chain.
func Suggestions(err error) []string {
	var d Diagnostic
	if errors.As(err, &d) {
		return d.Suggestions()
	}
	return nil
}

// Help returns the help text of the first error in the chain that has one.
func Help(err error) (string, bool) {
	var p helpProbe
	if errors.As(err, &p) {
		return p.Help()
	}
	return "", false
}

// Position returns the input position of the first error in the chain that
// has one.
func Position(err error) (int, bool) {
	var p positionProbe
	if errors.As(err, &p) {
		return p.Position()
	}
	return 0, false
}

// MessageSuggestsTimeout reports whether err's message mentions a timeout.
// Use it only for errors whose type you do not control.
func MessageSuggestsTimeout(err error) bool {
	return messageContains(err, "timeout", "timed out")
}

// MessageSuggestsConnectionClosed reports whether err's message mentions a
// closed connection or end of file.
func MessageSuggestsConnectionClosed(err error) bool {
	return messageContains(err, "closed", "eof", "end of file")
}

// MessageSuggestsConnectionReset reports whether err's message mentions a
// reset connection or broken pipe.
func MessageSuggestsConnectionReset(err error) bool {
	return messageContains(err, "reset", "broken pipe")
}

func messageContains(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
