// Package winerr converts raw Win32 status codes into typed, inspectable
// errors. Translation is total: any code maps to some Error, unrecognized
// ones to KindUnknown.
package winerr

import (
	"errors"
	"fmt"
	"syscall"

	"winproc/pkg/buffered"
)

// Kind is the coarse classification of a translated error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidHandle
	KindAccessDenied
	KindNotFound
	KindInvalidParameter
	KindBufferTooSmall
	KindRetryLimitExceeded
	KindSnapshotCreateFailed
	KindIteratorNotStarted
	KindRestartUnsupported
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidHandle:
		return "InvalidHandle"
	case KindAccessDenied:
		return "AccessDenied"
	case KindNotFound:
		return "NotFound"
	case KindInvalidParameter:
		return "InvalidParameter"
	case KindBufferTooSmall:
		return "BufferTooSmall"
	case KindRetryLimitExceeded:
		return "RetryLimitExceeded"
	case KindSnapshotCreateFailed:
		return "SnapshotCreateFailed"
	case KindIteratorNotStarted:
		return "IteratorNotStarted"
	case KindRestartUnsupported:
		return "RestartUnsupported"
	default:
		return "Unknown"
	}
}

// Error is a translated boundary failure. Code is the raw Win32 status when
// one was involved, zero otherwise. Message is the system message text for
// the code; it is empty when the lookup itself failed or is unavailable.
type Error struct {
	Code    uint32
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("%s (code %d): %s", e.Kind, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("%s (code %d)", e.Kind, e.Code)
	default:
		return e.Kind.String()
	}
}

// Is matches against another *Error by kind, and by code when the target
// names one. It makes errors.Is(err, winerr.New(winerr.KindAccessDenied, ""))
// work as a sentinel check.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == 0 || t.Code == e.Code)
}

// New builds an Error with no raw code behind it.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Raw status codes this layer classifies, mirroring winerror.h. Kept local so
// translation works on any platform.
const (
	codeFileNotFound       = 2
	codeAccessDenied       = 5
	codeInvalidHandle      = 6
	codeInvalidParameter   = 87
	codeInsufficientBuffer = 122
	codeModNotFound        = 126
	codeProcNotFound       = 127
	codeMoreData           = 234
	codeNotFound           = 1168
)

// lookupMessage resolves a status code to the system message text. Wired to
// FormatMessage on Windows; nil elsewhere.
var lookupMessage func(code uint32) string

// Translate maps a raw status code to a typed Error. It never fails: message
// lookup errors leave Message empty, unrecognized codes become KindUnknown.
func Translate(code uint32) *Error {
	e := &Error{Code: code, Kind: classify(code)}
	if lookupMessage != nil {
		e.Message = lookupMessage(code)
	}
	return e
}

func classify(code uint32) Kind {
	switch code {
	case codeAccessDenied:
		return KindAccessDenied
	case codeInvalidHandle:
		return KindInvalidHandle
	case codeFileNotFound, codeModNotFound, codeProcNotFound, codeNotFound:
		return KindNotFound
	case codeInvalidParameter:
		return KindInvalidParameter
	case codeInsufficientBuffer, codeMoreData:
		return KindBufferTooSmall
	default:
		return KindUnknown
	}
}

// Wrap converts any boundary or protocol error into a typed *Error. Already
// translated errors pass through, errnos are translated by code, and the
// buffered package's control errors map to their kinds. Wrap(nil) is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var translated *Error
	if errors.As(err, &translated) {
		return translated
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return Translate(uint32(errno))
	}

	var retry *buffered.RetryLimitError
	if errors.As(err, &retry) {
		return &Error{Kind: KindRetryLimitExceeded, Message: retry.Error()}
	}

	var tooSmall *buffered.TooSmallError
	if errors.As(err, &tooSmall) {
		return &Error{Kind: KindBufferTooSmall, Message: tooSmall.Error()}
	}

	return &Error{Kind: KindUnknown, Message: err.Error()}
}
