package firestore

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind is the coarse class of a Firestore failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindUnavailable
	KindConflict
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error records which document operation failed and how.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "firestore " + e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Op + ": firestore " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err in an *Error keyed by its gRPC status. Cancellation and
// deadline errors are returned as the context sentinels.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return err
	}

	kind := KindUnknown
	switch status.Code(err) {
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	case codes.NotFound:
		kind = KindNotFound
	case codes.Unavailable, codes.ResourceExhausted, codes.Internal:
		kind = KindUnavailable
	case codes.AlreadyExists, codes.Aborted:
		kind = KindConflict
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		kind = KindInvalid
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// KindOf reports the class of err, reading raw gRPC statuses as well.
func KindOf(err error) Kind {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind
	}
	if err == nil {
		return KindUnknown
	}
	if c, ok := Classify("", err).(*Error); ok {
		return c.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnavailable reports whether a retry might succeed.
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }
