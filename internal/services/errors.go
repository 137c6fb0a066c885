package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
)

// ErrorKind classifies metadata failures.
type ErrorKind int

const (
	// KindOutputDisabled is a benign skip: the section or condition opts out.
	KindOutputDisabled ErrorKind = iota + 1
	// KindLookup is a recoverable domain lookup failure. It is logged and an empty result is used.
	KindLookup
	// KindConfiguration marks invalid setup detected at construction time.
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindOutputDisabled:
		return "output_disabled"
	case KindLookup:
		return "lookup"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the failing operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

var (
	// ErrOutputDisabled signals that a condition abstains.
	ErrOutputDisabled = &Error{Kind: KindOutputDisabled}
	// ErrLookup matches any lookup-kind error.
	ErrLookup = &Error{Kind: KindLookup}
	// ErrConfiguration matches any configuration-kind error.
	ErrConfiguration = &Error{Kind: KindConfiguration}
)

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := "metadata: " + e.Kind.String()
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the bare sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of err, or zero when err is not a metadata error.
func KindOf(err error) ErrorKind {
	var metaErr *Error
	if errors.As(err, &metaErr) {
		return metaErr.Kind
	}
	return 0
}

func configurationError(op string, format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Op: op, Err: fmt.Errorf(format, args...)}
}

func lookupError(op string, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != 0 {
		return err
	}
	return &Error{Kind: KindLookup, Op: op, Err: err}
}

// logLookupFailure records a recovered failure with the method that absorbed it.
func logLookupFailure(ctx context.Context, method string, err error) {
	observability.FromContext(ctx).Error("metadata lookup failed",
		zap.String("method", method),
		zap.Error(err),
	)
	observability.RecordSectionFailure(ctx, method)
}
