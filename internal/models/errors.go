package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies decode pipeline failures.
type ErrorKind string

const (
	KindEmptyInput          ErrorKind = "EMPTY_INPUT"
	KindInvalidSymbol       ErrorKind = "INVALID_SYMBOL"
	KindDecompressFailed    ErrorKind = "DECOMPRESS_FAILED"
	KindNotRecognizedFormat ErrorKind = "NOT_RECOGNIZED_FORMAT"
	KindUnknownControlCode  ErrorKind = "UNKNOWN_CONTROL_CODE"
	KindUnexpectedEndOfData ErrorKind = "UNEXPECTED_END_OF_DATA"
	KindInvalidFloatFormat  ErrorKind = "INVALID_FLOAT_FORMAT"
	KindInvalidNumber       ErrorKind = "INVALID_NUMBER"
	KindInvalidEscape       ErrorKind = "INVALID_ESCAPE"
	KindMissingData         ErrorKind = "MISSING_DATA"
	KindUnknownDungeon      ErrorKind = "UNKNOWN_DUNGEON"
)

// Sentinels for errors.Is checks. They match any DecodeError of the same kind.
var (
	ErrEmptyInput          = &DecodeError{Kind: KindEmptyInput}
	ErrInvalidSymbol       = &DecodeError{Kind: KindInvalidSymbol}
	ErrDecompressFailed    = &DecodeError{Kind: KindDecompressFailed}
	ErrNotRecognizedFormat = &DecodeError{Kind: KindNotRecognizedFormat}
	ErrUnknownControlCode  = &DecodeError{Kind: KindUnknownControlCode}
	ErrUnexpectedEndOfData = &DecodeError{Kind: KindUnexpectedEndOfData}
	ErrInvalidFloatFormat  = &DecodeError{Kind: KindInvalidFloatFormat}
	ErrInvalidNumber       = &DecodeError{Kind: KindInvalidNumber}
	ErrInvalidEscape       = &DecodeError{Kind: KindInvalidEscape}
	ErrMissingData         = &DecodeError{Kind: KindMissingData}
	ErrUnknownDungeon      = &DecodeError{Kind: KindUnknownDungeon}
)

// DecodeError is returned by every stage of the decode pipeline.
// Offset is the input position the error refers to, or -1 when not applicable.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	Offset  int
	Err     error
}

// NewDecodeError creates a DecodeError without a position.
func NewDecodeError(kind ErrorKind, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1}
}

// NewDecodeErrorAt creates a DecodeError pointing at an input offset.
func NewDecodeErrorAt(kind ErrorKind, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// WrapDecodeError creates a DecodeError around a lower-level cause.
func WrapDecodeError(kind ErrorKind, err error, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Message: fmt.Sprintf(format, args...), Offset: -1, Err: err}
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (offset %d)", msg, e.Offset)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// KindOf extracts the ErrorKind from an error chain.
func KindOf(err error) (ErrorKind, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
