package paging

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrMalformedCursor indicates a cursor that no compatible codec could have produced.
	ErrMalformedCursor = errors.New("paging: malformed cursor")

	ErrInvalidPageSize                = errors.New("paging: invalid page size")
	ErrInvalidCursor                  = errors.New("paging: invalid cursor")
	ErrUnsupportedPaginationDirection = errors.New("paging: unsupported pagination direction")
)

// Code classifies a rejected paging request.
type Code string

const (
	CodeInvalidPageSize                Code = "INVALID_PAGE_SIZE"
	CodeInvalidCursor                  Code = "INVALID_CURSOR"
	CodeUnsupportedPaginationDirection Code = "UNSUPPORTED_PAGINATION_DIRECTION"
)

func (c Code) sentinel() error {
	switch c {
	case CodeInvalidPageSize:
		return ErrInvalidPageSize
	case CodeInvalidCursor:
		return ErrInvalidCursor
	case CodeUnsupportedPaginationDirection:
		return ErrUnsupportedPaginationDirection
	}
	return nil
}

// Error is a request-rejection error. The same input always yields the same
// Error and retrying never helps.
type Error struct {
	Code Code
	// Argument names the offending pagination argument ("first", "after", ...).
	Argument string
	Message  string
	// Err is the underlying cause, if any (for example ErrMalformedCursor).
	Err error
}

func (e *Error) Error() string {
	if e.Argument == "" {
		return e.Message
	}
	return fmt.Sprintf("argument '%s': %s", e.Argument, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Code so callers can use errors.Is with
// ErrInvalidPageSize and friends.
func (e *Error) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && s == target
}

// Extensions returns the GraphQL error extensions for e.
func (e *Error) Extensions() map[string]any {
	ext := map[string]any{"code": string(e.Code)}
	if e.Argument != "" {
		ext["argument"] = e.Argument
	}
	return ext
}

// GRPCStatus reports every paging rejection as InvalidArgument.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Error())
}

func invalidPageSize(arg, format string, a ...any) *Error {
	return &Error{Code: CodeInvalidPageSize, Argument: arg, Message: fmt.Sprintf(format, a...)}
}

func invalidCursor(arg string, cause error) *Error {
	return &Error{Code: CodeInvalidCursor, Argument: arg, Message: "cursor cannot be decoded", Err: cause}
}

func unsupportedDirection(arg, message string) *Error {
	return &Error{Code: CodeUnsupportedPaginationDirection, Argument: arg, Message: message}
}

// CodeOf returns the Code carried by err, or "" when err is not a paging Error.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
