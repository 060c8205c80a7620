package paging

import (
	"math"
	"strconv"
)

// Arguments are the pagination arguments of one field evaluation, in the
// style of https://relay.dev/graphql/connections.htm.
//
// A nil pointer means the argument was not supplied. Last and Before are part
// of the shape even though only forward pagination is served.
type Arguments struct {
	First  *int
	After  *Cursor
	Last   *int
	Before *Cursor
}

// Forward returns arguments asking for first items after cursor. A nil
// first or an empty after leaves that argument unset.
func Forward(first *int, after Cursor) Arguments {
	args := Arguments{First: first}
	if after != "" {
		args.After = &after
	}
	return args
}

// IsBackward reports whether any backward argument is present.
func (a Arguments) IsBackward() bool {
	return a.Last != nil || a.Before != nil
}

// ParseArguments extracts pagination arguments from raw values as they
// arrive at an API boundary (decoded JSON, coerced GraphQL arguments, query
// strings). Keys other than first/after/last/before are ignored. Values of
// the wrong shape are rejected, never coerced to a default.
//
// Only forward pagination is served, so a non-nil last or before is rejected
// with ErrUnsupportedPaginationDirection whatever its type.
func ParseArguments(raw map[string]any) (Arguments, error) {
	for _, name := range []string{"last", "before"} {
		if present(raw[name]) {
			return Arguments{}, unsupportedDirection(name, backwardDisabled)
		}
	}
	var args Arguments
	var err error
	if args.First, err = parseSize("first", raw["first"]); err != nil {
		return Arguments{}, err
	}
	if args.After, err = parseCursor("after", raw["after"]); err != nil {
		return Arguments{}, err
	}
	return args, nil
}

func present(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case *int:
		return v != nil
	case *string:
		return v != nil
	case *Cursor:
		return v != nil
	}
	return true
}

func parseSize(name string, v any) (*int, error) {
	var n int
	switch v := v.(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		if v > math.MaxInt || v < math.MinInt {
			return nil, invalidPageSize(name, "%d is out of range", v)
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
			return nil, invalidPageSize(name, "%v is not an integer", v)
		}
		n = int(v)
	case string:
		num, err := strconv.Atoi(v)
		if err != nil {
			return nil, invalidPageSize(name, "%q is not an integer", v)
		}
		n = num
	case *int:
		if v == nil {
			return nil, nil
		}
		n = *v
	default:
		return nil, invalidPageSize(name, "unsupported value of type %T", v)
	}
	return &n, nil
}

func parseCursor(name string, v any) (*Cursor, error) {
	var c Cursor
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		c = Cursor(v)
	case Cursor:
		c = v
	case *string:
		if v == nil {
			return nil, nil
		}
		c = Cursor(*v)
	default:
		return nil, &Error{Code: CodeInvalidCursor, Argument: name, Message: "cursor must be a string"}
	}
	return &c, nil
}
