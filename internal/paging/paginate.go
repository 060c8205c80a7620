package paging

import (
	"fmt"
	"math"
)

const backwardDisabled = "backward pagination is disabled for this field"

// Options carry the per-field pagination policy.
type Options struct {
	// AllowBackwardPagination is reserved. Only forward pagination is served,
	// so a true value is rejected with ErrUnsupportedPaginationDirection.
	AllowBackwardPagination bool
	// MaxPageSize bounds `first` when positive.
	MaxPageSize int
	// IncludeTotalCount fills Connection.TotalCount for materialized sources.
	IncludeTotalCount bool
	// Codec encodes and decodes cursors. The zero codec is the natural order.
	Codec CursorCodec
}

// Paginate slices src according to args and returns the resulting
// connection. All argument validation happens before src is read; on error
// no connection is returned.
func Paginate[T any](src Source[T], args Arguments, opts Options) (*Connection[T], error) {
	start, err := validate(args, opts)
	if err != nil {
		return nil, err
	}

	var (
		edges   []Edge[T]
		hasNext bool
	)
	if n, ok := src.Len(); ok {
		edges, hasNext = sliceCounted(src.items, start, args.First, opts.Codec)
		conn := NewConnection(edges, NewPageInfo(edges, hasNext, start > 0))
		if opts.IncludeTotalCount {
			conn.TotalCount = &n
		}
		return conn, nil
	}
	edges, hasNext = sliceLazy(src, start, args.First, opts.Codec)
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("paging: reading source: %w", err)
	}
	return NewConnection(edges, NewPageInfo(edges, hasNext, start > 0)), nil
}

// Validate checks args against opts without reading any source. It returns
// exactly the error Paginate would.
func Validate(args Arguments, opts Options) error {
	_, err := validate(args, opts)
	return err
}

// validate checks args against opts and returns the start offset.
func validate(args Arguments, opts Options) (int, error) {
	if opts.AllowBackwardPagination {
		return 0, unsupportedDirection("", "backward pagination is not supported")
	}
	if args.IsBackward() {
		arg := "last"
		if args.Last == nil {
			arg = "before"
		}
		return 0, unsupportedDirection(arg, backwardDisabled)
	}
	if args.First != nil {
		if *args.First < 0 {
			return 0, invalidPageSize("first", "must be non-negative, got %d", *args.First)
		}
		if opts.MaxPageSize > 0 && *args.First > opts.MaxPageSize {
			return 0, invalidPageSize("first", "%d exceeds the maximum page size of %d", *args.First, opts.MaxPageSize)
		}
	}
	if args.After == nil {
		return 0, nil
	}
	pos, err := opts.Codec.Decode(*args.After)
	if err != nil {
		return 0, invalidCursor("after", err)
	}
	if pos == math.MaxInt {
		return pos, nil
	}
	return pos + 1, nil
}

func sliceCounted[T any](items []T, start int, first *int, codec CursorCodec) ([]Edge[T], bool) {
	remaining := 0
	if start < len(items) {
		remaining = len(items) - start
	}
	take := remaining
	if first != nil && *first < take {
		take = *first
	}
	edges := make([]Edge[T], take)
	for i := range take {
		pos := start + i
		edges[i] = NewEdge(items[pos], codec.Encode(pos))
	}
	return edges, take < remaining
}

// sliceLazy reads src once, stopping right after the first element past the
// page. That single extra read is the lookahead for hasNextPage and is
// discarded.
func sliceLazy[T any](src Source[T], start int, first *int, codec CursorCodec) ([]Edge[T], bool) {
	edges := []Edge[T]{}
	if src.seq == nil {
		return edges, false
	}
	hasNext := false
	pos := 0
	for node := range src.seq {
		if pos < start {
			pos++
			continue
		}
		if first != nil && len(edges) == *first {
			hasNext = true
			break
		}
		edges = append(edges, NewEdge(node, codec.Encode(pos)))
		pos++
	}
	return edges, hasNext
}
