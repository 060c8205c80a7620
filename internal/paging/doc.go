// Package paging implements Relay-style cursor connections over in-memory
// sequences.
//
// # Model
//
// A Connection is an ordered list of Edges plus a PageInfo. Each Edge pairs a
// node with the Cursor of its zero-based position in the source sequence.
// Nodes may be absent (nil); absence never affects the cursor, so a nil node
// at position p carries exactly the cursor a non-nil node at p would.
//
// # Cursors
//
// CursorCodec turns a position into an opaque string: a small protobuf-wire
// record (version, position, ordering key) encoded as unpadded base64url.
// Decoding accepts only the canonical encoding produced under the same
// ordering key; everything else fails with ErrMalformedCursor. A decoded
// position is not checked against any sequence, so a cursor pointing past the
// end of a shorter sequence yields an empty page rather than an error.
//
// # Slicing
//
// Paginate walks the source from the position right after `after` (or from
// the start) and takes up to `first` nodes, or all remaining nodes when
// `first` is absent:
//
//   - hasNextPage is true iff at least one node exists after the last edge.
//     Materialized sources (FromSlice) answer from their length; lazy sources
//     (FromSeq) perform exactly one extra read, which is discarded.
//   - hasPreviousPage is true iff the start offset is greater than zero.
//   - startCursor/endCursor are the first/last edge cursors, nil when the page
//     is empty.
//
// first = 0 returns no edges while still computing both flags.
//
// # Errors
//
// Arguments are validated before the source is touched. Rejections are
// *Error values carrying a Code:
//
//   - INVALID_PAGE_SIZE: negative `first`, or above Options.MaxPageSize.
//   - INVALID_CURSOR: `after` cannot be decoded.
//   - UNSUPPORTED_PAGINATION_DIRECTION: `last` or `before` supplied; only
//     forward pagination is served.
//
// The errors are deterministic for a given input and must not be retried.
// errors.Is works with ErrInvalidPageSize, ErrInvalidCursor,
// ErrUnsupportedPaginationDirection and, for cursor failures, ErrMalformedCursor.
//
// # Concurrency
//
// Paginate holds no state between calls and may run concurrently as long as
// each source is an immutable snapshot or otherwise safe for a single read.
package paging
