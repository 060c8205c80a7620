package paging

import (
	"encoding/base64"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Cursor is an opaque token identifying a position in an ordered sequence.
type Cursor string

func (c Cursor) String() string { return string(c) }

// cursorEncoding rejects non-zero padding bits so that every cursor string
// has exactly one decoding.
var cursorEncoding = base64.RawURLEncoding.Strict()

const cursorVersion = 1

// Cursor record fields (protobuf wire format).
const (
	fieldVersion  protowire.Number = 1
	fieldPosition protowire.Number = 2
	fieldOrdering protowire.Number = 3
)

// CursorCodec converts sequence positions to cursors and back. Cursors carry
// the codec's ordering key; a codec refuses cursors minted under another key.
//
// The zero value encodes positions of the natural sequence order.
type CursorCodec struct {
	ordering string
}

// NewCursorCodec returns a codec bound to the given ordering key.
func NewCursorCodec(ordering string) CursorCodec {
	return CursorCodec{ordering: ordering}
}

// Ordering returns the ordering key baked into cursors produced by c.
func (c CursorCodec) Ordering() string { return c.ordering }

// Encode returns the cursor for a zero-based position. It panics on a
// negative position.
func (c CursorCodec) Encode(position int) Cursor {
	if position < 0 {
		panic(fmt.Sprintf("paging: cannot encode negative position %d", position))
	}
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, cursorVersion)
	b = protowire.AppendTag(b, fieldPosition, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(position))
	if c.ordering != "" {
		b = protowire.AppendTag(b, fieldOrdering, protowire.BytesType)
		b = protowire.AppendString(b, c.ordering)
	}
	return Cursor(cursorEncoding.EncodeToString(b))
}

// Decode returns the position encoded in cursor. The position is not checked
// against any sequence bounds. Anything Encode could not have produced under
// this codec's ordering fails with ErrMalformedCursor.
func (c CursorCodec) Decode(cursor Cursor) (int, error) {
	if cursor == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedCursor)
	}
	b, err := cursorEncoding.DecodeString(string(cursor))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}

	var (
		version     uint64
		position    uint64
		ordering    string
		hasPosition bool
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, fmt.Errorf("%w: %v", ErrMalformedCursor, protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, n = protowire.ConsumeVarint(b)
		case num == fieldPosition && typ == protowire.VarintType:
			position, n = protowire.ConsumeVarint(b)
			hasPosition = true
		case num == fieldOrdering && typ == protowire.BytesType:
			var raw []byte
			raw, n = protowire.ConsumeBytes(b)
			ordering = string(raw)
		default:
			return 0, fmt.Errorf("%w: unexpected field %d", ErrMalformedCursor, num)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: %v", ErrMalformedCursor, protowire.ParseError(n))
		}
		b = b[n:]
	}

	switch {
	case version != cursorVersion:
		return 0, fmt.Errorf("%w: unsupported version %d", ErrMalformedCursor, version)
	case !hasPosition:
		return 0, fmt.Errorf("%w: missing position", ErrMalformedCursor)
	case position > math.MaxInt:
		return 0, fmt.Errorf("%w: position out of range", ErrMalformedCursor)
	case ordering != c.ordering:
		return 0, fmt.Errorf("%w: cursor belongs to ordering %q", ErrMalformedCursor, ordering)
	}

	// Only the canonical encoding is accepted (field order, minimal varints).
	pos := int(position)
	if c.Encode(pos) != cursor {
		return 0, fmt.Errorf("%w: non-canonical encoding", ErrMalformedCursor)
	}
	return pos, nil
}
