package paging

import "iter"

// Source is an ordered, finite sequence of nodes to paginate. A source is
// either materialized (its length is known up front) or a lazy single-pass
// sequence that is read at most once per pagination.
type Source[T any] struct {
	items   []T
	seq     iter.Seq[T]
	err     func() error
	counted bool
}

// FromSlice returns a materialized source over items. The slice is read,
// never modified.
func FromSlice[T any](items []T) Source[T] {
	return Source[T]{items: items, counted: true}
}

// FromSeq returns a lazy source. Pagination stops pulling from seq once the
// page and a single lookahead element have been read.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return Source[T]{seq: seq}
}

// FromSeqErr is FromSeq for sequences that can fail while being read. err is
// called once the page has been read; a non-nil result fails the pagination.
func FromSeqErr[T any](seq iter.Seq[T], err func() error) Source[T] {
	return Source[T]{seq: seq, err: err}
}

// Err reports the read error of a lazy source, if any.
func (s Source[T]) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err()
}

// Len returns the number of nodes and whether it is known without reading
// the sequence.
func (s Source[T]) Len() (int, bool) {
	if s.counted {
		return len(s.items), true
	}
	return 0, false
}
