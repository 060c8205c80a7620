package events

import "time"

// PageStart is emitted before a paged field obtains its sequence. ID is
// unique per resolution and repeated on the matching PageFinish.
type PageStart struct {
	ID    string
	Type  string
	Field string
	First *int
	After string
}

// PageFinish is emitted after a paged field resolution completes, successfully
// or not. Code is the paging error code when Err is a rejection.
type PageFinish struct {
	ID              string
	Type            string
	Field           string
	Edges           int
	HasNextPage     bool
	HasPreviousPage bool
	Custom          bool
	Code            string
	Err             error
	Duration        time.Duration
}
