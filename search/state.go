// Package search holds the UI-independent state of a movie search session:
// the query/pagination state machine, the layout it implies, and the
// currently viewed movie.
//
// All methods are meant to be called from a single event loop.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sebastiantruijens/movie-tui/tmdb"
)

// ErrEmptyQuery is returned when a blank or whitespace-only search is submitted.
var ErrEmptyQuery = errors.New("search query is empty")

// Key identifies one fetch: the query and its 1-based page.
type Key struct {
	Query string
	Page  int
}

func (k Key) String() string {
	return fmt.Sprintf("%q page %d", k.Query, k.Page)
}

// Status is the fetch lifecycle of the current key.
type Status int

const (
	// StatusIdle means no query has been submitted; fetching is disabled.
	StatusIdle Status = iota
	// StatusFetching means a request for the current key is in flight.
	StatusFetching
	// StatusLoaded means the last request for the current key succeeded.
	StatusLoaded
	// StatusErrored means the last request for the current key failed.
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetching:
		return "fetching"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Outcome reports what Resolve did with a response.
type Outcome struct {
	// Applied is false when the response was for a stale key and was dropped.
	Applied bool
	// NoResults is set once, on the resolution that produced an empty page.
	NoResults bool
}

// State is the query/pagination state machine.
//
// data is non-nil only while results are on screen: after a successful
// resolution, and while revalidating a page change.
type State struct {
	query        string
	page         int
	status       Status
	data         *tmdb.ResultPage
	err          error
	revalidating bool
}

// New returns an idle state.
func New() State {
	return State{page: 1}
}

// Query returns the current search text.
func (s State) Query() string { return s.query }

// Page returns the current 1-based page.
func (s State) Page() int { return s.page }

// Status returns the current lifecycle state.
func (s State) Status() Status { return s.status }

// Err returns the failure of the last request when Errored.
func (s State) Err() error { return s.err }

// Revalidating reports whether previous results are shown while a new page loads.
func (s State) Revalidating() bool { return s.revalidating }

// Key returns the current query key.
func (s State) Key() Key { return Key{Query: s.query, Page: s.page} }

// Enabled reports whether fetching is allowed at all.
func (s State) Enabled() bool { return s.query != "" }

// Data returns the result page currently on screen, if any.
func (s State) Data() *tmdb.ResultPage { return s.data }

// TotalPages returns total_pages of the result page on screen, or 0.
func (s State) TotalPages() int {
	if s.data == nil {
		return 0
	}
	return s.data.TotalPages
}

// Submit starts a new search. The text is trimmed; a blank query is rejected
// and leaves the state untouched. On success the page resets to 1, previous
// results are discarded and the returned key must be fetched.
func (s *State) Submit(text string) (Key, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return Key{}, ErrEmptyQuery
	}

	s.query = query
	s.page = 1
	s.status = StatusFetching
	s.data = nil
	s.err = nil
	s.revalidating = false

	return s.Key(), nil
}

// ChangePage moves to the 0-indexed page selected on the pagination control.
// It is only accepted while results are on screen and more than one page
// exists; the previous results stay visible until the new page resolves.
// ok is false when the event was ignored.
func (s *State) ChangePage(selected int) (key Key, ok bool) {
	if s.data == nil {
		return Key{}, false
	}

	total := s.data.TotalPages
	if total <= 1 || selected < 0 || selected >= total {
		return Key{}, false
	}

	page := selected + 1
	if page == s.page {
		return Key{}, false
	}

	s.page = page
	s.status = StatusFetching
	s.err = nil
	s.revalidating = true

	return s.Key(), true
}

// Resolve applies the result of a fetch for key. Responses for any key other
// than the current one, or arriving when nothing is in flight, are dropped.
func (s *State) Resolve(key Key, page *tmdb.ResultPage, err error) Outcome {
	if s.status != StatusFetching || key != s.Key() {
		return Outcome{}
	}

	s.revalidating = false

	if err != nil {
		s.status = StatusErrored
		s.err = err
		s.data = nil
		return Outcome{Applied: true}
	}

	if page == nil {
		page = &tmdb.ResultPage{}
	}
	s.status = StatusLoaded
	s.data = page
	s.err = nil

	return Outcome{Applied: true, NoResults: len(page.Results) == 0}
}
