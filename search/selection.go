package search

import "github.com/sebastiantruijens/movie-tui/tmdb"

// Selection is the single movie shown in the detail modal, if any.
type Selection struct {
	movie *tmdb.Movie
}

// Select views movie, replacing any current selection. A nil movie clears it.
func (s *Selection) Select(movie *tmdb.Movie) {
	if movie == nil {
		s.movie = nil
		return
	}
	m := *movie
	s.movie = &m
}

// Close dismisses the modal.
func (s *Selection) Close() {
	s.movie = nil
}

// Current returns the viewed movie.
func (s Selection) Current() (tmdb.Movie, bool) {
	if s.movie == nil {
		return tmdb.Movie{}, false
	}
	return *s.movie, true
}

// Viewing reports whether a movie is selected.
func (s Selection) Viewing() bool {
	return s.movie != nil
}
