package search

import "github.com/sebastiantruijens/movie-tui/tmdb"

// Layout says which UI regions are visible for a State.
type Layout struct {
	ShowLoader     bool
	ShowError      bool
	ShowPagination bool
	ShowGrid       bool
	// Revalidating marks that Movies belong to the previous page.
	Revalidating bool

	Movies     []tmdb.Movie
	TotalPages int
	// ActivePage is 0-indexed, as the pagination control expects.
	ActivePage int
	Err        error
}

// Layout maps the state to visible regions.
func (s State) Layout() Layout {
	l := Layout{
		TotalPages: s.TotalPages(),
		ActivePage: s.page - 1,
	}

	switch s.status {
	case StatusIdle:
		return l
	case StatusErrored:
		l.ShowError = true
		l.Err = s.err
		return l
	case StatusFetching:
		if !s.revalidating {
			l.ShowLoader = true
			return l
		}
		l.Revalidating = true
	}

	if s.data != nil {
		l.ShowPagination = s.data.TotalPages > 1
		l.ShowGrid = len(s.data.Results) > 0
		l.Movies = s.data.Results
	}

	return l
}
