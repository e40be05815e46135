package ui

import (
	"github.com/sebastiantruijens/movie-tui/rottentomatoes"
	"github.com/sebastiantruijens/movie-tui/search"
	"github.com/sebastiantruijens/movie-tui/tmdb"
)

// Custom message types
type searchResultsMsg struct {
	key  search.Key
	page *tmdb.ResultPage
	err  error
}

// pageSelectedMsg is the pagination control's page-change event.
type pageSelectedMsg struct {
	selected int // 0-indexed
}

type scoresMsg struct {
	movieID int
	scores  *rottentomatoes.Scores
	err     error
}

type toastExpiredMsg struct {
	seq int
}

type openBrowserMsg struct {
	err error
}
