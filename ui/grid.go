package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/sebastiantruijens/movie-tui/tmdb"
)

const (
	cardInnerWidth  = 28
	cardInnerHeight = 3
	cardWidth       = cardInnerWidth + 2
	cardHeight      = cardInnerHeight + 2
	maxColumns      = 5
)

func (m Model) gridColumns() int {
	cols := m.width / (cardWidth + 1)
	if cols < 1 {
		return 1
	}
	if cols > maxColumns {
		return maxColumns
	}
	return cols
}

// moveCursor steps the cursor over n cards laid out in cols columns. Moves
// that would leave the grid are ignored.
func moveCursor(cursor, n, cols, dx, dy int) int {
	next := cursor + dx + dy*cols
	if next < 0 || next >= n {
		return cursor
	}
	return next
}

// renderGrid draws at most maxRows rows of cards, scrolled so the cursor row
// stays visible. dimmed is set while a different page is loading.
func (m Model) renderGrid(movies []tmdb.Movie, dimmed bool, maxRows int) string {
	if len(movies) == 0 {
		return ""
	}
	if maxRows < 1 {
		maxRows = 1
	}

	cols := m.gridColumns()
	totalRows := (len(movies) + cols - 1) / cols

	first := 0
	if cursorRow := m.cursor / cols; cursorRow >= maxRows {
		first = cursorRow - maxRows + 1
	}
	last := min(totalRows, first+maxRows)

	rows := make([]string, 0, last-first+1)
	for r := first; r < last; r++ {
		cards := make([]string, 0, cols)
		for i := r * cols; i < min(len(movies), (r+1)*cols); i++ {
			highlighted := i == m.cursor && m.focus == focusGrid
			cards = append(cards, renderCard(movies[i], highlighted, dimmed))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if last < totalRows {
		rows = append(rows, mutedTextStyle.Render(fmt.Sprintf("↓ %d more", len(movies)-last*cols)))
	}

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func renderCard(movie tmdb.Movie, highlighted, dimmed bool) string {
	textStyle := normalTextStyle
	if dimmed {
		textStyle = mutedTextStyle
	} else if highlighted {
		textStyle = highlightedTextStyle
	}

	title := textStyle.
		Width(cardInnerWidth - 2).
		Height(2).
		MaxHeight(2).
		Render(movie.Title)

	year := movie.Year()
	if year == "" {
		year = "----"
	}
	meta := mutedTextStyle.Render(fmt.Sprintf("%s  ★ %.1f", year, movie.VoteAverage))

	style := cardStyle
	if highlighted {
		style = selectedCardStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, meta))
}
