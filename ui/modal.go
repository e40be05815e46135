package ui

import (
	"fmt"
	"strings"

	"github.com/sebastiantruijens/movie-tui/rottentomatoes"
)

const (
	modalMaxWidth = 80
	posterSize    = "w500"
)

// scoresState tracks the critic scores request for the viewed movie.
type scoresState struct {
	movieID int
	loading bool
	data    *rottentomatoes.Scores
	err     error
}

func (m *Model) resizeModal() {
	w := min(modalMaxWidth, m.width-8)
	h := m.height - 10
	m.viewport.Width = max(w, 20)
	m.viewport.Height = max(h, 5)
}

func (m *Model) refreshModal() {
	m.viewport.SetContent(m.formatMovieDetails())
}

// Format movie details for display
func (m Model) formatMovieDetails() string {
	movie, ok := m.selection.Current()
	if !ok {
		return "No movie details available"
	}

	maxWidth := m.viewport.Width - 4
	if maxWidth < 20 {
		maxWidth = 60
	}

	var sb strings.Builder

	heading := movie.Title
	if year := movie.Year(); year != "" {
		heading += " (" + year + ")"
	}
	sb.WriteString(titleStyle.Render(wrapText(heading, maxWidth)))
	sb.WriteString("\n")

	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		sb.WriteString(mutedTextStyle.Render("Original title: " + movie.OriginalTitle))
		sb.WriteString("\n")
	}
	if movie.ReleaseDate != "" {
		sb.WriteString(mutedTextStyle.Render("Released: " + movie.ReleaseDate))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(subtitleStyle.Render("Ratings:"))
	sb.WriteString("\n")
	sb.WriteString(scoreStyle.Render(fmt.Sprintf("TMDB: %.1f/10 (%d votes)", movie.VoteAverage, movie.VoteCount)))
	sb.WriteString("\n")
	if m.scores != nil {
		sb.WriteString(m.formatScores())
	}
	sb.WriteString("\n")

	sb.WriteString(subtitleStyle.Render("Overview:"))
	sb.WriteString("\n")
	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	sb.WriteString(normalTextStyle.Render(wrapText(overview, maxWidth)))
	sb.WriteString("\n\n")

	if m.scoreState.data != nil && m.scoreState.data.Consensus != rottentomatoes.NotAvailable {
		sb.WriteString(subtitleStyle.Render("Critics Consensus:"))
		sb.WriteString("\n")
		sb.WriteString(normalTextStyle.Render(wrapText(m.scoreState.data.Consensus, maxWidth)))
		sb.WriteString("\n\n")
	}

	if poster := movie.PosterURL(m.imageBaseURL, posterSize); poster != "" {
		sb.WriteString(subtitleStyle.Render("Poster:"))
		sb.WriteString("\n")
		sb.WriteString(normalTextStyle.Render(poster))
		sb.WriteString("\n\n")
	}

	sb.WriteString(subtitleStyle.Render("More Info:"))
	sb.WriteString("\n")
	sb.WriteString(normalTextStyle.Render(movie.PageURL()))

	return sb.String()
}

func (m Model) formatScores() string {
	s := m.scoreState
	switch {
	case s.loading:
		return m.spinner.View() + " " + mutedTextStyle.Render("Fetching Rotten Tomatoes scores...") + "\n"
	case s.err != nil:
		return mutedTextStyle.Render("Rotten Tomatoes: scores unavailable") + "\n"
	case s.data == nil:
		return ""
	}

	var sb strings.Builder
	sb.WriteString(scoreStyle.Render("Tomatometer (Critics): " + percent(s.data.CriticScore)))
	sb.WriteString("\n")
	sb.WriteString(scoreStyle.Render("Popcornometer (Audience): " + percent(s.data.AudienceScore)))
	sb.WriteString("\n")
	return sb.String()
}

func percent(score string) string {
	if score == "" || score == rottentomatoes.NotAvailable {
		return rottentomatoes.NotAvailable
	}
	return score + "%"
}
