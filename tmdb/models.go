package tmdb

import (
	"fmt"
	"strings"
)

// WebBaseURL is the public website used for movie page links.
const WebBaseURL = "https://www.themoviedb.org"

// ResultPage is the response from TMDB movie search.
type ResultPage struct {
	Page         int     `json:"page" yaml:"page"`
	Results      []Movie `json:"results" yaml:"results"`
	TotalPages   int     `json:"total_pages" yaml:"total_pages"`
	TotalResults int     `json:"total_results" yaml:"total_results"`
}

// Movie is a movie from TMDB search results. Values are passed through as
// received; callers must not modify them.
type Movie struct {
	ID               int     `json:"id" yaml:"id"`
	Title            string  `json:"title" yaml:"title"`
	OriginalTitle    string  `json:"original_title" yaml:"original_title"`
	OriginalLanguage string  `json:"original_language" yaml:"original_language"`
	Overview         string  `json:"overview" yaml:"overview"`
	ReleaseDate      string  `json:"release_date" yaml:"release_date"`
	PosterPath       *string `json:"poster_path" yaml:"poster_path"`
	BackdropPath     *string `json:"backdrop_path" yaml:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average" yaml:"vote_average"`
	VoteCount        int     `json:"vote_count" yaml:"vote_count"`
	Popularity       float64 `json:"popularity" yaml:"popularity"`
	Adult            bool    `json:"adult" yaml:"adult"`
	GenreIDs         []int   `json:"genre_ids" yaml:"genre_ids"`
}

// ErrorResponse is the body TMDB sends with error statuses.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// Year returns the four digit release year, or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) >= 4 {
		return m.ReleaseDate[:4]
	}
	return ""
}

// PosterURL builds the image URL for the poster at the given size
// (e.g. "w500", "original"). Empty when the movie has no poster.
func (m Movie) PosterURL(imageBaseURL, size string) string {
	return imageURL(imageBaseURL, size, m.PosterPath)
}

// BackdropURL builds the image URL for the backdrop at the given size.
func (m Movie) BackdropURL(imageBaseURL, size string) string {
	return imageURL(imageBaseURL, size, m.BackdropPath)
}

// PageURL is the movie's page on the TMDB website.
func (m Movie) PageURL() string {
	return fmt.Sprintf("%s/movie/%d", WebBaseURL, m.ID)
}

func imageURL(base, size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return strings.TrimSuffix(base, "/") + "/" + size + *path
}
