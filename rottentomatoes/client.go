// Package rottentomatoes scrapes critic and audience scores from
// rottentomatoes.com for the movie detail view.
package rottentomatoes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/sebastiantruijens/movie-tui/transport"
)

// browserUserAgent makes the site serve the regular desktop markup.
const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// NotAvailable is used for any value the page did not expose.
const NotAvailable = "N/A"

// ErrNoMatch is returned when the search page lists no movies.
var ErrNoMatch = errors.New("no matching movie on Rotten Tomatoes")

// Scores represents a movie's ratings as shown on its Rotten Tomatoes page.
type Scores struct {
	Title         string
	Year          string
	URL           string
	CriticScore   string
	AudienceScore string
	Consensus     string
}

// SearchResult represents a movie search result
type SearchResult struct {
	Title string
	Year  string
	URL   string
}

// Client handles interactions with Rotten Tomatoes
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new scraping client.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: transport.NewHeaderRoundTripper(nil,
				transport.WithUserAgent(browserUserAgent),
				transport.WithAcceptLanguage("en-US,en;q=0.9"),
			),
		},
		logger: logger.With().Str("component", "rottentomatoes").Logger(),
	}
}

// Scores finds title on Rotten Tomatoes and returns its scores. When year is
// set, a search result from that year is preferred.
func (c *Client) Scores(ctx context.Context, title, year string) (*Scores, error) {
	results, err := c.Search(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	best := pickResult(results, title, year)

	c.logger.Debug().
		Str("title", title).
		Str("year", year).
		Str("match", best.URL).
		Msg("Matched Rotten Tomatoes page")

	return c.MovieDetails(ctx, best.URL)
}

// Search searches for movies by query term
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	searchURL := fmt.Sprintf("%s/search?search=%s", c.baseURL, url.QueryEscape(query))

	doc, err := c.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return parseSearchResults(doc, c.baseURL), nil
}

// MovieDetails fetches the scores from a movie page.
func (c *Client) MovieDetails(ctx context.Context, movieURL string) (*Scores, error) {
	doc, err := c.fetchDocument(ctx, movieURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie details: %w", err)
	}

	scores := parseMoviePage(doc)
	scores.URL = movieURL
	return scores, nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code: %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// pickResult prefers an exact title and year match, then a year match, then
// the first result.
func pickResult(results []SearchResult, title, year string) SearchResult {
	if year != "" {
		for _, r := range results {
			if r.Year == year && strings.EqualFold(r.Title, title) {
				return r
			}
		}
		for _, r := range results {
			if r.Year == year {
				return r
			}
		}
	}
	for _, r := range results {
		if strings.EqualFold(r.Title, title) {
			return r
		}
	}
	return results[0]
}
