package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sebastiantruijens/movie-tui/config"
	"github.com/sebastiantruijens/movie-tui/transport"
)

// maxErrorBody caps how much of an error response is kept on APIError.
const maxErrorBody = 64 << 10

// Searcher is the fetch boundary used by the UI and the search command.
type Searcher interface {
	SearchMovies(ctx context.Context, query string, page int) (*ResultPage, error)
}

// Client is a TMDB API client.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	language     string
	includeAdult bool
	cache        *pageCache
	group        singleflight.Group
	logger       zerolog.Logger
}

var _ Searcher = (*Client)(nil)

// NewClient creates a new TMDB client. The token is sent as a bearer
// credential on every request.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrTokenMissing
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("tmdb base URL is required")
	}

	o := clientOptions{
		transport: http.DefaultTransport,
		userAgent: "movie-tui",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	rt := transport.NewHeaderRoundTripper(o.transport,
		transport.WithBearerToken(cfg.Token),
		transport.WithAccept("application/json"),
		transport.WithUserAgent(o.userAgent),
	)

	c := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: rt,
		},
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBaseURL: cfg.ImageBaseURL,
		language:     cfg.Language,
		includeAdult: cfg.IncludeAdult,
		logger:       logger.With().Str("component", "tmdb").Logger(),
	}
	if cfg.CacheSize > 0 {
		c.cache = newPageCache(cfg.CacheSize, cfg.CacheTTL, o.now)
	}

	return c, nil
}

// ImageBaseURL returns the configured image CDN base.
func (c *Client) ImageBaseURL() string {
	return c.imageBaseURL
}

// SearchMovies returns one page of search results for query. page is 1-based.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*ResultPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidQuery
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	key := cacheKey(query, page)
	if c.cache != nil {
		if result, ok := c.cache.Get(key); ok {
			c.logger.Debug().
				Str("query", query).
				Int("page", page).
				Msg("Served movie search from cache")
			return result, nil
		}
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		return c.search(ctx, query, page)
	})
	if err != nil {
		return nil, err
	}
	result := v.(*ResultPage)

	if shared {
		c.logger.Debug().
			Str("query", query).
			Int("page", page).
			Msg("Shared in-flight movie search")
	}
	if c.cache != nil {
		c.cache.Put(key, result)
	}

	return result, nil
}

func (c *Client) search(ctx context.Context, query string, page int) (*ResultPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	if c.language != "" {
		params.Set("language", c.language)
	}

	var result ResultPage
	if err := c.doRequest(ctx, c.baseURL+"/search/movie", params, &result); err != nil {
		return nil, err
	}

	if result.Results == nil {
		result.Results = []Movie{}
	}
	if result.TotalPages < 0 {
		result.TotalPages = 0
	}

	c.logger.Debug().
		Str("query", query).
		Int("page", page).
		Int("results", len(result.Results)).
		Int("total_pages", result.TotalPages).
		Msg("Movie search completed")

	return &result, nil
}

// doRequest performs an authenticated GET and decodes the JSON body into result.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	reqURL := endpoint
	if len(params) > 0 {
		reqURL = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Body:       string(body),
		}
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.StatusMessage != "" {
			apiErr.Message = errResp.StatusMessage
		}

		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("TMDB API error")

		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "malformed response body",
			Err:        err,
		}
	}

	return nil
}
