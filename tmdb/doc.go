// Package tmdb provides the client for The Movie Database search endpoint.
//
// The client performs exactly one GET per uncached call:
//
//	GET {base_url}/search/movie?query=<q>&page=<p>
//	Authorization: Bearer <token>
//
// and returns a ResultPage. It never retries.
//
// # Errors
//
//   - ErrTokenMissing: NewClient was called without a token
//   - ErrInvalidQuery, ErrInvalidPage: arguments rejected before any request
//   - NetworkError: the request never produced a response
//   - APIError: non-2xx response, or a body that is not valid JSON
//
// Use errors.As to classify:
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// token rejected
//	}
//
// # De-duplication and caching
//
// Concurrent calls for the same (query, page) share one in-flight request.
// When tmdb.cache_size > 0, successful pages are memoized in a small LRU for
// tmdb.cache_ttl. Failures are never cached.
package tmdb
