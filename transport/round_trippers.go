// Package transport provides http.RoundTripper decorators shared by the API clients.
package transport

import (
	"net/http"
)

// HeaderOption sets one header on an outgoing request.
type HeaderOption func(set func(key, value string))

type headerRoundTripper struct {
	next    http.RoundTripper
	options []HeaderOption
}

// NewHeaderRoundTripper returns a RoundTripper that stamps the given headers
// on every request before handing it to next. A nil next uses http.DefaultTransport.
func NewHeaderRoundTripper(next http.RoundTripper, opts ...HeaderOption) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &headerRoundTripper{next: next, options: opts}
}

func (rt *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	for _, opt := range rt.options {
		opt(req.Header.Set)
	}
	return rt.next.RoundTrip(req)
}

// WithBearerToken sets the Authorization header to a bearer credential.
func WithBearerToken(token string) HeaderOption {
	return func(set func(key, value string)) {
		set("Authorization", "Bearer "+token)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) HeaderOption {
	return func(set func(key, value string)) {
		set("User-Agent", userAgent)
	}
}

// WithAccept sets the Accept header.
func WithAccept(accept string) HeaderOption {
	return func(set func(key, value string)) {
		set("Accept", accept)
	}
}

// WithAcceptLanguage sets the Accept-Language header.
func WithAcceptLanguage(acceptLanguage string) HeaderOption {
	return func(set func(key, value string)) {
		set("Accept-Language", acceptLanguage)
	}
}
