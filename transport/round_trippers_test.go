package transport_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastiantruijens/movie-tui/transport"
)

type mockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func TestHeaderRoundTripper(t *testing.T) {
	called := false
	mockRT := &mockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			called = true
			assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
			assert.Equal(t, "TestAgent", req.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			assert.Equal(t, "en-US", req.Header.Get("Accept-Language"))
			return &http.Response{StatusCode: http.StatusOK}, nil
		},
	}

	rt := transport.NewHeaderRoundTripper(mockRT,
		transport.WithBearerToken("secret"),
		transport.WithUserAgent("TestAgent"),
		transport.WithAccept("application/json"),
		transport.WithAcceptLanguage("en-US"))

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, called)

	// The caller's request is left untouched.
	assert.Empty(t, req.Header.Get("Authorization"))
}
