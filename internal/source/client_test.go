package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDocumentSetsRotatedUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	c := NewClient(time.Second, 100, 10)
	doc, err := c.GetDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	assert.Contains(t, userAgents, gotUA)
	assert.Equal(t, "ok", doc.Find("p").Text())
}

func TestGetDocumentEncodesParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "coffee shop", r.URL.Query().Get("search_terms"))
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	params := url.Values{}
	params.Set("search_terms", "coffee shop")

	c := NewClient(time.Second, 100, 10)
	_, err := c.GetDocument(context.Background(), srv.URL, params)
	require.NoError(t, err)
}

func TestGetDocumentStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(time.Second, 100, 10)
	_, err := c.GetDocument(context.Background(), srv.URL, nil)
	assert.Error(t, err)
}

func TestGetDocumentRateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	// 1 req/s with burst 1: the second request must wait ~1s, but the
	// context expires first.
	c := NewClient(time.Second, 1, 1)
	_, err := c.GetDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GetDocument(ctx, srv.URL, nil)
	assert.Error(t, err)
}
