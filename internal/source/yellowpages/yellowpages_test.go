package yellowpages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/source"
)

const fixtureHTML = `<html><body>
<div class="result">
  <a class="business-name"><span>Joe's Bakery</span></a>
  <div class="phones phone">(512) 555-0101</div>
  <div class="categories">Bakeries, Cafes</div>
  <div class="street-address">123 Main St</div>
  <div class="locality">Austin, TX 78701</div>
</div>
<div class="result">
  <a class="business-name"><span>Crumb &amp; Crust</span></a>
  <div class="categories">Bakeries</div>
</div>
<div class="result">
  <a class="business-name"><span></span></a>
</div>
<div class="result">
  <a class="business-name"><span>One Too Many</span></a>
</div>
</body></html>`

func TestFetchParsesListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bakery", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "Austin, TX", r.URL.Query().Get("geo_location_terms"))
		_, _ = w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	old := searchURL
	searchURL = srv.URL
	defer func() { searchURL = old }()

	c := New(source.NewClient(time.Second, 100, 10))
	recs, err := c.Fetch(context.Background(), source.Query{
		Keyword: "bakery", Location: "Austin, TX", MaxResults: 2,
	})
	require.NoError(t, err)
	require.Len(t, recs, 2, "nameless listing skipped, max results honored")

	first := recs[0]
	assert.Equal(t, "Joe's Bakery", first.Name)
	assert.Equal(t, "Bakeries, Cafes", first.Industry)
	assert.Equal(t, "123 Main St, Austin, TX 78701", first.Location)
	assert.Equal(t, "(512) 555-0101", first.Phone)
	assert.Equal(t, "yellowpages", first.Source)

	assert.Equal(t, "Crumb & Crust", recs[1].Name)
	assert.Empty(t, recs[1].Location)
}

func TestFetchServerErrorReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	old := searchURL
	searchURL = srv.URL
	defer func() { searchURL = old }()

	c := New(source.NewClient(time.Second, 100, 10))
	recs, err := c.Fetch(context.Background(), source.Query{Keyword: "bakery", Location: "Austin", MaxResults: 5})
	assert.Error(t, err)
	assert.Empty(t, recs)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	old := searchURL
	searchURL = srv.URL
	defer func() { searchURL = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := New(source.NewClient(time.Second, 100, 10))
	_, err := c.Fetch(ctx, source.Query{Keyword: "bakery", Location: "Austin", MaxResults: 5})
	assert.Error(t, err)
}
