// Package geo resolves location strings to coordinates via Nominatim, with
// a persisted read-through cache so repeat runs don't re-query.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leadscout-engine/internal/cache"
)

var nominatimURL = "https://nominatim.openstreetmap.org/search"

type Geocoder struct {
	hc        *http.Client
	cache     *cache.Cache
	userAgent string
}

func New(c *cache.Cache, userAgent string) *Geocoder {
	return &Geocoder{
		hc:        &http.Client{Timeout: 5 * time.Second},
		cache:     c,
		userAgent: userAgent,
	}
}

// Lookup returns (lat, lon) for a location string. Misses and failures
// return ok=false; a run never fails because geocoding did.
func (g *Geocoder) Lookup(ctx context.Context, location string) (coord [2]float64, ok bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return coord, false
	}
	if v, hit := g.cache.Get(location); hit {
		return v, true
	}

	coord, ok = g.query(ctx, location)
	if ok {
		g.cache.Put(location, coord)
	}
	return coord, ok
}

func (g *Geocoder) query(ctx context.Context, location string) (coord [2]float64, ok bool) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		return coord, false
	}
	req.Header.Set("User-Agent", g.userAgent)

	res, err := g.hc.Do(req)
	if err != nil {
		return coord, false
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return coord, false
	}

	// Nominatim returns lat/lon as strings.
	var hits []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hits); err != nil || len(hits) == 0 {
		return coord, false
	}

	lat, errLat := strconv.ParseFloat(hits[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(hits[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return coord, false
	}
	return [2]float64{lat, lon}, true
}

// SaveCache flushes the underlying cache; the returned error is for logging.
func (g *Geocoder) SaveCache() error {
	if err := g.cache.Save(); err != nil {
		return fmt.Errorf("geo cache save: %w", err)
	}
	return nil
}
