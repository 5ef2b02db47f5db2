package source

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// userAgents is rotated per request; business directories throttle a single
// static agent quickly.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
	"Mozilla/5.0 (X11; Linux x86_64)",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
}

// Client is the HTTP front door shared by all directory connectors: one
// timeout, per-host rate limiting, rotating User-Agent.
type Client struct {
	hc *http.Client

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewClient(timeout time.Duration, reqPerSec float64, burst int) *Client {
	return &Client{
		hc:       &http.Client{Timeout: timeout},
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(reqPerSec),
		b:        burst,
	}
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lim, ok := c.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(c.r, c.b)
	c.limiters[host] = lim
	return lim
}

// GetDocument fetches rawURL (with optional query params) and parses the
// response body as HTML.
func (c *Client) GetDocument(ctx context.Context, rawURL string, params url.Values) (*goquery.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	if err := c.limiterFor(u.Host).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgents[rand.Intn(len(userAgents))])

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("get %s: status %d", u.Host, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
