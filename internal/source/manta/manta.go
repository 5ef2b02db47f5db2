package manta

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

var searchURL = "https://www.manta.com/search"

type Connector struct {
	client *source.Client
}

func New(client *source.Client) *Connector { return &Connector{client: client} }

func (c *Connector) Name() string { return "manta" }

func (c *Connector) Fetch(ctx context.Context, q source.Query) ([]domain.CandidateRecord, error) {
	params := url.Values{}
	params.Set("search_source", "nav")
	params.Set("search_category", "businesses")
	params.Set("search_term", q.Keyword)
	params.Set("search_location", q.Location)

	doc, err := c.client.GetDocument(ctx, searchURL, params)
	if err != nil {
		return nil, err
	}

	var out []domain.CandidateRecord
	doc.Find("div.search-result-card").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		if len(out) >= q.MaxResults {
			return false
		}

		name := strings.TrimSpace(entry.Find("a.search-result-title").First().Text())
		if name == "" {
			return true
		}

		loc := strings.TrimSpace(entry.Find("div.location").First().Text())
		if loc == "" {
			loc = q.Location
		}
		website, _ := entry.Find("a.website-link").First().Attr("href")

		out = append(out, domain.CandidateRecord{
			Name:       name,
			Industry:   strings.TrimSpace(entry.Find("div.category").First().Text()),
			Location:   loc,
			Phone:      strings.TrimSpace(entry.Find("div.phone").First().Text()),
			WebsiteURL: website,
			Source:     c.Name(),
		})
		return true
	})

	return out, nil
}
