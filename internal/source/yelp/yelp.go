package yelp

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

var searchURL = "https://www.yelp.com/search"

type Connector struct {
	client *source.Client
}

func New(client *source.Client) *Connector { return &Connector{client: client} }

func (c *Connector) Name() string { return "yelp" }

func (c *Connector) Fetch(ctx context.Context, q source.Query) ([]domain.CandidateRecord, error) {
	params := url.Values{}
	params.Set("find_desc", q.Keyword)
	params.Set("find_loc", q.Location)

	doc, err := c.client.GetDocument(ctx, searchURL, params)
	if err != nil {
		return nil, err
	}

	var out []domain.CandidateRecord
	doc.Find(".container__09f24__21w3G").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		if len(out) >= q.MaxResults {
			return false
		}

		name := strings.TrimSpace(entry.Find("a.link__09f24__1kwXV").First().Text())
		if name == "" {
			return true
		}

		out = append(out, domain.CandidateRecord{
			Name: name,
			// Yelp's listing markup carries no industry label; the search
			// keyword is the best stand-in.
			Industry: q.Keyword,
			Location: q.Location,
			Phone:    strings.TrimSpace(entry.Find("p.text__09f24__2NHRu").First().Text()),
			Rating:   parseRating(entry),
			Snippet:  strings.TrimSpace(entry.Find("p.comment__09f24__gu0rG").First().Text()),
			Source:   c.Name(),
		})
		return true
	})

	return out, nil
}

// parseRating reads the star rating out of the aria-label ("4.5 star rating").
func parseRating(entry *goquery.Selection) *float64 {
	label, ok := entry.Find("div.i-stars__09f24__1T6rz").First().Attr("aria-label")
	if !ok {
		return nil
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return nil
	}
	r, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil
	}
	return &r
}
