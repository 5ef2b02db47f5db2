package yellowpages

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/source"
)

var searchURL = "https://www.yellowpages.com/search"

type Connector struct {
	client *source.Client
}

func New(client *source.Client) *Connector { return &Connector{client: client} }

func (c *Connector) Name() string { return "yellowpages" }

func (c *Connector) Fetch(ctx context.Context, q source.Query) ([]domain.CandidateRecord, error) {
	params := url.Values{}
	params.Set("search_terms", q.Keyword)
	params.Set("geo_location_terms", q.Location)

	doc, err := c.client.GetDocument(ctx, searchURL, params)
	if err != nil {
		return nil, err
	}

	var out []domain.CandidateRecord
	doc.Find(".result").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		if len(out) >= q.MaxResults {
			return false
		}

		name := strings.TrimSpace(entry.Find(".business-name span").First().Text())
		if name == "" {
			return true
		}

		street := strings.TrimSpace(entry.Find(".street-address").First().Text())
		locality := strings.TrimSpace(entry.Find(".locality").First().Text())
		loc := street
		if locality != "" {
			if loc != "" {
				loc += ", "
			}
			loc += locality
		}

		out = append(out, domain.CandidateRecord{
			Name:     name,
			Industry: strings.TrimSpace(entry.Find(".categories").First().Text()),
			Location: loc,
			Phone:    strings.TrimSpace(entry.Find(".phones.phone").First().Text()),
			Source:   c.Name(),
		})
		return true
	})

	return out, nil
}
