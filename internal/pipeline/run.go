// Package pipeline wires the stages of one aggregation run: concurrent
// fetch, sequential normalize+dedup, parallel score, rank, geocode.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"leadscout-engine/internal/dataset"
	"leadscout-engine/internal/dedup"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/geo"
	"leadscout-engine/internal/normalize"
	"leadscout-engine/internal/rank"
	"leadscout-engine/internal/score"
	"leadscout-engine/internal/source"
)

// geocodeTopN bounds how many ranked leads get coordinates.
const geocodeTopN = 10

// DatasetQuerier is the dataset connector boundary; nil means no dataset.
type DatasetQuerier interface {
	Query(ctx context.Context, f dataset.Filter) ([]domain.CandidateRecord, error)
}

type Request struct {
	Keyword      string
	Location     string
	Category     string // optional industry narrowing
	Preferred    *domain.SizeRange
	MaxPerSource int
	TopK         int
	DatasetLimit int
}

type Result struct {
	Leads []domain.Lead
	// Coords maps a lead's location string to (lat, lon) for the top leads
	// that geocoded successfully.
	Coords map[string][2]float64
	// Degraded lists sources and score factors that failed along the way.
	Degraded []string
}

// Engine holds the injected collaborators for aggregation runs. All fields
// except Connectors-or-Dataset and Normalizer/Scorer are optional.
type Engine struct {
	Connectors []source.Connector
	Dataset    DatasetQuerier
	Normalizer *normalize.Normalizer
	Scorer     *score.Scorer
	Geocoder   *geo.Geocoder

	DedupThreshold   int
	ConnectorTimeout time.Duration
	ScoreWorkers     int
}

// Run executes one aggregation run. The only hard failure is boundary
// validation; every source and score factor degrades instead of aborting.
// Cancel ctx to cut the run short — scoring proceeds with whatever
// candidates were collected by then.
func (e *Engine) Run(ctx context.Context, req Request) (Result, error) {
	var res Result

	if strings.TrimSpace(req.Keyword) == "" || strings.TrimSpace(req.Location) == "" {
		return res, errors.New("both keyword and location are required")
	}
	if req.MaxPerSource <= 0 {
		req.MaxPerSource = 10
	}
	if req.TopK <= 0 {
		req.TopK = rank.DefaultTopK
	}

	candidates := e.fetch(ctx, req, &res)

	if cat := strings.ToLower(strings.TrimSpace(req.Category)); cat != "" {
		candidates = filterByCategory(candidates, cat)
	}

	if e.Dataset != nil {
		rows, err := e.Dataset.Query(ctx, dataset.Filter{
			Keyword:   req.Keyword,
			Location:  req.Location,
			Category:  req.Category,
			SizeRange: req.Preferred,
			Limit:     req.DatasetLimit,
		})
		if err != nil {
			log.Printf("[dataset] query error: %v", err)
			res.Degraded = append(res.Degraded, "source:dataset")
		} else {
			log.Printf("[dataset] matched %d companies", len(rows))
			candidates = append(candidates, rows...)
		}
	}

	leads := e.normalizeAndDedup(candidates)
	if len(leads) == 0 {
		return res, fmt.Errorf("no leads found for keyword=%q location=%q", req.Keyword, req.Location)
	}

	e.scoreAll(ctx, leads, req, &res)

	res.Leads = rank.Top(leads, req.TopK)
	res.Coords = e.geocodeTop(ctx, res.Leads)
	return res, nil
}

// fetch runs every connector concurrently under its own timeout. Results
// land in a per-connector slot so candidate order (and therefore which
// duplicate survives dedup) stays deterministic.
func (e *Engine) fetch(ctx context.Context, req Request, res *Result) []domain.CandidateRecord {
	timeout := e.ConnectorTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	results := make([][]domain.CandidateRecord, len(e.Connectors))
	failed := make([]bool, len(e.Connectors))

	var g errgroup.Group
	for i, c := range e.Connectors {
		i, c := i, c
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			log.Printf("[%s] fetching...", c.Name())
			recs, err := c.Fetch(fctx, source.Query{
				Keyword:    req.Keyword,
				Location:   req.Location,
				MaxResults: req.MaxPerSource,
			})
			if err != nil {
				log.Printf("[%s] fetch error: %v", c.Name(), err)
				failed[i] = true
				return nil // best-effort: don't cancel siblings
			}
			log.Printf("[%s] got %d candidates", c.Name(), len(recs))
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.CandidateRecord
	for i, recs := range results {
		if failed[i] {
			res.Degraded = append(res.Degraded, "source:"+e.Connectors[i].Name())
			continue
		}
		out = append(out, recs...)
	}
	return out
}

// normalizeAndDedup is deliberately sequential: dedup correctness needs a
// strict view of previously accepted names, and first-seen wins.
func (e *Engine) normalizeAndDedup(candidates []domain.CandidateRecord) []domain.Lead {
	seen := dedup.NewSet(e.DedupThreshold)

	var leads []domain.Lead
	dropped, dupes := 0, 0
	for _, rec := range candidates {
		lead, ok := e.Normalizer.Record(rec)
		if !ok {
			dropped++
			continue
		}
		if !seen.Accept(lead.Name) {
			dupes++
			continue
		}
		leads = append(leads, lead)
	}

	log.Printf("[pipeline] %d candidates -> %d leads (%d unnamed, %d near-duplicates)",
		len(candidates), len(leads), dropped, dupes)
	return leads
}

// scoreAll scores leads in place. The scorer is read-only shared state, so
// leads fan out across a bounded worker pool.
func (e *Engine) scoreAll(ctx context.Context, leads []domain.Lead, req Request, res *Result) {
	workers := e.ScoreWorkers
	if workers <= 0 {
		workers = 1
	}

	degraded := make([]map[string]error, len(leads))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range leads {
		i := i
		g.Go(func() error {
			b := e.Scorer.Score(ctx, leads[i], req.Keyword, req.Preferred)
			leads[i].Score = b.Total
			if len(b.Degraded) > 0 {
				degraded[i] = b.Degraded
			}
			return nil
		})
	}
	_ = g.Wait()

	counts := map[string]int{}
	for i, d := range degraded {
		for factor, err := range d {
			counts[factor]++
			if counts[factor] == 1 {
				// one sample per factor is enough noise
				log.Printf("[score] %s degraded for %q: %v", factor, leads[i].Name, err)
			}
		}
	}
	for factor, n := range counts {
		res.Degraded = append(res.Degraded, fmt.Sprintf("score:%s (%d leads)", factor, n))
	}
}

func (e *Engine) geocodeTop(ctx context.Context, leads []domain.Lead) map[string][2]float64 {
	if e.Geocoder == nil {
		return nil
	}

	coords := make(map[string][2]float64)
	for i, l := range leads {
		if i >= geocodeTopN {
			break
		}
		if l.Location == "" {
			continue
		}
		if c, ok := e.Geocoder.Lookup(ctx, l.Location); ok {
			coords[l.Location] = c
		}
	}

	if err := e.Geocoder.SaveCache(); err != nil {
		log.Printf("[geo] cache save failed: %v", err)
	}
	return coords
}

func filterByCategory(recs []domain.CandidateRecord, catLower string) []domain.CandidateRecord {
	var out []domain.CandidateRecord
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Industry), catLower) {
			out = append(out, r)
		}
	}
	return out
}
