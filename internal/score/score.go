// Package score computes the composite relevance score for a lead: six
// independent factors, each capped at its weight, summed to a [0,100] total.
package score

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/ml"
)

// Factor weights. They must sum to exactly 100; the total score is bounded
// because every factor is individually capped at its weight.
const (
	WeightAge       = 20.0
	WeightSize      = 20.0
	WeightIndustry  = 15.0
	WeightSentiment = 10.0
	WeightRating    = 15.0
	WeightSemantic  = 20.0

	WeightTotal = WeightAge + WeightSize + WeightIndustry + WeightSentiment + WeightRating + WeightSemantic
)

// ageSaturationYears is where the age factor maxes out: a 20-year-old
// business earns the full age weight.
const ageSaturationYears = 20.0

// snippetMaxChars bounds how much snippet text feeds the embedder.
const snippetMaxChars = 200

// semanticFloor/semanticCeil map raw cosine similarity onto [0,1]: anything
// at or below the floor scores nothing, the ceiling earns the full weight.
const (
	semanticFloor = 0.6
	semanticCeil  = 1.0
)

// Breakdown is one lead's scoring result. Degraded records factors whose
// model call failed (they contribute 0) so callers can observe the loss
// instead of it vanishing silently.
type Breakdown struct {
	Age       float64
	Size      float64
	Industry  float64
	Sentiment float64
	Rating    float64
	Semantic  float64
	Total     float64
	Degraded  map[string]error
}

// Scorer scores leads against a keyword and an optional preferred size
// range. The classifier, embedder and reference vector are shared and
// read-only; Score is safe to call from many goroutines at once.
type Scorer struct {
	classifier ml.Classifier
	embedder   ml.Embedder
	refVec     []float64

	// Now is injectable for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

func New(classifier ml.Classifier, embedder ml.Embedder, refVec []float64) *Scorer {
	return &Scorer{
		classifier: classifier,
		embedder:   embedder,
		refVec:     refVec,
		Now:        time.Now,
	}
}

// ReferenceVector embeds the ideal-profile sentence once at startup. The
// result is shared read-only by every Score call.
func ReferenceVector(ctx context.Context, embedder ml.Embedder, idealProfile string) ([]float64, error) {
	if embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	vec, err := embedder.Embed(ctx, idealProfile)
	if err != nil {
		return nil, fmt.Errorf("embed ideal profile: %w", err)
	}
	return vec, nil
}

// Score computes the composite score for one lead. A failing model call
// degrades that factor to 0 and is reported in Breakdown.Degraded; nothing
// here ever returns an error.
func (s *Scorer) Score(ctx context.Context, lead domain.Lead, keyword string, preferred *domain.SizeRange) Breakdown {
	b := Breakdown{Degraded: map[string]error{}}

	b.Age = s.ageScore(lead.YearFounded)
	b.Size = sizeScore(lead.Size, preferred)
	b.Industry = industryScore(lead.Industry, keyword)
	b.Rating = ratingScore(lead.Rating)

	if prob, err := s.sentimentProb(ctx, lead); err != nil {
		b.Degraded["sentiment"] = err
	} else {
		b.Sentiment = prob * WeightSentiment
	}

	if sim, err := s.semanticSim(ctx, lead); err != nil {
		b.Degraded["semantic"] = err
	} else {
		b.Semantic = clamp01((sim-semanticFloor)/(semanticCeil-semanticFloor)) * WeightSemantic
	}

	b.Total = round2(b.Age + b.Size + b.Industry + b.Sentiment + b.Rating + b.Semantic)
	return b
}

func (s *Scorer) ageScore(founded *int) float64 {
	if founded == nil || *founded <= 0 {
		return 0
	}
	years := float64(s.Now().Year() - *founded)
	return clamp01(years/ageSaturationYears) * WeightAge
}

func sizeScore(size *int, preferred *domain.SizeRange) float64 {
	if size == nil {
		return 0
	}
	if preferred == nil {
		return WeightSize * 0.5
	}
	n := *size
	if preferred.Contains(n) {
		return WeightSize
	}
	// Half credit within 50% proximity of the nearest bound.
	low, high := preferred.Low, preferred.High
	if n < low && float64(low-n) <= 0.5*float64(low) {
		return WeightSize * 0.5
	}
	if n > high && float64(n-high) <= 0.5*float64(high) {
		return WeightSize * 0.5
	}
	return 0
}

func industryScore(industry, keyword string) float64 {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword != "" && strings.Contains(strings.ToLower(industry), keyword) {
		return WeightIndustry
	}
	return 0
}

func ratingScore(rating *float64) float64 {
	if rating == nil || *rating < 0 {
		return 0
	}
	return clamp01(*rating/5.0) * WeightRating
}

func (s *Scorer) sentimentProb(ctx context.Context, lead domain.Lead) (float64, error) {
	if s.classifier == nil {
		return 0, fmt.Errorf("no classifier configured")
	}
	text := ""
	if lead.Snippet != nil {
		text = *lead.Snippet
	}
	if text == "" {
		text = lead.Industry + " " + lead.Location
	}
	return s.classifier.PositiveProb(ctx, text)
}

func (s *Scorer) semanticSim(ctx context.Context, lead domain.Lead) (float64, error) {
	if s.embedder == nil || len(s.refVec) == 0 {
		return 0, fmt.Errorf("no embedder configured")
	}

	snippet := ""
	if lead.Snippet != nil {
		snippet = truncate(*lead.Snippet, snippetMaxChars)
	}
	text := fmt.Sprintf("%s %s %s %s", lead.Name, lead.Industry, lead.Location, snippet)

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return 0, err
	}
	return ml.Cosine(vec, s.refVec), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
