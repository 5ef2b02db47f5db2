// Package normalize maps heterogeneous connector output onto the canonical
// Lead schema. Missing optional fields become nil, never empty strings, so
// downstream scoring doesn't have to guess.
package normalize

import (
	"strconv"
	"strings"

	"github.com/pariz/gountries"

	"leadscout-engine/internal/domain"
)

type Normalizer struct {
	countries *gountries.Query
}

func New() *Normalizer {
	return &Normalizer{countries: gountries.New()}
}

// Record builds a Lead from a raw candidate. ok=false means the record is
// unusable (no name) and must be dropped before dedup.
func (n *Normalizer) Record(rec domain.CandidateRecord) (domain.Lead, bool) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return domain.Lead{}, false
	}

	lead := domain.Lead{
		Name:        name,
		Industry:    strings.TrimSpace(rec.Industry),
		Location:    n.location(rec),
		Phone:       optString(rec.Phone),
		Rating:      rec.Rating,
		Snippet:     optString(rec.Snippet),
		YearFounded: validYear(rec.YearFounded),
		Size:        ParseSize(rec.SizeText),
		Source:      rec.Source,
	}
	return lead, true
}

// location prefers a pre-composed string from the connector; otherwise it
// joins the non-empty parts the dataset supplies.
func (n *Normalizer) location(rec domain.CandidateRecord) string {
	if loc := strings.TrimSpace(rec.Location); loc != "" {
		return loc
	}

	var parts []string
	for _, p := range []string{rec.City, rec.State, n.CountryName(rec.CountryCode)} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// CountryName maps a 2-letter country code to the full country name, or ""
// when the code is missing or unknown.
func (n *Normalizer) CountryName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	country, err := n.countries.FindCountryByAlpha(strings.ToUpper(code))
	if err != nil {
		return ""
	}
	return country.Name.Common
}

// ParseSize turns a size-range string into its integer midpoint:
// "11-50" → 30, "500+" → 500, "42" → 42. Anything else is unknown (nil),
// never an error.
func ParseSize(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var v int
	switch {
	case strings.Contains(s, "-"):
		parts := strings.SplitN(s, "-", 2)
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil {
			return nil
		}
		v = (a + b) / 2
	case strings.HasSuffix(s, "+"):
		a, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "+")))
		if err != nil {
			return nil
		}
		v = a
	default:
		a, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		v = a
	}

	if v < 0 {
		return nil
	}
	return &v
}

func validYear(y *int) *int {
	if y == nil || *y <= 0 {
		return nil
	}
	return y
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
