package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg plus everything a
// careful operator should know before a run starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Inference.BaseURL = strings.TrimRight(strings.TrimSpace(out.Inference.BaseURL), "/")
	out.Inference.IdealProfile = strings.TrimSpace(out.Inference.IdealProfile)
	out.Geo.UserAgent = strings.TrimSpace(out.Geo.UserAgent)

	if out.Search.MaxPerSource <= 0 {
		res.addErr("search.max_per_source must be > 0")
	}
	if out.Search.TopK <= 0 {
		res.addErr("search.top_k must be > 0")
	}
	if out.Search.ConnectorTimeoutSeconds <= 0 {
		res.addErr("search.connector_timeout_seconds must be > 0")
	}
	if out.Search.ScoreWorkers <= 0 {
		out.Search.ScoreWorkers = 1
	}

	if out.Dedup.Threshold < 0 || out.Dedup.Threshold > 100 {
		res.addErr("dedup.threshold must be in 0..100")
	} else if out.Dedup.Threshold < 70 {
		res.addWarn("dedup.threshold is very low (%d); distinct businesses may collapse into one.", out.Dedup.Threshold)
	}

	if out.Sources.RatePerHost <= 0 {
		res.addErr("sources.rate_per_host must be > 0")
	} else if out.Sources.RatePerHost > 10 {
		res.addWarn("sources.rate_per_host is high (%.1f); directories may block the crawler.", out.Sources.RatePerHost)
	}
	if out.Sources.Burst <= 0 {
		out.Sources.Burst = 1
	}

	if !out.Sources.YellowPages.Enabled && !out.Sources.Yelp.Enabled && !out.Sources.Manta.Enabled &&
		strings.TrimSpace(out.Dataset.Path) == "" {
		res.addErr("no sources enabled: enable a directory connector or configure dataset.path")
	}

	if out.Dataset.MatchLimit <= 0 {
		res.addErr("dataset.match_limit must be > 0")
	}

	if out.Inference.BaseURL == "" {
		res.addWarn("inference.base_url is empty; sentiment and semantic factors will score 0.")
	}
	if out.Inference.TimeoutSeconds <= 0 {
		res.addErr("inference.timeout_seconds must be > 0")
	}
	if out.Inference.IdealProfile == "" {
		res.addErr("inference.ideal_profile must not be empty")
	}

	if out.Geo.Enabled && out.Geo.UserAgent == "" {
		res.addWarn("geo.user_agent is empty; Nominatim rejects anonymous clients.")
	}

	return out, res
}
