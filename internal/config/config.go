package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SourceToggle struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		MaxPerSource            int `yaml:"max_per_source"`
		TopK                    int `yaml:"top_k"`
		ConnectorTimeoutSeconds int `yaml:"connector_timeout_seconds"`
		ScoreWorkers            int `yaml:"score_workers"`
	} `yaml:"search"`

	Dedup struct {
		Threshold int `yaml:"threshold"`
	} `yaml:"dedup"`

	Sources struct {
		YellowPages SourceToggle `yaml:"yellowpages"`
		Yelp        SourceToggle `yaml:"yelp"`
		Manta       SourceToggle `yaml:"manta"`
		RatePerHost float64      `yaml:"rate_per_host"`
		Burst       int          `yaml:"burst"`
	} `yaml:"sources"`

	Dataset struct {
		Path       string `yaml:"path"`
		MatchLimit int    `yaml:"match_limit"`
	} `yaml:"dataset"`

	Inference struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		KeyringAccount string `yaml:"keyring_account"`
		IdealProfile   string `yaml:"ideal_profile"`
	} `yaml:"inference"`

	Geo struct {
		Enabled   bool   `yaml:"enabled"`
		CachePath string `yaml:"cache_path"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"geo"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Search.MaxPerSource = 10
	cfg.Search.TopK = 20
	cfg.Search.ConnectorTimeoutSeconds = 5
	cfg.Search.ScoreWorkers = 8
	cfg.Dedup.Threshold = 90
	cfg.Sources.YellowPages.Enabled = true
	cfg.Sources.Yelp.Enabled = true
	cfg.Sources.Manta.Enabled = true
	cfg.Sources.RatePerHost = 2.0
	cfg.Sources.Burst = 1
	cfg.Dataset.Path = "companies.db"
	cfg.Dataset.MatchLimit = 500
	cfg.Inference.BaseURL = "http://127.0.0.1:8095"
	cfg.Inference.TimeoutSeconds = 5
	cfg.Inference.IdealProfile = "owner-operated small business established over five years ago"
	cfg.Geo.Enabled = true
	cfg.Geo.CachePath = "geo_cache.json"
	cfg.Geo.UserAgent = "leadscout/1.0 (+local)"
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
