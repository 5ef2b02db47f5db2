package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/cache"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/dataset"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/export"
	"leadscout-engine/internal/geo"
	"leadscout-engine/internal/ml"
	"leadscout-engine/internal/normalize"
	"leadscout-engine/internal/pipeline"
	"leadscout-engine/internal/score"
	"leadscout-engine/internal/secrets"
	"leadscout-engine/internal/source"
	"leadscout-engine/internal/source/manta"
	"leadscout-engine/internal/source/yellowpages"
	"leadscout-engine/internal/source/yelp"
)

func newSearchCmd() *cobra.Command {
	var (
		keyword  string
		location string
		category string
		sizePref string
		topK     int
		budget   time.Duration
		csvOut   string
		jsonOut  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one aggregation pass and print the top leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(keyword) == "" || strings.TrimSpace(location) == "" {
				return fmt.Errorf("both --keyword and --location are required")
			}

			preferred, err := parseSizePref(sizePref)
			if err != nil {
				return err
			}

			cfg, dataDir, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			if budget > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, budget)
				defer cancel()
			}

			eng, closeFn, err := buildEngine(ctx, cfg, dataDir)
			if err != nil {
				return err
			}
			defer closeFn()

			if topK <= 0 {
				topK = cfg.Search.TopK
			}
			res, err := eng.Run(ctx, pipeline.Request{
				Keyword:      keyword,
				Location:     location,
				Category:     category,
				Preferred:    preferred,
				MaxPerSource: cfg.Search.MaxPerSource,
				TopK:         topK,
				DatasetLimit: cfg.Dataset.MatchLimit,
			})
			if err != nil {
				return err
			}

			printLeads(res.Leads)
			for _, d := range res.Degraded {
				log.Printf("[run] degraded: %s", d)
			}
			for loc, c := range res.Coords {
				log.Printf("[geo] %s -> %.4f,%.4f", loc, c[0], c[1])
			}

			if csvOut != "" {
				if err := writeFile(csvOut, res.Leads, export.WriteCSV); err != nil {
					return err
				}
				log.Printf("[export] wrote %s", csvOut)
			}
			if jsonOut != "" {
				if err := writeFile(jsonOut, res.Leads, export.WriteJSON); err != nil {
					return err
				}
				log.Printf("[export] wrote %s", jsonOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "search keyword, e.g. bakery")
	cmd.Flags().StringVarP(&location, "location", "l", "", "location, e.g. \"Austin, TX\"")
	cmd.Flags().StringVar(&category, "category", "", "optional industry/category narrowing")
	cmd.Flags().StringVar(&sizePref, "size", "any", "preferred company size: any|small|medium|large|LOW-HIGH")
	cmd.Flags().IntVar(&topK, "top", 0, "number of leads to keep (default from config)")
	cmd.Flags().DurationVar(&budget, "budget", 0, "overall run budget, e.g. 30s (0 = none)")
	cmd.Flags().StringVar(&csvOut, "csv", "", "write leads to a CSV file")
	cmd.Flags().StringVar(&jsonOut, "json", "", "write leads to a JSON file")

	return cmd
}

// buildEngine constructs the run's collaborators from config: shared HTTP
// client, enabled connectors, dataset, models and geocoder.
func buildEngine(ctx context.Context, cfg config.Config, dataDir string) (*pipeline.Engine, func(), error) {
	client := source.NewClient(
		time.Duration(cfg.Search.ConnectorTimeoutSeconds)*time.Second,
		cfg.Sources.RatePerHost,
		cfg.Sources.Burst,
	)

	var connectors []source.Connector
	if cfg.Sources.YellowPages.Enabled {
		connectors = append(connectors, yellowpages.New(client))
	}
	if cfg.Sources.Yelp.Enabled {
		connectors = append(connectors, yelp.New(client))
	}
	if cfg.Sources.Manta.Enabled {
		connectors = append(connectors, manta.New(client))
	}

	closeFn := func() {}
	var ds pipeline.DatasetQuerier
	if cfg.Dataset.Path != "" {
		db, err := dataset.Open(filepath.Join(dataDir, cfg.Dataset.Path))
		if err != nil {
			log.Printf("[dataset] open failed, continuing without it: %v", err)
		} else {
			ds = db
			closeFn = func() { _ = db.Close() }
		}
	}

	token, err := secrets.GetInferenceToken(cfg.Inference.KeyringAccount)
	if err != nil {
		log.Printf("[secrets] inference token lookup failed: %v", err)
	}
	mlc := ml.NewClient(cfg.Inference.BaseURL, token, time.Duration(cfg.Inference.TimeoutSeconds)*time.Second)

	// The reference vector is embedded once here and shared read-only by
	// every scoring goroutine.
	refVec, err := score.ReferenceVector(ctx, mlc, cfg.Inference.IdealProfile)
	if err != nil {
		log.Printf("[score] semantic factor disabled: %v", err)
	}
	scorer := score.New(mlc, mlc, refVec)

	var geocoder *geo.Geocoder
	if cfg.Geo.Enabled {
		c := cache.Load(filepath.Join(dataDir, cfg.Geo.CachePath))
		geocoder = geo.New(c, cfg.Geo.UserAgent)
	}

	return &pipeline.Engine{
		Connectors:       connectors,
		Dataset:          ds,
		Normalizer:       normalize.New(),
		Scorer:           scorer,
		Geocoder:         geocoder,
		DedupThreshold:   cfg.Dedup.Threshold,
		ConnectorTimeout: time.Duration(cfg.Search.ConnectorTimeoutSeconds) * time.Second,
		ScoreWorkers:     cfg.Search.ScoreWorkers,
	}, closeFn, nil
}

func parseSizePref(s string) (*domain.SizeRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return nil, nil
	case "small":
		return &domain.SizeRange{Low: 1, High: 50}, nil
	case "medium":
		return &domain.SizeRange{Low: 51, High: 500}, nil
	case "large":
		return &domain.SizeRange{Low: 501, High: math.MaxInt}, nil
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid --size %q (want any|small|medium|large|LOW-HIGH)", s)
	}
	low, errLow := strconv.Atoi(strings.TrimSpace(parts[0]))
	high, errHigh := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errLow != nil || errHigh != nil || low < 0 || high < low {
		return nil, fmt.Errorf("invalid --size %q", s)
	}
	return &domain.SizeRange{Low: low, High: high}, nil
}

func printLeads(leads []domain.Lead) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tNAME\tINDUSTRY\tLOCATION\tSIZE\tFOUNDED\tRATING\tSOURCE")
	for _, l := range leads {
		fmt.Fprintf(w, "%.2f\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Score, l.Name, l.Industry, l.Location,
			optInt(l.Size), optInt(l.YearFounded), optFloat(l.Rating), l.Source)
	}
	_ = w.Flush()
}

func optInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func optFloat(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}

func writeFile(path string, leads []domain.Lead, fn func(io.Writer, []domain.Lead) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return fn(f, leads)
}
