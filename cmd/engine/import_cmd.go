package main

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/dataset"
	"leadscout-engine/internal/normalize"
)

func newImportCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the company dataset CSV into the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" {
				return fmt.Errorf("--csv is required")
			}

			cfg, dataDir, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Dataset.Path == "" {
				return fmt.Errorf("dataset.path is not configured")
			}

			db, err := dataset.Open(filepath.Join(dataDir, cfg.Dataset.Path))
			if err != nil {
				return fmt.Errorf("open dataset db: %w", err)
			}
			defer db.Close()

			start := time.Now()
			n, err := db.ImportCSV(cmd.Context(), csvPath, normalize.New())
			if err != nil {
				return err
			}
			log.Printf("[dataset] imported %d companies in %s", n, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the company dataset CSV")
	return cmd
}
