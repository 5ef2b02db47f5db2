package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"leadscout-engine/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:           "engine",
		Short:         "Aggregate, dedupe, score and rank business leads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSearchCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newSecretCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the data dir, bootstraps the user config on first
// run, and validates it. Validation errors are fatal; warnings are logged.
func loadConfig() (config.Config, string, error) {
	dataDir := os.Getenv("LEADSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, "", err
	}

	path, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config bootstrap: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config load (%s): %w", path, err)
	}

	cfg, res := config.NormalizeAndValidate(cfg)
	for _, w := range res.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !res.OK() {
		return config.Config{}, "", fmt.Errorf("config invalid:\n- %s", joinLines(res.Errors))
	}

	return cfg, dataDir, nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
