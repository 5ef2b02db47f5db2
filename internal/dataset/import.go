package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// CountryNamer maps a 2-letter country code to its full name; resolved at
// import time so location filters can match "United States", not "US".
type CountryNamer interface {
	CountryName(code string) string
}

// expected CSV columns (extra columns are ignored)
var requiredCols = []string{"name", "industry", "size", "founded", "city", "state", "country_code"}

// ImportCSV loads the company CSV at path into the companies table,
// replacing any previous import. Rows without a name are skipped.
func (d *DB) ImportCSV(ctx context.Context, path string, countries CountryNamer) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dataset csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read csv header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range requiredCols {
		if _, ok := col[want]; !ok {
			return 0, fmt.Errorf("dataset csv missing column %q", want)
		}
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM companies;`); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO companies(name, industry, size_text, founded, city, state, country_code, country_name)
VALUES(?,?,?,?,?,?,?,?);`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	field := func(row []string, name string) string {
		i := col[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	added := 0
	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// malformed row; keep importing the rest
			skipped++
			continue
		}

		name := field(row, "name")
		if name == "" {
			skipped++
			continue
		}

		var founded any
		if y, err := strconv.Atoi(field(row, "founded")); err == nil && y > 0 {
			founded = y
		}

		code := field(row, "country_code")
		if _, err := stmt.ExecContext(ctx,
			name,
			field(row, "industry"),
			field(row, "size"),
			founded,
			field(row, "city"),
			field(row, "state"),
			code,
			countries.CountryName(code),
		); err != nil {
			return 0, fmt.Errorf("insert company %q: %w", name, err)
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	if skipped > 0 {
		log.Printf("[dataset] import skipped %d unusable rows", skipped)
	}
	return added, nil
}
