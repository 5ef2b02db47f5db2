package dataset

import (
	"context"
	"database/sql"
	"strings"

	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/normalize"
)

// Filter narrows the company table the same way the live search does:
// case-insensitive substring on keyword and location, optional category
// substring, optional numeric size range.
type Filter struct {
	Keyword   string
	Location  string
	Category  string
	SizeRange *domain.SizeRange
	Limit     int
}

// Query returns raw candidate records matching f. Keyword matches name or
// industry; location matches city, state, or full country name.
func (d *DB) Query(ctx context.Context, f Filter) ([]domain.CandidateRecord, error) {
	kw := "%" + strings.ToLower(strings.TrimSpace(f.Keyword)) + "%"
	loc := "%" + strings.ToLower(strings.TrimSpace(f.Location)) + "%"

	query := `
SELECT name, industry, size_text, founded, city, state, country_code
FROM companies
WHERE (lower(name) LIKE ? OR lower(industry) LIKE ?)
  AND (lower(city) LIKE ? OR lower(state) LIKE ? OR lower(country_name) LIKE ?)`
	args := []any{kw, kw, loc, loc, loc}

	if cat := strings.ToLower(strings.TrimSpace(f.Category)); cat != "" {
		query += `
  AND lower(industry) LIKE ?`
		args = append(args, "%"+cat+"%")
	}

	query += `
ORDER BY id
LIMIT ?;`
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)

	rows, err := d.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateRecord
	for rows.Next() {
		var rec domain.CandidateRecord
		var founded sql.NullInt64
		if err := rows.Scan(
			&rec.Name,
			&rec.Industry,
			&rec.SizeText,
			&founded,
			&rec.City,
			&rec.State,
			&rec.CountryCode,
		); err != nil {
			return nil, err
		}
		if founded.Valid {
			y := int(founded.Int64)
			rec.YearFounded = &y
		}
		rec.Source = "dataset"

		// Size-range narrowing happens here, not in SQL: size is stored as
		// the raw range text and only its midpoint is comparable.
		if f.SizeRange != nil {
			mid := normalize.ParseSize(rec.SizeText)
			if mid == nil || !f.SizeRange.Contains(*mid) {
				continue
			}
		}

		out = append(out, rec)
	}
	return out, rows.Err()
}
