// Package export writes scored leads in the two boundary formats: a CSV
// table with a fixed column order and an equivalent JSON array of records.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"leadscout-engine/internal/domain"
)

// Columns is the fixed export order.
var Columns = []string{"name", "industry", "location", "phone", "year_founded", "size", "rating", "score"}

func WriteCSV(w io.Writer, leads []domain.Lead) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, l := range leads {
		row := []string{
			l.Name,
			l.Industry,
			l.Location,
			strOrEmpty(l.Phone),
			intOrEmpty(l.YearFounded),
			intOrEmpty(l.Size),
			floatOrEmpty(l.Rating),
			strconv.FormatFloat(l.Score, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON emits the leads as an array of records. Optional fields render
// as null, matching the canonical schema.
func WriteJSON(w io.Writer, leads []domain.Lead) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if leads == nil {
		leads = []domain.Lead{}
	}
	return enc.Encode(leads)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 1, 64)
}
