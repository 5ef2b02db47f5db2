package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscout-engine/internal/domain"
)

type fakeCountries struct{}

func (fakeCountries) CountryName(code string) string {
	switch code {
	case "US":
		return "United States"
	case "DE":
		return "Germany"
	}
	return ""
}

const fixtureCSV = `name,industry,size,founded,city,state,country_code
Joe's Bakery,Bakery,1-50,2010,Austin,Texas,US
Crumb & Crust,Bakery,51-500,1999,Portland,Oregon,US
Mega Dough Inc,Industrial Bakery,10000+,1985,Berlin,,DE
Pipe Dreams,Plumbing,11-50,2015,Austin,Texas,US
,Bakery,1-50,2000,Austin,Texas,US
Nameless Bakes,Bakery,not-a-size,,Austin,Texas,US
`

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "companies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	csvPath := filepath.Join(t.TempDir(), "companies.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(fixtureCSV), 0o644))

	n, err := db.ImportCSV(context.Background(), csvPath, fakeCountries{})
	require.NoError(t, err)
	require.Equal(t, 5, n, "row without a name is skipped")

	return db
}

func TestQueryKeywordMatchesNameOrIndustry(t *testing.T) {
	db := openTestDB(t)

	recs, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "austin"})
	require.NoError(t, err)

	names := recordNames(recs)
	assert.Contains(t, names, "Joe's Bakery")
	assert.Contains(t, names, "Nameless Bakes")
	assert.NotContains(t, names, "Pipe Dreams")
}

func TestQueryLocationMatchesCityStateOrCountry(t *testing.T) {
	db := openTestDB(t)

	byState, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "oregon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Crumb & Crust"}, recordNames(byState))

	byCountry, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "united states"})
	require.NoError(t, err)
	assert.Contains(t, recordNames(byCountry), "Joe's Bakery")
	assert.NotContains(t, recordNames(byCountry), "Mega Dough Inc")
}

func TestQueryCategoryNarrows(t *testing.T) {
	db := openTestDB(t)

	recs, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "berlin", Category: "industrial"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mega Dough Inc"}, recordNames(recs))
}

func TestQuerySizeRangeFiltersOnMidpoint(t *testing.T) {
	db := openTestDB(t)

	small := &domain.SizeRange{Low: 1, High: 50}
	recs, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "austin", SizeRange: small})
	require.NoError(t, err)

	// "1-50" → midpoint 25 passes; unparsable size is unknown and filtered out
	assert.Equal(t, []string{"Joe's Bakery"}, recordNames(recs))
}

func TestQueryLimit(t *testing.T) {
	db := openTestDB(t)

	recs, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "us", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestQueryRecordFields(t *testing.T) {
	db := openTestDB(t)

	recs, err := db.Query(context.Background(), Filter{Keyword: "joe's bakery", Location: "austin"})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Joe's Bakery", rec.Name)
	assert.Equal(t, "Bakery", rec.Industry)
	assert.Equal(t, "1-50", rec.SizeText)
	assert.Equal(t, "Austin", rec.City)
	assert.Equal(t, "Texas", rec.State)
	assert.Equal(t, "US", rec.CountryCode)
	assert.Equal(t, "dataset", rec.Source)
	require.NotNil(t, rec.YearFounded)
	assert.Equal(t, 2010, *rec.YearFounded)
}

func TestReimportReplaces(t *testing.T) {
	db := openTestDB(t)

	csvPath := filepath.Join(t.TempDir(), "companies2.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,industry,size,founded,city,state,country_code\nSolo Shop,Retail,1,2020,Austin,Texas,US\n"), 0o644))

	n, err := db.ImportCSV(context.Background(), csvPath, fakeCountries{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recs, err := db.Query(context.Background(), Filter{Keyword: "bakery", Location: "austin"})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestImportMissingColumnFails(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "companies.db"))
	require.NoError(t, err)
	defer db.Close()

	csvPath := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,industry\nX,Y\n"), 0o644))

	_, err = db.ImportCSV(context.Background(), csvPath, fakeCountries{})
	assert.Error(t, err)
}

func recordNames(recs []domain.CandidateRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}
