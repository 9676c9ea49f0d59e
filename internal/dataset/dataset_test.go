package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/dinerec/internal/domain"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffname,city,cost\n" +
		"AB Pizza,Abohar,₹ 200\n" +
		"\"Tom, Jerry\",,--\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "city", "cost"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []domain.Cell{domain.Str("AB Pizza"), domain.Str("Abohar"), domain.Str("₹ 200")}, tbl.Rows[0])
	assert.Equal(t, domain.Str("Tom, Jerry"), tbl.Rows[1][0])
	assert.False(t, tbl.Rows[1][1].Valid)
	// Sentinels are the cleaner's business.
	assert.Equal(t, domain.Str("--"), tbl.Rows[1][2])
}

func TestReadCSV_BareQuoteInField(t *testing.T) {
	in := "name,city,cuisine,rating,rating_count,cost,link\n" +
		"Tom \"Dhaba\",Agra,North Indian,4.1,20+ ratings,₹300,/d\n" +
		"Rasoi,Agra,Thai,3.9,50+ ratings,₹250,/r\n"

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, domain.Str(`Tom "Dhaba"`), tbl.Rows[0][0])
	assert.Equal(t, domain.Str("Agra"), tbl.Rows[0][1])
	assert.Equal(t, domain.Str("Rasoi"), tbl.Rows[1][0])
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("name,city\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "city"}, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"ragged row", "a,b\n1,2,3\n"},
		{"unterminated quote", "a,b\n\"x,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.ErrorIs(t, err, domain.ErrInputFormat)
		})
	}
}

type listing struct {
	Name   string  `parquet:"name"`
	City   *string `parquet:"city,optional"`
	Rating *string `parquet:"rating,optional"`
	Votes  int64   `parquet:"votes"`
}

func ptr(s string) *string { return &s }

func writeParquet(t *testing.T, rows []listing) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[listing](&buf)
	_, err := w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestReadParquet(t *testing.T) {
	data := writeParquet(t, []listing{
		{Name: "AB Pizza", City: ptr("Abohar"), Rating: ptr("4.1"), Votes: 120},
		{Name: "Singh Hut", City: nil, Rating: ptr(""), Votes: 7},
	})

	tbl, err := ReadParquet(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	require.NoError(t, tbl.Validate())

	name := tbl.ColumnIndex("name")
	city := tbl.ColumnIndex("city")
	rating := tbl.ColumnIndex("rating")
	votes := tbl.ColumnIndex("votes")
	require.GreaterOrEqual(t, name, 0)
	require.GreaterOrEqual(t, city, 0)
	require.GreaterOrEqual(t, rating, 0)
	require.GreaterOrEqual(t, votes, 0)

	assert.Equal(t, domain.Str("AB Pizza"), tbl.Rows[0][name])
	assert.Equal(t, domain.Str("Abohar"), tbl.Rows[0][city])
	assert.Equal(t, domain.Str("4.1"), tbl.Rows[0][rating])
	assert.Equal(t, domain.Str("120"), tbl.Rows[0][votes])

	assert.False(t, tbl.Rows[1][city].Valid, "null is missing")
	assert.False(t, tbl.Rows[1][rating].Valid, "empty string is missing")
	assert.Equal(t, domain.Str("7"), tbl.Rows[1][votes])
}

func TestReadParquet_NotParquet(t *testing.T) {
	data := []byte("name,city\nx,y\n")
	_, err := ReadParquet(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, domain.ErrInputFormat)
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("data/swiggy.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = DetectFormat("swiggy.parquet")
	require.NoError(t, err)
	assert.Equal(t, FormatParquet, f)

	_, err = DetectFormat("swiggy.xlsx")
	require.ErrorIs(t, err, domain.ErrInputFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,city\nA,B\n"), 0o600))
	tbl, err := Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)

	pqPath := filepath.Join(dir, "in.parquet")
	require.NoError(t, os.WriteFile(pqPath, writeParquet(t, []listing{{Name: "A", Votes: 1}}), 0o600))
	tbl, err = Load(pqPath)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)

	_, err = Load(filepath.Join(dir, "absent.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
