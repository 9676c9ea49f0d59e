package dinerec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const listing = `name,city,cuisine,rating,rating_count,cost,link,lic_no
AB Pizza,Abohar,"Pizzas,Fast Food",4.1,120+ ratings,₹ 200,https://x/a,license
Janta Sweet House,Abohar,"Sweets,Bakery",4.4,50+ ratings,₹ 200,https://x/b,1211
Singh Hut,Abohar,"Fast Food,Indian",3.7,20+ ratings,₹ 250,https://x/c,
Singh Hut,Abohar,"Fast Food,Indian",3.7,20+ ratings,₹ 250,https://x/c,
Grill Masters,Agra,Fast Food,--,Too Few Ratings,₹ 300,https://x/d,
`

func preprocessFixture(t *testing.T, opts ...Option) string {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "listing.csv")
	if err := os.WriteFile(input, []byte(listing), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "artifacts")

	sum, err := Preprocess(context.Background(), input, out, opts...)
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	if sum.RowsIn != 5 || sum.Rows != 4 || sum.Duplicates != 1 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.Features != 3+2+4 {
		t.Errorf("features = %d, want 9", sum.Features)
	}
	return out
}

func TestPreprocessAndRecommend(t *testing.T) {
	dir := preprocessFixture(t)

	c, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	recs, err := c.Recommend(context.Background(), Query{
		City:      "Abohar",
		Cuisines:  []string{"Fast Food"},
		MinRating: 4.0,
		MaxCost:   220,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recs))
	}
	for _, r := range recs {
		if !strings.Contains(r.Cuisine, "Fast Food") || r.City != "Abohar" {
			t.Errorf("unexpected result %+v", r)
		}
	}
	if recs[0].Score < recs[1].Score {
		t.Errorf("results not ranked: %v >= %v", recs[0].Score, recs[1].Score)
	}

	none, err := c.Recommend(context.Background(), Query{City: "Agra", Cuisines: []string{"Sushi"}})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestRecommend_InvalidQuery(t *testing.T) {
	c, err := Open(context.Background(), preprocessFixture(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, q := range []Query{
		{Cuisines: []string{"Pizzas"}},
		{City: "Abohar"},
		{City: "Abohar", Cuisines: []string{"Pizzas"}, MinRating: 5.5},
		{City: "Abohar", Cuisines: []string{"Pizzas"}, MaxCost: -10},
		{City: "Abohar", Cuisines: []string{"Pizzas"}, TopN: -1},
	} {
		if _, err := c.Recommend(context.Background(), q); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("query %+v: expected ErrInvalidQuery, got %v", q, err)
		}
	}
}

func TestOptionsAndHealth(t *testing.T) {
	c, err := Open(context.Background(), preprocessFixture(t))
	if err != nil {
		t.Fatal(err)
	}

	o, err := c.Options(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(o.Cities, ",") != "Abohar,Agra" {
		t.Errorf("cities = %v", o.Cities)
	}
	if o.CostMin != 200 || o.CostMax != 300 || o.CostMedian != 225 {
		t.Errorf("cost range = %+v", o)
	}

	h := c.Health(context.Background())
	if h.Status != "ok" || h.Checks["artifacts"] != "ok" {
		t.Errorf("health = %+v", h)
	}
	if h.Fingerprint == "" || h.Fingerprint != c.Fingerprint() {
		t.Errorf("fingerprint mismatch: %q vs %q", h.Fingerprint, c.Fingerprint())
	}
}

func TestOpen_MissingArtifacts(t *testing.T) {
	_, err := Open(context.Background(), t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestPreprocess_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(input, []byte("name,city\nA,B\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Preprocess(context.Background(), input, filepath.Join(dir, "out"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !errors.Is(err, ErrInputFormat) {
		t.Fatalf("missing column must also be an input format error, got %v", err)
	}
}

func TestWithFileNames(t *testing.T) {
	names := WithFileNames("clean.csv", "features.csv", "enc.json")
	dir := preprocessFixture(t, names)

	for _, f := range []string{"clean.csv", "features.csv", "enc.json"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("expected %s: %v", f, err)
		}
	}
	if _, err := Open(context.Background(), dir); err == nil {
		t.Error("default names should not be found")
	}
	if _, err := Open(context.Background(), dir, names); err != nil {
		t.Errorf("Open with custom names: %v", err)
	}
}

func TestWithTopN(t *testing.T) {
	c, err := Open(context.Background(), preprocessFixture(t), WithTopN(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	q := Query{City: "Abohar", Cuisines: []string{"Fast Food", "Sweets"}, MaxCost: 300}

	recs, err := c.Recommend(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("default top_n: got %d results, want 1", len(recs))
	}

	q.TopN = 50
	if recs, _ = c.Recommend(context.Background(), q); len(recs) != 2 {
		t.Errorf("max top_n: got %d results, want 2", len(recs))
	}
}

func TestObserver_MetricsAndLogs(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	dir := preprocessFixture(t)

	c, err := Open(context.Background(), dir, WithPrometheus(reg), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	// A second client on the same registry reuses the collectors.
	if _, err := Open(context.Background(), dir, WithPrometheus(reg)); err != nil {
		t.Fatalf("second Open: %v", err)
	}

	_, _ = c.Recommend(context.Background(), Query{City: "Abohar", Cuisines: []string{"Pizzas"}})
	_, _ = c.Recommend(context.Background(), Query{City: ""})

	m, err := newSDKMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("recommend", "ok")); got != 1 {
		t.Errorf("recommend ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("recommend", "error")); got != 1 {
		t.Errorf("recommend error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("open", "ok")); got != 2 {
		t.Errorf("open ok = %v, want 2", got)
	}

	logs := buf.String()
	if !strings.Contains(logs, "operation completed") || !strings.Contains(logs, "operation failed") {
		t.Errorf("expected both log lines, got:\n%s", logs)
	}
}

func TestObserver_Nil(t *testing.T) {
	var o *observer
	o.observe("noop", testStart(), errors.New("ignored"))
}
