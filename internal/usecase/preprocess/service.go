// Package preprocess runs the batch pipeline: raw loader, cleaner, encoder and
// artifact writer. It either writes all three artifacts or none.
package preprocess

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/repository/artifact"
	"github.com/kailas-cloud/dinerec/internal/usecase/clean"
	"github.com/kailas-cloud/dinerec/internal/usecase/encode"
)

// Summary describes a finished run.
type Summary struct {
	Clean    clean.Report
	Cities   int
	Cuisines int
	Width    int
	Paths    artifact.Paths
	Duration time.Duration
}

// Loader reads raw tabular input.
type Loader func(path string) (*domain.RawTable, error)

// Service runs preprocessing.
type Service struct {
	load   Loader
	logger *zap.Logger
}

// New creates a preprocessing service.
func New(load Loader, logger *zap.Logger) *Service {
	return &Service{load: load, logger: logger}
}

// Run processes input and writes the artifacts into outDir.
func (s *Service) Run(ctx context.Context, input, outDir string, names artifact.Names) (Summary, error) {
	start := time.Now()

	raw, err := s.load(input)
	if err != nil {
		return Summary{}, fmt.Errorf("load raw input: %w", err)
	}
	s.logger.Info("Raw table loaded",
		zap.String("input", input),
		zap.Int("rows", len(raw.Rows)),
		zap.Int("columns", len(raw.Columns)),
	)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	table, rep, err := clean.Clean(raw)
	if err != nil {
		return Summary{}, fmt.Errorf("clean: %w", err)
	}
	s.logger.Info("Table cleaned",
		zap.Int("rows_in", rep.RowsIn),
		zap.Int("rows_out", rep.RowsOut),
		zap.Int("duplicates", rep.Duplicates),
		zap.Int("sentinels", rep.Sentinels),
		zap.Any("imputed", rep.Imputed),
		zap.Any("medians", rep.Medians),
	)
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	enc, matrix := encode.Fit(table)
	sum := Summary{
		Clean:    rep,
		Cities:   len(enc.Categories(domain.ColCity)),
		Cuisines: len(enc.Categories(domain.ColCuisine)),
		Width:    enc.Width(),
	}
	s.logger.Info("Encoder fitted",
		zap.Int("cities", sum.Cities),
		zap.Int("cuisines", sum.Cuisines),
		zap.Int("width", sum.Width),
	)

	paths, err := artifact.Save(outDir, names, table, enc, matrix)
	if err != nil {
		return Summary{}, fmt.Errorf("save artifacts: %w", err)
	}
	sum.Paths = paths
	sum.Duration = time.Since(start)

	s.logger.Info("Preprocessing finished",
		zap.String("cleaned", paths.Cleaned),
		zap.String("matrix", paths.Matrix),
		zap.String("encoder", paths.Encoder),
		zap.Duration("duration", sum.Duration),
	)
	return sum, nil
}
