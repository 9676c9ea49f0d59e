// Command dinerec-preprocess turns a raw restaurant listing (CSV or Parquet)
// into the cleaned table, feature matrix and encoder the API server loads.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/dataset"
	logpkg "github.com/kailas-cloud/dinerec/internal/logger"
	"github.com/kailas-cloud/dinerec/internal/repository/artifact"
	"github.com/kailas-cloud/dinerec/internal/usecase/preprocess"
	"github.com/kailas-cloud/dinerec/internal/version"
)

func main() {
	defaults := artifact.DefaultNames()

	input := flag.String("input", "swiggy.csv", "raw input file (.csv or .parquet)")
	outDir := flag.String("out-dir", ".", "directory for the generated artifacts")
	cleanedName := flag.String("cleaned", defaults.Cleaned, "cleaned table file name")
	matrixName := flag.String("matrix", defaults.Matrix, "feature matrix file name")
	encoderName := flag.String("encoder", defaults.Encoder, "encoder state file name")
	env := flag.String("env", "local", "logging environment (local, dev, prod)")
	level := flag.String("log-level", "", "log level override")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dinerec-preprocess %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		return
	}

	logger, err := logpkg.NewLogger(*env, *level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := preprocess.New(dataset.Load, logpkg.Component(logger, "preprocess"))
	sum, err := svc.Run(ctx, *input, *outDir, artifact.Names{
		Cleaned: *cleanedName,
		Matrix:  *matrixName,
		Encoder: *encoderName,
	})
	if err != nil {
		logger.Error("Preprocessing failed", zap.String("input", *input), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Data preprocessing completed. %d rows written to %s, %s and %s\n",
		sum.Clean.RowsOut, sum.Paths.Cleaned, sum.Paths.Matrix, sum.Paths.Encoder)
}
