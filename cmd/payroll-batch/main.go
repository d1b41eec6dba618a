package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/export"
	"github.com/joseph-ayodele/payroll-parser/internal/extract"
	"github.com/joseph-ayodele/payroll-parser/internal/ingest"
	"github.com/joseph-ayodele/payroll-parser/internal/pipeline"
	repo "github.com/joseph-ayodele/payroll-parser/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir       = flag.String("dir", "", "directory containing bill documents")
		fromFiles = flag.String("from-files", "", "comma-separated bill document paths (alternative to --dir)")
		out       = flag.String("out", "", "output XLSX path (defaults to <dir>/../payroll.xlsx)")
		jsonOut   = flag.String("json", "", "optional JSON report path")
		dbDSN     = flag.String("db", "", "database DSN (overrides DB_URL)")
		inmem     = flag.Bool("inmem", false, "use in-memory SQLite database")
		progress  = flag.Bool("progress", false, "print phase progress to stderr")
	)
	flag.Parse()

	if *dir == "" && *fromFiles == "" {
		printError("Error: one of --dir or --from-files is required\n")
		os.Exit(1)
	}
	if *out == "" {
		if *dir != "" {
			*out = filepath.Join(filepath.Dir(*dir), "payroll.xlsx")
		} else {
			*out = "payroll.xlsx"
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()
	if *dbDSN != "" {
		cfg.Database.DSN = *dbDSN
	}
	if *inmem {
		cfg.Database.DSN = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		printError("Error: %v (pass --inmem for a throwaway database)\n", err)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	var paths []string
	if *fromFiles != "" {
		for _, p := range strings.Split(*fromFiles, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	} else {
		var stats ingest.DirStats
		var err error
		paths, stats, err = ingest.DiscoverDirectory(*dir)
		if err != nil {
			logger.Error("directory discovery failed", "dir", *dir, "error", err)
			os.Exit(1)
		}
		logger.Info("discovered bill files", "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	}
	if len(paths) == 0 {
		printError("Error: no bill documents to process\n")
		os.Exit(1)
	}

	source := extract.NewExtractor(extract.Config{
		Pdftotext: cfg.Extractor.Pdftotext,
		MaxPages:  cfg.Extractor.MaxPages,
	}, logger)
	proc := pipeline.NewProcessor(logger, pipeline.Config{
		Workers:   cfg.Pipeline.Workers,
		Tolerance: cfg.Pipeline.Tolerance,
	}, source)
	if *progress {
		proc.Progress = func(phase, detail string) {
			printError("[%s] %s\n", phase, detail)
		}
	}

	result, err := proc.ProcessBatch(ctx, paths)
	if err != nil {
		logger.Error("batch processing failed", "error", err)
		os.Exit(1)
	}

	batchID := uuid.New()
	batches := repo.NewBatchRepository(db, logger)
	if err := batches.SaveBatch(ctx, batchID, result); err != nil {
		logger.Error("failed to persist batch", "batch_id", batchID, "error", err)
		os.Exit(1)
	}

	svc := export.NewService(logger)
	xlsx, err := svc.RegisterXLSX(result)
	if err != nil {
		logger.Error("xlsx export failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
		logger.Error("failed to write xlsx", "path", *out, "error", err)
		os.Exit(1)
	}

	if *jsonOut != "" {
		data, err := svc.ReportJSON(result)
		if err != nil {
			logger.Warn("json report validation failed", "error", err)
		}
		if err := os.WriteFile(*jsonOut, data, 0o644); err != nil {
			logger.Error("failed to write json report", "path", *jsonOut, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch done",
		"batch_id", batchID,
		"records", len(result.Records),
		"valid", result.Validation.Valid,
		"errors", len(result.Validation.Errors),
		"warnings", len(result.Validation.Warnings),
		"out", *out,
	)
}
