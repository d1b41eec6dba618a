package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/async"
	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/extract"
	"github.com/joseph-ayodele/payroll-parser/internal/ingest"
	"github.com/joseph-ayodele/payroll-parser/internal/pipeline"
	repo "github.com/joseph-ayodele/payroll-parser/internal/repository"
)

func main() {
	// Logger
	zlog, _ := zap.NewProduction()
	defer zlog.Sync()
	log := zlog.Sugar()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if len(cfg.Watch.Roots) == 0 {
		log.Fatal("WATCH_ROOTS env var is required")
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The internals log through slog; route everything to JSON on stdout so
	// daemon output stays machine-readable alongside zap's.
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(slogger)

	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	// Healthcheck DB on startup
	if err := repo.HealthCheck(ctx, db, cfg.Database.DialTimeout, slogger); err != nil {
		log.Fatalf("DB health failed: %v", err)
	}
	log.Infow("DB health OK")

	// Pipeline wiring: each watched file becomes a single-document batch.
	source := extract.NewExtractor(extract.Config{
		Pdftotext: cfg.Extractor.Pdftotext,
		MaxPages:  cfg.Extractor.MaxPages,
	}, slogger)
	proc := pipeline.NewProcessor(slogger, pipeline.Config{
		Workers:   cfg.Pipeline.Workers,
		Tolerance: cfg.Pipeline.Tolerance,
	}, source)
	batches := repo.NewBatchRepository(db, slogger)
	files := repo.NewFileRepository(db, slogger)

	handle := func(ctx context.Context, job async.Job) error {
		path := job.Path
		bf, err := ingest.DescribeFile(path)
		if err != nil {
			return err
		}
		fileID, seen, err := files.UpsertFile(ctx, bf)
		if err != nil {
			return fmt.Errorf("registering %s: %w", path, err)
		}
		if seen && !job.Force {
			log.Infow("skipping already-processed content", "path", path, "file_id", fileID.String())
			return nil
		}

		format := constants.MapExtToFormat(bf.FileExt)
		if err := files.StartJob(ctx, fileID, format); err != nil {
			return err
		}

		res, err := proc.ProcessBatch(ctx, []string{path})
		if err != nil {
			_ = files.FinishJob(ctx, fileID, constants.JobStatusFailed, err.Error())
			return fmt.Errorf("processing %s: %w", path, err)
		}
		batchID := uuid.New()
		if err := batches.SaveBatch(ctx, batchID, res); err != nil {
			_ = files.FinishJob(ctx, fileID, constants.JobStatusFailed, err.Error())
			return fmt.Errorf("saving batch for %s: %w", path, err)
		}
		if err := files.FinishJob(ctx, fileID, constants.JobStatusParseOK, ""); err != nil {
			return err
		}
		log.Infow("bill processed",
			"path", path,
			"batch_id", batchID.String(),
			"records", len(res.Records),
			"valid", res.Validation.Valid,
		)
		return nil
	}
	queue := async.NewProcessorQueue(handle, slogger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithProcessTimeout(5*time.Minute),
	)

	watchCh, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       cfg.Watch.Roots,
		InitialScan: true,
		Debounce:    cfg.Watch.Debounce,
	})
	if err != nil {
		log.Fatalf("starting watcher: %v", err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case werr, ok := <-watchErrs:
				if !ok {
					return
				}
				log.Errorw("watcher error", "error", werr)
			case path, ok := <-watchCh:
				if !ok {
					return
				}
				job := async.Job{Path: path, SubmittedAt: time.Now(), TraceID: uuid.NewString()}
				if err := queue.Enqueue(ctx, job); err != nil {
					log.Errorw("enqueue failed", "path", path, "error", err)
				}
			}
		}
	}()

	// gRPC health server, for probes and grpcurl
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Watch.HealthAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	log.Infof("health serving on %s, watching %v", cfg.Watch.HealthAddr, cfg.Watch.Roots)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	fmt.Println("stopped.")
}
