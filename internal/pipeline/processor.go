// Package pipeline coordinates the document-to-record stages: token
// extraction, line reconstruction, classification, schema detection, row
// segmentation, block parsing and normalization per document, then the
// cross-document merge and validation barrier for the whole batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/bill"
	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
	"github.com/joseph-ayodele/payroll-parser/internal/extract"
	"github.com/joseph-ayodele/payroll-parser/internal/layout"
	"github.com/joseph-ayodele/payroll-parser/internal/reconcile"
)

// Config holds pipeline behavior knobs.
type Config struct {
	Workers   int     // per-document parse concurrency, default 4
	Tolerance float64 // absolute arithmetic tolerance, default reconcile.DefaultTolerance
}

// Processor runs the full batch pipeline. Stages 1-6 are pure per-document
// transformations and run concurrently across documents; merge and validation
// wait for every document and own the merged set exclusively.
type Processor struct {
	Logger   *slog.Logger
	Cfg      Config
	Source   extract.TokenSource
	Progress ProgressFunc

	progressMu sync.Mutex
}

func NewProcessor(logger *slog.Logger, cfg Config, source extract.TokenSource) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = reconcile.DefaultTolerance
	}
	return &Processor{Logger: logger, Cfg: cfg, Source: source}
}

// ProcessBatch runs every document through the per-document stages, then
// merges and validates. A failure in one document is isolated to that
// document and reported in its DocumentResult; the batch fails only when no
// document could be consumed at all. Cancellation is honored at per-document
// granularity.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) (entity.BatchResult, error) {
	if len(paths) == 0 {
		return entity.BatchResult{}, common.ErrEmptyBatch
	}

	docResults := make([]entity.DocumentResult, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.Cfg.Workers)
	var dispatchErr error
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			docResults[i] = p.processDocument(ctx, path)
		}(i, path)
	}
	// Drain in-flight workers before returning; they write into docResults.
	wg.Wait()
	if dispatchErr != nil {
		return entity.BatchResult{}, dispatchErr
	}

	// Barrier: everything below owns the merged record set exclusively.
	var earningSets, deductionSets [][]entity.NormalizedRecord
	result := entity.BatchResult{Documents: docResults}
	consumed := 0
	for _, dr := range docResults {
		if dr.Err != "" {
			continue
		}
		consumed++
		switch dr.Meta.Kind {
		case constants.KindEarning:
			earningSets = append(earningSets, dr.Records)
		case constants.KindDeduction:
			deductionSets = append(deductionSets, dr.Records)
		}
		// Batch metadata: first detected value wins, never fabricated.
		if result.MonthLabel == "" {
			result.MonthLabel = dr.Meta.MonthLabel
		}
		if result.BillNumber == "" {
			result.BillNumber = dr.Meta.BillNumber
		}
		if result.OfficeName == "" {
			result.OfficeName = dr.Meta.OfficeName
		}
	}
	if consumed == 0 {
		return result, common.ErrEmptyBatch
	}

	p.report(PhaseMerging, fmt.Sprintf("%d earning, %d deduction documents", len(earningSets), len(deductionSets)))
	earnings := reconcile.CombineKind(earningSets...)
	deductions := reconcile.CombineKind(deductionSets...)
	result.Records = reconcile.Merge(earnings, deductions)

	p.report(PhaseValidation, fmt.Sprintf("%d merged records", len(result.Records)))
	result.Validation = reconcile.Validate(result.Records, p.Cfg.Tolerance)

	p.Logger.Info("batch complete",
		"documents", len(paths),
		"consumed", consumed,
		"records", len(result.Records),
		"errors", len(result.Validation.Errors),
		"warnings", len(result.Validation.Warnings),
	)
	return result, nil
}

// processDocument runs stages 1-6 for one document. All failures land in the
// DocumentResult; nothing here aborts the batch.
func (p *Processor) processDocument(ctx context.Context, path string) entity.DocumentResult {
	dr := entity.DocumentResult{Path: path}

	p.report(PhaseExtraction, path)
	doc, err := p.Source.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("document extraction failed", "path", path, "error", err)
		dr.Err = err.Error()
		return dr
	}

	pages, flat := layout.Reconstruct(doc)

	p.report(PhaseClassification, path)
	meta, err := bill.Classify(flat)
	if err != nil {
		p.Logger.Error("document classification failed", "path", path, "error", err)
		dr.Err = err.Error()
		return dr
	}
	dr.Meta = meta

	var pageOne []entity.Line
	if len(pages) > 0 {
		pageOne = pages[0]
	}
	p.report(PhaseSchema, path)
	schema := bill.DetectSchema(meta.Kind, pageOne)
	if !schema.Valid {
		p.Logger.Warn("degenerate header zone, values will be unlabeled", "path", path)
	}

	p.report(PhaseSegmentation, path)
	seg := bill.Segment(pages, bill.HeaderZoneEnd(pageOne))

	p.report(PhaseParsing, fmt.Sprintf("%s: %d blocks", path, len(seg.Blocks)))
	for _, block := range seg.Blocks {
		emp, err := bill.ParseBlock(meta.Kind, block)
		if err != nil {
			p.Logger.Warn("block dropped", "path", path, "error", err)
			continue
		}
		dr.Records = append(dr.Records, bill.Normalize(schema, emp))
	}
	dr.Count = len(dr.Records)

	p.Logger.Info("document parsed",
		"path", path,
		"kind", string(meta.Kind),
		"columns", len(schema.Columns),
		"records", dr.Count,
	)
	return dr
}
