// Package extract is the boundary to the external text-extraction
// collaborator. The core never touches raw document bytes: this package
// yields ordered pages of positioned tokens, either by shelling out to
// poppler for PDFs or by loading a pre-extracted token dump.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// TokenSource yields the positioned tokens for one source document.
type TokenSource interface {
	Extract(ctx context.Context, path string) (entity.Document, error)
}

// Config holds token-extraction configuration.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// Extractor picks a strategy by file extension.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract dispatches on the file extension: PDF goes through poppler, a JSON
// token dump is loaded and schema-validated.
func (e *Extractor) Extract(ctx context.Context, path string) (entity.Document, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("starting token extraction", "path", path, "ext", ext)
	switch constants.MapExtToFormat(ext) {
	case "PDF":
		return e.extractPDF(ctx, path)
	case "TOKENS":
		return LoadTokenDump(path)
	default:
		e.logger.Error("unsupported extension", "extension", ext)
		return entity.Document{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}
