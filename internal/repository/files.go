package repository

import (
	"context"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// FileRepository tracks discovered bill files and their parse jobs, keyed by
// content hash so a re-delivered document is recognized regardless of path.
type FileRepository interface {
	// UpsertFile records a discovered file. When a file with the same content
	// hash already exists, its ID is returned with seen=true and nothing is
	// written.
	UpsertFile(ctx context.Context, f entity.BillFile) (id uuid.UUID, seen bool, err error)
	StartJob(ctx context.Context, fileID uuid.UUID, format string) error
	FinishJob(ctx context.Context, fileID uuid.UUID, status constants.JobStatus, errMsg string) error
	JobStatus(ctx context.Context, fileID uuid.UUID) (constants.JobStatus, error)
}

type fileRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewFileRepository(db *sql.DB, logger *slog.Logger) FileRepository {
	return &fileRepository{db: db, logger: logger}
}

func (r *fileRepository) UpsertFile(ctx context.Context, f entity.BillFile) (uuid.UUID, bool, error) {
	hash := hex.EncodeToString(f.ContentHash)

	var existing string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM bill_files WHERE content_hash = $1`, hash,
	).Scan(&existing)
	switch {
	case err == nil:
		id, perr := uuid.Parse(existing)
		if perr != nil {
			return uuid.Nil, false, common.NewAppError("FILES", "stored file id is not a uuid", perr)
		}
		return id, true, nil
	case err != sql.ErrNoRows:
		r.logger.Error("file hash lookup failed", "path", f.SourcePath, "error", err)
		return uuid.Nil, false, common.NewAppError("FILES", "hash lookup failed", common.ErrDatabase)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO bill_files (id, source_path, content_hash, filename, file_ext, file_size, discovered_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID.String(), f.SourcePath, hash, f.Filename, f.FileExt, f.FileSize,
		f.DiscoveredAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert bill file", "path", f.SourcePath, "error", err)
		return uuid.Nil, false, err
	}
	return f.ID, false, nil
}

func (r *fileRepository) StartJob(ctx context.Context, fileID uuid.UUID, format string) error {
	if !slices.Contains(constants.FileTypes, format) {
		return common.NewAppError("FILES", "unsupported source format "+format, common.ErrInvalidInput)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parse_jobs (file_id, format, status, error, updated_at)
		 VALUES ($1, $2, $3, '', $4)
		 ON CONFLICT (file_id) DO UPDATE SET status = $3, error = '', updated_at = $4`,
		fileID.String(), format, string(constants.JobStatusRunning),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (r *fileRepository) FinishJob(ctx context.Context, fileID uuid.UUID, status constants.JobStatus, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE parse_jobs SET status = $2, error = $3, updated_at = $4 WHERE file_id = $1`,
		fileID.String(), string(status), errMsg,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (r *fileRepository) JobStatus(ctx context.Context, fileID uuid.UUID) (constants.JobStatus, error) {
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM parse_jobs WHERE file_id = $1`, fileID.String(),
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return constants.JobStatus(status), nil
}
