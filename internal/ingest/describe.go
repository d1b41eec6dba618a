package ingest

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// DescribeFile stats and hashes a discovered bill file so the repository can
// deduplicate re-delivered documents by content.
func DescribeFile(path string) (entity.BillFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entity.BillFile{}, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return entity.BillFile{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return entity.BillFile{}, fmt.Errorf("hash %s: %w", path, err)
	}

	return entity.BillFile{
		ID:           uuid.New(),
		SourcePath:   path,
		ContentHash:  h.Sum(nil),
		Filename:     filepath.Base(path),
		FileExt:      filepath.Ext(path),
		FileSize:     int(info.Size()),
		DiscoveredAt: time.Now().UTC(),
	}, nil
}
