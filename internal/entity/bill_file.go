package entity

import (
	"time"

	"github.com/google/uuid"
)

// BillFile represents a discovered source bill file for data transfer between
// layers.
type BillFile struct {
	ID           uuid.UUID `json:"id"`
	SourcePath   string    `json:"source_path"`
	ContentHash  []byte    `json:"content_hash"`
	Filename     string    `json:"filename"`
	FileExt      string    `json:"file_ext"`
	FileSize     int       `json:"file_size"`
	DiscoveredAt time.Time `json:"discovered_at"`
}
