package constants

import "strings"

// DocKind identifies which side of the pay period a bill document covers.
type DocKind string

const (
	KindEarning   DocKind = "EARNING"
	KindDeduction DocKind = "DEDUCTION"
)

// FileTypes holds the allowed source formats for a parse job.
var FileTypes = []string{"PDF", "TOKENS"}

// AllowedExtensions holds the default allowed file extensions for bill ingestion.
// "json" covers pre-extracted token dumps.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"json": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a FileTypes entry, or "".
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "PDF"
	case "json":
		return "TOKENS"
	default:
		return ""
	}
}
