// Package bill turns reconstructed lines of a government payroll bill into
// per-employee records: classification, header schema detection, row
// segmentation, block parsing and field normalization.
package bill

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// Deduction markers are checked first: deduction-side bills routinely mention
// the pay bill they schedule against, the reverse never happens.
var deductionMarkers = []string{"deduction bill", "schedule of deduction"}
var earningMarkers = []string{"pay bill", "establishment bill"}

var (
	monthRe  = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)[\s,-]*(\d{4})`)
	billRe   = regexp.MustCompile(`(?i)bill\s*no\.?\s*[:\-]?\s*([A-Za-z0-9/\-]+)`)
	officeRe = regexp.MustCompile(`(?i)office\s*(?:name)?\s*[:\-]\s*(.+?)(?:\s{3,}|$)`)
)

// Classify determines the document kind and extracts best-effort bill
// metadata from the flattened line list. An undetectable kind is fatal for
// the document; missing metadata is not.
func Classify(lines []entity.Line) (entity.DocumentMeta, error) {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	text := b.String()
	lower := strings.ToLower(text)

	var meta entity.DocumentMeta
	switch {
	case containsAny(lower, deductionMarkers):
		meta.Kind = constants.KindDeduction
	case containsAny(lower, earningMarkers):
		meta.Kind = constants.KindEarning
	default:
		return entity.DocumentMeta{}, common.NewAppError("CLASSIFY", "no earning or deduction marker found", common.ErrUnknownKind)
	}

	if m := monthRe.FindStringSubmatch(text); m != nil {
		meta.MonthLabel = m[1] + " " + m[2]
	}
	if m := billRe.FindStringSubmatch(text); m != nil {
		meta.BillNumber = m[1]
	}
	if m := officeRe.FindStringSubmatch(text); m != nil {
		meta.OfficeName = strings.TrimSpace(m[1])
	}
	return meta, nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
