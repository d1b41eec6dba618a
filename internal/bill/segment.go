package bill

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// anchorRe matches a data line: serial number then the 8-digit employee
// identifier.
var anchorRe = regexp.MustCompile(`^\s*(\d{1,4})\s+(\d{8})\b`)

// payScaleRe matches pay-band annotations like "9300-34800 GP 4200". Their
// digits must never be mistaken for salary figures.
var payScaleRe = regexp.MustCompile(`\d{4,6}\s*-\s*\d{4,6}(?:\s*(?:GP|G\.P\.?)\s*\d{3,5})?`)

var honorifics = []string{"shri", "smt", "kum", "dr", "mr", "mrs", "ms", "miss"}

// noiseMarkers identify institutional boilerplate, certification text and
// office metadata that must never join an employee block.
var noiseMarkers = []string{
	"certified", "signature", "prepared by", "checked by", "countersigned",
	"office", "phone", "mobile", "mob.", "bill no", "treasury", "voucher",
	"pay bill", "deduction bill", "schedule", "page ", "for the month",
}

// startsWithHonorific reports whether the line's first token is a title
// abbreviation, i.e. the start of an employee name.
func startsWithHonorific(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSuffix(fields[0], "."))
	for _, h := range honorifics {
		if first == h {
			return true
		}
	}
	return false
}

func isTotalLine(text string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && strings.EqualFold(fields[0], "total")
}

func isNoiseLine(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || isTotalLine(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, m := range noiseMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// stripPayScale removes pay-band digits from a line's text, keeping the rest
// of the line intact as name/designation material.
func stripPayScale(text string) string {
	return strings.Join(strings.Fields(payScaleRe.ReplaceAllString(text, " ")), " ")
}

// SegmentResult is the segmenter's output for one document.
type SegmentResult struct {
	Blocks []entity.EmployeeBlock
	// Total is the running end-of-document checksum row, when present.
	Total *entity.Line
}

// Segment locates every anchor line and assembles the bounded block around
// each one. headerEnd is the index of the first page-one line past the header
// zone; every other page starts at zero.
func Segment(pages [][]entity.Line, headerEnd int) SegmentResult {
	var res SegmentResult
	for pageIdx, lines := range pages {
		start := 0
		if pageIdx == 0 {
			start = headerEnd
		}
		res.segmentPage(lines, start)
	}
	return res
}

func (r *SegmentResult) segmentPage(lines []entity.Line, start int) {
	if start > len(lines) {
		start = len(lines)
	}
	region := lines[start:]

	var anchors []int
	for i, l := range region {
		if anchorRe.MatchString(l.Text) {
			anchors = append(anchors, i)
		} else if isTotalLine(l.Text) {
			total := l
			r.Total = &total
		}
	}

	for ai, idx := range anchors {
		anchor := region[idx]
		m := anchorRe.FindStringSubmatch(anchor.Text)
		serial, _ := strconv.Atoi(m[1])

		block := entity.EmployeeBlock{
			Serial: serial,
			ID:     m[2],
			Anchor: anchor,
			Page:   anchor.Page,
		}

		// Leading lines: scan backward from the anchor toward the previous
		// anchor (or the region start), collecting non-noise lines. An
		// honorific line marks the start of the name and stops the scan; the
		// first anchor of a page takes only the nearest non-noise line.
		// Without an honorific the lines between the anchors are the previous
		// employee's trailing continuations, so the scan yields nothing.
		prev := -1
		if ai > 0 {
			prev = anchors[ai-1]
		}
		var leading []entity.Line
		foundStart := false
		for i := idx - 1; i > prev; i-- {
			l := region[i]
			if isNoiseLine(l.Text) {
				continue
			}
			leading = append([]entity.Line{withStrippedPayScale(l)}, leading...)
			if startsWithHonorific(l.Text) || prev < 0 {
				foundStart = true
				break
			}
		}
		if prev >= 0 && !foundStart {
			leading = nil
		}

		// Trailing lines: absorb name continuations printed below the
		// numeric row, up to the next anchor, a total row, or the next
		// employee's honorific line.
		next := len(region)
		if ai+1 < len(anchors) {
			next = anchors[ai+1]
		}
		var trailing []entity.Line
		for i := idx + 1; i < next; i++ {
			l := region[i]
			if isTotalLine(l.Text) || startsWithHonorific(l.Text) {
				break
			}
			if isNoiseLine(l.Text) {
				continue
			}
			trailing = append(trailing, withStrippedPayScale(l))
		}

		block.Lines = append(block.Lines, leading...)
		block.Lines = append(block.Lines, anchor)
		block.Lines = append(block.Lines, trailing...)
		r.Blocks = append(r.Blocks, block)
	}
}

// withStrippedPayScale returns a copy of the line with pay-band digits
// removed from its text. Tokens stay untouched; only assembled text feeds the
// name/designation parse.
func withStrippedPayScale(l entity.Line) entity.Line {
	l.Text = stripPayScale(l.Text)
	return l
}
