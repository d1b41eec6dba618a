// Package layout reconstructs reading-order text lines from the positioned
// tokens the external extractor produces. It is purely geometric: no numeric
// value is interpreted here.
package layout

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// Reconstruct groups each page's tokens into lines and returns the per-page
// line lists plus the whole document flattened, for pattern scans that span
// page boundaries. A page with zero tokens yields zero lines.
func Reconstruct(doc entity.Document) (pages [][]entity.Line, flat []entity.Line) {
	pages = make([][]entity.Line, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		lines := LinesFromTokens(p.Tokens, p.Number)
		pages = append(pages, lines)
		flat = append(flat, lines...)
	}
	return pages, flat
}

// LinesFromTokens buckets tokens by rounded Y and assembles one line per
// bucket. Tokens within a line are ordered ascending by X; lines are ordered
// descending by Y, so the top of the page comes first in PDF user space.
func LinesFromTokens(tokens []entity.PositionedToken, page int) []entity.Line {
	if len(tokens) == 0 {
		return nil
	}

	buckets := make(map[int][]entity.PositionedToken)
	for _, t := range tokens {
		y := roundY(t.Y)
		buckets[y] = append(buckets[y], t)
	}

	ys := make([]int, 0, len(buckets))
	for y := range buckets {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]entity.Line, 0, len(ys))
	for _, y := range ys {
		toks := buckets[y]
		sort.SliceStable(toks, func(i, j int) bool { return toks[i].X < toks[j].X })

		var b strings.Builder
		for i, t := range toks {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(t.Text)
		}
		lines = append(lines, entity.Line{
			Tokens: toks,
			Text:   b.String(),
			Y:      y,
			Page:   page,
		})
	}
	return lines
}

// roundY maps a vertical coordinate to its integer pixel bucket. Rounding
// half away from zero keeps tokens rendered on the same baseline together
// even when the extractor reports sub-pixel jitter.
func roundY(y float64) int {
	if y < 0 {
		return int(y - 0.5)
	}
	return int(y + 0.5)
}
