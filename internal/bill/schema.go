package bill

import (
	"sort"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// detector resolves one catalogue entry to a horizontal position within the
// header-token pool. Implementations are small strategies, not a conditional
// chain; ok is false when the entry is absent from this bill's header.
type detector interface {
	detect(tokens []entity.PositionedToken) (x float64, ok bool)
}

// catalogueEntry pairs a raw column label with its detector. Catalogue order
// is the search order; output order is by resolved x-position.
type catalogueEntry struct {
	label string
	det   detector
}

// keywordDetector matches a primary keyword against normalized header tokens,
// falling back to a literal numeric field-code token. exceptNext skips a
// keyword hit whose following token matches, so "GPF" does not also claim the
// "GPF CL.IV" header.
type keywordDetector struct {
	keywords   []string
	code       string
	exceptNext string
}

func (d keywordDetector) detect(tokens []entity.PositionedToken) (float64, bool) {
	for i, t := range tokens {
		norm := normalizeHeaderToken(t.Text)
		for _, kw := range d.keywords {
			if norm != kw {
				continue
			}
			if d.exceptNext != "" && i+1 < len(tokens) &&
				normalizeHeaderToken(tokens[i+1].Text) == d.exceptNext {
				continue
			}
			return t.X, true
		}
	}
	if d.code != "" {
		for _, t := range tokens {
			if strings.TrimSpace(t.Text) == d.code {
				return t.X, true
			}
		}
	}
	return 0, false
}

// pairDetector matches two adjacent keyword tokens and takes the minimum x,
// for headers the extractor splits into separate fragments ("BASIC" "PAY").
type pairDetector struct {
	first, second string
}

func (d pairDetector) detect(tokens []entity.PositionedToken) (float64, bool) {
	for i := 0; i+1 < len(tokens); i++ {
		if normalizeHeaderToken(tokens[i].Text) == d.first &&
			normalizeHeaderToken(tokens[i+1].Text) == d.second {
			x := tokens[i].X
			if tokens[i+1].X < x {
				x = tokens[i+1].X
			}
			return x, true
		}
	}
	return 0, false
}

// presenceDetector fires on keyword presence anywhere in the pool but
// resolves to a fixed position, for columns whose literal token cannot be
// isolated from its neighbours.
type presenceDetector struct {
	keyword string
	fixedX  float64
}

func (d presenceDetector) detect(tokens []entity.PositionedToken) (float64, bool) {
	for _, t := range tokens {
		if strings.Contains(normalizeHeaderToken(t.Text), d.keyword) {
			return d.fixedX, true
		}
	}
	return 0, false
}

// chain tries detectors in order; keyword rules sit before code fallbacks so
// a header containing both resolves to the keyword's position.
type chain []detector

func (c chain) detect(tokens []entity.PositionedToken) (float64, bool) {
	for _, d := range c {
		if x, ok := d.detect(tokens); ok {
			return x, true
		}
	}
	return 0, false
}

var earningCatalogue = []catalogueEntry{
	{"BASIC PAY", chain{pairDetector{"BASIC", "PAY"}, keywordDetector{keywords: []string{"BASIC"}, code: "001"}}},
	{"D.A.", keywordDetector{keywords: []string{"DA"}, code: "002"}},
	{"H.R.A.", keywordDetector{keywords: []string{"HRA"}, code: "003"}},
	{"C.L.A.", keywordDetector{keywords: []string{"CLA"}, code: "004"}},
	{"MED.ALL", keywordDetector{keywords: []string{"MED", "MEDALL"}, code: "005"}},
	{"TRANS.ALL", keywordDetector{keywords: []string{"TA", "TRANS", "TRANSALL"}, code: "006"}},
	{"BOOK.ALL", keywordDetector{keywords: []string{"BOOK", "BOOKALL"}, code: "007"}},
	{"N.P.A.", keywordDetector{keywords: []string{"NPA"}, code: "008"}},
	{"ESIS", keywordDetector{keywords: []string{"ESIS"}, code: "009"}},
	{"WASH.ALL", keywordDetector{keywords: []string{"WASH", "WASHALL"}, code: "010"}},
	{"NUR.ALL", keywordDetector{keywords: []string{"NUR", "NURALL"}, code: "011"}},
	{"UNI.ALL", keywordDetector{keywords: []string{"UNI", "UNIALL"}, code: "012"}},
	{"SPL.PAY", chain{pairDetector{"SPL", "PAY"}, keywordDetector{keywords: []string{"SPLPAY", "SPECIAL"}, code: "013"}}},
	{"RECOVERY", keywordDetector{keywords: []string{"RECOVERY", "REC"}, code: "014"}},
	{"GROSS", keywordDetector{keywords: []string{"GROSS"}, code: "015"}},
	{"SLO", presenceDetector{"SLO", 780}},
}

var deductionCatalogue = []catalogueEntry{
	{"I.TAX", chain{keywordDetector{keywords: []string{"ITAX", "INCOMETAX"}, code: "101"}, pairDetector{"INCOME", "TAX"}}},
	{"P.TAX", chain{keywordDetector{keywords: []string{"PTAX", "PROFTAX"}, code: "102"}, pairDetector{"PROF", "TAX"}}},
	{"GPF CL.IV", chain{pairDetector{"GPF", "CLIV"}, keywordDetector{keywords: []string{"GPFCLIV", "GPFIV"}, code: "103"}}},
	{"GPF", keywordDetector{keywords: []string{"GPF"}, code: "104", exceptNext: "CLIV"}},
	{"CPS", keywordDetector{keywords: []string{"CPS", "DCPS", "NPS"}, code: "105"}},
	{"R&B", keywordDetector{keywords: []string{"R&B", "RB"}, code: "106"}},
	{"GIS", keywordDetector{keywords: []string{"GIS"}, code: "107"}},
	{"GLI", keywordDetector{keywords: []string{"GLI"}, code: "108"}},
	{"TOTAL DEDUCTION", chain{pairDetector{"TOTAL", "DEDUCTION"}, keywordDetector{keywords: []string{"DEDUCTION", "DEDUCTIONS"}, code: "109"}}},
	{"NET PAY", chain{pairDetector{"NET", "PAY"}, keywordDetector{keywords: []string{"NET", "NETPAY"}, code: "110"}}},
}

// DetectSchema locates the header zone on page-one lines and resolves each
// catalogue entry for the document kind to a column position. Unmatched
// entries are omitted: the schema is sparse. A degenerate header zone (no
// tokens at all) yields an explicitly invalid schema.
func DetectSchema(kind constants.DocKind, pageOne []entity.Line) entity.ColumnSchema {
	zone := headerZone(pageOne)

	var pool []entity.PositionedToken
	for _, l := range zone {
		pool = append(pool, l.Tokens...)
	}

	schema := entity.ColumnSchema{Kind: kind}
	if len(pool) == 0 {
		return schema
	}
	schema.Valid = true

	catalogue := earningCatalogue
	if kind == constants.KindDeduction {
		catalogue = deductionCatalogue
	}
	for _, entry := range catalogue {
		if x, ok := entry.det.detect(pool); ok {
			schema.Columns = append(schema.Columns, entity.Column{Label: entry.label, X: x})
		}
	}

	sort.SliceStable(schema.Columns, func(i, j int) bool {
		return schema.Columns[i].X < schema.Columns[j].X
	})
	return schema
}

// headerZone returns the page-one lines between the contact-info line and the
// first data row or honorific-prefixed name line. Bills print column headers
// directly below the phone/mobile line.
func headerZone(pageOne []entity.Line) []entity.Line {
	start := -1
	for i, l := range pageOne {
		if isContactLine(l.Text) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(pageOne)
	for i := start + 1; i < len(pageOne); i++ {
		if anchorRe.MatchString(pageOne[i].Text) || startsWithHonorific(pageOne[i].Text) {
			end = i
			break
		}
	}
	return pageOne[start+1 : end]
}

// HeaderZoneEnd reports the index of the first page-one line past the header
// zone, for the segmenter's first-block boundary. Returns 0 when no contact
// line exists.
func HeaderZoneEnd(pageOne []entity.Line) int {
	start := -1
	for i, l := range pageOne {
		if isContactLine(l.Text) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	for i := start + 1; i < len(pageOne); i++ {
		if anchorRe.MatchString(pageOne[i].Text) || startsWithHonorific(pageOne[i].Text) {
			return i
		}
	}
	return len(pageOne)
}

func isContactLine(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "phone") || strings.Contains(lower, "mobile") || strings.Contains(lower, "mob.")
}

// normalizeHeaderToken uppercases and strips separator punctuation so
// "D.A.", "D. A." and "DA" all compare equal.
func normalizeHeaderToken(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.NewReplacer(".", "", ",", "", ":", "", "(", "", ")", "").Replace(s)
	return s
}
