package bill

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// labelRule maps a raw column-label pattern to a canonical field key. Rules
// are evaluated in declaration order: more specific patterns sit above the
// generic ones they would otherwise shadow (GPF CL.IV before GPF).
type labelRule struct {
	pattern  *regexp.Regexp
	key      string
	category constants.FieldCategory
}

var labelRules = []labelRule{
	{regexp.MustCompile(`(?i)basic`), constants.BasicPay, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)^d\.?a\.?$|dearness`), constants.DearnessAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)h\.?r\.?a|house\s*rent`), constants.HouseRentAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)c\.?l\.?a|city`), constants.CityAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)med`), constants.MedicalAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)trans|^t\.?a\.?$`), constants.TransportAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)book`), constants.BookAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)n\.?p\.?a`), constants.NonPracticeAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)esis`), constants.ESISAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)wash`), constants.WashingAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)nur`), constants.NursingAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)uni`), constants.UniformAllowance, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)spl|special`), constants.SpecialPay, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)recovery|^rec`), constants.RecoveryOfPay, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)gross`), constants.Gross, constants.CategoryEarning},
	{regexp.MustCompile(`(?i)slo`), constants.SLO, constants.CategoryEarning},

	{regexp.MustCompile(`(?i)i\.?tax|income`), constants.IncomeTax, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)p\.?tax|prof`), constants.ProfessionalTax, constants.CategoryDeduction},
	// The class-IV provident fund variant must be checked before the
	// generic provident fund pattern.
	{regexp.MustCompile(`(?i)gpf\s*cl|gpf.?iv|class\s*iv`), constants.GPFClass4, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)gpf|provident`), constants.GPF, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)cps|dcps|nps|pension`), constants.PensionScheme, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)r\s*&\s*b`), constants.RAndB, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)gis`), constants.GIS, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)gli`), constants.GLI, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)total`), constants.TotalDeductions, constants.CategoryDeduction},
	{regexp.MustCompile(`(?i)net`), constants.NetPay, constants.CategoryDeduction},
}

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// CanonicalKey resolves a raw column label to its canonical field key. Every
// observed column yields some key: unknown labels fall back to a derived
// camelCase key rather than failing the parse.
func CanonicalKey(label string, kind constants.DocKind) (string, constants.FieldCategory) {
	category := constants.CategoryEarning
	if kind == constants.KindDeduction {
		category = constants.CategoryDeduction
	}
	for _, r := range labelRules {
		if r.category != category {
			continue
		}
		if r.pattern.MatchString(label) {
			return r.key, r.category
		}
	}
	return DeriveKey(label), category
}

// DeriveKey builds a deterministic camelCase key from an unmapped label:
// parenthetical codes stripped, first word lowered, subsequent words
// capitalized. The derivation is idempotent, so re-normalizing an already
// derived key changes nothing.
func DeriveKey(label string) string {
	cleaned := parentheticalRe.ReplaceAllString(label, " ")
	words := splitLabelWords(cleaned)
	if len(words) == 0 {
		return "unknown"
	}
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// splitLabelWords splits on separators and on camelCase boundaries: an upper
// rune after a lower one starts a word, and so does the last upper of an
// acronym run when a lower rune follows it ("wFCont" is w, F, Cont). These
// boundaries are what keep DeriveKey idempotent for its own output.
func splitLabelWords(s string) []string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	var prev rune
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = r
			continue
		}
		if unicode.IsUpper(r) {
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
		prev = r
	}
	flush()
	return words
}

// Normalize zips the schema's columns with the block parser's positional
// values into a NormalizedRecord. Missing trailing values default to zero.
// With an invalid schema the values are retained under generated positional
// keys, since they cannot be labeled.
func Normalize(schema entity.ColumnSchema, emp entity.ParsedEmployee) entity.NormalizedRecord {
	category := constants.CategoryEarning
	if schema.Kind == constants.KindDeduction {
		category = constants.CategoryDeduction
	}

	rec := entity.NormalizedRecord{
		ID:          emp.ID,
		Name:        emp.Name,
		Designation: emp.Designation,
		Fields:      make(map[string]float64),
		Category:    category,
	}

	if !schema.Valid || len(schema.Columns) == 0 {
		for i, v := range emp.Values {
			rec.Fields[fmt.Sprintf("column%d", i+1)] = v
		}
		return rec
	}

	for i, col := range schema.Columns {
		key, _ := CanonicalKey(col.Label, schema.Kind)
		var v float64
		if i < len(emp.Values) {
			v = emp.Values[i]
		}
		rec.Fields[key] = v
	}
	return rec
}
