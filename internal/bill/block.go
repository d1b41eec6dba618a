package bill

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

var (
	// Figures arrive in Western (1,200,000) or Indian (12,00,000) grouping.
	numericTokenRe = regexp.MustCompile(`^-?\d+(?:,\d{2,3})*(?:\.\d+)?$`)
	numberRe       = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	parenLineRe    = regexp.MustCompile(`^\(.*\)$`)
	flagLetterRe   = regexp.MustCompile(`^[A-Z]$`)
	digitsRe       = regexp.MustCompile(`^\d+$`)
)

// ParseBlock extracts the identifier, assembled name, designation and ordered
// numeric values from one employee block. A block with no numeric values or a
// non-digit identifier prefix is dropped: the error is a diagnostic for the
// document, never fatal to the batch.
func ParseBlock(kind constants.DocKind, block entity.EmployeeBlock) (entity.ParsedEmployee, error) {
	if !digitsRe.MatchString(block.ID) {
		return entity.ParsedEmployee{}, fmt.Errorf("block serial %d page %d: identifier prefix %q is not digits", block.Serial, block.Page, block.ID)
	}

	emp := entity.ParsedEmployee{ID: block.ID}
	var nameParts []string

	appendNamed := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if parenLineRe.MatchString(text) && emp.Designation != "" {
			// Parenthesized continuation of an already-found designation.
			emp.Designation += " " + text
			return
		}
		if title, before, ok := matchDesignation(text); ok {
			if emp.Designation == "" {
				emp.Designation = title
			}
			if before != "" {
				nameParts = append(nameParts, before)
			}
			return
		}
		nameParts = append(nameParts, text)
	}

	anchorSeen := false
	for _, l := range block.Lines {
		if !anchorSeen && l.Page == block.Anchor.Page && l.Y == block.Anchor.Y {
			anchorSeen = true
			head, values := splitAnchorLine(kind, l.Text)
			emp.Values = values
			appendNamed(stripPayScale(head))
			continue
		}
		appendNamed(l.Text)
	}

	if len(emp.Values) == 0 {
		return entity.ParsedEmployee{}, fmt.Errorf("block %s page %d: no numeric values on data line", block.ID, block.Page)
	}

	emp.Name = strings.Join(strings.Fields(strings.Join(nameParts, " ")), " ")
	return emp, nil
}

// splitAnchorLine strips the serial+identifier prefix, then locates the
// boundary between employee-identifying text and the trailing numeric value
// block. Earning bills carry a No/Yes + single-letter eligibility flag pair
// right before the first figure; deduction bills fall back to the first
// numeric token that is not a "Class <n>" designation suffix.
func splitAnchorLine(kind constants.DocKind, text string) (head string, values []float64) {
	rest := anchorRe.ReplaceAllString(text, "")
	tokens := strings.Fields(rest)

	// headEnd is where employee-identifying text stops; valueStart is where
	// figures begin. They differ only when the eligibility flag pair sits
	// between the two.
	headEnd, valueStart := -1, -1
	if kind == constants.KindEarning {
		for i := 0; i+1 < len(tokens); i++ {
			t := strings.ToLower(tokens[i])
			if (t == "no" || t == "yes") && flagLetterRe.MatchString(tokens[i+1]) {
				headEnd, valueStart = i, i+2
				break
			}
		}
	}
	if valueStart < 0 {
		for i, t := range tokens {
			if !numericTokenRe.MatchString(t) {
				continue
			}
			if i > 0 && strings.EqualFold(strings.TrimSuffix(tokens[i-1], "."), "class") {
				// "Class 4" is a designation, not a salary figure.
				continue
			}
			headEnd, valueStart = i, i
			break
		}
	}
	if valueStart < 0 {
		headEnd, valueStart = len(tokens), len(tokens)
	}

	head = strings.Join(tokens[:headEnd], " ")
	tail := strings.Join(tokens[valueStart:], " ")
	for _, m := range numberRe.FindAllString(strings.ReplaceAll(tail, ",", ""), -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return head, values
}
