package reconcile

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// DefaultTolerance is the absolute discrepancy accepted by the arithmetic
// cross-checks.
const DefaultTolerance = 1.0

var employeeIDRe = regexp.MustCompile(`^\d{8}$`)

// Validate cross-checks every merged record and aggregates batch statistics.
// Earning-sum vs gross mismatches are warnings (rounding and unmapped columns
// make them common); the gross − deductions = net relationship must hold, so
// its violation is an error. Records are never removed: the caller decides
// what a failed record means.
func Validate(records []entity.PayrollRecord, tolerance float64) entity.ValidationResult {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	res := entity.ValidationResult{Valid: true}
	earningKeys := make(map[string]struct{})
	deductionKeys := make(map[string]struct{})

	for _, rec := range records {
		recOK := true

		if !employeeIDRe.MatchString(rec.ID) {
			res.Errors = append(res.Errors, fmt.Sprintf("record %s: malformed employee identifier", rec.ID))
			recOK = false
		}

		for k := range rec.Earnings {
			earningKeys[k] = struct{}{}
		}
		for k := range rec.Deductions {
			deductionKeys[k] = struct{}{}
		}

		if len(rec.Earnings) > 0 && rec.Gross > 0 {
			var sum float64
			for k, v := range rec.Earnings {
				if _, skip := constants.EarningSumExclusions[k]; skip {
					continue
				}
				sum += v
			}
			if math.Abs(sum-rec.Gross) > tolerance {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"record %s: earning sum %.2f differs from gross %.2f", rec.ID, sum, rec.Gross))
			}
		}

		if rec.Gross > 0 && rec.TotalDed > 0 && rec.NetPay > 0 {
			if math.Abs((rec.Gross-rec.TotalDed)-rec.NetPay) > tolerance {
				res.Errors = append(res.Errors, fmt.Sprintf(
					"record %s: gross %.2f - deductions %.2f does not equal net pay %.2f",
					rec.ID, rec.Gross, rec.TotalDed, rec.NetPay))
				recOK = false
			}
		}

		if recOK {
			res.ValidRecords++
		}
		res.TotalGross += rec.Gross
		res.TotalDed += rec.TotalDed
		res.TotalNetPay += rec.NetPay
	}

	res.EarningKeys = sortedKeys(earningKeys)
	res.DeductionKeys = sortedKeys(deductionKeys)
	res.Valid = len(res.Errors) == 0
	return res
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
