package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

func TestValidate(t *testing.T) {
	goodRecord := func() entity.PayrollRecord {
		return entity.PayrollRecord{
			ID:   "00125678",
			Name: "Shri Kale A B",
			Earnings: map[string]float64{
				constants.BasicPay:          30000,
				constants.DearnessAllowance: 20000,
				constants.Gross:             50000,
			},
			Deductions: map[string]float64{
				constants.GPF:             4000,
				constants.ProfessionalTax: 1000,
			},
			Gross:    50000,
			TotalDed: 5000,
			NetPay:   45000,
		}
	}

	t.Run("consistent record passes", func(t *testing.T) {
		res := Validate([]entity.PayrollRecord{goodRecord()}, DefaultTolerance)

		assert.True(t, res.Valid)
		assert.Equal(t, 1, res.ValidRecords)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, 50000.0, res.TotalGross)
		assert.Equal(t, 5000.0, res.TotalDed)
		assert.Equal(t, 45000.0, res.TotalNetPay)
	})

	t.Run("gross minus deductions must equal net pay", func(t *testing.T) {
		rec := goodRecord()
		rec.NetPay = 44000

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "00125678")
		assert.Equal(t, 0, res.ValidRecords)
	})

	t.Run("earning sum mismatch is only a warning", func(t *testing.T) {
		rec := goodRecord()
		rec.Earnings[constants.BasicPay] = 29000 // sum now 49000 vs gross 50000

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.True(t, res.Valid)
		assert.Equal(t, 1, res.ValidRecords)
		assert.Empty(t, res.Errors)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "earning sum")
	})

	t.Run("gross and slo are excluded from the earning sum", func(t *testing.T) {
		rec := goodRecord()
		rec.Earnings[constants.SLO] = 999

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.Empty(t, res.Warnings)
	})

	t.Run("discrepancy within tolerance passes", func(t *testing.T) {
		rec := goodRecord()
		rec.NetPay = 44999.5

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.True(t, res.Valid)
	})

	t.Run("malformed identifier is an error, record kept", func(t *testing.T) {
		rec := goodRecord()
		rec.ID = "1234567" // seven digits

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "malformed employee identifier")
		// Totals still include the record.
		assert.Equal(t, 50000.0, res.TotalGross)
	})

	t.Run("missing side skips its cross-check", func(t *testing.T) {
		rec := entity.PayrollRecord{ID: "00125678", Gross: 50000}

		res := Validate([]entity.PayrollRecord{rec}, DefaultTolerance)

		assert.True(t, res.Valid)
		assert.Empty(t, res.Warnings)
	})

	t.Run("aggregates sorted field key sets", func(t *testing.T) {
		res := Validate([]entity.PayrollRecord{goodRecord()}, DefaultTolerance)

		assert.Equal(t, []string{constants.BasicPay, constants.DearnessAllowance, constants.Gross}, res.EarningKeys)
		assert.Equal(t, []string{constants.GPF, constants.ProfessionalTax}, res.DeductionKeys)
	})

	t.Run("non-positive tolerance falls back to the default", func(t *testing.T) {
		rec := goodRecord()
		rec.NetPay = 44999.5

		res := Validate([]entity.PayrollRecord{rec}, 0)

		assert.True(t, res.Valid)
	})
}
