package bill

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payroll-parser/constants"
	"github.com/joseph-ayodele/payroll-parser/internal/common"
	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

func linesFromText(texts ...string) []entity.Line {
	lines := make([]entity.Line, 0, len(texts))
	for i, txt := range texts {
		lines = append(lines, entity.Line{Text: txt, Y: 800 - i*12, Page: 1})
	}
	return lines
}

func TestClassify(t *testing.T) {
	t.Run("detects an earning bill", func(t *testing.T) {
		meta, err := Classify(linesFromText(
			"GOVERNMENT MEDICAL COLLEGE",
			"PAY BILL FOR THE MONTH OF March 2024",
		))

		require.NoError(t, err)
		assert.Equal(t, constants.KindEarning, meta.Kind)
		assert.Equal(t, "March 2024", meta.MonthLabel)
	})

	t.Run("detects a deduction bill", func(t *testing.T) {
		meta, err := Classify(linesFromText(
			"SCHEDULE OF DEDUCTION",
			"for January, 2024",
		))

		require.NoError(t, err)
		assert.Equal(t, constants.KindDeduction, meta.Kind)
		assert.Equal(t, "January 2024", meta.MonthLabel)
	})

	t.Run("deduction marker wins when both markers appear", func(t *testing.T) {
		// Deduction bills reference the pay bill they schedule against.
		meta, err := Classify(linesFromText(
			"DEDUCTION BILL against Pay Bill No. 42",
		))

		require.NoError(t, err)
		assert.Equal(t, constants.KindDeduction, meta.Kind)
	})

	t.Run("extracts bill number and office name", func(t *testing.T) {
		meta, err := Classify(linesFromText(
			"Office : District Civil Hospital",
			"Pay Bill No: EST/2024/031",
		))

		require.NoError(t, err)
		assert.Equal(t, "EST/2024/031", meta.BillNumber)
		assert.Equal(t, "District Civil Hospital", meta.OfficeName)
	})

	t.Run("missing metadata is not an error", func(t *testing.T) {
		meta, err := Classify(linesFromText("ESTABLISHMENT BILL"))

		require.NoError(t, err)
		assert.Equal(t, constants.KindEarning, meta.Kind)
		assert.Empty(t, meta.MonthLabel)
		assert.Empty(t, meta.BillNumber)
		assert.Empty(t, meta.OfficeName)
	})

	t.Run("no marker is a fatal unknown-kind error", func(t *testing.T) {
		_, err := Classify(linesFromText("some unrelated circular"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrUnknownKind))
	})
}
