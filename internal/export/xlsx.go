// Package export renders a finished batch as an XLSX payroll register or a
// schema-checked JSON report.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

// Service produces export artifacts from a batch result.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// RegisterXLSX returns an XLSX workbook (as bytes) with one row per merged
// employee record. Field columns are the union of observed keys so two
// batches with different column sets still export cleanly.
func (s *Service) RegisterXLSX(res entity.BatchResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Payroll Register"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Employee ID", "Name", "Designation"}
	headers = append(headers, res.Validation.EarningKeys...)
	headers = append(headers, res.Validation.DeductionKeys...)
	headers = append(headers, "Gross", "Total Deductions", "Net Pay")
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, rec := range res.Records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, rec.ID)
		write(2, rec.Name)
		write(3, rec.Designation)

		col := 4
		for _, key := range res.Validation.EarningKeys {
			if v, ok := rec.Earnings[key]; ok {
				write(col, v)
			}
			col++
		}
		for _, key := range res.Validation.DeductionKeys {
			if v, ok := rec.Deductions[key]; ok {
				write(col, v)
			}
			col++
		}
		write(col, rec.Gross)
		write(col+1, rec.TotalDed)
		write(col+2, rec.NetPay)
		row++
	}

	// Totals row mirrors the bill's own running total line.
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	write(1, "TOTAL")
	totalsCol := 4 + len(res.Validation.EarningKeys) + len(res.Validation.DeductionKeys)
	write(totalsCol, res.Validation.TotalGross)
	write(totalsCol+1, res.Validation.TotalDed)
	write(totalsCol+2, res.Validation.TotalNetPay)

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "C", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(res.Records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
