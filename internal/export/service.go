// Package export renders the two record collections for tabular sinks.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/constants"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
)

const (
	paidDateLayout = "02 Jan 2006"
	workDateLayout = "2006-01-02"
)

// Service produces workbook bytes for exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportXLSX returns an XLSX workbook (as bytes) with the Payment Details
// and Summary sheets.
func (s *Service) ExportXLSX(payments []entity.PaymentRecord, summaries []entity.SummaryRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if _, err := f.NewSheet(constants.PaymentsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(constants.SummariesSheet); err != nil {
		return nil, err
	}
	// Drop the default sheet so the workbook opens on Payment Details.
	_ = f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex(constants.PaymentsSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := writeHeaders(f, constants.PaymentsSheet, constants.PaymentColumns); err != nil {
		return nil, err
	}
	if err := writeHeaders(f, constants.SummariesSheet, constants.SummaryColumns); err != nil {
		return nil, err
	}

	for i, p := range payments {
		row := i + 2
		write := cellWriter(f, constants.PaymentsSheet, row)
		write(1, p.SourceFile)
		write(2, p.Page)
		write(3, p.Period.String())
		write(4, formatDate(p.Period.Paid, paidDateLayout))
		write(5, formatDate(p.WorkDate, workDateLayout))
		write(6, p.Hours.InexactFloat64())
		write(7, p.Rate.InexactFloat64())
		write(8, p.Amount.InexactFloat64())
	}

	for i, sum := range summaries {
		row := i + 2
		write := cellWriter(f, constants.SummariesSheet, row)
		write(1, sum.SourceFile)
		write(2, sum.Page)
		write(3, sum.Period.String())
		write(4, formatDate(sum.Period.Paid, paidDateLayout))
		write(5, sum.GrossPay.InexactFloat64())
		write(6, sum.Tax.InexactFloat64())
		write(7, sum.NettPay.InexactFloat64())
		write(8, sum.YTDGrossPay.InexactFloat64())
		write(9, sum.YTDTax.InexactFloat64())
		write(10, sum.YTDNettPay.InexactFloat64())
		write(11, sum.Disbursement.InexactFloat64())
	}

	// Widen the provenance and period columns.
	_ = f.SetColWidth(constants.PaymentsSheet, "A", "A", 32)
	_ = f.SetColWidth(constants.PaymentsSheet, "C", "C", 30)
	_ = f.SetColWidth(constants.PaymentsSheet, "D", "E", 14)
	_ = f.SetColWidth(constants.SummariesSheet, "A", "A", 32)
	_ = f.SetColWidth(constants.SummariesSheet, "C", "C", 30)
	_ = f.SetColWidth(constants.SummariesSheet, "D", "D", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"payments", len(payments),
		"summaries", len(summaries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func cellWriter(f *excelize.File, sheet string, row int) func(col int, v any) {
	return func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
