package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/entity"
)

// paymentRow is the flattened CSV view of a PaymentRecord.
type paymentRow struct {
	PDFFile   string `csv:"PDF File"`
	Page      int    `csv:"Page"`
	PayPeriod string `csv:"Pay Period"`
	PaidDate  string `csv:"Paid Date"`
	WorkDate  string `csv:"Work Date"`
	Hours     string `csv:"Hours"`
	Rate      string `csv:"Rate"`
	Amount    string `csv:"Amount"`
}

// summaryRow is the flattened CSV view of a SummaryRecord.
type summaryRow struct {
	PDFFile      string `csv:"PDF File"`
	Page         int    `csv:"Page"`
	PayPeriod    string `csv:"Pay Period"`
	PaidDate     string `csv:"Paid Date"`
	GrossPay     string `csv:"Gross Pay"`
	Tax          string `csv:"Tax"`
	NettPay      string `csv:"Nett Pay"`
	YTDGrossPay  string `csv:"YTD Gross Pay"`
	YTDTax       string `csv:"YTD Tax"`
	YTDNettPay   string `csv:"YTD Nett Pay"`
	Disbursement string `csv:"Disbursement Amount"`
}

// WritePaymentsCSV writes the Payment Details dataset as CSV.
func (s *Service) WritePaymentsCSV(w io.Writer, payments []entity.PaymentRecord) error {
	rows := make([]paymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, paymentRow{
			PDFFile:   p.SourceFile,
			Page:      p.Page,
			PayPeriod: p.Period.String(),
			PaidDate:  formatDate(p.Period.Paid, paidDateLayout),
			WorkDate:  formatDate(p.WorkDate, workDateLayout),
			Hours:     p.Hours.StringFixed(2),
			Rate:      p.Rate.StringFixed(2),
			Amount:    p.Amount.StringFixed(2),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("payments csv: %w", err)
	}
	return nil
}

// WriteSummariesCSV writes the Summary dataset as CSV.
func (s *Service) WriteSummariesCSV(w io.Writer, summaries []entity.SummaryRecord) error {
	rows := make([]summaryRow, 0, len(summaries))
	for _, sum := range summaries {
		rows = append(rows, summaryRow{
			PDFFile:      sum.SourceFile,
			Page:         sum.Page,
			PayPeriod:    sum.Period.String(),
			PaidDate:     formatDate(sum.Period.Paid, paidDateLayout),
			GrossPay:     sum.GrossPay.StringFixed(2),
			Tax:          sum.Tax.StringFixed(2),
			NettPay:      sum.NettPay.StringFixed(2),
			YTDGrossPay:  sum.YTDGrossPay.StringFixed(2),
			YTDTax:       sum.YTDTax.StringFixed(2),
			YTDNettPay:   sum.YTDNettPay.StringFixed(2),
			Disbursement: sum.Disbursement.StringFixed(2),
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("summaries csv: %w", err)
	}
	return nil
}
