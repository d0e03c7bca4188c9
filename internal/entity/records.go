package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriodInfo is the date range covered by one payslip's payment.
// The zero value means the period is unknown (no header seen yet).
type PayPeriodInfo struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Paid  time.Time `json:"paid"`
}

// IsZero reports whether no header has been parsed for this period.
func (p PayPeriodInfo) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero() && p.Paid.IsZero()
}

// String renders the period the way payslips print it, e.g.
// "02 Jun 2023 to 15 Jun 2023". Unknown periods render empty.
func (p PayPeriodInfo) String() string {
	if p.IsZero() {
		return ""
	}
	return p.Start.Format("02 Jan 2006") + " to " + p.End.Format("02 Jan 2006")
}

// PaymentRecord is one payment detail line, stamped with its provenance
// and the pay period that was current when the line was scanned.
type PaymentRecord struct {
	SourceFile string          `json:"source_file" csv:"PDF File"`
	Page       int             `json:"page" csv:"Page"`
	Period     PayPeriodInfo   `json:"pay_period" csv:"-"`
	WorkDate   time.Time       `json:"work_date" csv:"-"`
	Hours      decimal.Decimal `json:"hours" csv:"Hours"`
	Rate       decimal.Decimal `json:"rate" csv:"Rate"`
	Amount     decimal.Decimal `json:"amount" csv:"Amount"`
}

// SummaryRecord is one pay period's totals block. Partial marks a block
// that reached page end before all seven fields were seen; missing fields
// are zero.
type SummaryRecord struct {
	SourceFile   string          `json:"source_file" csv:"PDF File"`
	Page         int             `json:"page" csv:"Page"`
	Period       PayPeriodInfo   `json:"pay_period" csv:"-"`
	GrossPay     decimal.Decimal `json:"gross_pay" csv:"Gross Pay"`
	Tax          decimal.Decimal `json:"tax" csv:"Tax"`
	NettPay      decimal.Decimal `json:"nett_pay" csv:"Nett Pay"`
	YTDGrossPay  decimal.Decimal `json:"ytd_gross_pay" csv:"YTD Gross Pay"`
	YTDTax       decimal.Decimal `json:"ytd_tax" csv:"YTD Tax"`
	YTDNettPay   decimal.Decimal `json:"ytd_nett_pay" csv:"YTD Nett Pay"`
	Disbursement decimal.Decimal `json:"disbursement_amount" csv:"Disbursement Amount"`
	Partial      bool            `json:"partial" csv:"-"`
}
