package constants

// Sheet names in the exported workbook.
const (
	PaymentsSheet  = "Payment Details"
	SummariesSheet = "Summary"
)

// PaymentColumns are the Payment Details sheet headers, in column order.
var PaymentColumns = []string{
	"PDF File",
	"Page",
	"Pay Period",
	"Paid Date",
	"Work Date",
	"Hours",
	"Rate",
	"Amount",
}

// SummaryColumns are the Summary sheet headers, in column order.
var SummaryColumns = []string{
	"PDF File",
	"Page",
	"Pay Period",
	"Paid Date",
	"Gross Pay",
	"Tax",
	"Nett Pay",
	"YTD Gross Pay",
	"YTD Tax",
	"YTD Nett Pay",
	"Disbursement Amount",
}
